package fingerprint

import "github.com/pasiware/faceclock/internal/domain"

// MatchThreshold is the minimum cosine similarity declared a match.
// Calibrated empirically for the byte-sampling fingerprint; tune together
// with Extract if the sampling scheme ever changes.
const MatchThreshold = 0.60

// Compare extracts fingerprints for both encoded photos and scores them.
// It never fails: malformed or degenerate input yields similarity 0 and no
// match. This gate is fail-closed on purpose.
func Compare(stored, captured []byte) domain.MatchResult {
	similarity := CosineSimilarity(Extract(stored), Extract(captured))
	return resultFor(similarity)
}

func resultFor(similarity float64) domain.MatchResult {
	return domain.MatchResult{
		Matched:    similarity >= MatchThreshold,
		Similarity: similarity,
		Source:     domain.SourceLocal,
	}
}
