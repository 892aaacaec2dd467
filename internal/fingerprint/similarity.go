package fingerprint

import "math"

// CosineSimilarity calculates the cosine similarity between two fingerprint
// vectors. Returns 0 when the lengths differ or either vector has zero
// magnitude; neither condition is an error, both simply cannot match.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
