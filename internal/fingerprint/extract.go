package fingerprint

// Size is the fixed fingerprint length.
const Size = 128

// Extract derives a Size-length fingerprint from an encoded photo payload by
// sampling evenly-spaced bytes and min-max normalizing the result to [0,1].
//
// This is deliberately a weak, content-insensitive signature over the encoded
// bytes, not a face embedding. It exists only as a degraded fallback for when
// the external recognition provider is unreachable and must not be relied on
// for production-grade identity verification.
func Extract(photo []byte) []float64 {
	features := make([]float64, Size)
	step := len(photo) / Size

	for i := 0; i < Size; i++ {
		idx := i * step
		if idx < len(photo) {
			// raw feature is the sampled byte value (mod 256 is implicit)
			features[i] = float64(photo[idx])
		}
	}

	min, max := features[0], features[0]
	for _, f := range features {
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}

	// Degenerate input collapses to a constant vector; divide by 1 instead
	// of 0 so the output stays defined.
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	for i, f := range features {
		features[i] = (f - min) / rng
	}

	return features
}
