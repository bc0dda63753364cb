// Package similarity holds the vector comparison math shared by the
// store backends that rank in process.
package similarity

import "math"

// Cosine returns the cosine similarity between two vectors of equal
// length. A zero vector or a length mismatch yields 0, the least
// similar score, rather than an error: retrieval ranks what it can.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
