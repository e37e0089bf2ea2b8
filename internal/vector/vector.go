// Package vector provides dimension normalization and distance math for
// embedding vectors. Providers disagree on output dimensionality, so every
// vector is padded or trimmed to one target dimension before storage.
package vector

import "math"

// Normalize returns vec adjusted to exactly dim elements: unchanged at dim,
// truncated when longer, right-padded with zeros when shorter. Magnitude is
// not rescaled, so padded or trimmed vectors have a reduced effective norm.
func Normalize(vec []float32, dim int) []float32 {
	if len(vec) == dim {
		return vec
	}
	if len(vec) > dim {
		return vec[:dim]
	}
	out := make([]float32, dim)
	copy(out, vec)
	return out
}

// CosineSimilarity returns the cosine similarity between two vectors.
// Mismatched lengths or a zero-magnitude vector yield 0.
func CosineSimilarity(a, b []float32) float64 {
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

// CosineDistance returns 1 - CosineSimilarity; lower means more similar.
// A zero-magnitude vector on either side gives distance 1, ranking it
// behind any exact match without dividing by zero.
func CosineDistance(a, b []float32) float64 {
	return 1 - CosineSimilarity(a, b)
}
