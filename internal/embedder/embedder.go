// internal/embedder/embedder.go
package embedder

import "context"

// Embedder generates vector embeddings for text. Implementations return one
// vector per input text, in input order, each normalized to Dimensions().
type Embedder interface {
	// EmbedBatch embeds all texts. An empty input returns an empty result
	// without any network call.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions returns the fixed output dimensionality.
	Dimensions() int
	// Name returns the provider identifier ("gemini" or "openai").
	Name() string
}
