// internal/embedder/factory.go
package embedder

import (
	"github.com/jodahe1/AcademicHelper/internal/config"
)

// FromConfig selects the active provider from credential presence: Gemini
// when its key is set, otherwise OpenAI. Evaluated once at startup; the
// result is injected into the service.
func FromConfig(cfg config.Config) (Embedder, error) {
	switch cfg.Provider() {
	case config.ProviderGemini:
		return NewGemini("", cfg.GeminiKey, cfg.GeminiModel, cfg.TargetDim), nil
	case config.ProviderOpenAI:
		return NewOpenAI("", cfg.OpenAIKey, cfg.OpenAIModel, cfg.TargetDim), nil
	default:
		return nil, ErrNoProvider
	}
}
