// Package config reads process-wide embedding configuration from the
// environment. It is loaded once in main and injected; business logic never
// consults the environment directly.
package config

import (
	"os"
	"strconv"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultOpenAIModel = "text-embedding-ada-002"
	DefaultGeminiModel = "models/text-embedding-004"
	DefaultTargetDim   = 1536
	DefaultSearchLimit = 5
)

// Provider identifies an embedding backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderNone   Provider = ""
)

// Config holds embedding provider settings. Credential presence drives
// provider selection; changing provider requires a restart.
type Config struct {
	OpenAIKey   string // OPENAI_API_KEY
	OpenAIModel string // EMBEDDING_MODEL
	GeminiKey   string // GEMINI_API_KEY
	GeminiModel string // GEMINI_EMBED_MODEL

	TargetDim    int // TARGET_VECTOR_DIM
	DefaultLimit int // SEARCH_DEFAULT_LIMIT
}

// Load builds a Config from the environment.
func Load() Config {
	return Config{
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOr("EMBEDDING_MODEL", DefaultOpenAIModel),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  envOr("GEMINI_EMBED_MODEL", DefaultGeminiModel),
		TargetDim:    envInt("TARGET_VECTOR_DIM", DefaultTargetDim),
		DefaultLimit: envInt("SEARCH_DEFAULT_LIMIT", DefaultSearchLimit),
	}
}

// Provider returns the backend selected by credential presence:
// Gemini when its key is set, otherwise OpenAI, otherwise none.
func (c Config) Provider() Provider {
	if c.GeminiKey != "" {
		return ProviderGemini
	}
	if c.OpenAIKey != "" {
		return ProviderOpenAI
	}
	return ProviderNone
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
