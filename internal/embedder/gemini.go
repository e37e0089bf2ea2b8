// internal/embedder/gemini.go
package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jodahe1/AcademicHelper/internal/vector"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini implements Embedder using the Gemini embedContent API.
// The API embeds one text per request, so batches are issued sequentially.
type Gemini struct {
	baseURL string
	apiKey  string
	model   string
	dim     int
	http    *http.Client
}

type geminiRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse defers decoding of the embedding field: the API has shipped
// both {"embedding":{"values":[...]}} and a direct {"embedding":[...]} list.
type geminiResponse struct {
	Embedding json.RawMessage `json:"embedding"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGemini creates a Gemini embedder. Vectors are normalized to dim.
func NewGemini(baseURL, apiKey, model string, dim int) *Gemini {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	return &Gemini{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		dim:     dim,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Dimensions() int { return g.dim }

func (g *Gemini) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := g.embed(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d/%d: %w", i+1, len(texts), err)
		}
		vectors[i] = vector.Normalize(vec, g.dim)
	}
	return vectors, nil
}

func (g *Gemini) embed(ctx context.Context, text string) ([]float32, error) {
	reqBody := geminiRequest{
		Model:   g.model,
		Content: geminiContent{Parts: []geminiPart{{Text: text}}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/%s:embedContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var embResp geminiResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, &ResponseError{Provider: "gemini", Status: resp.StatusCode, Shape: "non-JSON body", Err: err}
	}
	if embResp.Error != nil {
		return nil, &ResponseError{Provider: "gemini", Status: resp.StatusCode, Shape: embResp.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ResponseError{Provider: "gemini", Status: resp.StatusCode, Shape: string(body)}
	}
	if len(embResp.Embedding) == 0 {
		return nil, &ResponseError{Provider: "gemini", Shape: "missing embedding field"}
	}

	return parseGeminiEmbedding(embResp.Embedding)
}

// parseGeminiEmbedding accepts the two shapes the API has produced: a nested
// values object or a direct vector list. Anything else is a hard error.
func parseGeminiEmbedding(raw json.RawMessage) ([]float32, error) {
	var nested struct {
		Values []float32 `json:"values"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Values != nil {
		return nested.Values, nil
	}

	var direct []float32
	if err := json.Unmarshal(raw, &direct); err == nil && direct != nil {
		return direct, nil
	}

	shape := string(raw)
	if len(shape) > 120 {
		shape = shape[:120] + "..."
	}
	return nil, &ResponseError{Provider: "gemini", Shape: fmt.Sprintf("unrecognized embedding shape: %s", shape)}
}
