// internal/embedder/openai.go
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

const defaultOpenAIBaseURL = "https://api.openai.com"

// OpenAI implements Embedder using the OpenAI embeddings API, which accepts
// the whole batch in a single request.
type OpenAI struct {
	baseURL string
	apiKey  string
	model   string
	dim     int
	http    *http.Client
}

type openaiRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openaiResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOpenAI creates an OpenAI embedder. Vectors are normalized to dim.
func NewOpenAI(baseURL, apiKey, model string, dim int) *OpenAI {
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	return &OpenAI{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		dim:     dim,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Dimensions() int { return o.dim }

func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	jsonBody, err := json.Marshal(openaiRequest{Model: o.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/v1/embeddings", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenAI: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var embResp openaiResponse
	if err := json.Unmarshal(body, &embResp); err != nil {
		return nil, &ResponseError{Provider: "openai", Status: resp.StatusCode, Shape: "non-JSON body", Err: err}
	}
	if embResp.Error != nil {
		return nil, &ResponseError{Provider: "openai", Status: resp.StatusCode, Shape: embResp.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ResponseError{Provider: "openai", Status: resp.StatusCode, Shape: string(body)}
	}
	if len(embResp.Data) != len(texts) {
		return nil, &ResponseError{
			Provider: "openai",
			Shape:    fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(embResp.Data)),
		}
	}

	// The API may return items out of order; the index field is authoritative.
	vectors := make([][]float32, len(texts))
	for _, item := range embResp.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, &ResponseError{
				Provider: "openai",
				Shape:    fmt.Sprintf("embedding index %d out of range", item.Index),
			}
		}
		vectors[item.Index] = vector.Normalize(item.Embedding, o.dim)
	}
	for i, v := range vectors {
		if v == nil {
			return nil, &ResponseError{
				Provider: "openai",
				Shape:    fmt.Sprintf("missing embedding for input %d", i),
			}
		}
	}

	return vectors, nil
}
