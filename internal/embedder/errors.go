// internal/embedder/errors.go
package embedder

import (
	"errors"
	"fmt"
)

// ErrNoProvider is returned when neither provider has a credential
// configured. No network call is attempted.
var ErrNoProvider = errors.New("no embedding provider configured: set GEMINI_API_KEY or OPENAI_API_KEY")

// ResponseError reports a provider response that could not be turned into
// vectors: an error status, an unparseable body, or an unrecognized shape.
// Shape describes what was actually received, for diagnostics.
type ResponseError struct {
	Provider string
	Status   int
	Shape    string
	Err      error
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s embedding response: %s", e.Provider, e.Shape)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}
