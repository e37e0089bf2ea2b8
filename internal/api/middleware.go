// internal/api/middleware.go
package api

import (
	"net/http"

	"github.com/google/uuid"
)

// maxBodyBytes caps request bodies; source full texts are the largest
// legitimate payload.
const maxBodyBytes = 1 << 20

// RequestID assigns a request ID and echoes it in the response
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// MaxBodySize rejects request bodies above maxBodyBytes
func MaxBodySize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
