// Package middleware holds HTTP middleware shared by the API server.
package middleware

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
	"github.com/vaidashi/dessert-order-tracker/pkg/ratelimit"
)

// Throttle paces requests through a shared token bucket. It guards image
// rendering routes, which are far more expensive than the JSON ones.
type Throttle struct {
	bucket *ratelimit.TokenBucket
	logger logger.Logger
}

// NewThrottle allows burst requests at once and perSecond on average after that
func NewThrottle(burst int, perSecond float64, logger logger.Logger) *Throttle {
	return &Throttle{
		bucket: ratelimit.NewTokenBucket(float64(burst), perSecond),
		logger: logger,
	}
}

// Middleware returns a middleware function
func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.bucket.Allow() {
			wait := int(math.Ceil(t.bucket.RetryAfter().Seconds()))
			if wait < 1 {
				wait = 1
			}

			t.logger.Warn("Render rate exceeded", "method", r.Method, "path", r.URL.Path, "retryAfter", wait)

			w.Header().Set("Retry-After", strconv.Itoa(wait))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "too many render requests, please try again shortly",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// StatusRecorder wraps a ResponseWriter and remembers the status code written
type StatusRecorder struct {
	http.ResponseWriter
	StatusCode int
}

// NewStatusRecorder creates a StatusRecorder defaulting to 200 OK
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

// WriteHeader captures the status code and passes it to the wrapped ResponseWriter
func (r *StatusRecorder) WriteHeader(code int) {
	r.StatusCode = code
	r.ResponseWriter.WriteHeader(code)
}
