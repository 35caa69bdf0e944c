package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func TestThrottle_RejectsBeyondBurst(t *testing.T) {
	throttle := NewThrottle(2, 0.001, logger.NewNop())
	handler := throttle.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart.png", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart.png", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := NewStatusRecorder(rec)
	assert.Equal(t, http.StatusOK, sr.StatusCode)

	sr.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, sr.StatusCode)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
