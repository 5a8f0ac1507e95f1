package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/zoo-api/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestSecureHeaders(t *testing.T) {
	engine := gin.New()
	engine.Use(SecureHeaders())
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"pong": true})
	})

	w := serve(engine, http.MethodGet, "/ping")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"pong":true}`, w.Body.String())
	for header, want := range map[string]string{
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"Referrer-Policy":                   "no-referrer",
		"Strict-Transport-Security":         "max-age=15552000; includeSubDomains",
		"X-Content-Type-Options":            "nosniff",
		"X-DNS-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Frame-Options":                   "SAMEORIGIN",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-XSS-Protection":                  "0",
	} {
		assert.Equal(t, want, w.Header().Get(header), header)
	}
	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "object-src 'none'")
	assert.Contains(t, csp, "frame-ancestors 'self'")
	assert.Empty(t, w.Header().Get("Cross-Origin-Embedder-Policy"))
	assert.Empty(t, w.Header().Get("X-Powered-By"))
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	w := serve(engine, http.MethodGet, "/id")
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	req, _ := http.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	engine := gin.New()
	engine.Use(ErrorHandler(zap.NewNop()))
	engine.GET("/bad", func(c *gin.Context) {
		_ = c.Error(domain.ValidationError(domain.MsgNameRequired))
	})
	engine.GET("/missing", func(c *gin.Context) {
		_ = c.Error(domain.ZooNotFound("3"))
	})
	engine.GET("/broken", func(c *gin.Context) {
		_ = c.Error(domain.StoreError(errors.New("no such table: zoos")))
	})
	engine.GET("/unknown", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})

	w := serve(engine, http.MethodGet, "/bad")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Please include name inside the body of the request"}`, w.Body.String())

	w = serve(engine, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Zoo with ID 3 does not exist."}`, w.Body.String())

	w = serve(engine, http.MethodGet, "/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"no such table: zoos"}`, w.Body.String())

	w = serve(engine, http.MethodGet, "/unknown")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"boom"}`, w.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, zap.NewNop())

	engine := gin.New()
	engine.Use(rl.Middleware())
	engine.GET("/zoos", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/zoos").Code)

	w := serve(engine, http.MethodGet, "/zoos")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"rate limit exceeded"}`, w.Body.String())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(0.001, 1, zap.NewNop())
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }
	rl.lastSweep = clock

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))
	assert.Equal(t, 2, rl.Len())

	clock = clock.Add(5 * time.Minute)
	assert.False(t, rl.allow("10.0.0.2"))
	assert.Equal(t, 2, rl.Len())

	// 10.0.0.1 has been quiet for a full window, 10.0.0.2 for half of one
	clock = clock.Add(6 * time.Minute)
	assert.True(t, rl.allow("10.0.0.3"))
	assert.Equal(t, 2, rl.Len())
	assert.Contains(t, rl.clients, "10.0.0.2")
	assert.NotContains(t, rl.clients, "10.0.0.1")

	// an evicted client starts over with a full bucket
	assert.True(t, rl.allow("10.0.0.1"))
}
