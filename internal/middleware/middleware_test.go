package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS_SetsHeadersOnResponse(t *testing.T) {
	router := gin.New()
	router.POST("/contact", CORS(CORSConfig{}, http.MethodPost, http.MethodOptions), func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	router := gin.New()
	handlerCalled := false
	router.OPTIONS("/contact", CORS(CORSConfig{}, http.MethodPost, http.MethodOptions), func(c *gin.Context) {
		handlerCalled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	router.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExplicitOrigins(t *testing.T) {
	cfg := CORSConfig{AllowedOrigins: []string{"https://msquarelighting.in/"}}
	router := gin.New()
	router.GET("/health", CORS(cfg, http.MethodGet, http.MethodOptions), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		origin string
		want   string
	}{
		{"https://msquarelighting.in", "https://msquarelighting.in"},
		{"https://evil.example", ""},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", tt.origin)
		router.ServeHTTP(w, req)

		assert.Equal(t, tt.want, w.Header().Get("Access-Control-Allow-Origin"), tt.origin)
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	}
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Every(time.Hour), 2)
	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.JSONEq(t, `{"success":false,"message":"Too many requests. Please try again later."}`, w.Body.String())
		}
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, 1, rl.Visitors())
}

func TestRateLimiter_SkipsPreflight(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Every(time.Hour), 1)
	router := gin.New()
	router.Use(rl.Middleware())
	router.OPTIONS("/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/contact", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 0, rl.Visitors())
}

func TestRateLimiter_SweepDropsRefilledBuckets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, rate.Every(time.Millisecond), 1)
	rl.getVisitor("192.0.2.1")
	require.Equal(t, 1, rl.Visitors())

	rl.sweep()
	assert.Equal(t, 0, rl.Visitors())
}

func TestBodySizeLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(BodySizeLimitMiddleware(16))
	router.POST("/contact", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"message":"`+strings.Repeat("x", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"a":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(SecurityHeadersMiddleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	var seen string
	router.GET("/health", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "edge-42")
	router.ServeHTTP(w, req)
	assert.Equal(t, "edge-42", seen)
	assert.Equal(t, "edge-42", w.Header().Get(RequestIDHeader))
}

func TestObservabilityMiddleware_PassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware(), ObservabilityMiddleware())
	router.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health?token=secret", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
