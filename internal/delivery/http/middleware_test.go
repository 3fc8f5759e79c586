package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupLimitedRouter(perMinute int) *gin.Engine {
	router := gin.New()
	router.Use(RateLimitMiddleware(perMinute))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within the burst", func(t *testing.T) {
		router := setupLimitedRouter(10)

		for i := 0; i < 10; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rejects requests beyond the burst", func(t *testing.T) {
		router := setupLimitedRouter(2)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			router.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, http.StatusOK, codes[0])
		assert.Equal(t, http.StatusOK, codes[1])
		assert.Equal(t, http.StatusTooManyRequests, codes[2])
	})

	t.Run("limits per client address", func(t *testing.T) {
		router := setupLimitedRouter(1)

		first := httptest.NewRequest(http.MethodGet, "/ping", nil)
		first.RemoteAddr = "10.0.0.1:1234"
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, first)
		assert.Equal(t, http.StatusOK, w1.Code)

		again := httptest.NewRequest(http.MethodGet, "/ping", nil)
		again.RemoteAddr = "10.0.0.1:1234"
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, again)
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)

		other := httptest.NewRequest(http.MethodGet, "/ping", nil)
		other.RemoteAddr = "10.0.0.2:1234"
		w3 := httptest.NewRecorder()
		router.ServeHTTP(w3, other)
		assert.Equal(t, http.StatusOK, w3.Code)
	})
}
