package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vietjobs-search/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	e.GET("/jobs-ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return e
}

func TestCORSPreflightAllowsAnyOriginWithoutAuth(t *testing.T) {
	e := newEcho(CORSConfig())

	req := httptest.NewRequest(http.MethodOptions, "/jobs-ping", nil)
	req.Header.Set(echo.HeaderOrigin, "https://vieclam.example.vn")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotContains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), "Authorization")
}

func TestRateLimiterThrottlesPerClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.RateLimit.Rate = 1
	cfg.RateLimit.Burst = 1
	cfg.RateLimit.TTL = time.Minute

	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	e := newEcho(rl.Middleware())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/jobs-ping", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}
