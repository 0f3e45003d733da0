package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-reservation/internal/config"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`[{"id":"e1"}]`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestCachePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)

	// header length pointing past the buffer
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 255, 255, 'x'})
	assert.False(t, ok)
}

func TestCacheKeyDependsOnQuery(t *testing.T) {
	e := echo.New()
	mk := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/events")
		return cacheKey("cache", c)
	}
	a := mk("/v1/events?location=paris")
	b := mk("/v1/events?location=lyon")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, mk("/v1/events?location=paris"))
}

func TestCacheKeyDistinguishesPathParams(t *testing.T) {
	e := echo.New()
	mk := func(target string) string {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		// both requests resolve to the same registered route
		c.SetPath("/v1/events/:id")
		return cacheKey("cache", c)
	}
	a := mk("/v1/events/aaaa")
	b := mk("/v1/events/bbbb")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, mk("/v1/events/aaaa"))
}

func TestCacheDisabledIsPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, mw(next)(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestRateLimitDisabledIsPassthrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, mw(next)(c))
	assert.True(t, called)
}

func TestRateKeyPerIPAndRoute(t *testing.T) {
	e := echo.New()
	mk := func(path string) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath(path)
		return rateKey("rl", c)
	}
	a := mk("/v1/events")
	b := mk("/v1/reservations")
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, ":ip:")
	assert.Equal(t, a, mk("/v1/events"))
}
