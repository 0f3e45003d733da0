package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func runJWT(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := JWTAuth(testSecret)(next)(c)
	return c, rec, err
}

func TestJWTAuthValidToken(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "u1",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	c, rec, err := runJWT(t, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", c.Get("user_id"))
	assert.Equal(t, "ADMIN", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	_, rec, err := runJWT(t, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	raw := signToken(t, "other-secret", jwt.MapClaims{"sub": "u1"})
	_, rec, err := runJWT(t, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, rec, err := runJWT(t, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMissingSubject(t *testing.T) {
	raw := signToken(t, testSecret, jwt.MapClaims{"role": "ADMIN"})
	_, rec, err := runJWT(t, "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireRole("ADMIN")(next)

	t.Run("allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("role", "ADMIN")
		require.NoError(t, mw(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set("role", "PARTICIPANT")
		require.NoError(t, mw(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, mw(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
