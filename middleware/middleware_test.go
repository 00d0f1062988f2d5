package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier("secret", time.Hour)
	now := time.Now()

	token, err := v.Generate("user-1", now)
	require.NoError(t, err)
	userID, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	expired, err := v.Generate("user-1", now.Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other, err := NewTokenVerifier("other", time.Hour).Generate("user-1", now)
	require.NoError(t, err)
	_, err = v.Verify(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, userClaims{UserID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Verify(none)
	assert.Error(t, err)
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(0.01, 2)
	a := rl.getLimiter("a")
	assert.True(t, a.Allow())
	assert.True(t, a.Allow())
	assert.False(t, a.Allow())
	assert.Same(t, a, rl.getLimiter("a"))
	assert.True(t, rl.getLimiter("b").Allow(), "buckets are per client")

	assert.Equal(t, 0, rl.Cleanup(time.Hour))
	assert.Equal(t, 2, rl.Cleanup(-time.Second))
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen any
	r.GET("/", func(c *gin.Context) {
		seen = c.Request.Context().Value(RequestIDKey)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-Id")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get("X-Request-Id"))
}
