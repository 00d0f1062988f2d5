package middleware

import (
	"Wordrush/logger"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	PlayerIDKey = "player_id"
	UserIDKey   = "user_id"
)

var (
	ErrInvalidSigningAlg = errors.New("unexpected signing method")
	ErrExpiredToken      = errors.New("token expired")
	ErrInvalidToken      = errors.New("invalid token")
)

type userClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenVerifier checks bearer tokens issued by the account service. Accounts
// live outside this server, only the user id is read from the token
type TokenVerifier struct {
	secretKey []byte
	maxAge    time.Duration
}

func NewTokenVerifier(secretKey string, maxAge time.Duration) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secretKey), maxAge: maxAge}
}

// Generate signs a token for userID. Used by tests and local tooling
func (v *TokenVerifier) Generate(userID string, now time.Time) (string, error) {
	claims := userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.maxAge)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(v.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &userClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningAlg
		}
		return v.secretKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSigningAlg):
			return "", err
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpiredToken
		default:
			return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
		}
	}

	if claims, ok := token.Claims.(*userClaims); ok && token.Valid && claims.UserID != "" {
		return claims.UserID, nil
	}
	return "", ErrInvalidToken
}

// Identity gives every client a stable anonymous player id kept in the
// session cookie. A valid bearer token adds the authenticated user id; with
// a nil verifier the Authorization header is ignored
func Identity(verifier *TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		playerID, _ := session.Get(PlayerIDKey).(string)
		if playerID == "" {
			playerID = uuid.NewString()
			session.Set(PlayerIDKey, playerID)
			if err := session.Save(); err != nil {
				logger.Errorf("[SESSION] failed to save session: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session", "code": "session_error"})
				return
			}
		}
		c.Set(PlayerIDKey, playerID)

		header := c.GetHeader("Authorization")
		if verifier != nil && strings.HasPrefix(header, "Bearer ") {
			userID, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Debugf("[AUTH] rejected bearer token: %v", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "unauthorized"})
				return
			}
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

func PlayerID(c *gin.Context) string {
	return c.GetString(PlayerIDKey)
}

// UserID is nil for anonymous players
func UserID(c *gin.Context) *string {
	id := c.GetString(UserIDKey)
	if id == "" {
		return nil
	}
	return &id
}
