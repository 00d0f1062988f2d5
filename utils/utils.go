package utils

import (
	"Wordrush/logger"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors attached with c.Error into a JSON body when the
// handler did not already write one
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last()
		logger.Errorf("[HTTP-ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "internal"})
	}
}

// Room codes skip characters that are easy to misread (0/O, 1/I/L)
const codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const RoomCodeLength = 4

func GenerateRoomCode() string {
	b := make([]byte, RoomCodeLength)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// NormalizeRoomCode upper-cases and trims a code typed by a player
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		logger.Warnf("Invalid duration for %s: %v, using default %v", key, err, fallback)
		return fallback
	}
	return d
}

func GetEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		logger.Warnf("Invalid int for %s: %v, using default %d", key, err, fallback)
		return fallback
	}
	return i
}

func GetEnvFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		logger.Warnf("Invalid float for %s: %v, using default %v", key, err, fallback)
		return fallback
	}
	return f
}

func GetEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		logger.Warnf("Invalid bool for %s: %v, using default %v", key, err, fallback)
		return fallback
	}
	return b
}
