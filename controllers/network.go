package controllers

import (
	"Wordrush/logger"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Endpoint just pings the server
// @Description Returns a basic message
// @Tags health
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// HealthCheck reports whether one backing service is reachable
type HealthCheck func(ctx context.Context) error

// @Summary Health of the server and its backing services
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,checks=map[string]string}
// @Failure 503 {object} object{status=string,checks=map[string]string}
// @Router /healthz [get]
func Healthz(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.Warnf("[HEALTH] %s unhealthy: %v", name, err)
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "checks": results})
	}
}
