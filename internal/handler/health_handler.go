package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks one backing service. A nil Pinger means the service is not
// configured, which does not make the app unhealthy.
type Pinger func(ctx context.Context) error

type Check struct {
	Status  string `json:"status"` // "pass", "fail" or "disabled"
	Latency string `json:"latency,omitempty"`
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	results := make(map[string]Check, len(h.checks))
	healthy := true

	for name, ping := range h.checks {
		if ping == nil {
			results[name] = Check{Status: "disabled"}
			continue
		}

		start := time.Now()
		if err := ping(ctx); err != nil {
			results[name] = Check{Status: "fail"}
			healthy = false
			continue
		}
		results[name] = Check{Status: "pass", Latency: time.Since(start).String()}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": results})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": results})
}
