package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/http/response"
	"github.com/yungbote/speechcoach-backend/internal/platform/apierr"
)

// Pinger is anything readiness depends on, such as the Redis session store.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	version string
	checks  map[string]Pinger
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			response.RespondError(c, http.StatusServiceUnavailable, apierr.CodeInternal, fmt.Errorf("%s: %w", name, err))
			return
		}
	}
	response.RespondOK(c, gin.H{"status": "ready", "version": h.version})
}
