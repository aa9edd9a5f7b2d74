package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// HealthHandler serves liveness, readiness and the diagnostics snapshot.
type HealthHandler struct {
	client  *backend.Client
	metrics *service.MetricsService
	started time.Time
	version string
}

// NewHealthHandler constructs the health handler.
func NewHealthHandler(client *backend.Client, metrics *service.MetricsService, version string) *HealthHandler {
	return &HealthHandler{
		client:  client,
		metrics: metrics,
		started: time.Now().UTC(),
		version: version,
	}
}

// Register mounts the probe routes onto the group.
func (h *HealthHandler) Register(group *gin.RouterGroup) {
	group.GET("/health", h.Health)
	group.GET("/ready", h.Ready)
	group.GET("/diagnostics", h.Diagnostics)
}

// Health reports process liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	}, nil)
}

// Ready reports whether the institute backend is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := h.client.Ping(c.Request.Context()); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackendUnavailable.Code, http.StatusServiceUnavailable, appErrors.ErrBackendUnavailable.Message))
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ready"}, nil)
}

// Diagnostics returns coarse gateway counters for operators.
func (h *HealthHandler) Diagnostics(c *gin.Context) {
	var counters map[string]uint64
	if h.metrics != nil {
		counters = h.metrics.Snapshot()
	}
	response.JSON(c, http.StatusOK, gin.H{
		"version":  h.version,
		"uptime":   time.Since(h.started).Round(time.Second).String(),
		"backend":  h.client.BaseURL(),
		"counters": counters,
	}, nil)
}
