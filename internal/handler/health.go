package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout caps the store ping so a hung pool fails the probe
// instead of hanging it.
const readinessTimeout = 2 * time.Second

// Pinger is the minimal contract needed from storage to check readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	store   Pinger
	started time.Time
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store, started: time.Now()}
}

type probeResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime,omitempty"`
	StoreTook string `json:"store_took,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Liveness only says the process serves HTTP.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, probeResponse{
		Status: "alive",
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
	})
}

// Readiness succeeds once the activity store answers a ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	resp := probeResponse{Status: "ready", StoreTook: time.Since(start).String()}
	if err != nil {
		resp.Status, resp.Error = "unavailable", err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
