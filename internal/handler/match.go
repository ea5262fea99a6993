package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/diary-stats-service/internal/service"
	"github.com/maxviazov/diary-stats-service/pkg/response"
)

type MatchHandler struct {
	base
	svc service.MatchService
	now func() time.Time
}

func NewMatchHandler(svc service.MatchService, timeout time.Duration) *MatchHandler {
	return &MatchHandler{base: newBase(timeout), svc: svc, now: time.Now}
}

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/users/:owner_id/matches")
	{
		g.GET("/stats", h.stats)
		g.GET("/trend", h.trend)
		g.GET("/career", h.career)
	}
}

func (h *MatchHandler) stats(c *gin.Context) {
	from, to, err := window(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.GetMatchStats(ctx, c.Param("owner_id"), from, to)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

// trend takes an optional ?days=N; zero or absent uses the configured window.
func (h *MatchHandler) trend(c *gin.Context) {
	days := 0
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "days", Message: "must be an integer"}}))
			return
		}
		days = n
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.GetMatchTrend(ctx, c.Param("owner_id"), days, h.now())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *MatchHandler) career(c *gin.Context) {
	from, to, err := window(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.GetCareerStats(ctx, c.Param("owner_id"), from, to)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}
