package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/diary-stats-service/internal/service"
	"github.com/maxviazov/diary-stats-service/pkg/response"
)

type SeasonHandler struct {
	base
	svc service.SeasonService
}

func NewSeasonHandler(svc service.SeasonService, timeout time.Duration) *SeasonHandler {
	return &SeasonHandler{base: newBase(timeout), svc: svc}
}

func (h *SeasonHandler) Register(r *gin.RouterGroup) {
	r.POST("/users/:owner_id/seasons/:season/close", h.closeOne)
	r.POST("/seasons/:season/close", h.closeAll)
}

func (h *SeasonHandler) closeOne(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.CloseSeason(ctx, c.Param("owner_id"), c.Param("season"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

type closeAllResponse struct {
	Season string `json:"season"`
	Closed int    `json:"closed"`
}

// closeAll reports partial progress as 500 with the error envelope; owners
// closed before the failure stay closed.
func (h *SeasonHandler) closeAll(c *gin.Context) {
	season := c.Param("season")
	ctx, cancel := h.ctx(c)
	defer cancel()
	n, err := h.svc.CloseSeasonForAll(ctx, season)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, closeAllResponse{Season: season, Closed: n})
}
