package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/service"
	"github.com/maxviazov/diary-stats-service/pkg/response"
)

type ProfileHandler struct {
	base
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService, timeout time.Duration) *ProfileHandler {
	return &ProfileHandler{base: newBase(timeout), svc: svc}
}

func (h *ProfileHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/users/:owner_id/profile")
	{
		g.GET("", h.get)
		g.PUT("", h.put)
	}
}

type profileBody struct {
	ProfileType model.ProfileType `json:"profile_type"`
}

func (h *ProfileHandler) get(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	pt, err := h.svc.GetProfileType(ctx, c.Param("owner_id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, profileBody{ProfileType: pt})
}

func (h *ProfileHandler) put(c *gin.Context) {
	var req profileBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, bodyError(err))
		return
	}
	req.ProfileType = model.ProfileType(strings.ToLower(strings.TrimSpace(string(req.ProfileType))))

	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.svc.SetProfileType(ctx, c.Param("owner_id"), req.ProfileType); err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, req)
}
