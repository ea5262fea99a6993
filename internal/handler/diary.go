package handler

import (
	"bytes"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/diary-stats-service/internal/export"
	"github.com/maxviazov/diary-stats-service/internal/model"
	"github.com/maxviazov/diary-stats-service/internal/service"
	"github.com/maxviazov/diary-stats-service/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DiaryHandler struct {
	base
	svc service.DiaryService
}

func NewDiaryHandler(svc service.DiaryService, timeout time.Duration) *DiaryHandler {
	return &DiaryHandler{base: newBase(timeout), svc: svc}
}

func (h *DiaryHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/users/:owner_id/diary")
	{
		g.POST("", h.record)
		g.GET("/stats", h.stats)
		g.GET("/chart", h.chart)
		g.GET("/chart.xlsx", h.chartWorkbook)
	}
}

func (h *DiaryHandler) record(c *gin.Context) {
	var rec model.ActivityRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		response.WriteError(c, bodyError(err))
		return
	}
	// the path owns the record
	rec.OwnerID = c.Param("owner_id")

	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.RecordActivity(ctx, rec)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, out)
}

func (h *DiaryHandler) stats(c *gin.Context) {
	from, to, err := window(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	out, err := h.svc.GetDiaryStats(ctx, service.DiaryStatsQuery{
		OwnerID:        c.Param("owner_id"),
		From:           from,
		To:             to,
		Mode:           strings.ToLower(strings.TrimSpace(c.Query("mode"))),
		ExcludeSeasons: service.ParseSeasons(c.Query("exclude_seasons")),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *DiaryHandler) loadChart(c *gin.Context) (service.ChartQuery, model.CalendarSeries, bool) {
	from, to, err := window(c)
	if err != nil {
		response.WriteError(c, err)
		return service.ChartQuery{}, nil, false
	}
	q := service.ChartQuery{
		OwnerID: c.Param("owner_id"),
		From:    from,
		To:      to,
		Metric:  strings.ToLower(strings.TrimSpace(c.DefaultQuery("metric", service.MetricHours))),
		Range:   strings.TrimSpace(c.Query("range")),
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	series, err := h.svc.GetDiaryChart(ctx, q)
	if err != nil {
		response.WriteError(c, err)
		return q, nil, false
	}
	return q, series, true
}

func (h *DiaryHandler) chart(c *gin.Context) {
	if _, series, ok := h.loadChart(c); ok {
		response.WriteData(c, http.StatusOK, series)
	}
}

func (h *DiaryHandler) chartWorkbook(c *gin.Context) {
	q, series, ok := h.loadChart(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteChartWorkbook(&buf, q.Metric, series); err != nil {
		response.WriteError(c, err)
		return
	}
	name := export.Filename(strings.TrimSpace(q.OwnerID), q.Metric, series)
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
