package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/getcarekorea/content-engine/internal/http/response"
	"github.com/getcarekorea/content-engine/internal/performance"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

const defaultCollectionDays = 28

type PerformanceHandler struct {
	log       *logger.Logger
	collector *performance.Collector
	reporter  *performance.Reporter
}

func NewPerformanceHandler(log *logger.Logger, collector *performance.Collector, reporter *performance.Reporter) *PerformanceHandler {
	return &PerformanceHandler{
		log:       log.With("handler", "PerformanceHandler"),
		collector: collector,
		reporter:  reporter,
	}
}

type collectRequest struct {
	DaysAgo int `json:"daysAgo"`
}

func (r *collectRequest) days() int {
	if r.DaysAgo <= 0 {
		return defaultCollectionDays
	}
	return r.DaysAgo
}

// CollectAll runs a synchronous collection sweep over all published
// articles. Long sweeps belong on the scheduled workflow; this endpoint
// exists for on-demand refreshes from the admin UI.
func (h *PerformanceHandler) CollectAll(c *gin.Context) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	summary := h.collector.CollectAll(c.Request.Context(), req.days())
	response.RespondOK(c, summary)
}

func (h *PerformanceHandler) CollectItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("contentItemID"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("contentItemID must be a uuid"))
		return
	}
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	rec, err := h.collector.CollectForItem(c.Request.Context(), itemID, req.days())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	if rec == nil {
		response.RespondError(c, http.StatusNotFound, "not_found",
			fmt.Errorf("no performance data for item %s", itemID))
		return
	}
	response.RespondOK(c, rec)
}

func (h *PerformanceHandler) Summary(c *gin.Context) {
	overview, err := h.reporter.Overview(c.Request.Context(), c.Query("locale"), c.Query("category"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, overview)
}
