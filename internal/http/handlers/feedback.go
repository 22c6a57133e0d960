package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getcarekorea/content-engine/internal/http/middleware"
	"github.com/getcarekorea/content-engine/internal/http/response"
	"github.com/getcarekorea/content-engine/internal/learning"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type FeedbackHandler struct {
	log       *logger.Logger
	processor *learning.Processor
}

func NewFeedbackHandler(log *logger.Logger, processor *learning.Processor) *FeedbackHandler {
	return &FeedbackHandler{log: log.With("handler", "FeedbackHandler"), processor: processor}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var in learning.FeedbackInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	in.AdminID = middleware.AdminID(c)

	res, err := h.processor.Process(c.Request.Context(), in)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondData(c, res)
}
