package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getcarekorea/content-engine/internal/generation"
	"github.com/getcarekorea/content-engine/internal/http/response"
	"github.com/getcarekorea/content-engine/internal/platform/logger"
)

type GenerateHandler struct {
	log     *logger.Logger
	service *generation.Service
}

func NewGenerateHandler(log *logger.Logger, service *generation.Service) *GenerateHandler {
	return &GenerateHandler{log: log.With("handler", "GenerateHandler"), service: service}
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var in generation.GenerateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	res, err := h.service.Generate(c.Request.Context(), in)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, res)
}
