package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pageforge.app/planner/internal/http/dto"
	"pageforge.app/planner/internal/service"
)

type CodegenHandler struct {
	codegen service.CodegenService
}

func NewCodegenHandler(codegen service.CodegenService) *CodegenHandler {
	return &CodegenHandler{codegen: codegen}
}

// Generate asks the model for standalone files and records a preview.
func (h *CodegenHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	files, err := h.codegen.Generate(c.Request.Context(), req.SessionID, req.Instructions, req.Language, req.ProjectContext())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateResponse{Files: files})
}
