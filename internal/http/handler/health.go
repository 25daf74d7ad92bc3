package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pageforge.app/planner/common/llm"
)

type HealthHandler struct {
	gateway llm.Gateway
}

func NewHealthHandler(gateway llm.Gateway) *HealthHandler {
	return &HealthHandler{gateway: gateway}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"region": h.gateway.Region(),
		"model":  h.gateway.ModelID(),
	})
}
