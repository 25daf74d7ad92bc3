package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pageforge.app/planner/internal/http/dto"
	"pageforge.app/planner/internal/service"
)

type InvocationHandler struct {
	plans service.PlanService
}

func NewInvocationHandler(plans service.PlanService) *InvocationHandler {
	return &InvocationHandler{plans: plans}
}

// Create builds a structured plan for the submitted task.
func (h *InvocationHandler) Create(c *gin.Context) {
	var req dto.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	p, err := h.plans.BuildPlan(c.Request.Context(), req.Input, req.ProjectContext())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
