package dto

import "pageforge.app/planner/internal/service"

type InvokeRequest struct {
	Input   string                  `json:"input" binding:"required,min=1"`
	Context *service.ProjectContext `json:"context,omitempty"`
}

func (r InvokeRequest) ProjectContext() service.ProjectContext {
	if r.Context == nil {
		return service.ProjectContext{}
	}
	return *r.Context
}
