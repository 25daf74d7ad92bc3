package dto

import (
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/service"
)

type GenerateRequest struct {
	Instructions string                  `json:"instructions" binding:"required,min=1"`
	Language     string                  `json:"language,omitempty"`
	SessionID    string                  `json:"session_id,omitempty"`
	Context      *service.ProjectContext `json:"context,omitempty"`
}

func (r GenerateRequest) ProjectContext() service.ProjectContext {
	if r.Context == nil {
		return service.ProjectContext{}
	}
	return *r.Context
}

type GenerateResponse struct {
	Files []plan.GeneratedFile `json:"files"`
}
