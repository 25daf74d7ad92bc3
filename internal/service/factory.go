package service

import (
	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/core/config"
	"pageforge.app/planner/internal/preview"
	"pageforge.app/planner/internal/session"
)

// Services bundles the request-path services for handler wiring.
type Services struct {
	plans    PlanService
	chat     ChatService
	codegen  CodegenService
	previews *preview.Store
}

type ServicesConfig struct {
	Gateway   llm.Gateway
	Sessions  session.Store
	Previews  *preview.Store
	Inference config.InferenceConfig
}

func NewServices(cfg ServicesConfig) *Services {
	return &Services{
		plans:    NewPlanService(cfg.Gateway, cfg.Inference),
		chat:     NewChatService(cfg.Gateway, cfg.Sessions, cfg.Inference),
		codegen:  NewCodegenService(cfg.Gateway, cfg.Previews, cfg.Inference),
		previews: cfg.Previews,
	}
}

func (s *Services) Plans() PlanService       { return s.plans }
func (s *Services) Chat() ChatService        { return s.chat }
func (s *Services) Codegen() CodegenService  { return s.codegen }
func (s *Services) Previews() *preview.Store { return s.previews }
