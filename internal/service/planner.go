package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/common/logger"
	"pageforge.app/planner/core/config"
	"pageforge.app/planner/internal/plan"
)

// PlanService turns a free-form instruction into a validated Plan.
type PlanService interface {
	BuildPlan(ctx context.Context, input string, project ProjectContext) (plan.Plan, error)
}

type planService struct {
	gateway   llm.Gateway
	inference config.InferenceConfig
}

func NewPlanService(gateway llm.Gateway, inference config.InferenceConfig) PlanService {
	return &planService{gateway: gateway, inference: inference}
}

func (s *planService) BuildPlan(ctx context.Context, input string, project ProjectContext) (plan.Plan, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "planner.service.plan",
		Tool:      logger.Ptr(plan.ToolEmitPlan),
	})

	start := time.Now()
	raw, err := s.gateway.Invoke(ctx, llm.Request{
		System:      plannerSystemPrompt,
		Turns:       []llm.Turn{{Role: llm.RoleUser, Text: BuildPayload(input, project)}},
		Tool:        plan.EmitPlanTool(),
		Temperature: s.inference.Temperature,
		TopP:        s.inference.TopP,
		MaxTokens:   s.inference.MaxTokens,
	})
	if err != nil {
		return plan.Plan{}, fmt.Errorf("invoking planner model: %w", err)
	}

	inv, err := llm.ExtractToolInvocation(raw, plan.ToolEmitPlan)
	if err != nil {
		return plan.Plan{}, err
	}

	contract := plan.Contract{Tool: plan.ToolEmitPlan, RequireMessage: true}
	p, err := contract.ValidatePlan(inv)
	if err != nil {
		return plan.Plan{}, err
	}

	slog.InfoContext(ctx, "plan built",
		"action_count", len(p.Actions),
		"duration_ms", time.Since(start).Milliseconds(),
		"input", logger.Truncate(input, 200))

	return p, nil
}
