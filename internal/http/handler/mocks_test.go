package handler_test

import (
	"context"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/service"
)

type mockPlanService struct {
	buildPlanFn func(ctx context.Context, input string, project service.ProjectContext) (plan.Plan, error)
}

func (m *mockPlanService) BuildPlan(ctx context.Context, input string, project service.ProjectContext) (plan.Plan, error) {
	if m.buildPlanFn != nil {
		return m.buildPlanFn(ctx, input, project)
	}
	return plan.Plan{}, nil
}

type mockChatService struct {
	sendFn    func(ctx context.Context, sessionID, userInput string, project service.ProjectContext) (service.ChatResult, error)
	historyFn func(ctx context.Context, sessionID string) ([]llm.Turn, error)
}

func (m *mockChatService) Send(ctx context.Context, sessionID, userInput string, project service.ProjectContext) (service.ChatResult, error) {
	if m.sendFn != nil {
		return m.sendFn(ctx, sessionID, userInput, project)
	}
	return service.ChatResult{}, nil
}

func (m *mockChatService) History(ctx context.Context, sessionID string) ([]llm.Turn, error) {
	if m.historyFn != nil {
		return m.historyFn(ctx, sessionID)
	}
	return nil, nil
}

type mockCodegenService struct {
	generateFn func(ctx context.Context, sessionID, instructions, language string, project service.ProjectContext) ([]plan.GeneratedFile, error)
}

func (m *mockCodegenService) Generate(ctx context.Context, sessionID, instructions, language string, project service.ProjectContext) ([]plan.GeneratedFile, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, sessionID, instructions, language, project)
	}
	return nil, nil
}
