package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pageforge.app/planner/common/id"
	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/common/logger"
	"pageforge.app/planner/core/config"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/session"
)

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	SessionID       string
	AssistantOutput string
	HistoryLen      int
}

// ChatService drives session-based conversations with the model.
type ChatService interface {
	Send(ctx context.Context, sessionID, userInput string, project ProjectContext) (ChatResult, error)
	History(ctx context.Context, sessionID string) ([]llm.Turn, error)
}

type chatService struct {
	gateway   llm.Gateway
	sessions  session.Store
	inference config.InferenceConfig
}

func NewChatService(gateway llm.Gateway, sessions session.Store, inference config.InferenceConfig) ChatService {
	return &chatService{gateway: gateway, sessions: sessions, inference: inference}
}

func (s *chatService) Send(ctx context.Context, sessionID, userInput string, project ProjectContext) (ChatResult, error) {
	if sessionID == "" {
		sessionID = id.NewString()
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "planner.service.chat",
		SessionID: logger.Ptr(sessionID),
	})

	history, err := s.sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return ChatResult{}, fmt.Errorf("loading session: %w", err)
	}

	userTurn := llm.Turn{Role: llm.RoleUser, Text: BuildPayload(userInput, project)}
	turns := append(history, userTurn)

	raw, err := s.gateway.Invoke(ctx, llm.Request{
		System:      chatSystemPrompt,
		Turns:       turns,
		Tool:        plan.EmitPlanTool(),
		Temperature: s.inference.Temperature,
		TopP:        s.inference.TopP,
		MaxTokens:   s.inference.MaxTokens,
	})
	if err != nil {
		return ChatResult{}, fmt.Errorf("invoking chat model: %w", err)
	}

	output, err := s.assistantOutput(ctx, raw)
	if err != nil {
		return ChatResult{}, err
	}

	if err := s.sessions.Append(ctx, sessionID,
		llm.Turn{Role: llm.RoleUser, Text: userInput},
		llm.Turn{Role: llm.RoleAssistant, Text: output},
	); err != nil {
		return ChatResult{}, fmt.Errorf("storing turns: %w", err)
	}

	historyLen, err := s.sessions.Len(ctx, sessionID)
	if err != nil {
		return ChatResult{}, fmt.Errorf("measuring session: %w", err)
	}

	slog.InfoContext(ctx, "chat turn completed", "history_len", historyLen)

	return ChatResult{
		SessionID:       sessionID,
		AssistantOutput: output,
		HistoryLen:      historyLen,
	}, nil
}

// assistantOutput prefers the structured emit_plan reply; a response with no
// tool invocation at all falls back to plain text, which is a valid
// non-error path for chat (unlike planning and codegen).
func (s *chatService) assistantOutput(ctx context.Context, raw []byte) (string, error) {
	inv, err := llm.ExtractToolInvocation(raw, plan.ToolEmitPlan)
	if err != nil {
		if errors.Is(err, llm.ErrNoToolInvocation) {
			if text := llm.ExtractText(raw); text != "" {
				slog.DebugContext(ctx, "chat turn fell back to plain text")
				return text, nil
			}
		}
		return "", err
	}

	contract := plan.Contract{Tool: plan.ToolEmitPlan, RequireMessage: true}
	p, err := contract.ValidatePlan(inv)
	if err != nil {
		return "", err
	}
	return p.AssistantMessage, nil
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]llm.Turn, error) {
	return s.sessions.Get(ctx, sessionID)
}
