package service

import (
	"context"
	"fmt"
	"log/slog"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/common/logger"
	"pageforge.app/planner/core/config"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/preview"
)

// CodegenService generates standalone files and records a browser preview of
// the result.
type CodegenService interface {
	Generate(ctx context.Context, sessionID, instructions, language string, project ProjectContext) ([]plan.GeneratedFile, error)
}

type codegenService struct {
	gateway   llm.Gateway
	previews  *preview.Store
	inference config.InferenceConfig
}

func NewCodegenService(gateway llm.Gateway, previews *preview.Store, inference config.InferenceConfig) CodegenService {
	return &codegenService{gateway: gateway, previews: previews, inference: inference}
}

func (s *codegenService) Generate(ctx context.Context, sessionID, instructions, language string, project ProjectContext) ([]plan.GeneratedFile, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "planner.service.codegen",
		Tool:      logger.Ptr(plan.ToolEmitFiles),
	})

	task := instructions
	if language != "" {
		task = fmt.Sprintf("%s\n\nTarget language: %s", instructions, language)
	}

	raw, err := s.gateway.Invoke(ctx, llm.Request{
		System:      codegenSystemPrompt,
		Turns:       []llm.Turn{{Role: llm.RoleUser, Text: BuildPayload(task, project)}},
		Tool:        plan.EmitFilesTool(),
		Temperature: s.inference.Temperature,
		TopP:        s.inference.TopP,
		MaxTokens:   s.inference.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("invoking codegen model: %w", err)
	}

	inv, err := llm.ExtractToolInvocation(raw, plan.ToolEmitFiles)
	if err != nil {
		return nil, err
	}

	contract := plan.Contract{Tool: plan.ToolEmitFiles}
	files, err := contract.ValidateFiles(inv)
	if err != nil {
		return nil, err
	}

	if f, ok := preview.Pick(files); ok {
		s.previews.Set(sessionID, f)
		slog.DebugContext(ctx, "preview recorded", "path", f.Path)
	}

	slog.InfoContext(ctx, "files generated", "file_count", len(files))
	return files, nil
}
