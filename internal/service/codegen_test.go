package service_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/core/config"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/preview"
	"pageforge.app/planner/internal/service"
)

var _ = Describe("CodegenService", func() {
	var (
		gateway  *mockGateway
		previews *preview.Store
		svc      service.CodegenService
		ctx      context.Context
	)

	inference := config.InferenceConfig{Temperature: 0.2, TopP: 0.9, MaxTokens: 4096}

	BeforeEach(func() {
		ctx = context.Background()
		gateway = &mockGateway{}
		previews = preview.NewStore()
		svc = service.NewCodegenService(gateway, previews, inference)
	})

	It("returns generated files and records an HTML preview", func() {
		gateway.invokeFn = func(_ context.Context, _ llm.Request) (json.RawMessage, error) {
			return toolUseResponse("emit_files", `{"files":[
				{"path":"style.css","contents":"body{}"},
				{"path":"index.html","contents":"<html><body>hi</body></html>"}
			]}`), nil
		}

		files, err := svc.Generate(ctx, "sess-1", "make a landing page", "", service.ProjectContext{})

		Expect(err).NotTo(HaveOccurred())
		Expect(files).To(HaveLen(2))

		f, ok := previews.ForSession("sess-1")
		Expect(ok).To(BeTrue())
		Expect(f.Path).To(Equal("index.html"))
	})

	It("appends the target language to the task", func() {
		gateway.invokeFn = func(_ context.Context, _ llm.Request) (json.RawMessage, error) {
			return toolUseResponse("emit_files", `{"files":[{"path":"main.py","contents":"print(1)"}]}`), nil
		}

		_, err := svc.Generate(ctx, "", "write a script", "python", service.ProjectContext{})

		Expect(err).NotTo(HaveOccurred())
		Expect(gateway.requests[0].Turns[0].Text).To(ContainSubstring("Target language: python"))
		Expect(gateway.requests[0].Tool.Name).To(Equal(plan.ToolEmitFiles))
	})

	It("rejects a response with an empty files array", func() {
		gateway.invokeFn = func(_ context.Context, _ llm.Request) (json.RawMessage, error) {
			return toolUseResponse("emit_files", `{"files":[]}`), nil
		}

		_, err := svc.Generate(ctx, "", "anything", "", service.ProjectContext{})

		Expect(errors.Is(err, plan.ErrMalformedOutput)).To(BeTrue())
	})

	It("does not record a preview when generation fails", func() {
		gateway.invokeFn = func(_ context.Context, _ llm.Request) (json.RawMessage, error) {
			return textResponse("sorry"), nil
		}

		_, err := svc.Generate(ctx, "sess-1", "anything", "", service.ProjectContext{})

		Expect(errors.Is(err, llm.ErrNoToolInvocation)).To(BeTrue())
		_, ok := previews.Latest()
		Expect(ok).To(BeFalse())
	})

	Describe("with the fake gateway", func() {
		It("serves a previewable page end to end", func() {
			svc = service.NewCodegenService(llm.NewFakeGateway("fake-model", "eu-north-1"), previews, inference)

			files, err := svc.Generate(ctx, "sess-1", "make a page", "", service.ProjectContext{})

			Expect(err).NotTo(HaveOccurred())
			Expect(files).NotTo(BeEmpty())

			f, ok := previews.ForSession("sess-1")
			Expect(ok).To(BeTrue())
			Expect(preview.Render(f, true)).To(ContainSubstring("display:none"))
		})
	})
})
