package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/internal/http/handler"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/service"
)

var _ = Describe("InvocationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockPlanService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockPlanService{}
		h := handler.NewInvocationHandler(svc)
		router.POST("/invocations", h.Create)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/invocations", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the plan on success", func() {
		svc.buildPlanFn = func(_ context.Context, input string, _ service.ProjectContext) (plan.Plan, error) {
			Expect(input).To(Equal("add a hello page"))
			return plan.Plan{
				AssistantMessage: "done",
				Actions: []plan.Action{
					{Type: plan.ActionTypeCreateFile, Path: "app/hello/page.tsx", Contents: "export {}"},
				},
			}, nil
		}

		w := post(`{"input":"add a hello page"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp struct {
			AssistantMessage string        `json:"assistant_message"`
			Actions          []plan.Action `json:"actions"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.AssistantMessage).To(Equal("done"))
		Expect(resp.Actions).To(HaveLen(1))
		Expect(resp.Actions[0].Path).To(Equal("app/hello/page.tsx"))
	})

	It("forwards the project context", func() {
		var got service.ProjectContext
		svc.buildPlanFn = func(_ context.Context, _ string, project service.ProjectContext) (plan.Plan, error) {
			got = project
			return plan.Plan{AssistantMessage: "ok", Actions: []plan.Action{}}, nil
		}

		w := post(`{"input":"task","context":{"tree":["app/page.tsx"],"snippets":{"a.ts":"x"}}}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(got.Tree).To(Equal([]string{"app/page.tsx"}))
		Expect(got.Snippets).To(HaveKey("a.ts"))
	})

	It("returns 400 with a detail message on a missing input", func() {
		w := post(`{"context":{}}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(HaveKey("detail"))
	})

	It("returns 400 on a malformed body", func() {
		w := post(`{`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 500 with a detail message when the model misbehaves", func() {
		svc.buildPlanFn = func(_ context.Context, _ string, _ service.ProjectContext) (plan.Plan, error) {
			return plan.Plan{}, fmt.Errorf("%w: raw response excerpt", llm.ErrNoToolInvocation)
		}

		w := post(`{"input":"task"}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["detail"]).To(ContainSubstring("did not invoke a tool"))
	})
})
