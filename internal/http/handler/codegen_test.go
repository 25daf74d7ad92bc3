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

	"pageforge.app/planner/internal/http/handler"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/service"
)

var _ = Describe("CodegenHandler", func() {
	var (
		router *gin.Engine
		svc    *mockCodegenService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockCodegenService{}
		h := handler.NewCodegenHandler(svc)
		router.POST("/code/generate", h.Generate)
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/code/generate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns the generated files", func() {
		svc.generateFn = func(_ context.Context, sessionID, instructions, language string, _ service.ProjectContext) ([]plan.GeneratedFile, error) {
			Expect(sessionID).To(Equal("sess-1"))
			Expect(instructions).To(Equal("make a landing page"))
			Expect(language).To(Equal("html"))
			return []plan.GeneratedFile{{Path: "index.html", Contents: "<html></html>"}}, nil
		}

		w := post(`{"session_id":"sess-1","instructions":"make a landing page","language":"html"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp struct {
			Files []plan.GeneratedFile `json:"files"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Files).To(HaveLen(1))
		Expect(resp.Files[0].Path).To(Equal("index.html"))
	})

	It("returns 400 on missing instructions", func() {
		w := post(`{"language":"html"}`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 500 when generation fails", func() {
		svc.generateFn = func(_ context.Context, _, _, _ string, _ service.ProjectContext) ([]plan.GeneratedFile, error) {
			return nil, fmt.Errorf("%w: files must not be empty", plan.ErrMalformedOutput)
		}

		w := post(`{"instructions":"anything"}`)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["detail"]).To(ContainSubstring("files must not be empty"))
	})
})
