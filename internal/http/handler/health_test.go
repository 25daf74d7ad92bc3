package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/internal/http/handler"
)

var _ = Describe("HealthHandler", func() {
	It("reports the configured model and region", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		h := handler.NewHealthHandler(llm.NewFakeGateway("eu.amazon.nova-pro-v1:0", "eu-north-1"))
		router.GET("/health", h.Check)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["ok"]).To(BeTrue())
		Expect(resp["region"]).To(Equal("eu-north-1"))
		Expect(resp["model"]).To(Equal("eu.amazon.nova-pro-v1:0"))
	})
})
