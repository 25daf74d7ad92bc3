package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pageforge.app/planner/common/llm"
	"pageforge.app/planner/internal/http/handler"
	"pageforge.app/planner/internal/service"
	"pageforge.app/planner/internal/session"
)

var _ = Describe("ChatHandler", func() {
	var (
		router *gin.Engine
		svc    *mockChatService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockChatService{}
		h := handler.NewChatHandler(svc)
		router.POST("/chat/send", h.Send)
		router.GET("/chat/history/:session_id", h.History)
	})

	Describe("Send", func() {
		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/chat/send", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("returns the session, output and history length", func() {
			svc.sendFn = func(_ context.Context, sessionID, userInput string, _ service.ProjectContext) (service.ChatResult, error) {
				Expect(sessionID).To(Equal("chat-1"))
				Expect(userInput).To(Equal("hello"))
				return service.ChatResult{SessionID: "chat-1", AssistantOutput: "hi!", HistoryLen: 2}, nil
			}

			w := post(`{"session_id":"chat-1","user_input":"hello"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["session_id"]).To(Equal("chat-1"))
			Expect(resp["assistant_output"]).To(Equal("hi!"))
			Expect(resp["history_len"]).To(BeEquivalentTo(2))
		})

		It("accepts a request without a session id", func() {
			svc.sendFn = func(_ context.Context, sessionID, _ string, _ service.ProjectContext) (service.ChatResult, error) {
				Expect(sessionID).To(BeEmpty())
				return service.ChatResult{SessionID: "generated", AssistantOutput: "hi", HistoryLen: 2}, nil
			}

			w := post(`{"user_input":"hello"}`)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 400 on a missing user_input", func() {
			w := post(`{"session_id":"chat-1"}`)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 when the exchange fails", func() {
			svc.sendFn = func(_ context.Context, _, _ string, _ service.ProjectContext) (service.ChatResult, error) {
				return service.ChatResult{}, llm.ErrTransport
			}

			w := post(`{"user_input":"hello"}`)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("History", func() {
		It("returns the stored turns", func() {
			svc.historyFn = func(_ context.Context, sessionID string) ([]llm.Turn, error) {
				Expect(sessionID).To(Equal("chat-1"))
				return []llm.Turn{
					{Role: llm.RoleUser, Text: "q"},
					{Role: llm.RoleAssistant, Text: "a"},
				}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/chat/history/chat-1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp struct {
				SessionID string     `json:"session_id"`
				Turns     []llm.Turn `json:"turns"`
			}
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.SessionID).To(Equal("chat-1"))
			Expect(resp.Turns).To(HaveLen(2))
			Expect(resp.Turns[1].Role).To(Equal(llm.RoleAssistant))
		})

		It("returns 404 for an unknown session", func() {
			svc.historyFn = func(_ context.Context, _ string) ([]llm.Turn, error) {
				return nil, session.ErrNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/chat/history/missing", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
