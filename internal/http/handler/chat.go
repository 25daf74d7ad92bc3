package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pageforge.app/planner/internal/http/dto"
	"pageforge.app/planner/internal/service"
)

type ChatHandler struct {
	chat service.ChatService
}

func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Send runs one chat turn, creating a session when none is supplied.
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.ChatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	res, err := h.chat.Send(c.Request.Context(), req.SessionID, req.UserInput, req.ProjectContext())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatSendResponse(res))
}

// History returns the raw stored turns for a session. Debug aid.
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Param("session_id")

	turns, err := h.chat.History(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"turns":      turns,
	})
}
