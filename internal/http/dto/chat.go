package dto

import "pageforge.app/planner/internal/service"

type ChatSendRequest struct {
	SessionID string                  `json:"session_id,omitempty"`
	UserInput string                  `json:"user_input" binding:"required,min=1"`
	Context   *service.ProjectContext `json:"context,omitempty"`
}

func (r ChatSendRequest) ProjectContext() service.ProjectContext {
	if r.Context == nil {
		return service.ProjectContext{}
	}
	return *r.Context
}

type ChatSendResponse struct {
	SessionID       string `json:"session_id"`
	AssistantOutput string `json:"assistant_output"`
	HistoryLen      int    `json:"history_len"`
}

func ToChatSendResponse(res service.ChatResult) ChatSendResponse {
	return ChatSendResponse{
		SessionID:       res.SessionID,
		AssistantOutput: res.AssistantOutput,
		HistoryLen:      res.HistoryLen,
	}
}
