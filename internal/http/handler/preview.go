package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pageforge.app/planner/internal/preview"
)

type PreviewHandler struct {
	previews *preview.Store
}

func NewPreviewHandler(previews *preview.Store) *PreviewHandler {
	return &PreviewHandler{previews: previews}
}

// Preview serves the last generated file with suppressed elements hidden.
func (h *PreviewHandler) Preview(c *gin.Context) {
	h.serve(c, true)
}

// Page serves the last generated file with suppressed elements visible.
func (h *PreviewHandler) Page(c *gin.Context) {
	h.serve(c, false)
}

func (h *PreviewHandler) serve(c *gin.Context, hideSuppressed bool) {
	f, ok := h.previews.ForSession(c.Query("session_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "no preview available"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(preview.Render(f, hideSuppressed)))
}
