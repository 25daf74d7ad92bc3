package handler_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pageforge.app/planner/internal/http/handler"
	"pageforge.app/planner/internal/plan"
	"pageforge.app/planner/internal/preview"
)

var _ = Describe("PreviewHandler", func() {
	var (
		router   *gin.Engine
		previews *preview.Store
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		previews = preview.NewStore()
		h := handler.NewPreviewHandler(previews)
		router.GET("/preview", h.Preview)
		router.GET("/page", h.Page)
	})

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns 404 when nothing has been generated yet", func() {
		Expect(get("/preview").Code).To(Equal(http.StatusNotFound))
		Expect(get("/page").Code).To(Equal(http.StatusNotFound))
	})

	Context("with a generated page", func() {
		BeforeEach(func() {
			previews.Set("sess-1", plan.GeneratedFile{
				Path:     "index.html",
				Contents: "<html><head></head><body><nav data-preview-hide>debug</nav></body></html>",
			})
		})

		It("hides suppressed elements on /preview", func() {
			w := get("/preview")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
			Expect(w.Body.String()).To(ContainSubstring("display:none"))
		})

		It("shows suppressed elements on /page", func() {
			w := get("/page")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).NotTo(ContainSubstring("display:none"))
			Expect(w.Body.String()).To(ContainSubstring("debug"))
		})

		It("serves a session's own preview", func() {
			previews.Set("sess-2", plan.GeneratedFile{
				Path:     "other.html",
				Contents: "<html><body>other</body></html>",
			})

			w := get("/preview?session_id=sess-1")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("debug"))
			Expect(w.Body.String()).NotTo(ContainSubstring("other"))
		})
	})
})
