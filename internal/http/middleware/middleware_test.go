package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"deepti.app/relay/internal/http/middleware"
	"deepti.app/relay/internal/model"
)

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500 with the localized error body", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/panic", func(_ *gin.Context) {
			panic("kaboom")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["error"]).To(Equal(model.RelayFailure))
	})

	It("leaves successful requests alone", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/ok", func(c *gin.Context) {
			c.String(http.StatusOK, "fine")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("fine"))
	})
})
