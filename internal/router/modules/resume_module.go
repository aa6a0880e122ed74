package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// ResumeModule wires resume routes.
// Public: GET /resumes/public/:slug
// Protected: everything else under /resumes
type ResumeModule struct {
	Handler *handlers.ResumeHandler
	Tokens  middleware.AccessTokenParser
}

func NewResumeModule(h *handlers.ResumeHandler, tokens middleware.AccessTokenParser) *ResumeModule {
	return &ResumeModule{Handler: h, Tokens: tokens}
}

func (m *ResumeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/resumes/public/:slug", limit(120, time.Minute, middleware.KeyByIP()), m.Handler.Public)

	g := rg.Group("/resumes")
	g.Use(middleware.Auth(m.Tokens), limit(120, time.Minute, middleware.KeyByUserID()))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
		g.POST("/:id/versions", m.Handler.AddVersion)
		g.POST("/:id/publish", m.Handler.Publish)
	}
}
