package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// ProjectModule exposes the owner's projects and their media; every route needs a session.
type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Tokens  middleware.AccessTokenParser
}

func NewProjectModule(h *handlers.ProjectHandler, tokens middleware.AccessTokenParser) *ProjectModule {
	return &ProjectModule{Handler: h, Tokens: tokens}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects")
	g.Use(middleware.Auth(m.Tokens), limit(120, time.Minute, middleware.KeyByUserID()))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
		g.POST("/:id/media", m.Handler.AddMedia)
		g.DELETE("/:id/media/:mediaId", m.Handler.RemoveMedia)
	}
}
