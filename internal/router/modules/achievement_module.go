package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// AchievementModule exposes the owner's achievements; every route needs a session.
type AchievementModule struct {
	Handler *handlers.AchievementHandler
	Tokens  middleware.AccessTokenParser
}

func NewAchievementModule(h *handlers.AchievementHandler, tokens middleware.AccessTokenParser) *AchievementModule {
	return &AchievementModule{Handler: h, Tokens: tokens}
}

func (m *AchievementModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/achievements")
	g.Use(middleware.Auth(m.Tokens), limit(120, time.Minute, middleware.KeyByUserID()))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
