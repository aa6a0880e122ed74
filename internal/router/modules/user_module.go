package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// UserModule wires account and public profile routes.
// Public: GET /users/search, GET /users/:handle
// Protected: GET|PUT /users/me, PUT /users/me/profile, POST /users/me/avatar
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.AccessTokenParser
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.AccessTokenParser) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	public := limit(120, time.Minute, middleware.KeyByIP())
	users.GET("/search", public, m.Handler.Search)
	users.GET("/:handle", public, m.Handler.PublicProfile)

	me := users.Group("/me")
	me.Use(middleware.Auth(m.Tokens), limit(120, time.Minute, middleware.KeyByUserID()))
	{
		me.GET("", m.Handler.GetMe)
		me.PUT("", m.Handler.UpdateMe)
		me.PUT("/profile", m.Handler.UpdateProfile)
		me.POST("/avatar", limit(10, time.Minute, middleware.KeyByUserID()), m.Handler.UploadAvatar)
	}
}
