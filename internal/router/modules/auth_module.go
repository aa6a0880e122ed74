package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

// AuthModule serves the session lifecycle under /auth.
// Public: signup, login, refresh, forgot, reset. Protected: logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  middleware.AccessTokenParser
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.AccessTokenParser) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	auth.POST("/signup", limit(10, time.Minute, middleware.KeyByIPAndPath()), m.Handler.Signup)
	auth.POST("/login", limit(10, time.Minute, middleware.KeyByIPAndPath()), m.Handler.Login)
	auth.POST("/refresh", limit(60, time.Minute, middleware.KeyByIPAndPath()), m.Handler.Refresh)
	auth.POST("/forgot", limit(5, time.Minute, middleware.KeyByIPAndPath()), m.Handler.ForgotPassword)
	auth.POST("/reset", limit(30, time.Minute, middleware.KeyByIPAndPath()), m.Handler.ResetPassword)

	auth.POST("/logout", middleware.Auth(m.Tokens), m.Handler.Logout)
}
