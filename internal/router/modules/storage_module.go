package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/portfolio-api/internal/interface/http"
	"github.com/oksasatya/portfolio-api/internal/interface/middleware"
)

type StorageModule struct {
	Handler *handlers.StorageHandler
	Tokens  middleware.AccessTokenParser
}

func NewStorageModule(h *handlers.StorageHandler, tokens middleware.AccessTokenParser) *StorageModule {
	return &StorageModule{Handler: h, Tokens: tokens}
}

func (m *StorageModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/storage")
	g.Use(middleware.Auth(m.Tokens), limit(60, time.Minute, middleware.KeyByUserID()))
	{
		g.POST("/presign", m.Handler.PresignUpload)
		g.GET("/url", m.Handler.DownloadURL)
	}
}
