package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

type StorageHandler struct {
	Svc    *application.StorageService
	Logger *logrus.Logger
}

func NewStorageHandler(svc *application.StorageService, logger *logrus.Logger) *StorageHandler {
	return &StorageHandler{Svc: svc, Logger: logger}
}

type presignRequest struct {
	Folder      string `json:"folder" binding:"omitempty,oneof=avatars achievements uploads"`
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=128"`
}

// PresignUpload POST /api/storage/presign
func (h *StorageHandler) PresignUpload(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	up, err := h.Svc.PresignUpload(c.Request.Context(), userID(c), req.Folder, req.Filename, req.ContentType)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, up, "upload url", nil)
}

// DownloadURL GET /api/storage/url?key=
func (h *StorageHandler) DownloadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		response.Error[any](c, http.StatusBadRequest, "key is required", nil)
		return
	}
	url, err := h.Svc.DownloadURL(c.Request.Context(), userID(c), key)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "download url", nil)
}
