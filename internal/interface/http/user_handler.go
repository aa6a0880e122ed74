package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

const maxAvatarBytes = 5 << 20

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateMeRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	Headline     *string `json:"headline" binding:"omitempty,max=160"`
	AvatarURL    *string `json:"avatar_url" binding:"omitempty,max=2048"`
	Locale       *string `json:"locale" binding:"omitempty,max=16"`
	PublicHandle *string `json:"public_handle" binding:"omitempty,handle"`
}

type updateProfileRequest struct {
	Bio     *string `json:"bio" binding:"omitempty,max=2000"`
	Visible *bool   `json:"visible"`
}

// GetMe GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	me, err := h.Svc.GetMe(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, me, "profile", nil)
}

// UpdateMe PUT /api/users/me; absent fields are left unchanged.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	me, err := h.Svc.UpdateMe(c.Request.Context(), userID(c), application.UpdateMeInput{
		Name:         req.Name,
		Headline:     req.Headline,
		AvatarURL:    req.AvatarURL,
		Locale:       req.Locale,
		PublicHandle: req.PublicHandle,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, me, "profile updated", nil)
}

// UpdateProfile PUT /api/users/me/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.UpdateProfile(c.Request.Context(), userID(c), application.UpdateProfileInput{Bio: req.Bio, Visible: req.Visible})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile updated", nil)
}

// UploadAvatar POST /api/users/me/avatar (multipart field "file")
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes+1<<10)
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file is required", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "cannot read file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), userID(c), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar uploaded", nil)
}

// PublicProfile GET /api/users/:handle
func (h *UserHandler) PublicProfile(c *gin.Context) {
	p, err := h.Svc.GetPublicProfile(c.Request.Context(), c.Param("handle"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "profile", nil)
}

// Search GET /api/users/search?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	docs, err := h.Svc.SearchUsers(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "search results", map[string]any{"count": len(docs)})
}
