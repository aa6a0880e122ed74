package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

type ResumeHandler struct {
	Svc    *application.ResumeService
	Logger *logrus.Logger
}

func NewResumeHandler(svc *application.ResumeService, logger *logrus.Logger) *ResumeHandler {
	return &ResumeHandler{Svc: svc, Logger: logger}
}

type createResumeRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Slug        *string `json:"slug" binding:"omitempty,slug"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type updateResumeRequest struct {
	Title       string  `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	IsPublished *bool   `json:"is_published"`
}

type createVersionRequest struct {
	Content    string  `json:"content" binding:"required,max=200000"`
	VersionTag *string `json:"version_tag" binding:"omitempty,max=50"`
}

type resumeURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type slugURI struct {
	Slug string `uri:"slug" binding:"required,slug"`
}

func (h *ResumeHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "resumes", map[string]any{"count": len(list)})
}

func (h *ResumeHandler) Get(c *gin.Context) {
	var uri resumeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Get(c.Request.Context(), userID(c), uri.ID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume", nil)
}

func (h *ResumeHandler) Create(c *gin.Context) {
	var req createResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), userID(c), application.ResumeInput{
		Title: req.Title, Slug: req.Slug, Description: req.Description,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, r, "resume created", nil)
}

func (h *ResumeHandler) Update(c *gin.Context) {
	var uri resumeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	var req updateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), userID(c), uri.ID, application.ResumeInput{
		Title: req.Title, Description: req.Description, IsPublished: req.IsPublished,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume updated", nil)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	var uri resumeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID(c), uri.ID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "resume deleted", nil)
}

// AddVersion POST /api/resumes/:id/versions
func (h *ResumeHandler) AddVersion(c *gin.Context) {
	var uri resumeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	var req createVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	v, err := h.Svc.AddVersion(c.Request.Context(), userID(c), uri.ID, application.VersionInput{
		Content: req.Content, VersionTag: req.VersionTag,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, v, "version created", nil)
}

// Publish POST /api/resumes/:id/publish
func (h *ResumeHandler) Publish(c *gin.Context) {
	var uri resumeURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	r, err := h.Svc.Publish(c.Request.Context(), userID(c), uri.ID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume published", nil)
}

// Public GET /api/resumes/public/:slug; drafts and unknown slugs are both 404.
func (h *ResumeHandler) Public(c *gin.Context) {
	var uri slugURI
	if err := c.ShouldBindUri(&uri); err != nil {
		fail(c, h.Logger, application.ErrResumeNotFound)
		return
	}
	r, err := h.Svc.PublicResume(c.Request.Context(), uri.Slug)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, r, "resume", nil)
}
