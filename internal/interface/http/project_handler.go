package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

type ProjectHandler struct {
	Svc    *application.ProjectService
	Logger *logrus.Logger
}

func NewProjectHandler(svc *application.ProjectService, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Logger: logger}
}

type createProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Slug        *string  `json:"slug" binding:"omitempty,slug"`
	ShortDesc   *string  `json:"short_desc" binding:"omitempty,max=300"`
	Description *string  `json:"description" binding:"omitempty,max=10000"`
	TechStack   []string `json:"tech_stack" binding:"omitempty,max=30,dive,max=50"`
	Visibility  *string  `json:"visibility" binding:"omitempty,oneof=public private"`
}

type updateProjectRequest struct {
	Title       string   `json:"title" binding:"omitempty,max=200"`
	ShortDesc   *string  `json:"short_desc" binding:"omitempty,max=300"`
	Description *string  `json:"description" binding:"omitempty,max=10000"`
	TechStack   []string `json:"tech_stack" binding:"omitempty,max=30,dive,max=50"`
	Visibility  *string  `json:"visibility" binding:"omitempty,oneof=public private"`
}

type addMediaRequest struct {
	URL     string  `json:"url" binding:"required,url,max=2048"`
	Type    string  `json:"type" binding:"required,oneof=image video document"`
	AltText *string `json:"alt_text" binding:"omitempty,max=300"`
}

type projectURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type mediaURI struct {
	ID      string `uri:"id" binding:"required,uuid"`
	MediaID string `uri:"mediaId" binding:"required,uuid"`
}

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "projects", map[string]any{"count": len(list)})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	var uri projectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), userID(c), uri.ID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project", nil)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), userID(c), application.ProjectInput{
		Title:       req.Title,
		Slug:        req.Slug,
		ShortDesc:   req.ShortDesc,
		Description: req.Description,
		TechStack:   req.TechStack,
		Visibility:  req.Visibility,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "project created", nil)
}

// Update PUT /api/projects/:id; the slug is fixed at creation.
func (h *ProjectHandler) Update(c *gin.Context) {
	var uri projectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), userID(c), uri.ID, application.ProjectInput{
		Title:       req.Title,
		ShortDesc:   req.ShortDesc,
		Description: req.Description,
		TechStack:   req.TechStack,
		Visibility:  req.Visibility,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "project updated", nil)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	var uri projectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID(c), uri.ID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "project deleted", nil)
}

// AddMedia POST /api/projects/:id/media
func (h *ProjectHandler) AddMedia(c *gin.Context) {
	var uri projectURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	var req addMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.AddMedia(c.Request.Context(), userID(c), uri.ID, application.MediaInput{
		URL: req.URL, Type: req.Type, AltText: req.AltText,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, m, "media added", nil)
}

// RemoveMedia DELETE /api/projects/:id/media/:mediaId
func (h *ProjectHandler) RemoveMedia(c *gin.Context) {
	var uri mediaURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	if err := h.Svc.RemoveMedia(c.Request.Context(), userID(c), uri.ID, uri.MediaID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "media removed", nil)
}
