package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

type AchievementHandler struct {
	Svc    *application.AchievementService
	Logger *logrus.Logger
}

func NewAchievementHandler(svc *application.AchievementService, logger *logrus.Logger) *AchievementHandler {
	return &AchievementHandler{Svc: svc, Logger: logger}
}

type createAchievementRequest struct {
	Title string     `json:"title" binding:"required,max=200"`
	Body  *string    `json:"body" binding:"omitempty,max=5000"`
	Date  *time.Time `json:"date"`
	Link  *string    `json:"link" binding:"omitempty,url,max=2048"`
}

type updateAchievementRequest struct {
	Title string     `json:"title" binding:"omitempty,max=200"`
	Body  *string    `json:"body" binding:"omitempty,max=5000"`
	Date  *time.Time `json:"date"`
	Link  *string    `json:"link" binding:"omitempty,max=2048"`
}

type achievementURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func (h *AchievementHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "achievements", map[string]any{"count": len(list)})
}

func (h *AchievementHandler) Get(c *gin.Context) {
	var uri achievementURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Get(c.Request.Context(), userID(c), uri.ID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "achievement", nil)
}

func (h *AchievementHandler) Create(c *gin.Context) {
	var req createAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), userID(c), application.AchievementInput{
		Title: req.Title, Body: req.Body, Date: req.Date, Link: req.Link,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a, "achievement created", nil)
}

func (h *AchievementHandler) Update(c *gin.Context) {
	var uri achievementURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	var req updateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, err := h.Svc.Update(c.Request.Context(), userID(c), uri.ID, application.AchievementInput{
		Title: req.Title, Body: req.Body, Date: req.Date, Link: req.Link,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a, "achievement updated", nil)
}

func (h *AchievementHandler) Delete(c *gin.Context) {
	var uri achievementURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), userID(c), uri.ID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "achievement deleted", nil)
}
