package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/response"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Checked in order; specific errors come before the generic kinds they wrap.
var errorMappings = []errorMapping{
	{application.ErrEmailTaken, http.StatusConflict, "User with this email already exists"},
	{application.ErrHandleTaken, http.StatusConflict, "Public handle already taken"},
	{application.ErrSlugTaken, http.StatusConflict, "Slug already taken"},
	{application.ErrResumeNoVersions, http.StatusConflict, "Cannot publish resume without versions"},
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{application.ErrRefreshMissing, http.StatusUnauthorized, "Refresh token is missing"},
	{application.ErrInvalidRefresh, http.StatusUnauthorized, "Invalid refresh token"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{application.ErrAchievementNotFound, http.StatusNotFound, "Achievement not found"},
	{application.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{application.ErrMediaNotFound, http.StatusNotFound, "Media not found"},
	{application.ErrResumeNotFound, http.StatusNotFound, "Resume not found"},
	{application.ErrInvalidSlug, http.StatusBadRequest, "Slug cannot be derived from title"},
	{helpers.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},
	{application.ErrInvalidResetToken, http.StatusBadRequest, "Invalid or expired reset token"},
	{application.ErrResetUnavailable, http.StatusServiceUnavailable, "Password reset unavailable"},
	{application.ErrStorageDisabled, http.StatusServiceUnavailable, "Object storage unavailable"},
	{application.ErrConflict, http.StatusConflict, "Conflict"},
	{application.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{application.ErrForbidden, http.StatusForbidden, "Forbidden"},
	{application.ErrNotFound, http.StatusNotFound, "Not found"},
}

// fail maps a service error onto the response envelope. Unknown errors are
// logged and reported as 500 without detail.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			response.Error[any](c, m.status, m.message, nil)
			return
		}
	}
	if logger != nil {
		entry := logger.WithError(err).WithFields(logrus.Fields{
			"path":       c.FullPath(),
			"request_id": c.GetString("request_id"),
		})
		if errors.Is(err, application.ErrHandleExhausted) {
			entry.Error("public handle space exhausted")
		} else {
			entry.Error("request failed")
		}
	}
	response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
}

func userID(c *gin.Context) string { return c.GetString("userID") }

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}
