package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/internal/domain/entity"
	"github.com/oksasatya/portfolio-api/pkg/helpers"
	"github.com/oksasatya/portfolio-api/pkg/response"
	"github.com/oksasatya/portfolio-api/pkg/validation"
)

const forgotPasswordMessage = "If user exists, password reset email sent"

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"omitempty,max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,pwd"`
}

type userEnvelope struct {
	User entity.UserView `json:"user"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Signup(c.Request.Context(), application.SignupInput{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.setSession(c, res.Tokens)
	response.Success(c, http.StatusCreated, userEnvelope{User: res.User}, "signup successful", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.setSession(c, res.Tokens)
	response.Success(c, http.StatusOK, userEnvelope{User: res.User}, "login successful", nil)
}

// Refresh POST /api/auth/refresh; reads only the refresh_token cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookie)
	res, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.setSession(c, res.Tokens)
	response.Success(c, http.StatusOK, userEnvelope{User: res.User}, "token refreshed", nil)
}

// Logout POST /api/auth/logout (auth required). Cookies are cleared even if
// the store write fails.
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.Svc.Logout(c.Request.Context(), userID(c))
	h.Cookies.Clear(c)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Logged out successfully", nil)
}

// ForgotPassword POST /api/auth/forgot. The reply never depends on whether the email exists.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	meta := application.RequestMeta{IP: clientIP(c), UserAgent: c.GetHeader("User-Agent")}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email, meta); err != nil && h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("forgot password lookup failed")
	}
	response.Success[any](c, http.StatusOK, nil, forgotPasswordMessage, nil)
}

// ResetPassword POST /api/auth/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "password updated", nil)
}

func (h *AuthHandler) setSession(c *gin.Context, p application.TokenPair) {
	h.Cookies.SetPair(c, p.AccessToken, p.AccessTokenExpiry, p.RefreshToken, p.RefreshTokenExpiry)
}
