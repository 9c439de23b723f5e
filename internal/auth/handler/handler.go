// Package handler implements HTTP handlers for the auth module.
package handler

import (
	"net/http"
	"strings"

	"recruit_portal_backend/internal/auth/service"
	"recruit_portal_backend/internal/auth/transport"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// Handler handles auth HTTP requests.
type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

// New creates the auth handler.
func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterRoutes mounts the public auth routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/login", h.Login)
	group.POST("/demo", h.DemoLogin)
	group.POST("/logout", h.Logout)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LoginResponse{SessionID: result.SessionID, User: result.User})
}

// DemoLogin handles POST /api/auth/demo.
func (h *Handler) DemoLogin(c *gin.Context) {
	result, err := h.svc.DemoLogin(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.LoginResponse{SessionID: result.SessionID, User: result.User})
}

// Logout handles POST /api/auth/logout. It accepts the session via the
// Authorization header and always reports success so logout is idempotent.
func (h *Handler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	sessionID := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	if sessionID != "" {
		if err := h.svc.Logout(c.Request.Context(), sessionID); err != nil {
			if httpkit.HandleError(c, err) {
				return
			}
		}
	}

	httpkit.OK(c, transport.LogoutResponse{Success: true})
}
