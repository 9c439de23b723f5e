// Package handler implements HTTP handlers for the settings module.
package handler

import (
	"net/http"

	"recruit_portal_backend/internal/settings/service"
	"recruit_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles settings HTTP requests.
type Handler struct {
	svc *service.Service
}

// New creates the settings handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts settings routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Set)
	group.GET("/mock-mode", h.GetMockMode)
	group.POST("/mock-mode", h.SetMockMode)
}

// List handles GET /api/settings.
func (h *Handler) List(c *gin.Context) {
	settings, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, settings)
}

type setRequest struct {
	Key   string `json:"key" binding:"required"`
	Value any    `json:"value"`
}

// Set handles POST /api/settings.
func (h *Handler) Set(c *gin.Context) {
	var req setRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "key is required", nil)
		return
	}

	setting, err := h.svc.Set(c.Request.Context(), req.Key, req.Value)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, setting)
}

// GetMockMode handles GET /api/settings/mock-mode.
func (h *Handler) GetMockMode(c *gin.Context) {
	enabled, err := h.svc.MockMode(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"mockMode": enabled})
}

type mockModeRequest struct {
	MockMode *bool `json:"mockMode" binding:"required"`
}

// SetMockMode handles POST /api/settings/mock-mode.
func (h *Handler) SetMockMode(c *gin.Context) {
	var req mockModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "mockMode is required", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.SetMockMode(c.Request.Context(), *req.MockMode)) {
		return
	}
	httpkit.OK(c, gin.H{"mockMode": *req.MockMode})
}
