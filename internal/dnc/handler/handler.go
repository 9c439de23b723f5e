// Package handler implements HTTP handlers for the DNC module.
package handler

import (
	"net/http"

	"recruit_portal_backend/internal/dnc/repository"
	"recruit_portal_backend/internal/dnc/service"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles DNC HTTP requests.
type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

// New creates the DNC handler.
func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterRoutes mounts DNC routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Add)
	group.DELETE("/:id", h.Remove)
	group.GET("/check/:phone", h.Check)
}

// List handles GET /api/dnc.
func (h *Handler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, entries)
}

type addRequest struct {
	Phone  string  `json:"phone" validate:"required"`
	Reason *string `json:"reason"`
	Source *string `json:"source"`
}

// Add handles POST /api/dnc.
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "phone is required", nil)
		return
	}

	params := repository.CreateParams{
		Phone:  req.Phone,
		Reason: req.Reason,
		Source: req.Source,
	}
	if userID, err := uuid.Parse(httpkit.UserID(c)); err == nil {
		params.AddedBy = &userID
	}

	entry, err := h.svc.Add(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, entry)
}

// Remove handles DELETE /api/dnc/:id.
func (h *Handler) Remove(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid dnc entry id", nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Remove(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// Check handles GET /api/dnc/check/:phone.
func (h *Handler) Check(c *gin.Context) {
	onList, err := h.svc.Check(c.Request.Context(), c.Param("phone"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"phone": c.Param("phone"), "isDnc": onList})
}
