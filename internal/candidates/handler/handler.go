// Package handler implements HTTP handlers for the candidates module.
package handler

import (
	"net/http"

	"recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/candidates/service"
	"recruit_portal_backend/internal/candidates/transport"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles candidate HTTP requests.
type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

// New creates the candidates handler.
func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterRoutes mounts candidate routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/cv-upload-url", h.CVUploadURL)
	group.GET("/:id/cv-url", h.CVDownloadURL)
}

// List handles GET /api/candidates with an optional ?vacancyId= filter.
func (h *Handler) List(c *gin.Context) {
	var vacancyID *uuid.UUID
	if raw := c.Query("vacancyId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid vacancyId filter", nil)
			return
		}
		vacancyID = &parsed
	}

	candidates, err := h.svc.List(c.Request.Context(), vacancyID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCandidates(candidates))
}

// Get handles GET /api/candidates/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	candidate, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCandidate(candidate))
}

// Create handles POST /api/candidates.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	candidate, err := h.svc.Create(c.Request.Context(), repository.CreateParams{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CVUrl:         req.CVUrl,
		LinkedinURL:   req.LinkedinURL,
		Tags:          req.Tags,
		CustomFields:  req.CustomFields,
		Status:        req.Status,
		VacancyID:     req.VacancyID,
		ConsentStatus: req.ConsentStatus,
		ConsentSource: req.ConsentSource,
		Notes:         req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromCandidate(candidate))
}

// Update handles PATCH /api/candidates/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	candidate, err := h.svc.Update(c.Request.Context(), repository.UpdateParams{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CVUrl:         req.CVUrl,
		LinkedinURL:   req.LinkedinURL,
		Tags:          req.Tags,
		CustomFields:  req.CustomFields,
		Status:        req.Status,
		VacancyID:     req.VacancyID,
		ConsentStatus: req.ConsentStatus,
		ConsentSource: req.ConsentSource,
		IsDnc:         req.IsDnc,
		Notes:         req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCandidate(candidate))
}

// Delete handles DELETE /api/candidates/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// CVUploadURL handles POST /api/candidates/:id/cv-upload-url.
func (h *Handler) CVUploadURL(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.CVUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	presigned, err := h.svc.CVUploadURL(c.Request.Context(), id, req.FileName, req.ContentType, req.SizeBytes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}

// CVDownloadURL handles GET /api/candidates/:id/cv-url.
func (h *Handler) CVDownloadURL(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	presigned, err := h.svc.CVDownloadURL(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid candidate id", nil)
		return uuid.Nil, false
	}
	return id, true
}
