// Package handler implements HTTP handlers for the vacancies module.
package handler

import (
	"net/http"

	"recruit_portal_backend/internal/vacancies/repository"
	"recruit_portal_backend/internal/vacancies/service"
	"recruit_portal_backend/internal/vacancies/transport"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles vacancy HTTP requests.
type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

// New creates the vacancies handler.
func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterRoutes mounts vacancy routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List handles GET /api/vacancies.
func (h *Handler) List(c *gin.Context) {
	vacancies, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromVacancies(vacancies))
}

// Get handles GET /api/vacancies/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	vacancy, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromVacancy(vacancy))
}

// Create handles POST /api/vacancies.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	params := repository.CreateParams{
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Status:       req.Status,
	}
	if userID, err := uuid.Parse(httpkit.UserID(c)); err == nil {
		params.CreatedBy = &userID
	}

	vacancy, err := h.svc.Create(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromVacancy(vacancy))
}

// Update handles PATCH /api/vacancies/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	vacancy, err := h.svc.Update(c.Request.Context(), repository.UpdateParams{
		ID:           id,
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Status:       req.Status,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromVacancy(vacancy))
}

// Delete handles DELETE /api/vacancies/:id.
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

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid vacancy id", nil)
		return uuid.Nil, false
	}
	return id, true
}
