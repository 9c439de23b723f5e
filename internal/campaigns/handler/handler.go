// Package handler implements HTTP handlers for the campaigns module.
package handler

import (
	"net/http"

	"recruit_portal_backend/internal/campaigns/executor"
	"recruit_portal_backend/internal/campaigns/repository"
	"recruit_portal_backend/internal/campaigns/service"
	"recruit_portal_backend/internal/campaigns/transport"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles campaign HTTP requests.
type Handler struct {
	svc      *service.Service
	exec     *executor.Executor
	validate *validator.Validator
}

// New creates the campaigns handler.
func New(svc *service.Service, exec *executor.Executor, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, exec: exec, validate: validate}
}

// RegisterRoutes mounts campaign routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.POST("/:id/launch", h.Launch)
	group.GET("/:id/candidates", h.ListCandidates)
	group.POST("/:id/candidates", h.AttachCandidates)
}

// List handles GET /api/campaigns.
func (h *Handler) List(c *gin.Context) {
	campaigns, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCampaigns(campaigns))
}

// Get handles GET /api/campaigns/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	campaign, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCampaign(campaign))
}

// Create handles POST /api/campaigns.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	params := repository.CreateParams{
		Name:               req.Name,
		Description:        req.Description,
		Status:             req.Status,
		VacancyID:          req.VacancyID,
		ScriptTemplate:     req.ScriptTemplate,
		CallWindowStart:    req.CallWindowStart,
		CallWindowEnd:      req.CallWindowEnd,
		CallWindowDays:     req.CallWindowDays,
		MaxConcurrentCalls: req.MaxConcurrentCalls,
		RetryLimit:         req.RetryLimit,
		RetryDelayMinutes:  req.RetryDelayMinutes,
		TotalCandidates:    req.TotalCandidates,
		ScheduledAt:        req.ScheduledAt,
	}
	if userID, err := uuid.Parse(httpkit.UserID(c)); err == nil {
		params.CreatedBy = &userID
	}

	campaign, err := h.svc.Create(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromCampaign(campaign))
}

// Update handles PATCH /api/campaigns/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	campaign, err := h.svc.Update(c.Request.Context(), repository.UpdateParams{
		ID:                 id,
		Name:               req.Name,
		Description:        req.Description,
		Status:             req.Status,
		VacancyID:          req.VacancyID,
		ScriptTemplate:     req.ScriptTemplate,
		CallWindowStart:    req.CallWindowStart,
		CallWindowEnd:      req.CallWindowEnd,
		CallWindowDays:     req.CallWindowDays,
		MaxConcurrentCalls: req.MaxConcurrentCalls,
		RetryLimit:         req.RetryLimit,
		RetryDelayMinutes:  req.RetryDelayMinutes,
		TotalCandidates:    req.TotalCandidates,
		ScheduledAt:        req.ScheduledAt,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCampaign(campaign))
}

// Delete handles DELETE /api/campaigns/:id.
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

// Launch handles POST /api/campaigns/:id/launch. An unknown campaign is a
// 404; any other execution failure is reported as a 400 carrying the
// execution result so clients can show the failure message.
func (h *Handler) Launch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.exec.Launch(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	if !result.Success {
		httpkit.JSON(c, http.StatusBadRequest, result)
		return
	}
	httpkit.OK(c, result)
}

// ListCandidates handles GET /api/campaigns/:id/candidates.
func (h *Handler) ListCandidates(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	links, err := h.svc.ListCandidateLinks(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCandidateLinks(links))
}

// AttachCandidates handles POST /api/campaigns/:id/candidates.
func (h *Handler) AttachCandidates(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.AttachCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if httpkit.HandleError(c, h.svc.AttachCandidates(c.Request.Context(), id, req.CandidateIDs)) {
		return
	}
	httpkit.OK(c, gin.H{"success": true, "attached": len(req.CandidateIDs)})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid campaign id", nil)
		return uuid.Nil, false
	}
	return id, true
}
