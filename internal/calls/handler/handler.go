// Package handler implements HTTP handlers for the calls module.
package handler

import (
	"net/http"
	"strconv"

	"recruit_portal_backend/internal/calls/repository"
	"recruit_portal_backend/internal/calls/service"
	"recruit_portal_backend/internal/calls/transport"
	"recruit_portal_backend/platform/httpkit"
	"recruit_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler handles call HTTP requests.
type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

// New creates the calls handler.
func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

// RegisterRoutes mounts call routes on the protected group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.PATCH("/:id", h.Update)
}

// List handles GET /api/calls with optional campaignId/candidateId/limit filters.
func (h *Handler) List(c *gin.Context) {
	var filter repository.ListFilter

	if raw := c.Query("campaignId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid campaignId filter", nil)
			return
		}
		filter.CampaignID = &parsed
	}
	if raw := c.Query("candidateId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid candidateId filter", nil)
			return
		}
		filter.CandidateID = &parsed
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			httpkit.Error(c, http.StatusBadRequest, "invalid limit", nil)
			return
		}
		filter.Limit = limit
	}

	calls, err := h.svc.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCalls(calls))
}

// Get handles GET /api/calls/:id.
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	call, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCall(call))
}

// Create handles POST /api/calls.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	call, err := h.svc.Create(c.Request.Context(), repository.CreateParams{
		CampaignID:        req.CampaignID,
		CandidateID:       req.CandidateID,
		VapiCallID:        req.VapiCallID,
		TwilioCallSid:     req.TwilioCallSid,
		Outcome:           req.Outcome,
		Duration:          req.Duration,
		AudioURL:          req.AudioURL,
		Transcript:        req.Transcript,
		Summary:           req.Summary,
		Sentiment:         req.Sentiment,
		Confidence:        req.Confidence,
		ExtractedData:     req.ExtractedData,
		RecommendedAction: req.RecommendedAction,
		ErrorMessage:      req.ErrorMessage,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.FromCall(call))
}

// Update handles PATCH /api/calls/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	call, err := h.svc.Update(c.Request.Context(), repository.UpdateParams{
		ID:                   id,
		Outcome:              req.Outcome,
		Duration:             req.Duration,
		AudioURL:             req.AudioURL,
		Transcript:           req.Transcript,
		Summary:              req.Summary,
		Sentiment:            req.Sentiment,
		Confidence:           req.Confidence,
		ExtractedData:        req.ExtractedData,
		RecommendedAction:    req.RecommendedAction,
		ScheduledInterviewAt: req.ScheduledInterviewAt,
		GhlSynced:            req.GhlSynced,
		ErrorMessage:         req.ErrorMessage,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromCall(call))
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid call id", nil)
		return uuid.Nil, false
	}
	return id, true
}
