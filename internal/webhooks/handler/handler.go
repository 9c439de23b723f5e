// Package handler implements the inbound webhook endpoints.
package handler

import (
	"net/http"

	"recruit_portal_backend/internal/webhooks/service"
	"recruit_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles provider webhook deliveries.
type Handler struct {
	svc         *service.Service
	sharedToken string
}

// New creates the webhooks handler. An empty shared token disables the
// X-Webhook-Token check.
func New(svc *service.Service, sharedToken string) *Handler {
	return &Handler{svc: svc, sharedToken: sharedToken}
}

// RegisterRoutes mounts the webhook routes on the public API group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/vapi", h.ingest(service.SourceVapi))
	group.POST("/twilio", h.ingest(service.SourceTwilio))
	group.POST("/ghl", h.ingest(service.SourceGhl))
}

func (h *Handler) ingest(source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.sharedToken != "" && c.GetHeader("X-Webhook-Token") != h.sharedToken {
			httpkit.Error(c, http.StatusUnauthorized, "invalid webhook token", nil)
			return
		}

		var payload map[string]any
		if err := c.ShouldBindJSON(&payload); err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
			return
		}

		result, err := h.svc.Ingest(c.Request.Context(), source, payload)
		if err != nil {
			httpkit.Error(c, http.StatusInternalServerError, "failed to process webhook", nil)
			return
		}
		if result.Duplicate {
			httpkit.OK(c, gin.H{"message": "Event already processed"})
			return
		}
		httpkit.OK(c, gin.H{"success": true})
	}
}
