// Package handler implements the dashboard and connector-test endpoints.
package handler

import (
	"recruit_portal_backend/internal/dashboard/service"
	"recruit_portal_backend/platform/config"
	"recruit_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles dashboard HTTP requests.
type Handler struct {
	svc      *service.Service
	provider config.ProviderConfig
}

// New creates the dashboard handler.
func New(svc *service.Service, provider config.ProviderConfig) *Handler {
	return &Handler{svc: svc, provider: provider}
}

// RegisterDashboardRoutes mounts GET /stats.
func (h *Handler) RegisterDashboardRoutes(group *gin.RouterGroup) {
	group.GET("/stats", h.Stats)
}

// RegisterConnectorRoutes mounts GET /test.
func (h *Handler) RegisterConnectorRoutes(group *gin.RouterGroup) {
	group.GET("/test", h.TestConnectors)
}

// Stats handles GET /api/dashboard/stats.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, stats)
}

// TestConnectors handles GET /api/connectors/test. It reports which provider
// credentials are present without calling out to any of them.
func (h *Handler) TestConnectors(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"openai": h.provider.GetOpenAIAPIKey() != "",
		"vapi":   h.provider.IsVapiEnabled(),
		"twilio": h.provider.GetTwilioAccountSID() != "",
		"ghl":    h.provider.GetGHLAPIKey() != "",
	})
}
