package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rentms/backend/internal/application/report"
)

// DashboardHandler serves the aggregated dashboard views
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Admin returns system-wide figures. Admin-only.
// GET /api/v1/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	dashboard, err := h.dashboardService.Admin(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// Tenant returns the authenticated tenant's own figures.
// GET /api/v1/dashboard/my
func (h *DashboardHandler) Tenant(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dashboard, err := h.dashboardService.Tenant(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
