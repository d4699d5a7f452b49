package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rentms/backend/internal/application/complaint"
	"github.com/rentms/backend/internal/interfaces/http/middleware"
)

// ComplaintHandler handles complaint HTTP requests
type ComplaintHandler struct {
	BaseHandler
	complaintService *complaint.ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(complaintService *complaint.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
	}
}

// Create files a complaint for the authenticated tenant.
// POST /api/v1/complaints
func (h *ComplaintHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req complaint.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.complaintService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns all complaints, optionally filtered by status. Admin-only.
// GET /api/v1/complaints
func (h *ComplaintHandler) List(c *gin.Context) {
	var query complaint.ListComplaintsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	complaints, err := h.complaintService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaints)
}

// Get returns a single complaint. Admin-only.
// GET /api/v1/complaints/:id
func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}

	result, err := h.complaintService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update changes a complaint's status or admin note. Admin-only.
// PUT /api/v1/complaints/:id
func (h *ComplaintHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}

	var req complaint.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.complaintService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMine returns the authenticated tenant's own complaints.
// GET /api/v1/complaints/my
func (h *ComplaintHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	complaints, err := h.complaintService.ListForTenant(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, complaints)
}
