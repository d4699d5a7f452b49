package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rentms/backend/internal/application/billing"
	"github.com/rentms/backend/internal/interfaces/http/middleware"
)

// BillHandler handles billing HTTP requests
type BillHandler struct {
	BaseHandler
	billService *billing.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *billing.BillService) *BillHandler {
	return &BillHandler{
		billService: billService,
	}
}

// Generate creates a bill for a tenant and period.
// POST /api/v1/bills
func (h *BillHandler) Generate(c *gin.Context) {
	var req billing.GenerateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	bill, err := h.billService.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// List returns bills matching the query filters, with summary totals.
// GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	var query billing.ListBillsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.billService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Get returns a single bill.
// GET /api/v1/bills/:id
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// Update modifies a bill's readings, rates or notes. Derived amounts are
// recomputed.
// PUT /api/v1/bills/:id
func (h *BillHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// SetStatus marks a bill as paid or unpaid.
// PATCH /api/v1/bills/:id/status
func (h *BillHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.SetBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	bill, err := h.billService.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// Delete removes a bill.
// DELETE /api/v1/bills/:id
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ListMine returns the authenticated tenant's own bills.
// GET /api/v1/bills/my
func (h *BillHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.billService.ListForTenant(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CurrentMine returns the authenticated tenant's bill for the current month.
// GET /api/v1/bills/my/current
func (h *BillHandler) CurrentMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	bill, err := h.billService.CurrentForTenant(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}
