package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// GenerateBillRequest represents a request to generate a bill for a tenant
type GenerateBillRequest struct {
	TenantID     uuid.UUID        `json:"tenant_id" binding:"required"`
	Period       string           `json:"period" binding:"required,period"`
	PreviousUnit decimal.Decimal  `json:"previous_unit"`
	CurrentUnit  decimal.Decimal  `json:"current_unit"`
	BaseRent     *decimal.Decimal `json:"base_rent"`     // defaults to the tenant's base rent
	RatePerUnit  *decimal.Decimal `json:"rate_per_unit"` // defaults to the configured rate
	Notes        string           `json:"notes"`
}

// UpdateBillRequest represents a request to update a bill's readings or notes.
// Derived amounts are always recomputed; they cannot be set directly.
type UpdateBillRequest struct {
	PreviousUnit *decimal.Decimal `json:"previous_unit"`
	CurrentUnit  *decimal.Decimal `json:"current_unit"`
	BaseRent     *decimal.Decimal `json:"base_rent"`
	RatePerUnit  *decimal.Decimal `json:"rate_per_unit"`
	Notes        *string          `json:"notes"`
}

// SetBillStatusRequest represents a request to mark a bill paid or unpaid
type SetBillStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Paid Unpaid"`
}

// ListBillsQuery narrows the admin bill listing
type ListBillsQuery struct {
	Period   string `form:"period" binding:"omitempty,period"`
	Status   string `form:"status" binding:"omitempty,oneof=Paid Unpaid"`
	TenantID string `form:"tenant_id" binding:"omitempty,uuid"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID                uuid.UUID       `json:"id"`
	TenantID          uuid.UUID       `json:"tenant_id"`
	TenantName        string          `json:"tenant_name,omitempty"`
	TenantEmail       string          `json:"tenant_email,omitempty"`
	TenantPhone       string          `json:"tenant_phone,omitempty"`
	TenantUnit        string          `json:"tenant_unit,omitempty"`
	Period            string          `json:"period"`
	Year              int             `json:"year"`
	BaseRent          decimal.Decimal `json:"base_rent"`
	PreviousUnit      decimal.Decimal `json:"previous_unit"`
	CurrentUnit       decimal.Decimal `json:"current_unit"`
	UnitsConsumed     decimal.Decimal `json:"units_consumed"`
	RatePerUnit       decimal.Decimal `json:"rate_per_unit"`
	ElectricityAmount decimal.Decimal `json:"electricity_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	Status            string          `json:"status"`
	PaidDate          *time.Time      `json:"paid_date,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BillSummary folds amounts over a set of bills
type BillSummary struct {
	TotalBills      int             `json:"total_bills"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
}

// BillListResponse is the admin bill listing with summary totals
type BillListResponse struct {
	Bills   []BillResponse `json:"bills"`
	Summary BillSummary    `json:"summary"`
}

// ToBillResponse converts a domain bill to its API representation
func ToBillResponse(b *billing.Bill) BillResponse {
	return BillResponse{
		ID:                b.GetID(),
		TenantID:          b.TenantID,
		Period:            b.Period,
		Year:              b.Year,
		BaseRent:          b.BaseRent,
		PreviousUnit:      b.PreviousUnit,
		CurrentUnit:       b.CurrentUnit,
		UnitsConsumed:     b.UnitsConsumed,
		RatePerUnit:       b.RatePerUnit,
		ElectricityAmount: b.ElectricityAmount,
		TotalAmount:       b.TotalAmount,
		Status:            b.Status.String(),
		PaidDate:          b.PaidDate,
		Notes:             b.Notes,
		CreatedAt:         b.GetCreatedAt(),
		UpdatedAt:         b.GetUpdatedAt(),
	}
}

// SummarizeBills folds amounts over the given bills
func SummarizeBills(bills []billing.Bill) BillSummary {
	summary := BillSummary{
		TotalBills:      len(bills),
		TotalAmount:     decimal.Zero,
		CollectedAmount: decimal.Zero,
		PendingAmount:   decimal.Zero,
	}
	for i := range bills {
		summary.TotalAmount = summary.TotalAmount.Add(bills[i].TotalAmount)
		if bills[i].IsPaid() {
			summary.CollectedAmount = summary.CollectedAmount.Add(bills[i].TotalAmount)
		} else {
			summary.PendingAmount = summary.PendingAmount.Add(bills[i].TotalAmount)
		}
	}
	return summary
}

func attachTenant(resp *BillResponse, tenant *identity.User) {
	if tenant == nil {
		return
	}
	resp.TenantName = tenant.Name
	resp.TenantEmail = tenant.Email
	resp.TenantPhone = tenant.Phone
	resp.TenantUnit = tenant.Unit
}
