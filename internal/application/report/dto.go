package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary partitions one month's bills by payment status
type PeriodSummary struct {
	Period          string          `json:"period"`
	TotalBills      int             `json:"total_bills"`
	PaidBills       int             `json:"paid_bills"`
	UnpaidBills     int             `json:"unpaid_bills"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
}

// AdminDashboard aggregates system-wide figures for the admin landing page
type AdminDashboard struct {
	TotalTenants       int64           `json:"total_tenants"`
	ActiveTenants      int64           `json:"active_tenants"`
	CollectedAmount    decimal.Decimal `json:"collected_amount"`
	PendingAmount      decimal.Decimal `json:"pending_amount"`
	CurrentPeriod      PeriodSummary   `json:"current_period"`
	TotalComplaints    int64           `json:"total_complaints"`
	OpenComplaints     int64           `json:"open_complaints"`
	ResolvedComplaints int64           `json:"resolved_complaints"`
}

// CurrentBill is the tenant's bill for the month in progress, if one has
// been generated
type CurrentBill struct {
	Period      string          `json:"period"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	PaidDate    *time.Time      `json:"paid_date,omitempty"`
}

// TenantDashboard aggregates a single tenant's figures
type TenantDashboard struct {
	TotalBills      int             `json:"total_bills"`
	UnpaidBills     int             `json:"unpaid_bills"`
	TotalBilled     decimal.Decimal `json:"total_billed"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	DueAmount       decimal.Decimal `json:"due_amount"`
	CurrentBill     *CurrentBill    `json:"current_bill,omitempty"`
	TotalComplaints int             `json:"total_complaints"`
	OpenComplaints  int             `json:"open_complaints"`
}
