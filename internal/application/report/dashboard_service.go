package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/complaint"
	"github.com/rentms/backend/internal/domain/identity"
)

// DashboardService computes aggregate views for the admin and tenant
// dashboards. Every figure is recomputed from a point-in-time snapshot on
// each request; nothing is cached incrementally.
type DashboardService struct {
	userRepo      identity.UserRepository
	billRepo      billing.BillRepository
	complaintRepo complaint.ComplaintRepository
	now           func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo identity.UserRepository,
	billRepo billing.BillRepository,
	complaintRepo complaint.ComplaintRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:      userRepo,
		billRepo:      billRepo,
		complaintRepo: complaintRepo,
		now:           time.Now,
	}
}

// summarizePeriod partitions one month's bills by status and folds the
// per-partition totals
func summarizePeriod(period string, bills []billing.Bill) PeriodSummary {
	summary := PeriodSummary{Period: period, TotalBills: len(bills)}
	for i := range bills {
		if bills[i].IsPaid() {
			summary.PaidBills++
			summary.CollectedAmount = summary.CollectedAmount.Add(bills[i].TotalAmount)
		} else {
			summary.UnpaidBills++
			summary.PendingAmount = summary.PendingAmount.Add(bills[i].TotalAmount)
		}
	}
	return summary
}

// Admin returns system-wide tenant, billing and complaint figures
func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	totalTenants, err := s.userRepo.CountByRole(ctx, identity.RoleTenant, false)
	if err != nil {
		return nil, err
	}
	activeTenants, err := s.userRepo.CountByRole(ctx, identity.RoleTenant, true)
	if err != nil {
		return nil, err
	}

	collected, err := s.billRepo.SumTotalByStatus(ctx, billing.BillStatusPaid)
	if err != nil {
		return nil, err
	}
	pending, err := s.billRepo.SumTotalByStatus(ctx, billing.BillStatusUnpaid)
	if err != nil {
		return nil, err
	}

	period := billing.CurrentPeriod(s.now())
	currentBills, err := s.billRepo.FindAll(ctx, billing.BillFilter{Period: period})
	if err != nil {
		return nil, err
	}

	totalComplaints, err := s.complaintRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	openComplaints, err := s.complaintRepo.CountUnresolved(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalTenants:       totalTenants,
		ActiveTenants:      activeTenants,
		CollectedAmount:    collected,
		PendingAmount:      pending,
		CurrentPeriod:      summarizePeriod(period, currentBills),
		TotalComplaints:    totalComplaints,
		OpenComplaints:     openComplaints,
		ResolvedComplaints: totalComplaints - openComplaints,
	}, nil
}

// Tenant returns the billing and complaint figures for one tenant
func (s *DashboardService) Tenant(ctx context.Context, tenantID uuid.UUID) (*TenantDashboard, error) {
	bills, err := s.billRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	period := billing.CurrentPeriod(s.now())
	dashboard := &TenantDashboard{TotalBills: len(bills)}
	for i := range bills {
		dashboard.TotalBilled = dashboard.TotalBilled.Add(bills[i].TotalAmount)
		if bills[i].IsPaid() {
			dashboard.PaidAmount = dashboard.PaidAmount.Add(bills[i].TotalAmount)
		} else {
			dashboard.UnpaidBills++
			dashboard.DueAmount = dashboard.DueAmount.Add(bills[i].TotalAmount)
		}
		if bills[i].Period == period {
			dashboard.CurrentBill = &CurrentBill{
				Period:      bills[i].Period,
				TotalAmount: bills[i].TotalAmount,
				Status:      bills[i].Status.String(),
				PaidDate:    bills[i].PaidDate,
			}
		}
	}

	complaints, err := s.complaintRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	dashboard.TotalComplaints = len(complaints)
	for i := range complaints {
		if !complaints[i].IsResolved() {
			dashboard.OpenComplaints++
		}
	}

	return dashboard, nil
}
