package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/rentms/backend/internal/infrastructure/notification"
	"github.com/shopspring/decimal"
)

// BillService handles bill generation and lifecycle operations
type BillService struct {
	billRepo    billing.BillRepository
	userRepo    identity.UserRepository
	notifier    notification.Notifier
	ratePerUnit decimal.Decimal
	now         func() time.Time
}

// NewBillService creates a new BillService. ratePerUnit is the configured
// default electricity rate applied when a request does not carry one.
func NewBillService(
	billRepo billing.BillRepository,
	userRepo identity.UserRepository,
	notifier notification.Notifier,
	ratePerUnit decimal.Decimal,
) *BillService {
	if ratePerUnit.IsZero() {
		ratePerUnit = billing.DefaultRatePerUnit
	}
	return &BillService{
		billRepo:    billRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		ratePerUnit: ratePerUnit,
		now:         time.Now,
	}
}

// Generate creates a bill for a tenant and period. Base rent defaults to
// the tenant's configured rent. At most one bill may exist per tenant per
// period.
func (s *BillService) Generate(ctx context.Context, req GenerateBillRequest) (*BillResponse, error) {
	if req.Period == "" {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period is required")
	}

	tenant, err := s.userRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsTenant() {
		return nil, shared.NewDomainError("INVALID_TENANT", "Bills can only be generated for tenant accounts")
	}
	if !tenant.IsActive {
		// Deactivated accounts are not billable targets
		return nil, shared.ErrNotFound
	}

	// Pre-check for a friendlier message; the unique index still closes
	// the race between concurrent creates.
	if _, err := s.billRepo.FindByTenantAndPeriod(ctx, req.TenantID, req.Period); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A bill for this tenant and period already exists")
	} else if !isNotFound(err) {
		return nil, err
	}

	baseRent := tenant.BaseRent
	if req.BaseRent != nil {
		baseRent = *req.BaseRent
	}
	rate := s.ratePerUnit
	if req.RatePerUnit != nil {
		rate = *req.RatePerUnit
	}

	bill, err := billing.NewBill(req.TenantID, req.Period, baseRent, req.PreviousUnit, req.CurrentUnit, rate)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		bill.SetNotes(req.Notes)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	s.notifier.BillCreated(tenant, bill)

	resp := ToBillResponse(bill)
	attachTenant(&resp, tenant)
	return &resp, nil
}

// Get returns a single bill by ID
func (s *BillService) Get(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill)
	if tenant, err := s.userRepo.FindByID(ctx, bill.TenantID); err == nil {
		attachTenant(&resp, tenant)
	}
	return &resp, nil
}

// Update overwrites the provided fields of a bill and recomputes the
// derived amounts
func (s *BillService) Update(ctx context.Context, id uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BaseRent != nil {
		if req.BaseRent.IsNegative() {
			return nil, shared.NewDomainError("INVALID_BASE_RENT", "Base rent cannot be negative")
		}
		bill.BaseRent = *req.BaseRent
	}
	if req.RatePerUnit != nil {
		if req.RatePerUnit.IsNegative() {
			return nil, shared.NewDomainError("INVALID_RATE", "Rate per unit cannot be negative")
		}
		bill.RatePerUnit = *req.RatePerUnit
	}
	bill.SetReadings(req.PreviousUnit, req.CurrentUnit)
	if req.Notes != nil {
		bill.SetNotes(*req.Notes)
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	resp := ToBillResponse(bill)
	if tenant, err := s.userRepo.FindByID(ctx, bill.TenantID); err == nil {
		attachTenant(&resp, tenant)
	}
	return &resp, nil
}

// SetStatus marks a bill paid or unpaid
func (s *BillService) SetStatus(ctx context.Context, id uuid.UUID, req SetBillStatusRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := bill.SetStatus(billing.BillStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	resp := ToBillResponse(bill)
	return &resp, nil
}

// Delete removes a bill. Deleting a bill that no longer exists succeeds,
// so retried deletes are harmless.
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.billRepo.Delete(ctx, id)
}

// List returns bills matching the query, newest first, with tenant info
// attached and summary totals folded over the filtered set
func (s *BillService) List(ctx context.Context, query ListBillsQuery) (*BillListResponse, error) {
	filter := billing.BillFilter{Period: query.Period}
	if query.Status != "" {
		status := billing.BillStatus(query.Status)
		filter.Status = &status
	}
	if query.TenantID != "" {
		tenantID, err := uuid.Parse(query.TenantID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID must be a valid UUID")
		}
		filter.TenantID = &tenantID
	}

	bills, err := s.billRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	tenants, err := s.tenantsByID(ctx, bills)
	if err != nil {
		return nil, err
	}

	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
		if tenant, ok := tenants[bills[i].TenantID]; ok {
			attachTenant(&responses[i], &tenant)
		}
	}

	return &BillListResponse{
		Bills:   responses,
		Summary: SummarizeBills(bills),
	}, nil
}

// ListForTenant returns a tenant's own bills, most recent period first,
// with summary totals
func (s *BillService) ListForTenant(ctx context.Context, tenantID uuid.UUID) (*BillListResponse, error) {
	bills, err := s.billRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}

	return &BillListResponse{
		Bills:   responses,
		Summary: SummarizeBills(bills),
	}, nil
}

// CurrentForTenant returns the tenant's bill for the current month
func (s *BillService) CurrentForTenant(ctx context.Context, tenantID uuid.UUID) (*BillResponse, error) {
	period := billing.CurrentPeriod(s.now())
	bill, err := s.billRepo.FindByTenantAndPeriod(ctx, tenantID, period)
	if err != nil {
		return nil, err
	}
	resp := ToBillResponse(bill)
	return &resp, nil
}

func (s *BillService) tenantsByID(ctx context.Context, bills []billing.Bill) (map[uuid.UUID]identity.User, error) {
	seen := make(map[uuid.UUID]struct{}, len(bills))
	ids := make([]uuid.UUID, 0, len(bills))
	for i := range bills {
		if _, ok := seen[bills[i].TenantID]; ok {
			continue
		}
		seen[bills[i].TenantID] = struct{}{}
		ids = append(ids, bills[i].TenantID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]identity.User, len(users))
	for i := range users {
		byID[users[i].GetID()] = users[i]
	}
	return byID, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
