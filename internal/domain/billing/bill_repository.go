package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillFilter narrows bill list queries. Zero values mean "no filter".
type BillFilter struct {
	Period   string
	Status   *BillStatus
	TenantID *uuid.UUID
}

// BillRepository defines persistence operations for bills.
// Save must enforce the (tenant, period) uniqueness constraint at the
// storage layer and return shared.ErrAlreadyExists on violation; the
// application-level pre-check only improves the error message, the index
// closes the race between concurrent creates.
type BillRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period string) (*Bill, error)
	// FindAll returns bills matching the filter, newest-created-first.
	FindAll(ctx context.Context, filter BillFilter) ([]Bill, error)
	// FindByTenant returns a tenant's bills ordered by period descending.
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Bill, error)
	// SumTotalByStatus folds totalAmount over all bills with the given status.
	SumTotalByStatus(ctx context.Context, status BillStatus) (decimal.Decimal, error)
	Save(ctx context.Context, bill *Bill) error
	// Delete removes a bill by ID. Deleting a missing bill is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
}
