package complaint

import (
	"context"

	"github.com/google/uuid"
)

// ComplaintRepository defines persistence operations for complaints
type ComplaintRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	// FindAll returns complaints newest-created-first, optionally filtered
	// by status.
	FindAll(ctx context.Context, status *Status) ([]Complaint, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]Complaint, error)
	Count(ctx context.Context) (int64, error)
	// CountUnresolved counts complaints whose status is not Resolved.
	CountUnresolved(ctx context.Context) (int64, error)
	Save(ctx context.Context, complaint *Complaint) error
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
}
