package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users.
// Save must enforce case-insensitive email uniqueness at the storage layer
// and return shared.ErrAlreadyExists on violation.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	FindByRole(ctx context.Context, role Role) ([]User, error)
	FindFirstByRole(ctx context.Context, role Role) (*User, error)
	CountByRole(ctx context.Context, role Role, activeOnly bool) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
