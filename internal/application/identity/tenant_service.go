package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/complaint"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/rentms/backend/internal/infrastructure/auth"
)

// TenantService handles admin management of tenant accounts
type TenantService struct {
	userRepo      identity.UserRepository
	billRepo      billing.BillRepository
	complaintRepo complaint.ComplaintRepository
	hasher        auth.PasswordHasher
}

// NewTenantService creates a new TenantService
func NewTenantService(
	userRepo identity.UserRepository,
	billRepo billing.BillRepository,
	complaintRepo complaint.ComplaintRepository,
	hasher auth.PasswordHasher,
) *TenantService {
	return &TenantService{
		userRepo:      userRepo,
		billRepo:      billRepo,
		complaintRepo: complaintRepo,
		hasher:        hasher,
	}
}

// Create registers a new tenant account
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*UserResponse, error) {
	// Pre-check for a friendlier message; the unique index on email still
	// closes the race between concurrent creates.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, shared.NewDomainError("INVALID_PASSWORD", err.Error())
		}
		return nil, err
	}

	tenant, err := identity.NewTenant(req.Name, req.Email, req.Phone, hash, req.Unit, req.BaseRent)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	resp := ToUserResponse(tenant)
	return &resp, nil
}

// Get returns a tenant account by ID
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	tenant, err := s.findTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(tenant)
	return &resp, nil
}

// List returns all tenant accounts, newest first
func (s *TenantService) List(ctx context.Context) ([]UserResponse, error) {
	tenants, err := s.userRepo.FindByRole(ctx, identity.RoleTenant)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(tenants))
	for i := range tenants {
		responses[i] = ToUserResponse(&tenants[i])
	}
	return responses, nil
}

// Update overwrites the provided fields of a tenant account
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*UserResponse, error) {
	tenant, err := s.findTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := tenant.SetName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil {
		tenant.SetPhone(*req.Phone)
	}
	if req.Unit != nil {
		tenant.SetUnit(*req.Unit)
	}
	if req.BaseRent != nil {
		if err := tenant.SetBaseRent(*req.BaseRent); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		tenant.SetActive(*req.IsActive)
	}

	if err := s.userRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	resp := ToUserResponse(tenant)
	return &resp, nil
}

// Delete removes a tenant account together with all of its bills and
// complaints
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.findTenant(ctx, id)
	if err != nil {
		return err
	}

	if err := s.billRepo.DeleteByTenant(ctx, tenant.GetID()); err != nil {
		return err
	}
	if err := s.complaintRepo.DeleteByTenant(ctx, tenant.GetID()); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, tenant.GetID())
}

// findTenant loads a user and verifies it is a tenant account. Admin
// accounts are not visible through tenant management.
func (s *TenantService) findTenant(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsTenant() {
		return nil, shared.ErrNotFound
	}
	return user, nil
}
