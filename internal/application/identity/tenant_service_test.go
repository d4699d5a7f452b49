package identity

import (
	"context"
	"testing"

	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test helpers
// =============================================================================

func newTenantService(userRepo *MockUserRepository, billRepo *MockBillRepository, complaintRepo *MockComplaintRepository) *TenantService {
	return NewTenantService(userRepo, billRepo, complaintRepo, testHasher)
}

func createTestAdmin(t *testing.T) *identity.User {
	admin, err := identity.NewAdmin("Admin", "admin@rentms.com", "", "$2a$10$hash")
	require.NoError(t, err)
	return admin
}

// =============================================================================
// Create Tests
// =============================================================================

func TestTenantService_Create(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	userRepo.On("FindByEmail", ctx, "jane@example.com").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
		return u.IsTenant() && u.Email == "jane@example.com"
	})).Return(nil)

	resp, err := svc.Create(ctx, CreateTenantRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "0987654321",
		Password: "secret123",
		Unit:     "B-202",
		BaseRent: decimal.NewFromInt(1200),
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resp.Name)
	assert.Equal(t, "tenant", resp.Role)
	assert.True(t, resp.BaseRent.Equal(decimal.NewFromInt(1200)))
	assert.True(t, resp.IsActive)
	userRepo.AssertExpectations(t)
}

func TestTenantService_Create_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	existing := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByEmail", ctx, "john@example.com").Return(existing, nil)

	_, err := svc.Create(ctx, CreateTenantRequest{
		Name:     "Another John",
		Email:    "john@example.com",
		Phone:    "1234567890",
		Password: "secret123",
		Unit:     "C-303",
		BaseRent: decimal.NewFromInt(900),
	})

	assertCode(t, err, "ALREADY_EXISTS")
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTenantService_Create_PasswordTooShort(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	userRepo.On("FindByEmail", ctx, "jane@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Create(ctx, CreateTenantRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "0987654321",
		Password: "short",
		Unit:     "B-202",
		BaseRent: decimal.NewFromInt(1200),
	})

	assertCode(t, err, "INVALID_PASSWORD")
}

// =============================================================================
// Get / List Tests
// =============================================================================

func TestTenantService_Get(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)

	resp, err := svc.Get(ctx, tenant.GetID())

	require.NoError(t, err)
	assert.Equal(t, tenant.GetID(), resp.ID)
	assert.Equal(t, "A-101", resp.Unit)
}

func TestTenantService_Get_AdminNotVisible(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	admin := createTestAdmin(t)
	userRepo.On("FindByID", ctx, admin.GetID()).Return(admin, nil)

	_, err := svc.Get(ctx, admin.GetID())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTenantService_List(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	a := newTenantWithPassword(t, "secret123")
	b := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByRole", ctx, identity.RoleTenant).Return([]identity.User{*a, *b}, nil)

	resp, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, a.GetID(), resp[0].ID)
}

// =============================================================================
// Update Tests
// =============================================================================

func TestTenantService_Update(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)
	userRepo.On("Save", ctx, tenant).Return(nil)

	name := "John Updated"
	rent := decimal.NewFromInt(1500)
	active := false
	resp, err := svc.Update(ctx, tenant.GetID(), UpdateTenantRequest{
		Name:     &name,
		BaseRent: &rent,
		IsActive: &active,
	})

	require.NoError(t, err)
	assert.Equal(t, "John Updated", resp.Name)
	assert.True(t, resp.BaseRent.Equal(decimal.NewFromInt(1500)))
	assert.False(t, resp.IsActive)
	// Untouched fields keep their values
	assert.Equal(t, "A-101", resp.Unit)
}

func TestTenantService_Update_NegativeBaseRent(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTenantService(userRepo, new(MockBillRepository), new(MockComplaintRepository))
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)

	rent := decimal.NewFromInt(-100)
	_, err := svc.Update(ctx, tenant.GetID(), UpdateTenantRequest{BaseRent: &rent})

	assertCode(t, err, "INVALID_BASE_RENT")
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestTenantService_Delete_CascadesBillsAndComplaints(t *testing.T) {
	userRepo := new(MockUserRepository)
	billRepo := new(MockBillRepository)
	complaintRepo := new(MockComplaintRepository)
	svc := newTenantService(userRepo, billRepo, complaintRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)
	billRepo.On("DeleteByTenant", ctx, tenant.GetID()).Return(nil)
	complaintRepo.On("DeleteByTenant", ctx, tenant.GetID()).Return(nil)
	userRepo.On("Delete", ctx, tenant.GetID()).Return(nil)

	err := svc.Delete(ctx, tenant.GetID())

	require.NoError(t, err)
	billRepo.AssertExpectations(t)
	complaintRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestTenantService_Delete_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	billRepo := new(MockBillRepository)
	svc := newTenantService(userRepo, billRepo, new(MockComplaintRepository))
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(nil, shared.ErrNotFound)

	err := svc.Delete(ctx, tenant.GetID())

	assert.ErrorIs(t, err, shared.ErrNotFound)
	billRepo.AssertNotCalled(t, "DeleteByTenant", mock.Anything, mock.Anything)
}
