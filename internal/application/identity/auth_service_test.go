package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/billing"
	"github.com/rentms/backend/internal/domain/complaint"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/rentms/backend/internal/infrastructure/auth"
	"github.com/rentms/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindFirstByRole(ctx context.Context, role identity.Role) (*identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role identity.Role, activeOnly bool) (int64, error) {
	args := m.Called(ctx, role, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ identity.UserRepository = (*MockUserRepository)(nil)

// MockBillRepository is a mock implementation of BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByTenantAndPeriod(ctx context.Context, tenantID uuid.UUID, period string) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]billing.Bill, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) SumTotalByStatus(ctx context.Context, status billing.BillStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBillRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

var _ billing.BillRepository = (*MockBillRepository)(nil)

// MockComplaintRepository is a mock implementation of ComplaintRepository
type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) FindAll(ctx context.Context, status *complaint.Status) ([]complaint.Complaint, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) ([]complaint.Complaint, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]complaint.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) CountUnresolved(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockComplaintRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

var _ complaint.ComplaintRepository = (*MockComplaintRepository)(nil)

// =============================================================================
// Test helpers
// =============================================================================

var testHasher = auth.NewBcryptHasher()

func newAuthService(userRepo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests-only",
		Expiration: time.Hour,
		Issuer:     "rentms-test",
	})
	return NewAuthService(userRepo, testHasher, jwtService, auth.NewInMemoryTokenBlacklist())
}

func newTenantWithPassword(t *testing.T, password string) *identity.User {
	hash, err := testHasher.Hash(password)
	require.NoError(t, err)
	tenant, err := identity.NewTenant("John Doe", "john@example.com", "1234567890", hash, "A-101", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return tenant
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// =============================================================================
// Login Tests
// =============================================================================

func TestAuthService_Login(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByEmail", ctx, "john@example.com").Return(tenant, nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "john@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "john@example.com", resp.User.Email)
	assert.Equal(t, "tenant", resp.User.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByEmail", ctx, "john@example.com").Return(tenant, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "john@example.com", Password: "wrong"})

	assertCode(t, err, "UNAUTHORIZED")
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	// Unknown email and wrong password are indistinguishable to the caller
	assertCode(t, err, "UNAUTHORIZED")
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	tenant.SetActive(false)
	userRepo.On("FindByEmail", ctx, "john@example.com").Return(tenant, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "john@example.com", Password: "secret123"})

	assertCode(t, err, "FORBIDDEN")
}

// =============================================================================
// Me Tests
// =============================================================================

func TestAuthService_Me(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)

	resp, err := svc.Me(ctx, tenant.GetID())

	require.NoError(t, err)
	assert.Equal(t, tenant.GetID(), resp.ID)
	assert.Equal(t, "John Doe", resp.Name)
}

// =============================================================================
// ChangePassword Tests
// =============================================================================

func TestAuthService_ChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	oldHash := tenant.PasswordHash
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)
	userRepo.On("Save", ctx, tenant).Return(nil)

	err := svc.ChangePassword(ctx, tenant.GetID(), ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret456",
	})

	require.NoError(t, err)
	assert.NotEqual(t, oldHash, tenant.PasswordHash)
	assert.True(t, testHasher.Compare(tenant.PasswordHash, "newsecret456"))
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)

	err := svc.ChangePassword(ctx, tenant.GetID(), ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret456",
	})

	assertCode(t, err, "UNAUTHORIZED")
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_ChangePassword_TooShort(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	tenant := newTenantWithPassword(t, "secret123")
	userRepo.On("FindByID", ctx, tenant.GetID()).Return(tenant, nil)

	err := svc.ChangePassword(ctx, tenant.GetID(), ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "short",
	})

	assertCode(t, err, "INVALID_PASSWORD")
}

// =============================================================================
// Logout Tests
// =============================================================================

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-unit-tests-only",
		Expiration: time.Hour,
		Issuer:     "rentms-test",
	})
	svc := NewAuthService(userRepo, testHasher, jwtService, blacklist)
	ctx := context.Background()

	token, err := jwtService.GenerateToken(auth.GenerateTokenInput{UserID: uuid.New(), Role: "tenant"})
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	blacklisted, err := blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, blacklisted)
}

// =============================================================================
// EnsureDefaultAdmin Tests
// =============================================================================

func TestAuthService_EnsureDefaultAdmin_CreatesWhenMissing(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("CountByRole", ctx, identity.RoleAdmin, false).Return(int64(0), nil)
	userRepo.On("Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
		return u.IsAdmin() && u.Email == "admin@rentms.com"
	})).Return(nil)

	created, err := svc.EnsureDefaultAdmin(ctx, "Admin", "admin@rentms.com", "admin123")

	require.NoError(t, err)
	assert.True(t, created)
	userRepo.AssertExpectations(t)
}

func TestAuthService_EnsureDefaultAdmin_SkipsWhenPresent(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)
	ctx := context.Background()

	userRepo.On("CountByRole", ctx, identity.RoleAdmin, false).Return(int64(1), nil)

	created, err := svc.EnsureDefaultAdmin(ctx, "Admin", "admin@rentms.com", "admin123")

	require.NoError(t, err)
	assert.False(t, created)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
