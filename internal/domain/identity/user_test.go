package identity

import (
	"testing"

	"github.com/rentms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestTenant(t *testing.T) *User {
	tenant, err := NewTenant("John Doe", "john@example.com", "1234567890", "hashed-pw", "A-101", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return tenant
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// ============================================
// Role Tests
// ============================================

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleTenant.IsValid())
	assert.False(t, Role("manager").IsValid())
	assert.False(t, Role("").IsValid())
}

// ============================================
// NormalizeEmail Tests
// ============================================

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"John@Example.COM", "john@example.com"},
		{"  john@example.com  ", "john@example.com"},
		{"john@example.com", "john@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeEmail(tt.input))
		})
	}
}

// ============================================
// NewTenant Tests
// ============================================

func TestNewTenant(t *testing.T) {
	tenant, err := NewTenant("John Doe", "John@Example.com", "1234567890", "hashed-pw", "A-101", decimal.NewFromInt(1000))

	require.NoError(t, err)
	assert.Equal(t, "john@example.com", tenant.Email)
	assert.Equal(t, RoleTenant, tenant.Role)
	assert.True(t, tenant.IsTenant())
	assert.False(t, tenant.IsAdmin())
	assert.True(t, tenant.IsActive)
	assert.True(t, tenant.CanLogin())
	assert.True(t, tenant.BaseRent.Equal(decimal.NewFromInt(1000)))
}

func TestNewTenant_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		phone    string
		hash     string
		baseRent decimal.Decimal
		wantCode string
	}{
		{"empty name", "", "a@b.com", "123", "h", decimal.Zero, "INVALID_NAME"},
		{"empty email", "John", "   ", "123", "h", decimal.Zero, "INVALID_EMAIL"},
		{"empty phone", "John", "a@b.com", "", "h", decimal.Zero, "INVALID_PHONE"},
		{"empty password hash", "John", "a@b.com", "123", "", decimal.Zero, "INVALID_PASSWORD"},
		{"negative base rent", "John", "a@b.com", "123", "h", decimal.NewFromInt(-100), "INVALID_BASE_RENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTenant(tt.userName, tt.email, tt.phone, tt.hash, "A-1", tt.baseRent)
			assertDomainCode(t, err, tt.wantCode)
		})
	}
}

// ============================================
// NewAdmin Tests
// ============================================

func TestNewAdmin(t *testing.T) {
	admin, err := NewAdmin("Admin", "Admin@RentMS.com", "", "hashed-pw")

	require.NoError(t, err)
	assert.Equal(t, "admin@rentms.com", admin.Email)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.BaseRent.IsZero())
}

func TestNewAdmin_Validation(t *testing.T) {
	_, err := NewAdmin("", "a@b.com", "", "h")
	assertDomainCode(t, err, "INVALID_INPUT")

	_, err = NewAdmin("Admin", "", "", "h")
	assertDomainCode(t, err, "INVALID_INPUT")

	_, err = NewAdmin("Admin", "a@b.com", "", "")
	assertDomainCode(t, err, "INVALID_INPUT")
}

// ============================================
// User Mutation Tests
// ============================================

func TestUser_Setters(t *testing.T) {
	tenant := createTestTenant(t)

	require.NoError(t, tenant.SetName("Jane Doe"))
	assert.Equal(t, "Jane Doe", tenant.Name)
	assertDomainCode(t, tenant.SetName(""), "INVALID_NAME")

	tenant.SetPhone("0987654321")
	assert.Equal(t, "0987654321", tenant.Phone)

	tenant.SetUnit("B-202")
	assert.Equal(t, "B-202", tenant.Unit)

	require.NoError(t, tenant.SetBaseRent(decimal.NewFromInt(1500)))
	assert.True(t, tenant.BaseRent.Equal(decimal.NewFromInt(1500)))
	assertDomainCode(t, tenant.SetBaseRent(decimal.NewFromInt(-1)), "INVALID_BASE_RENT")
}

func TestUser_SetActive(t *testing.T) {
	tenant := createTestTenant(t)

	tenant.SetActive(false)
	assert.False(t, tenant.IsActive)
	assert.False(t, tenant.CanLogin())

	tenant.SetActive(true)
	assert.True(t, tenant.CanLogin())
}

func TestUser_ChangePassword(t *testing.T) {
	tenant := createTestTenant(t)

	require.NoError(t, tenant.ChangePassword("new-hash"))
	assert.Equal(t, "new-hash", tenant.PasswordHash)

	assertDomainCode(t, tenant.ChangePassword(""), "INVALID_PASSWORD")
}
