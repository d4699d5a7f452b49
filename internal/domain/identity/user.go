package identity

import (
	"strings"

	"github.com/rentms/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Role represents the role of a user in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTenant
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// User represents a system account. Admins manage tenants, bills and
// complaints; tenants view their own bills and submit complaints.
type User struct {
	shared.BaseEntity
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Unit         string
	BaseRent     decimal.Decimal
	IsActive     bool
}

// NormalizeEmail lowercases and trims an email address. Email uniqueness
// is case-insensitive, so every lookup and write goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewTenant creates a new tenant account
func NewTenant(name, email, phone, passwordHash, unit string, baseRent decimal.Decimal) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	email = NormalizeEmail(email)
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if baseRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BASE_RENT", "Base rent cannot be negative")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         RoleTenant,
		Unit:         unit,
		BaseRent:     baseRent,
		IsActive:     true,
	}, nil
}

// NewAdmin creates a new admin account
func NewAdmin(name, email, phone, passwordHash string) (*User, error) {
	email = NormalizeEmail(email)
	if name == "" || email == "" || passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name, email and password are required")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         RoleAdmin,
		BaseRent:     decimal.Zero,
		IsActive:     true,
	}, nil
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsTenant returns true if the user has the tenant role
func (u *User) IsTenant() bool {
	return u.Role == RoleTenant
}

// CanLogin returns true if the account may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive
}

// SetName updates the display name
func (u *User) SetName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	u.Name = name
	u.Touch()
	return nil
}

// SetPhone updates the contact phone
func (u *User) SetPhone(phone string) {
	u.Phone = phone
	u.Touch()
}

// SetUnit updates the assigned unit label
func (u *User) SetUnit(unit string) {
	u.Unit = unit
	u.Touch()
}

// SetBaseRent updates the monthly base rent used as the default when
// generating bills for this tenant
func (u *User) SetBaseRent(baseRent decimal.Decimal) error {
	if baseRent.IsNegative() {
		return shared.NewDomainError("INVALID_BASE_RENT", "Base rent cannot be negative")
	}
	u.BaseRent = baseRent
	u.Touch()
	return nil
}

// SetActive activates or deactivates the account
func (u *User) SetActive(active bool) {
	u.IsActive = active
	u.Touch()
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	u.PasswordHash = passwordHash
	u.Touch()
	return nil
}
