package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ChangePasswordRequest represents a password change by the authenticated user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// CreateTenantRequest represents an admin creating a tenant account
type CreateTenantRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Email    string          `json:"email" binding:"required,email"`
	Phone    string          `json:"phone" binding:"required,max=50"`
	Password string          `json:"password" binding:"required,min=6"`
	Unit     string          `json:"unit" binding:"max=50"`
	BaseRent decimal.Decimal `json:"base_rent"`
}

// UpdateTenantRequest represents an admin updating a tenant account
type UpdateTenantRequest struct {
	Name     *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone    *string          `json:"phone" binding:"omitempty,max=50"`
	Unit     *string          `json:"unit" binding:"omitempty,max=50"`
	BaseRent *decimal.Decimal `json:"base_rent"`
	IsActive *bool            `json:"is_active"`
}

// UserResponse represents a user account in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	Role      string          `json:"role"`
	Unit      string          `json:"unit,omitempty"`
	BaseRent  decimal.Decimal `json:"base_rent"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.GetID(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role.String(),
		Unit:      u.Unit,
		BaseRent:  u.BaseRent,
		IsActive:  u.IsActive,
		CreatedAt: u.GetCreatedAt(),
		UpdatedAt: u.GetUpdatedAt(),
	}
}
