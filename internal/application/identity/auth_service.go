package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rentms/backend/internal/domain/identity"
	"github.com/rentms/backend/internal/domain/shared"
	"github.com/rentms/backend/internal/infrastructure/auth"
)

// invalid credentials deliberately do not reveal whether the email exists
var errInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		blacklist:  blacklist,
	}
}

// Login authenticates a user by email and password and issues a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, errInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("FORBIDDEN", "Account has been deactivated")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID: user.GetID(),
		Email:  user.Email,
		Role:   user.Role.String(),
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// Me returns the authenticated user's own profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// ChangePassword changes the authenticated user's password after verifying
// the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.hasher.Compare(user.PasswordHash, req.CurrentPassword) {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return shared.NewDomainError("INVALID_PASSWORD", err.Error())
		}
		return err
	}
	if err := user.ChangePassword(hash); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// Logout revokes the presented token for the remainder of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// EnsureDefaultAdmin creates the bootstrap admin account if no admin exists
// yet. Returns true when an account was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, name, email, password string) (bool, error) {
	count, err := s.userRepo.CountByRole(ctx, identity.RoleAdmin, false)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin, err := identity.NewAdmin(name, email, "", hash)
	if err != nil {
		return false, err
	}

	if err := s.userRepo.Save(ctx, admin); err != nil {
		// Another instance may have seeded concurrently
		if errors.Is(err, shared.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
