package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// MinPasswordLength is enforced on password changes and user creation.
const MinPasswordLength = 6

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates username/password credentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", httpx.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", httpx.ErrUnauthorized)
	}
	return user, nil
}

// Profile loads the account behind an authenticated request.
func (s *Service) Profile(ctx context.Context, userID int64) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ChangePassword swaps the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", httpx.ErrValidation)
	}
	if len(next) < MinPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", httpx.ErrValidation, MinPasswordLength)
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return fmt.Errorf("%w: current password is incorrect", httpx.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return s.repo.UpdatePasswordHash(ctx, userID, string(hash))
}

// EnsureDefaultAdmin creates the bootstrap admin account when it is absent.
func (s *Service) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, httpx.ErrNotFound) {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("auth: hash bootstrap password: %w", err)
	}
	_, err = s.repo.CreateUser(ctx, User{
		Username:     username,
		FullName:     "System Administrator",
		Role:         RoleAdmin,
		MobileAccess: true,
		PasswordHash: string(hash),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
