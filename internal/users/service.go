package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

// Service implements user management rules.
type Service struct {
	repo Repository
}

// NewService builds Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every account.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Get returns one account.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

// Create adds an account with a hashed password.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username already exists", httpx.ErrDuplicate)
	}

	role := req.Role
	if role == "" {
		role = "user"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Username:     req.Username,
		FullName:     req.FullName,
		Role:         role,
		MobileAccess: req.MobileAccess,
		PasswordHash: string(hash),
	}
	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return &user, nil
}

// Update applies partial changes to an account.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	updates := make(map[string]interface{})
	if req.Username != nil {
		existing, err := s.repo.GetByUsername(ctx, *req.Username)
		if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return nil, fmt.Errorf("check existing user: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%w: username already exists", httpx.ErrDuplicate)
		}
		updates["username"] = *req.Username
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.MobileAccess != nil {
		updates["mobile_access"] = *req.MobileAccess
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes an account. Callers may not delete themselves.
func (s *Service) Delete(ctx context.Context, id, callerID int64) error {
	if id == callerID {
		return fmt.Errorf("%w: cannot delete your own account", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
