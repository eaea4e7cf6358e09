package users

import "time"

// User is an operator account. Password hashes never leave the package
// boundary in responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	MobileAccess bool      `json:"mobile_access"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserRequest carries fields for a new account.
type CreateUserRequest struct {
	Username     string `json:"username" validate:"required,max=80"`
	Password     string `json:"password" validate:"required,min=6"`
	FullName     string `json:"full_name" validate:"required,max=200"`
	Role         string `json:"role" validate:"omitempty,oneof=admin user"`
	MobileAccess bool   `json:"mobile_access"`
}

// UpdateUserRequest carries optional field updates.
type UpdateUserRequest struct {
	Username     *string `json:"username,omitempty" validate:"omitempty,max=80"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=6"`
	FullName     *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=admin user"`
	MobileAccess *bool   `json:"mobile_access,omitempty"`
}
