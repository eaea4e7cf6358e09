package auth

import "time"

// Roles supported by the system. There is no permission catalogue beyond
// the admin/user split.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an authenticated user account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	MobileAccess bool      `json:"mobile_access"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
