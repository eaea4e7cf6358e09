package shared

import "context"

// CurrentUser carries the authenticated user identity through a request.
type CurrentUser struct {
	ID           int64
	Username     string
	FullName     string
	Role         string
	MobileAccess bool
}

// IsAdmin reports whether the user holds the admin role.
func (u CurrentUser) IsAdmin() bool {
	return u.Role == "admin"
}

type userContextKey struct{}

// ContextWithUser stores the authenticated user in context.
func ContextWithUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated user from context.
func UserFromContext(ctx context.Context) (CurrentUser, bool) {
	user, ok := ctx.Value(userContextKey{}).(CurrentUser)
	return user, ok
}
