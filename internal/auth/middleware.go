package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
	"github.com/dukkan-erp/dukkan/internal/shared"
)

// Middleware authenticates requests with bearer tokens and enforces the
// admin gate where required.
type Middleware struct {
	Tokens *TokenManager
	Repo   Repository
	Logger *slog.Logger
}

// RequireUser resolves the bearer token and injects the user into context.
func (m Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		userID, err := m.Tokens.Resolve(r.Context(), token)
		if err != nil {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		user, err := m.Repo.FindByID(r.Context(), userID)
		if err != nil {
			// Token survived the account; treat as unauthenticated.
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		ctx := shared.ContextWithUser(r.Context(), shared.CurrentUser{
			ID:           user.ID,
			Username:     user.Username,
			FullName:     user.FullName,
			Role:         user.Role,
			MobileAccess: user.MobileAccess,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin denies with a fixed message when the caller is not an admin.
// It must run after RequireUser.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := shared.UserFromContext(r.Context())
		if !ok || !user.IsAdmin() {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
