package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type memoryRepo struct {
	users  map[int64]*User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]*User)}
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *memoryRepo) CreateUser(ctx context.Context, user User) (int64, error) {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = &user
	return user.ID, nil
}

func seedUser(t *testing.T, repo *memoryRepo, username, password, role string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := repo.CreateUser(context.Background(), User{
		Username:     username,
		FullName:     username,
		Role:         role,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)
	return id
}

func TestAuthenticate(t *testing.T) {
	repo := newMemoryRepo()
	seedUser(t, repo, "admin", "admin123", RoleAdmin)
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "ghost", "admin123")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	repo := newMemoryRepo()
	id := seedUser(t, repo, "clerk", "secret1", RoleUser)
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, id, "wrong", "longenough")
	require.ErrorIs(t, err, httpx.ErrValidation)

	err = svc.ChangePassword(ctx, id, "secret1", "tiny")
	require.ErrorIs(t, err, httpx.ErrValidation)

	err = svc.ChangePassword(ctx, id, "secret1", "brandnew")
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "clerk", "brandnew")
	require.NoError(t, err)
}

func TestEnsureDefaultAdmin(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.False(t, created)

	user, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, user.Role)
}
