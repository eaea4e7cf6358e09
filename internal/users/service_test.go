package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type memoryRepo struct {
	users  map[int64]*User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[int64]*User)}
}

func (r *memoryRepo) List(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryRepo) Create(ctx context.Context, user User) (int64, error) {
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = &user
	return user.ID, nil
}

func (r *memoryRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["username"]; ok {
		u.Username = v.(string)
	}
	if v, ok := updates["full_name"]; ok {
		u.FullName = v.(string)
	}
	if v, ok := updates["role"]; ok {
		u.Role = v.(string)
	}
	if v, ok := updates["mobile_access"]; ok {
		u.MobileAccess = v.(bool)
	}
	if v, ok := updates["password_hash"]; ok {
		u.PasswordHash = v.(string)
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func TestCreateRejectsDuplicateUsername(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateUserRequest{Username: "clerk", Password: "secret1", FullName: "Clerk"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateUserRequest{Username: "clerk", Password: "secret2", FullName: "Other"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateDefaultsRole(t *testing.T) {
	svc := NewService(newMemoryRepo())

	user, err := svc.Create(context.Background(), CreateUserRequest{Username: "clerk", Password: "secret1", FullName: "Clerk"})
	require.NoError(t, err)
	require.Equal(t, "user", user.Role)
	require.NotEqual(t, "secret1", user.PasswordHash)
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Username: "boss", Password: "secret1", FullName: "Boss", Role: "admin"})
	require.NoError(t, err)

	err = svc.Delete(ctx, user.ID, user.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)

	err = svc.Delete(ctx, user.ID, user.ID+1)
	require.NoError(t, err)
}

func TestUpdateRole(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserRequest{Username: "clerk", Password: "secret1", FullName: "Clerk"})
	require.NoError(t, err)

	role := "admin"
	updated, err := svc.Update(ctx, user.ID, UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	require.Equal(t, "admin", updated.Role)
}
