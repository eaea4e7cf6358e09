package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type fakeRepo struct {
	customers map[int64]*Customer
	updates   map[string]interface{}
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{customers: make(map[int64]*Customer), nextID: 1}
}

func (r *fakeRepo) Get(ctx context.Context, id int64) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var out []Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Create(ctx context.Context, customer Customer) (int64, error) {
	id := r.nextID
	r.nextID++
	customer.ID = id
	r.customers[id] = &customer
	return id, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, ok := r.customers[id]
	if !ok {
		return httpx.ErrNotFound
	}
	r.updates = updates
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["customer_type"]; ok {
		c.CustomerType = v.(string)
	}
	if v, ok := updates["balance"]; ok {
		c.Balance = v.(float64)
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func TestCreateDefaultsToRegularType(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	customer, err := service.Create(context.Background(), CreateCustomerRequest{Name: "Corner Market"})
	require.NoError(t, err)
	require.Equal(t, TypeRegular, customer.CustomerType)
	require.Zero(t, customer.Balance)
}

func TestCreateRequiresName(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Create(context.Background(), CreateCustomerRequest{Name: "  "})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateNeverTouchesBalance(t *testing.T) {
	repo := newFakeRepo()
	repo.customers[1] = &Customer{ID: 1, Name: "Corner Market", CustomerType: TypeRegular, Balance: 50}
	service := NewService(repo)

	name := "Corner Market Ltd"
	updated, err := service.Update(context.Background(), 1, UpdateCustomerRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Corner Market Ltd", updated.Name)
	require.InDelta(t, 50.0, updated.Balance, 1e-9)
	require.NotContains(t, repo.updates, "balance")
}

func TestUpdateUnknownCustomer(t *testing.T) {
	service := NewService(newFakeRepo())

	name := "Nobody"
	_, err := service.Update(context.Background(), 404, UpdateCustomerRequest{Name: &name})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
