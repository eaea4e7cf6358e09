package suppliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type fakeRepo struct {
	suppliers map[int64]*Supplier
	updates   map[string]interface{}
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{suppliers: make(map[int64]*Supplier), nextID: 1}
}

func (r *fakeRepo) Get(ctx context.Context, id int64) (*Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, req ListSuppliersRequest) ([]Supplier, int, error) {
	var out []Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Create(ctx context.Context, supplier Supplier) (int64, error) {
	id := r.nextID
	r.nextID++
	supplier.ID = id
	r.suppliers[id] = &supplier
	return id, nil
}

func (r *fakeRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	s, ok := r.suppliers[id]
	if !ok {
		return httpx.ErrNotFound
	}
	r.updates = updates
	if v, ok := updates["name"]; ok {
		s.Name = v.(string)
	}
	if v, ok := updates["balance"]; ok {
		s.Balance = v.(float64)
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.suppliers[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func TestCreateRequiresName(t *testing.T) {
	service := NewService(newFakeRepo())

	_, err := service.Create(context.Background(), CreateSupplierRequest{Name: " "})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateNeverTouchesBalance(t *testing.T) {
	repo := newFakeRepo()
	repo.suppliers[1] = &Supplier{ID: 1, Name: "Wholesale Foods Co", Balance: 75}
	service := NewService(repo)

	name := "Wholesale Foods Company"
	updated, err := service.Update(context.Background(), 1, UpdateSupplierRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Wholesale Foods Company", updated.Name)
	require.InDelta(t, 75.0, updated.Balance, 1e-9)
	require.NotContains(t, repo.updates, "balance")
}

func TestUpdateUnknownSupplier(t *testing.T) {
	service := NewService(newFakeRepo())

	name := "Nobody"
	_, err := service.Update(context.Background(), 404, UpdateSupplierRequest{Name: &name})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
