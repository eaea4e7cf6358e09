package preparation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type fakeRepo struct {
	lists  map[int64]*List
	items  map[int64]*Item
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lists: make(map[int64]*List), items: make(map[int64]*Item), nextID: 1}
}

func (r *fakeRepo) List(ctx context.Context, req ListListsRequest) ([]List, int, error) {
	var out []List
	for _, l := range r.lists {
		out = append(out, *l)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Get(ctx context.Context, id int64) (*ListDetail, error) {
	l, ok := r.lists[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	detail := ListDetail{List: *l, Items: []Item{}}
	for _, item := range r.items {
		if item.ListID == id {
			detail.Items = append(detail.Items, *item)
		}
	}
	return &detail, nil
}

func (r *fakeRepo) SetStatus(ctx context.Context, id int64, status string, stampCompleted bool) error {
	l, ok := r.lists[id]
	if !ok {
		return httpx.ErrNotFound
	}
	l.Status = status
	return nil
}

func (r *fakeRepo) ToggleItem(ctx context.Context, listID, itemID int64) (bool, error) {
	item, ok := r.items[itemID]
	if !ok || item.ListID != listID {
		return false, httpx.ErrNotFound
	}
	item.Prepared = !item.Prepared
	return item.Prepared, nil
}

func (r *fakeRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	return fn(ctx, r)
}

func (r *fakeRepo) InsertList(ctx context.Context, list List) (int64, error) {
	id := r.nextID
	r.nextID++
	list.ID = id
	r.lists[id] = &list
	return id, nil
}

func (r *fakeRepo) SetNumber(ctx context.Context, id int64, number string) error {
	r.lists[id].ListNumber = number
	return nil
}

func (r *fakeRepo) InsertItem(ctx context.Context, item Item) error {
	id := r.nextID
	r.nextID++
	item.ID = id
	r.items[id] = &item
	return nil
}

func TestCreateNumbersAndStartsPending(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	list, err := service.Create(context.Background(), 5, CreateListRequest{
		CustomerName: "Corner Market",
		Items:        []ItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, "L000001", list.ListNumber)
	require.Equal(t, StatusPending, list.Status)
}

func TestToggleItemFlipsPreparedBothWays(t *testing.T) {
	repo := newFakeRepo()
	repo.lists[1] = &List{ID: 1, Status: StatusPending}
	repo.items[2] = &Item{ID: 2, ListID: 1, ProductID: 7, Quantity: 1}
	service := NewService(repo)

	prepared, err := service.ToggleItem(context.Background(), 1, 2)
	require.NoError(t, err)
	require.True(t, prepared)

	prepared, err = service.ToggleItem(context.Background(), 1, 2)
	require.NoError(t, err)
	require.False(t, prepared)
}

func TestToggleItemUnknownItem(t *testing.T) {
	repo := newFakeRepo()
	repo.lists[1] = &List{ID: 1, Status: StatusPending}
	service := NewService(repo)

	_, err := service.ToggleItem(context.Background(), 1, 404)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestToggleItemWrongList(t *testing.T) {
	repo := newFakeRepo()
	repo.lists[1] = &List{ID: 1, Status: StatusPending}
	repo.items[2] = &Item{ID: 2, ListID: 9, ProductID: 7, Quantity: 1}
	service := NewService(repo)

	_, err := service.ToggleItem(context.Background(), 1, 2)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := newFakeRepo()
	repo.lists[1] = &List{ID: 1, Status: StatusPending}
	service := NewService(repo)

	err := service.UpdateStatus(context.Background(), 1, "shipped")
	require.ErrorIs(t, err, httpx.ErrValidation)

	require.NoError(t, service.UpdateStatus(context.Background(), 1, StatusCompleted))
	require.Equal(t, StatusCompleted, repo.lists[1].Status)
}
