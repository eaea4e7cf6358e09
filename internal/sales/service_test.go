package sales

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type memoryStore struct {
	invoices  map[int64]*Invoice
	items     []InvoiceItem
	stock     map[int64]float64
	balances  map[int64]float64
	movements []string
	nextID    int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		invoices: make(map[int64]*Invoice),
		stock:    make(map[int64]float64),
		balances: make(map[int64]float64),
		nextID:   1,
	}
}

func (s *memoryStore) clone() *memoryStore {
	out := newMemoryStore()
	out.nextID = s.nextID
	for id, inv := range s.invoices {
		cp := *inv
		out.invoices[id] = &cp
	}
	out.items = append(out.items, s.items...)
	out.movements = append(out.movements, s.movements...)
	for k, v := range s.stock {
		out.stock[k] = v
	}
	for k, v := range s.balances {
		out.balances[k] = v
	}
	return out
}

type memoryRepo struct {
	store *memoryStore
}

func (r *memoryRepo) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var out []Invoice
	for _, inv := range r.store.invoices {
		cp := *inv
		for _, item := range r.store.items {
			if item.InvoiceID == cp.ID {
				cp.ItemsCount++
			}
		}
		out = append(out, cp)
	}
	return out, len(out), nil
}

func (r *memoryRepo) Get(ctx context.Context, id int64) (*InvoiceDetail, error) {
	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	detail := InvoiceDetail{Invoice: *inv}
	for _, item := range r.store.items {
		if item.InvoiceID == id {
			detail.Items = append(detail.Items, item)
		}
	}
	return &detail, nil
}

// WithTx runs fn against a staged copy and commits only on success,
// mirroring transactional rollback.
func (r *memoryRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	staged := r.store.clone()
	if err := fn(ctx, &memoryTx{store: staged}); err != nil {
		return err
	}
	r.store = staged
	return nil
}

type memoryTx struct {
	store *memoryStore
}

func (t *memoryTx) InsertInvoice(ctx context.Context, invoice Invoice) (int64, error) {
	id := t.store.nextID
	t.store.nextID++
	invoice.ID = id
	t.store.invoices[id] = &invoice
	return id, nil
}

func (t *memoryTx) SetNumber(ctx context.Context, id int64, number string) error {
	t.store.invoices[id].InvoiceNumber = number
	return nil
}

func (t *memoryTx) InsertItem(ctx context.Context, item InvoiceItem) error {
	t.store.items = append(t.store.items, item)
	return nil
}

func (t *memoryTx) AdjustProductStock(ctx context.Context, productID int64, delta float64) error {
	if _, ok := t.store.stock[productID]; !ok {
		return httpx.ErrNotFound
	}
	t.store.stock[productID] += delta
	return nil
}

func (t *memoryTx) InsertMovement(ctx context.Context, productID int64, quantity float64, invoiceID, userID int64) error {
	t.store.movements = append(t.store.movements, fmt.Sprintf("sale/%d", invoiceID))
	return nil
}

func (t *memoryTx) SetTotals(ctx context.Context, id int64, total, discount, final float64) error {
	inv := t.store.invoices[id]
	inv.TotalAmount = total
	inv.Discount = discount
	inv.FinalAmount = final
	return nil
}

func (t *memoryTx) AdjustCustomerBalance(ctx context.Context, customerID int64, delta float64) error {
	if _, ok := t.store.balances[customerID]; !ok {
		return httpx.ErrNotFound
	}
	t.store.balances[customerID] += delta
	return nil
}

func TestPostComputesTotalsAndStock(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.stock[1] = 50
	repo.store.stock[2] = 10
	service := NewService(repo, nil)

	result, err := service.Post(context.Background(), 7, CreateInvoiceRequest{
		PaymentType:     PaymentCash,
		DiscountPercent: 10,
		Items: []LineRequest{
			{ProductID: 1, Quantity: 3, UnitPrice: 5},
			{ProductID: 2, Quantity: 2, UnitPrice: 10},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "S000001", result.InvoiceNumber)
	require.InDelta(t, 35.0, result.TotalAmount, 1e-9)
	require.InDelta(t, 3.5, result.Discount, 1e-9)
	require.InDelta(t, 31.5, result.FinalAmount, 1e-9)

	require.InDelta(t, 47.0, repo.store.stock[1], 1e-9)
	require.InDelta(t, 8.0, repo.store.stock[2], 1e-9)
	require.Len(t, repo.store.movements, 2)
	require.Equal(t, "sale/1", repo.store.movements[0])
	require.Equal(t, StatusCompleted, repo.store.invoices[1].Status)

	listed, total, err := service.List(context.Background(), ListInvoicesRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, 2, listed[0].ItemsCount)
}

func TestPostCreditIncreasesCustomerBalance(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.stock[1] = 5
	repo.store.balances[9] = 100
	service := NewService(repo, nil)

	customerID := int64(9)
	result, err := service.Post(context.Background(), 1, CreateInvoiceRequest{
		CustomerID:  &customerID,
		PaymentType: PaymentCredit,
		Items:       []LineRequest{{ProductID: 1, Quantity: 2, UnitPrice: 25}},
	})
	require.NoError(t, err)
	require.InDelta(t, 50.0, result.FinalAmount, 1e-9)
	require.InDelta(t, 150.0, repo.store.balances[9], 1e-9)
}

func TestPostCashLeavesBalancesAlone(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.stock[1] = 5
	repo.store.balances[9] = 100
	service := NewService(repo, nil)

	customerID := int64(9)
	_, err := service.Post(context.Background(), 1, CreateInvoiceRequest{
		CustomerID:  &customerID,
		PaymentType: PaymentCash,
		Items:       []LineRequest{{ProductID: 1, Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)
	require.InDelta(t, 100.0, repo.store.balances[9], 1e-9)
}

func TestPostMissingProductRollsBack(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.stock[1] = 5
	service := NewService(repo, nil)

	_, err := service.Post(context.Background(), 1, CreateInvoiceRequest{
		PaymentType: PaymentCash,
		Items: []LineRequest{
			{ProductID: 1, Quantity: 1, UnitPrice: 10},
			{ProductID: 404, Quantity: 1, UnitPrice: 10},
		},
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, httpx.ErrNotFound))

	require.Empty(t, repo.store.invoices)
	require.Empty(t, repo.store.items)
	require.Empty(t, repo.store.movements)
	require.InDelta(t, 5.0, repo.store.stock[1], 1e-9)
}

func TestPostAllowsNegativeStock(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.stock[1] = 1
	service := NewService(repo, nil)

	_, err := service.Post(context.Background(), 1, CreateInvoiceRequest{
		PaymentType: PaymentCash,
		Items:       []LineRequest{{ProductID: 1, Quantity: 3, UnitPrice: 4}},
	})
	require.NoError(t, err)
	require.InDelta(t, -2.0, repo.store.stock[1], 1e-9)
}

func TestPostRejectsEmptyItems(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	service := NewService(repo, nil)

	_, err := service.Post(context.Background(), 1, CreateInvoiceRequest{PaymentType: PaymentCash})
	require.True(t, errors.Is(err, httpx.ErrValidation))
}

func TestPostDefaultsToCashPayment(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.stock[1] = 5
	repo.store.balances[9] = 100
	service := NewService(repo, nil)

	customerID := int64(9)
	_, err := service.Post(context.Background(), 1, CreateInvoiceRequest{
		CustomerID: &customerID,
		Items:      []LineRequest{{ProductID: 1, Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)
	require.Equal(t, PaymentCash, repo.store.invoices[1].PaymentType)
	require.InDelta(t, 100.0, repo.store.balances[9], 1e-9)
}

func TestPostRejectsUnknownPaymentType(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	service := NewService(repo, nil)

	_, err := service.Post(context.Background(), 1, CreateInvoiceRequest{
		PaymentType: "cheque",
		Items:       []LineRequest{{ProductID: 1, Quantity: 1, UnitPrice: 1}},
	})
	require.True(t, errors.Is(err, httpx.ErrValidation))
}
