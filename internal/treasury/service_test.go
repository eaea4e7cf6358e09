package treasury

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dukkan-erp/dukkan/internal/platform/httpx"
)

type memoryStore struct {
	receipts         map[int64]*Receipt
	vouchers         map[int64]*Voucher
	customerBalances map[int64]float64
	supplierBalances map[int64]float64
	nextID           int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		receipts:         make(map[int64]*Receipt),
		vouchers:         make(map[int64]*Voucher),
		customerBalances: make(map[int64]float64),
		supplierBalances: make(map[int64]float64),
		nextID:           1,
	}
}

func (s *memoryStore) clone() *memoryStore {
	out := newMemoryStore()
	out.nextID = s.nextID
	for id, r := range s.receipts {
		cp := *r
		out.receipts[id] = &cp
	}
	for id, v := range s.vouchers {
		cp := *v
		out.vouchers[id] = &cp
	}
	for k, v := range s.customerBalances {
		out.customerBalances[k] = v
	}
	for k, v := range s.supplierBalances {
		out.supplierBalances[k] = v
	}
	return out
}

type memoryRepo struct {
	store *memoryStore
}

func (r *memoryRepo) ListReceipts(ctx context.Context, req ListRequest) ([]Receipt, int, error) {
	var out []Receipt
	for _, rec := range r.store.receipts {
		out = append(out, *rec)
	}
	return out, len(out), nil
}

func (r *memoryRepo) GetReceipt(ctx context.Context, id int64) (*Receipt, error) {
	rec, ok := r.store.receipts[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return rec, nil
}

func (r *memoryRepo) ListVouchers(ctx context.Context, req ListRequest) ([]Voucher, int, error) {
	var out []Voucher
	for _, v := range r.store.vouchers {
		out = append(out, *v)
	}
	return out, len(out), nil
}

func (r *memoryRepo) GetVoucher(ctx context.Context, id int64) (*Voucher, error) {
	v, ok := r.store.vouchers[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return v, nil
}

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

func (t *memoryTx) InsertReceipt(ctx context.Context, receipt Receipt) (int64, error) {
	id := t.store.nextID
	t.store.nextID++
	receipt.ID = id
	t.store.receipts[id] = &receipt
	return id, nil
}

func (t *memoryTx) SetReceiptNumber(ctx context.Context, id int64, number string) error {
	t.store.receipts[id].ReceiptNumber = number
	return nil
}

func (t *memoryTx) InsertVoucher(ctx context.Context, voucher Voucher) (int64, error) {
	id := t.store.nextID
	t.store.nextID++
	voucher.ID = id
	t.store.vouchers[id] = &voucher
	return id, nil
}

func (t *memoryTx) SetVoucherNumber(ctx context.Context, id int64, number string) error {
	t.store.vouchers[id].VoucherNumber = number
	return nil
}

func (t *memoryTx) AdjustCustomerBalance(ctx context.Context, customerID int64, delta float64) error {
	if _, ok := t.store.customerBalances[customerID]; !ok {
		return httpx.ErrNotFound
	}
	t.store.customerBalances[customerID] += delta
	return nil
}

func (t *memoryTx) AdjustSupplierBalance(ctx context.Context, supplierID int64, delta float64) error {
	if _, ok := t.store.supplierBalances[supplierID]; !ok {
		return httpx.ErrNotFound
	}
	t.store.supplierBalances[supplierID] += delta
	return nil
}

func TestPostReceiptReducesCustomerBalance(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.customerBalances[5] = 80
	service := NewService(repo, nil)

	receipt, err := service.PostReceipt(context.Background(), 1, CreateReceiptRequest{
		CustomerID: 5,
		Amount:     30,
	})
	require.NoError(t, err)
	require.Equal(t, "R000001", receipt.ReceiptNumber)
	require.InDelta(t, 50.0, repo.store.customerBalances[5], 1e-9)
}

func TestPostVoucherReducesSupplierBalance(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.supplierBalances[3] = 40
	service := NewService(repo, nil)

	voucher, err := service.PostVoucher(context.Background(), 1, CreateVoucherRequest{
		SupplierID: 3,
		Amount:     15,
	})
	require.NoError(t, err)
	require.Equal(t, "V000001", voucher.VoucherNumber)
	require.InDelta(t, 25.0, repo.store.supplierBalances[3], 1e-9)
}

func TestPostReceiptRejectsNonPositiveAmount(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.customerBalances[5] = 10
	service := NewService(repo, nil)

	_, err := service.PostReceipt(context.Background(), 1, CreateReceiptRequest{CustomerID: 5, Amount: 0})
	require.True(t, errors.Is(err, httpx.ErrValidation))

	_, err = service.PostReceipt(context.Background(), 1, CreateReceiptRequest{CustomerID: 5, Amount: -4})
	require.True(t, errors.Is(err, httpx.ErrValidation))
	require.InDelta(t, 10.0, repo.store.customerBalances[5], 1e-9)
}

func TestPostReceiptUnknownCustomerRollsBack(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	service := NewService(repo, nil)

	_, err := service.PostReceipt(context.Background(), 1, CreateReceiptRequest{CustomerID: 404, Amount: 10})
	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.store.receipts)
}

func TestPostVoucherUnknownSupplierRollsBack(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	service := NewService(repo, nil)

	_, err := service.PostVoucher(context.Background(), 1, CreateVoucherRequest{SupplierID: 404, Amount: 10})
	require.True(t, errors.Is(err, httpx.ErrNotFound))
	require.Empty(t, repo.store.vouchers)
}

func TestVoucherBalanceCanGoNegative(t *testing.T) {
	repo := &memoryRepo{store: newMemoryStore()}
	repo.store.supplierBalances[3] = 5
	service := NewService(repo, nil)

	_, err := service.PostVoucher(context.Background(), 1, CreateVoucherRequest{SupplierID: 3, Amount: 20})
	require.NoError(t, err)
	require.InDelta(t, -15.0, repo.store.supplierBalances[3], 1e-9)
}
