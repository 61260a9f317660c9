package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	"github.com/meridian-pos/meridian-pos/internal/sales/orders"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/types"
)

type stubRepo struct {
	byID   map[int64]SalesOrderPayment
	nextID int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[int64]SalesOrderPayment), nextID: 1}
}

func (s *stubRepo) ListByOrder(ctx context.Context, orderID int64) ([]SalesOrderPayment, error) {
	var out []SalesOrderPayment
	for _, p := range s.byID {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) Get(ctx context.Context, id int64) (SalesOrderPayment, error) {
	p, ok := s.byID[id]
	if !ok {
		return SalesOrderPayment{}, shared.ErrNotFound
	}
	return p, nil
}

func (s *stubRepo) Create(ctx context.Context, p SalesOrderPayment) (SalesOrderPayment, error) {
	now := time.Now()
	p.ID = s.nextID
	p.CreatedAt = now
	p.UpdatedAt = now
	s.byID[p.ID] = p
	s.nextID++
	return p, nil
}

func (s *stubRepo) UpdateCompleted(ctx context.Context, p SalesOrderPayment) (int64, error) {
	current, ok := s.byID[p.ID]
	if !ok || current.Status != PaymentStatusCompleted {
		return 0, nil
	}
	p.Status = current.Status
	p.UpdatedAt = current.UpdatedAt.Add(time.Millisecond)
	s.byID[p.ID] = p
	return 1, nil
}

func (s *stubRepo) VoidCompleted(ctx context.Context, id int64) (int64, error) {
	current, ok := s.byID[id]
	if !ok || current.Status != PaymentStatusCompleted {
		return 0, nil
	}
	current.Status = PaymentStatusVoided
	current.UpdatedAt = current.UpdatedAt.Add(time.Millisecond)
	s.byID[id] = current
	return 1, nil
}

// stubOrders serves Get only; nothing else is reached from the payment
// commands.
type stubOrders struct {
	orders.Repository
	byID map[int64]orders.SalesOrder
}

func (s *stubOrders) Get(ctx context.Context, id int64) (orders.SalesOrder, error) {
	o, ok := s.byID[id]
	if !ok {
		return orders.SalesOrder{}, shared.ErrNotFound
	}
	return o, nil
}

type stubMethods struct {
	masterdata.PaymentMethodRepository
	ids map[int64]bool
}

func (s *stubMethods) GetPaymentMethod(ctx context.Context, id int64) (masterdata.PaymentMethod, error) {
	if !s.ids[id] {
		return masterdata.PaymentMethod{}, shared.ErrNotFound
	}
	return masterdata.PaymentMethod{ID: id, Code: "CASH"}, nil
}

func newService() (*Service, *stubRepo) {
	repo := newStubRepo()
	svc := NewService(
		repo,
		&stubOrders{byID: map[int64]orders.SalesOrder{
			1: {ID: 1, OrderStatus: orders.OrderStatusCompleted},
			2: {ID: 2, OrderStatus: orders.OrderStatusCancelled},
		}},
		&stubMethods{ids: map[int64]bool{1: true}},
	)
	return svc, repo
}

func TestCreatePayment(t *testing.T) {
	svc, _ := newService()

	p, err := svc.Create(context.Background(), CreatePaymentRequest{
		OrderID: 1, PaymentMethodID: 1, Amount: types.Money(1000),
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusCompleted, p.Status)
	assert.Equal(t, types.Money(1000), p.Amount)
}

func TestCreatePaymentOrderNotCompleted(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		OrderID: 2, PaymentMethodID: 1, Amount: types.Money(1000),
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreatePaymentUnknownMethod(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		OrderID: 1, PaymentMethodID: 99, Amount: types.Money(1000),
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreatePaymentNonPositiveAmount(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), CreatePaymentRequest{
		OrderID: 1, PaymentMethodID: 1, Amount: 0,
	})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestUpdatePayment(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreatePaymentRequest{OrderID: 1, PaymentMethodID: 1, Amount: types.Money(1000)})
	require.NoError(t, err)

	amount := types.Money(1200)
	updated, err := svc.Update(ctx, p.ID, UpdatePaymentRequest{
		Amount:    &amount,
		Reference: types.Set("txn-42"),
	})
	require.NoError(t, err)
	assert.Equal(t, amount, updated.Amount)
	require.NotNil(t, updated.Reference)
	assert.Equal(t, "txn-42", *updated.Reference)
}

func TestUpdatePaymentClearReference(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	ref := "txn-1"
	p, err := svc.Create(ctx, CreatePaymentRequest{
		OrderID: 1, PaymentMethodID: 1, Amount: types.Money(500), Reference: &ref,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID, UpdatePaymentRequest{Reference: types.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, updated.Reference)
}

func TestUpdateVoidedPayment(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreatePaymentRequest{OrderID: 1, PaymentMethodID: 1, Amount: types.Money(500)})
	require.NoError(t, err)
	_, err = svc.Void(ctx, p.ID)
	require.NoError(t, err)

	amount := types.Money(600)
	_, err = svc.Update(ctx, p.ID, UpdatePaymentRequest{Amount: &amount})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestVoidPaymentTwice(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreatePaymentRequest{OrderID: 1, PaymentMethodID: 1, Amount: types.Money(500)})
	require.NoError(t, err)

	voided, err := svc.Void(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusVoided, voided.Status)

	_, err = svc.Void(ctx, p.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
