package payments

import (
	"context"
	"fmt"

	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	"github.com/meridian-pos/meridian-pos/internal/sales/orders"
	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Service carries the payment commands. Lifecycle guards live in the store
// predicates: update and void only touch COMPLETED rows, so a racing void
// simply makes the other writer see not found.
type Service struct {
	repo    Repository
	orders  orders.Repository
	methods masterdata.PaymentMethodRepository
}

func NewService(repo Repository, orders orders.Repository, methods masterdata.PaymentMethodRepository) *Service {
	return &Service{repo: repo, orders: orders, methods: methods}
}

func (s *Service) ListByOrder(ctx context.Context, orderID int64) ([]SalesOrderPayment, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return s.repo.ListByOrder(ctx, orderID)
}

func (s *Service) Get(ctx context.Context, id int64) (SalesOrderPayment, error) {
	return s.repo.Get(ctx, id)
}

// Create takes a payment against a completed order. A cancelled or missing
// order reports not found; the payment method must exist. Payments are
// created COMPLETED.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (SalesOrderPayment, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return SalesOrderPayment{}, fmt.Errorf("%w: payment amount must be positive", shared.ErrValidation)
	}

	order, err := s.orders.Get(ctx, req.OrderID)
	if err != nil {
		return SalesOrderPayment{}, fmt.Errorf("get order: %w", err)
	}
	if order.OrderStatus != orders.OrderStatusCompleted {
		return SalesOrderPayment{}, fmt.Errorf("%w: order is not completed", shared.ErrNotFound)
	}

	if _, err := s.methods.GetPaymentMethod(ctx, req.PaymentMethodID); err != nil {
		return SalesOrderPayment{}, fmt.Errorf("get payment method: %w", err)
	}

	return s.repo.Create(ctx, SalesOrderPayment{
		OrderID:         req.OrderID,
		PaymentMethodID: req.PaymentMethodID,
		Amount:          req.Amount,
		Reference:       req.Reference,
		Status:          PaymentStatusCompleted,
	})
}

// Update rewrites a completed payment. The reference field is tri-state:
// absent leaves it alone, null clears it, a value replaces it.
func (s *Service) Update(ctx context.Context, id int64, req UpdatePaymentRequest) (SalesOrderPayment, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return SalesOrderPayment{}, fmt.Errorf("get payment: %w", err)
	}

	if req.PaymentMethodID != nil {
		if _, err := s.methods.GetPaymentMethod(ctx, *req.PaymentMethodID); err != nil {
			return SalesOrderPayment{}, fmt.Errorf("get payment method: %w", err)
		}
		current.PaymentMethodID = *req.PaymentMethodID
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() || req.Amount.IsZero() {
			return SalesOrderPayment{}, fmt.Errorf("%w: payment amount must be positive", shared.ErrValidation)
		}
		current.Amount = *req.Amount
	}
	if req.Reference.IsSet() {
		if req.Reference.IsNull() {
			current.Reference = nil
		} else {
			current.Reference = req.Reference.Ptr()
		}
	}

	affected, err := s.repo.UpdateCompleted(ctx, current)
	if err != nil {
		return SalesOrderPayment{}, err
	}
	if affected == 0 {
		return SalesOrderPayment{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Void flips a completed payment to voided. The second void, like voiding a
// payment that never completed, reports not found.
func (s *Service) Void(ctx context.Context, id int64) (SalesOrderPayment, error) {
	affected, err := s.repo.VoidCompleted(ctx, id)
	if err != nil {
		return SalesOrderPayment{}, err
	}
	if affected == 0 {
		return SalesOrderPayment{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}
