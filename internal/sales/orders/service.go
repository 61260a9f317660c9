package orders

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	salesshared "github.com/meridian-pos/meridian-pos/internal/sales/shared"
	"github.com/meridian-pos/meridian-pos/internal/shared"
)

// Service carries the sales order commands. References are validated before
// any write; the header, lines and charges land in one transaction so a
// failed line never leaves a headless order behind.
type Service struct {
	repo        Repository
	customers   masterdata.CustomerRepository
	channels    masterdata.ChannelRepository
	locations   masterdata.LocationRepository
	costCenters masterdata.CostCenterRepository
}

func NewService(
	repo Repository,
	customers masterdata.CustomerRepository,
	channels masterdata.ChannelRepository,
	locations masterdata.LocationRepository,
	costCenters masterdata.CostCenterRepository,
) *Service {
	return &Service{
		repo:        repo,
		customers:   customers,
		channels:    channels,
		locations:   locations,
		costCenters: costCenters,
	}
}

func (s *Service) List(ctx context.Context, filter ListOrdersFilter, page shared.Pagination) ([]SalesOrder, int, error) {
	return s.repo.List(ctx, filter, page)
}

// Get returns the order with its lines and charges.
func (s *Service) Get(ctx context.Context, id int64) (OrderDetail, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}

	var (
		items   []SalesOrderItem
		charges []SalesOrderCharge
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if items, err = s.repo.ListItems(gctx, id); err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if charges, err = s.repo.ListCharges(gctx, id); err != nil {
			return fmt.Errorf("list charges: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{SalesOrder: order, Items: items, Charges: charges}, nil
}

// Create finalizes a sale. Every referenced entity is checked first, totals
// are computed with checked money arithmetic, and the order lands COMPLETED
// with payment PENDING. created_by/updated_by come from the authenticated
// actor on the context.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (OrderDetail, error) {
	actor := shared.ActorFromContext(ctx)
	if actor == 0 {
		return OrderDetail{}, fmt.Errorf("%w: order creation requires an authenticated user", shared.ErrInvalidCredentials)
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return OrderDetail{}, err
	}

	lines := make([]salesshared.LineTotals, len(req.Items))
	var totals salesshared.OrderTotals
	for i, item := range req.Items {
		line, err := salesshared.CalculateLineTotals(item.Quantity, item.UnitPrice, item.DiscountPercent, item.TaxPercent)
		if err != nil {
			return OrderDetail{}, fmt.Errorf("%w: line %d: %v", shared.ErrValidation, i+1, err)
		}
		lines[i] = line
		if totals, err = totals.Accumulate(line); err != nil {
			return OrderDetail{}, fmt.Errorf("%w: %v", shared.ErrValidation, err)
		}
	}
	for i, charge := range req.Charges {
		var err error
		if totals, err = totals.AddCharge(charge.Amount); err != nil {
			return OrderDetail{}, fmt.Errorf("%w: charge %d: %v", shared.ErrValidation, i+1, err)
		}
	}

	var detail OrderDetail
	err := s.repo.WithTx(ctx, func(tx Repository) error {
		docNumber, err := tx.GenerateDocNumber(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("generate doc number: %w", err)
		}

		order, err := tx.Create(ctx, SalesOrder{
			DocNumber:     docNumber,
			CustomerID:    req.CustomerID,
			ChannelID:     req.ChannelID,
			LocationID:    req.LocationID,
			CostCenterID:  req.CostCenterID,
			Subtotal:      totals.Subtotal,
			DiscountTotal: totals.DiscountTotal,
			TaxTotal:      totals.TaxTotal,
			ChargeTotal:   totals.ChargeTotal,
			Total:         totals.Total,
			OrderStatus:   OrderStatusCompleted,
			PaymentStatus: PaymentStatusPending,
			CreatedBy:     actor,
			UpdatedBy:     actor,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		detail.SalesOrder = order

		for i, item := range req.Items {
			inserted, err := tx.InsertItem(ctx, SalesOrderItem{
				OrderID:         order.ID,
				ItemID:          item.ItemID,
				VariantID:       item.VariantID,
				Name:            item.Name,
				Quantity:        item.Quantity,
				UnitPrice:       item.UnitPrice,
				DiscountPercent: item.DiscountPercent,
				TaxPercent:      item.TaxPercent,
				DiscountAmount:  lines[i].Discount,
				TaxAmount:       lines[i].Tax,
				Subtotal:        lines[i].Net,
				Total:           lines[i].Total,
			})
			if err != nil {
				return fmt.Errorf("insert line %d: %w", i+1, err)
			}
			detail.Items = append(detail.Items, inserted)
		}

		for i, charge := range req.Charges {
			inserted, err := tx.InsertCharge(ctx, SalesOrderCharge{
				OrderID: order.ID,
				Name:    charge.Name,
				Amount:  charge.Amount,
			})
			if err != nil {
				return fmt.Errorf("insert charge %d: %w", i+1, err)
			}
			detail.Charges = append(detail.Charges, inserted)
		}

		return nil
	})
	if err != nil {
		return OrderDetail{}, err
	}
	return detail, nil
}

// Void cancels a completed order and voids its payment status in a single
// guarded update. Voiding anything but a completed order, a second void
// included, reports not found.
func (s *Service) Void(ctx context.Context, id int64) (SalesOrder, error) {
	actor := shared.ActorFromContext(ctx)
	if actor == 0 {
		return SalesOrder{}, fmt.Errorf("%w: voiding an order requires an authenticated user", shared.ErrInvalidCredentials)
	}

	affected, err := s.repo.Void(ctx, id, actor)
	if err != nil {
		return SalesOrder{}, err
	}
	if affected == 0 {
		return SalesOrder{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, req CreateOrderRequest) error {
	if req.CustomerID != nil {
		if _, err := s.customers.GetCustomer(ctx, *req.CustomerID); err != nil {
			return fmt.Errorf("verify customer: %w", err)
		}
	}
	if req.ChannelID != nil {
		if _, err := s.channels.GetChannel(ctx, *req.ChannelID); err != nil {
			return fmt.Errorf("verify channel: %w", err)
		}
	}
	if req.LocationID != nil {
		if _, err := s.locations.GetLocation(ctx, *req.LocationID); err != nil {
			return fmt.Errorf("verify location: %w", err)
		}
	}
	if req.CostCenterID != nil {
		if _, err := s.costCenters.GetCostCenter(ctx, *req.CostCenterID); err != nil {
			return fmt.Errorf("verify cost center: %w", err)
		}
	}
	return nil
}
