package masterdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/meridian-pos/meridian-pos/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Customers

func (s *Service) ListCustomers(ctx context.Context) ([]Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Customer{}, fmt.Errorf("%w: customer name is required", shared.ErrValidation)
	}
	return s.repo.CreateCustomer(ctx, Customer{Name: name, Email: req.Email, Phone: req.Phone})
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	current, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Customer{}, fmt.Errorf("%w: customer name is required", shared.ErrValidation)
		}
		current.Name = name
	}
	if req.Email.IsSet() {
		current.Email = req.Email.Ptr()
	}
	if req.Phone.IsSet() {
		current.Phone = req.Phone.Ptr()
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	return s.repo.UpdateCustomer(ctx, current)
}

// DeleteCustomer refuses removal while sales orders still reference the
// customer.
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.repo.GetCustomer(ctx, id); err != nil {
		return fmt.Errorf("get customer: %w", err)
	}
	orders, err := s.repo.CountCustomerOrders(ctx, id)
	if err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if orders > 0 {
		return fmt.Errorf("%w: %d orders reference this customer", shared.ErrHasChildren, orders)
	}
	return deleted(s.repo.DeleteCustomer(ctx, id))
}

// Suppliers

func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Supplier{}, fmt.Errorf("%w: supplier name is required", shared.ErrValidation)
	}
	return s.repo.CreateSupplier(ctx, Supplier{Name: name, Email: req.Email, Phone: req.Phone})
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, req UpdateSupplierRequest) (Supplier, error) {
	current, err := s.repo.GetSupplier(ctx, id)
	if err != nil {
		return Supplier{}, fmt.Errorf("get supplier: %w", err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Supplier{}, fmt.Errorf("%w: supplier name is required", shared.ErrValidation)
		}
		current.Name = name
	}
	if req.Email.IsSet() {
		current.Email = req.Email.Ptr()
	}
	if req.Phone.IsSet() {
		current.Phone = req.Phone.Ptr()
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	return s.repo.UpdateSupplier(ctx, current)
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	if _, err := s.repo.GetSupplier(ctx, id); err != nil {
		return fmt.Errorf("get supplier: %w", err)
	}
	return deleted(s.repo.DeleteSupplier(ctx, id))
}

// Cost centers

func (s *Service) ListCostCenters(ctx context.Context) ([]CostCenter, error) {
	return s.repo.ListCostCenters(ctx)
}

func (s *Service) GetCostCenter(ctx context.Context, id int64) (CostCenter, error) {
	return s.repo.GetCostCenter(ctx, id)
}

func (s *Service) CreateCostCenter(ctx context.Context, req CreateCostCenterRequest) (CostCenter, error) {
	if err := requireCodeName(req.Code, req.Name); err != nil {
		return CostCenter{}, err
	}
	return s.repo.CreateCostCenter(ctx, CostCenter{Code: strings.TrimSpace(req.Code), Name: strings.TrimSpace(req.Name)})
}

func (s *Service) UpdateCostCenter(ctx context.Context, id int64, req UpdateCostCenterRequest) (CostCenter, error) {
	current, err := s.repo.GetCostCenter(ctx, id)
	if err != nil {
		return CostCenter{}, fmt.Errorf("get cost center: %w", err)
	}
	applyCode(&current.Code, req.Code)
	applyCode(&current.Name, req.Name)
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := requireCodeName(current.Code, current.Name); err != nil {
		return CostCenter{}, err
	}
	return s.repo.UpdateCostCenter(ctx, current)
}

func (s *Service) DeleteCostCenter(ctx context.Context, id int64) error {
	if _, err := s.repo.GetCostCenter(ctx, id); err != nil {
		return fmt.Errorf("get cost center: %w", err)
	}
	return deleted(s.repo.DeleteCostCenter(ctx, id))
}

// Payment methods

func (s *Service) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	return s.repo.ListPaymentMethods(ctx)
}

func (s *Service) GetPaymentMethod(ctx context.Context, id int64) (PaymentMethod, error) {
	return s.repo.GetPaymentMethod(ctx, id)
}

// CreatePaymentMethod enforces code uniqueness across methods.
func (s *Service) CreatePaymentMethod(ctx context.Context, req CreatePaymentMethodRequest) (PaymentMethod, error) {
	if err := requireCodeName(req.Code, req.Name); err != nil {
		return PaymentMethod{}, err
	}
	code := strings.TrimSpace(req.Code)
	existing, err := s.repo.FindPaymentMethodByCode(ctx, code)
	if err != nil {
		return PaymentMethod{}, fmt.Errorf("check code: %w", err)
	}
	if existing != nil {
		return PaymentMethod{}, fmt.Errorf("%w: payment method code %q", shared.ErrUniqueConstraint, code)
	}
	return s.repo.CreatePaymentMethod(ctx, PaymentMethod{Code: code, Name: strings.TrimSpace(req.Name)})
}

func (s *Service) UpdatePaymentMethod(ctx context.Context, id int64, req UpdatePaymentMethodRequest) (PaymentMethod, error) {
	current, err := s.repo.GetPaymentMethod(ctx, id)
	if err != nil {
		return PaymentMethod{}, fmt.Errorf("get payment method: %w", err)
	}
	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		other, err := s.repo.FindPaymentMethodByCode(ctx, code)
		if err != nil {
			return PaymentMethod{}, fmt.Errorf("check code: %w", err)
		}
		if other != nil && other.ID != id {
			return PaymentMethod{}, fmt.Errorf("%w: payment method code %q", shared.ErrUniqueConstraint, code)
		}
		current.Code = code
	}
	applyCode(&current.Name, req.Name)
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := requireCodeName(current.Code, current.Name); err != nil {
		return PaymentMethod{}, err
	}
	return s.repo.UpdatePaymentMethod(ctx, current)
}

// DeletePaymentMethod refuses removal while payments reference the method.
func (s *Service) DeletePaymentMethod(ctx context.Context, id int64) error {
	if _, err := s.repo.GetPaymentMethod(ctx, id); err != nil {
		return fmt.Errorf("get payment method: %w", err)
	}
	payments, err := s.repo.CountPaymentMethodPayments(ctx, id)
	if err != nil {
		return fmt.Errorf("count payments: %w", err)
	}
	if payments > 0 {
		return fmt.Errorf("%w: %d payments reference this method", shared.ErrHasChildren, payments)
	}
	return deleted(s.repo.DeletePaymentMethod(ctx, id))
}

// Channels

func (s *Service) ListChannels(ctx context.Context) ([]Channel, error) {
	return s.repo.ListChannels(ctx)
}

func (s *Service) GetChannel(ctx context.Context, id int64) (Channel, error) {
	return s.repo.GetChannel(ctx, id)
}

func (s *Service) CreateChannel(ctx context.Context, req CreateChannelRequest) (Channel, error) {
	if err := requireCodeName(req.Code, req.Name); err != nil {
		return Channel{}, err
	}
	return s.repo.CreateChannel(ctx, Channel{Code: strings.TrimSpace(req.Code), Name: strings.TrimSpace(req.Name)})
}

func (s *Service) UpdateChannel(ctx context.Context, id int64, req UpdateChannelRequest) (Channel, error) {
	current, err := s.repo.GetChannel(ctx, id)
	if err != nil {
		return Channel{}, fmt.Errorf("get channel: %w", err)
	}
	applyCode(&current.Code, req.Code)
	applyCode(&current.Name, req.Name)
	if err := requireCodeName(current.Code, current.Name); err != nil {
		return Channel{}, err
	}
	return s.repo.UpdateChannel(ctx, current)
}

func (s *Service) DeleteChannel(ctx context.Context, id int64) error {
	if _, err := s.repo.GetChannel(ctx, id); err != nil {
		return fmt.Errorf("get channel: %w", err)
	}
	return deleted(s.repo.DeleteChannel(ctx, id))
}

// Locations

func (s *Service) ListLocations(ctx context.Context) ([]Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *Service) GetLocation(ctx context.Context, id int64) (Location, error) {
	return s.repo.GetLocation(ctx, id)
}

func (s *Service) CreateLocation(ctx context.Context, req CreateLocationRequest) (Location, error) {
	if err := requireCodeName(req.Code, req.Name); err != nil {
		return Location{}, err
	}
	return s.repo.CreateLocation(ctx, Location{Code: strings.TrimSpace(req.Code), Name: strings.TrimSpace(req.Name)})
}

func (s *Service) UpdateLocation(ctx context.Context, id int64, req UpdateLocationRequest) (Location, error) {
	current, err := s.repo.GetLocation(ctx, id)
	if err != nil {
		return Location{}, fmt.Errorf("get location: %w", err)
	}
	applyCode(&current.Code, req.Code)
	applyCode(&current.Name, req.Name)
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	if err := requireCodeName(current.Code, current.Name); err != nil {
		return Location{}, err
	}
	return s.repo.UpdateLocation(ctx, current)
}

func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	if _, err := s.repo.GetLocation(ctx, id); err != nil {
		return fmt.Errorf("get location: %w", err)
	}
	return deleted(s.repo.DeleteLocation(ctx, id))
}

// Brands

func (s *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	return s.repo.ListBrands(ctx)
}

func (s *Service) GetBrand(ctx context.Context, id int64) (Brand, error) {
	return s.repo.GetBrand(ctx, id)
}

func (s *Service) CreateBrand(ctx context.Context, req CreateBrandRequest) (Brand, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Brand{}, fmt.Errorf("%w: brand name is required", shared.ErrValidation)
	}
	return s.repo.CreateBrand(ctx, Brand{Name: name})
}

func (s *Service) UpdateBrand(ctx context.Context, id int64, req UpdateBrandRequest) (Brand, error) {
	current, err := s.repo.GetBrand(ctx, id)
	if err != nil {
		return Brand{}, fmt.Errorf("get brand: %w", err)
	}
	applyCode(&current.Name, req.Name)
	if strings.TrimSpace(current.Name) == "" {
		return Brand{}, fmt.Errorf("%w: brand name is required", shared.ErrValidation)
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	return s.repo.UpdateBrand(ctx, current)
}

func (s *Service) DeleteBrand(ctx context.Context, id int64) error {
	if _, err := s.repo.GetBrand(ctx, id); err != nil {
		return fmt.Errorf("get brand: %w", err)
	}
	return deleted(s.repo.DeleteBrand(ctx, id))
}

// helpers

func requireCodeName(code, name string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: code is required", shared.ErrValidation)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	return nil
}

func applyCode(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func deleted(affected int64, err error) error {
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
