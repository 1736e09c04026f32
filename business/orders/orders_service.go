package orders

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"myCatalogStore/pkg/logger"

	"github.com/shopspring/decimal"
)

type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrdersByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID, customerID uint) (domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, orderID, customerID uint) error
}

// CustomerFinder resolves the owner of an order.
type CustomerFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type OrdersService struct {
	orderRepo OrdersRepository
	userRepo  CustomerFinder
}

func NewOrdersService(orderRepo OrdersRepository, userRepo CustomerFinder) *OrdersService {
	return &OrdersService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
	}
}

// CreateOrder opens a pending order for customerID.
func (s *OrdersService) CreateOrder(ctx context.Context, customerID uint, input domain.OrderInput) (domain.Order, error) {
	if _, err := s.userRepo.FindByID(ctx, customerID); err != nil {
		return domain.Order{}, err
	}

	if input.Status != nil && *input.Status != domain.OrderStatusPending {
		return domain.Order{}, fmt.Errorf("%w: new orders start as %s", domain.ErrValidation, domain.OrderStatusPending)
	}

	total := decimal.Zero
	if input.TotalPrice != nil {
		total = input.TotalPrice.Round(2)
	}
	if err := domain.ValidatePrice("total_price", total); err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		TotalPrice: total,
	}

	if err := s.orderRepo.CreateOrder(ctx, &order); err != nil {
		logger.Error("failed to create order", "customer_id", customerID, "error", err)
		return domain.Order{}, err
	}

	logger.Info("order created", "order_id", order.ID, "customer_id", customerID)

	return order, nil
}

func (s *OrdersService) GetOrders(ctx context.Context, customerID uint) ([]domain.Order, error) {
	return s.orderRepo.GetOrdersByCustomer(ctx, customerID)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID, customerID uint) (domain.Order, error) {
	return s.orderRepo.GetOrder(ctx, orderID, customerID)
}

// UpdateOrder moves an order along its status graph. The total can only
// change while the order is still pending.
func (s *OrdersService) UpdateOrder(ctx context.Context, orderID, customerID uint, input domain.OrderInput) (domain.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, orderID, customerID)
	if err != nil {
		return domain.Order{}, err
	}

	if input.TotalPrice != nil {
		if order.Status != domain.OrderStatusPending {
			return domain.Order{}, fmt.Errorf("%w: total_price is fixed once an order is %s", domain.ErrValidation, order.Status)
		}
		total := input.TotalPrice.Round(2)
		if err := domain.ValidatePrice("total_price", total); err != nil {
			return domain.Order{}, err
		}
		order.TotalPrice = total
	}

	if input.Status != nil {
		next := *input.Status
		if !domain.IsValidOrderStatus(next) {
			return domain.Order{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
		}
		if !domain.CanTransition(order.Status, next) {
			return domain.Order{}, fmt.Errorf("%w: %w: %s -> %s", domain.ErrValidation, domain.ErrInvalidTransition, order.Status, next)
		}
		order.Status = next
	}

	if err := s.orderRepo.UpdateOrder(ctx, &order); err != nil {
		logger.Error("failed to update order", "order_id", orderID, "error", err)
		return domain.Order{}, err
	}

	return order, nil
}

func (s *OrdersService) DeleteOrder(ctx context.Context, orderID, customerID uint) error {
	return s.orderRepo.DeleteOrder(ctx, orderID, customerID)
}
