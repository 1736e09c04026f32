package orders

import (
	"context"
	"fmt"
	"testing"

	"myCatalogStore/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomers map[uint]bool

func (f fakeCustomers) FindByID(_ context.Context, id uint) (domain.User, error) {
	if !f[id] {
		return domain.User{}, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	return domain.User{ID: id}, nil
}

type fakeOrdersRepo struct {
	orders map[uint]domain.Order
	nextID uint
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{orders: make(map[uint]domain.Order), nextID: 1}
}

func (r *fakeOrdersRepo) CreateOrder(_ context.Context, o *domain.Order) error {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrdersRepo) GetOrdersByCustomer(_ context.Context, customerID uint) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrdersRepo) GetOrder(_ context.Context, orderID, customerID uint) (domain.Order, error) {
	o, ok := r.orders[orderID]
	if !ok || o.CustomerID != customerID {
		return domain.Order{}, fmt.Errorf("order %w", domain.ErrNotFound)
	}
	return o, nil
}

func (r *fakeOrdersRepo) UpdateOrder(_ context.Context, o *domain.Order) error {
	r.orders[o.ID] = *o
	return nil
}

func (r *fakeOrdersRepo) DeleteOrder(ctx context.Context, orderID, customerID uint) error {
	if _, err := r.GetOrder(ctx, orderID, customerID); err != nil {
		return err
	}
	delete(r.orders, orderID)
	return nil
}

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateOrder(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), fakeCustomers{1: true})
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 1, domain.OrderInput{TotalPrice: decPtr("25.5")})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, "25.50", order.TotalPrice.StringFixed(2))

	_, err = svc.CreateOrder(ctx, 2, domain.OrderInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateOrder(ctx, 1, domain.OrderInput{Status: strPtr(domain.OrderStatusShipped)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateOrder(ctx, 1, domain.OrderInput{TotalPrice: decPtr("-3")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateOrder_Transitions(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), fakeCustomers{1: true})
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 1, domain.OrderInput{TotalPrice: decPtr("10")})
	require.NoError(t, err)

	_, err = svc.UpdateOrder(ctx, order.ID, 1, domain.OrderInput{Status: strPtr(domain.OrderStatusShipped)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := svc.UpdateOrder(ctx, order.ID, 1, domain.OrderInput{Status: strPtr(domain.OrderStatusPaid)})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, updated.Status)

	_, err = svc.UpdateOrder(ctx, order.ID, 1, domain.OrderInput{TotalPrice: decPtr("20")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err = svc.UpdateOrder(ctx, order.ID, 1, domain.OrderInput{Status: strPtr(domain.OrderStatusShipped)})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	_, err = svc.UpdateOrder(ctx, order.ID, 1, domain.OrderInput{Status: strPtr(domain.OrderStatusCancelled)})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.UpdateOrder(ctx, order.ID, 1, domain.OrderInput{Status: strPtr("refunded")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOrdersAreScopedToCustomer(t *testing.T) {
	svc := NewOrdersService(newFakeOrdersRepo(), fakeCustomers{1: true, 2: true})
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 1, domain.OrderInput{})
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, order.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteOrder(ctx, order.ID, 2), domain.ErrNotFound)

	mine, err := svc.GetOrders(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID, 1))
	_, err = svc.GetOrder(ctx, order.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
