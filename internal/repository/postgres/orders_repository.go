package postgres

import (
	"context"
	"myCatalogStore/domain"
	"time"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return translateError("order", err)
	}

	return nil
}

func (r *OrdersRepository) GetOrdersByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error) {
	var orders []domain.Order

	err := r.DB.WithContext(ctx).Where("customer_id = ?", customerID).Order("id").Find(&orders).Error
	if err != nil {
		return nil, translateError("order", err)
	}

	return orders, nil
}

func (r *OrdersRepository) GetOrder(ctx context.Context, orderID, customerID uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).
		Where("id = ?", orderID).
		Where("customer_id = ?", customerID).
		First(&order).Error
	if err != nil {
		return domain.Order{}, translateError("order", err)
	}

	return order, nil
}

func (r *OrdersRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now()

	row := r.DB.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", order.ID).
		Where("customer_id = ?", order.CustomerID).
		Select("status", "total_price", "updated_at").
		Updates(order)
	if err := row.Error; err != nil {
		return translateError("order", err)
	}
	if row.RowsAffected == 0 {
		return translateError("order", gorm.ErrRecordNotFound)
	}

	return nil
}

func (r *OrdersRepository) DeleteOrder(ctx context.Context, orderID, customerID uint) error {
	row := r.DB.WithContext(ctx).
		Where("id = ?", orderID).
		Where("customer_id = ?", customerID).
		Delete(&domain.Order{})
	if err := row.Error; err != nil {
		return translateError("order", err)
	}
	if row.RowsAffected == 0 {
		return translateError("order", gorm.ErrRecordNotFound)
	}

	return nil
}
