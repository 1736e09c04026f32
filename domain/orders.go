package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// orderTransitions lists the statuses reachable from each status.
// Shipped and cancelled orders are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusCancelled},
}

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Status     string          `gorm:"column:status;size:50;not null" json:"status"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Customer *User `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Re-applying the current status is allowed and is a no-op.
func CanTransition(from, to string) bool {
	if from == to {
		return IsValidOrderStatus(from)
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderInput carries the writable fields of an order. Nil fields are left
// untouched on update.
type OrderInput struct {
	Status     *string          `json:"status"`
	TotalPrice *decimal.Decimal `json:"total_price"`
}
