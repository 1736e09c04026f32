package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.pricing (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_id   BIGINT NOT NULL UNIQUE REFERENCES products(id) ON DELETE CASCADE,
//     base_price   NUMERIC(10,2) NOT NULL,
//     discount     NUMERIC(5,2) DEFAULT 0,
//     tax_rate     NUMERIC(5,2) DEFAULT 0,
//     final_price  NUMERIC(10,2) NOT NULL,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );

const (
	priceScale    = 2
	fractionScale = 2
)

var (
	// MaxPrice is the largest value a NUMERIC(10,2) column holds.
	MaxPrice = decimal.RequireFromString("99999999.99")

	one = decimal.NewFromInt(1)
)

type Pricing struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProductID  uint64          `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"`
	BasePrice  decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null" json:"base_price"`
	Discount   decimal.Decimal `gorm:"column:discount;type:numeric(5,2);default:0" json:"discount"`
	TaxRate    decimal.Decimal `gorm:"column:tax_rate;type:numeric(5,2);default:0" json:"tax_rate"`
	FinalPrice decimal.Decimal `gorm:"column:final_price;type:numeric(10,2);not null" json:"final_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Product *Product `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Pricing) TableName() string {
	return "pricing"
}

// PricingInput is the write shape of a pricing record. Absent fractions
// default to zero.
type PricingInput struct {
	BasePrice *decimal.Decimal `json:"base_price"`
	Discount  *decimal.Decimal `json:"discount"`
	TaxRate   *decimal.Decimal `json:"tax_rate"`
}

// CalculateFinalPrice applies base × (1 − discount) × (1 + taxRate),
// rounded half away from zero to two places.
func CalculateFinalPrice(basePrice, discount, taxRate decimal.Decimal) decimal.Decimal {
	return basePrice.
		Mul(one.Sub(discount)).
		Mul(one.Add(taxRate)).
		Round(priceScale)
}

// NewPricing builds a validated pricing record with its final price set.
// Discount and tax rate are rounded to the stored scale first so the
// computed final price matches what a later read returns.
func NewPricing(productID uint64, basePrice, discount, taxRate decimal.Decimal) (Pricing, error) {
	p := Pricing{
		ProductID: productID,
		BasePrice: basePrice.Round(priceScale),
		Discount:  discount.Round(fractionScale),
		TaxRate:   taxRate.Round(fractionScale),
	}
	if err := p.Validate(); err != nil {
		return Pricing{}, err
	}
	p.Recalculate()
	return p, nil
}

// Recalculate refreshes FinalPrice. Storage never does this on its own, so
// every write path that touches base price, discount or tax rate calls it.
func (p *Pricing) Recalculate() {
	p.FinalPrice = CalculateFinalPrice(p.BasePrice, p.Discount, p.TaxRate)
}

func (p Pricing) Validate() error {
	if p.ProductID == 0 {
		return fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if err := ValidatePrice("base_price", p.BasePrice); err != nil {
		return err
	}
	if err := validateFraction("discount", p.Discount); err != nil {
		return err
	}
	return validateFraction("tax_rate", p.TaxRate)
}

// ValidatePrice checks a monetary amount fits a non-negative NUMERIC(10,2).
func ValidatePrice(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s cannot be negative", ErrValidation, field)
	}
	if v.GreaterThan(MaxPrice) {
		return fmt.Errorf("%w: %s exceeds %s", ErrValidation, field, MaxPrice.StringFixed(priceScale))
	}
	return nil
}

func validateFraction(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(one) {
		return fmt.Errorf("%w: %s must be between 0 and 1", ErrValidation, field)
	}
	return nil
}
