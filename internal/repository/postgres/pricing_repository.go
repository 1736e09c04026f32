package postgres

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PricingRepository struct {
	DB *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{DB: db}
}

// Upsert inserts or replaces the pricing row for pricing.ProductID using
// the unique index on product_id, so two concurrent writers cannot leave
// two rows behind.
func (r *PricingRepository) Upsert(ctx context.Context, pricing *domain.Pricing) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	now := time.Now()
	pricing.CreatedAt = now
	pricing.UpdatedAt = now

	err := r.DB.WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base_price",
				"discount",
				"tax_rate",
				"final_price",
				"updated_at",
			}),
		}).
		Create(pricing).Error
	if err != nil {
		return translateError("pricing", err)
	}

	stored, err := r.FindByProductID(ctx, pricing.ProductID)
	if err != nil {
		return err
	}
	*pricing = stored

	return nil
}

func (r *PricingRepository) FindByProductID(ctx context.Context, productID uint64) (domain.Pricing, error) {
	var pricing domain.Pricing

	err := r.DB.WithContext(ctx).Where("product_id = ?", productID).First(&pricing).Error
	if err != nil {
		return domain.Pricing{}, translateError("pricing", err)
	}

	return pricing, nil
}

func (r *PricingRepository) FindAll(ctx context.Context) ([]domain.Pricing, error) {
	var records []domain.Pricing

	if err := r.DB.WithContext(ctx).Order("product_id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to find pricing: %w", err)
	}

	return records, nil
}

func (r *PricingRepository) DeleteByProductID(ctx context.Context, productID uint64) error {
	result := r.DB.WithContext(ctx).Where("product_id = ?", productID).Delete(&domain.Pricing{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete pricing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return translateError("pricing", gorm.ErrRecordNotFound)
	}

	return nil
}
