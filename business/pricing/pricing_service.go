package pricing

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"myCatalogStore/pkg/logger"
	"myCatalogStore/pkg/metrics"

	"github.com/shopspring/decimal"
)

type PricingRepository interface {
	Upsert(ctx context.Context, pricing *domain.Pricing) error
	FindByProductID(ctx context.Context, productID uint64) (domain.Pricing, error)
	FindAll(ctx context.Context) ([]domain.Pricing, error)
	DeleteByProductID(ctx context.Context, productID uint64) error
}

// ProductFinder is the slice of the product repository pricing needs.
type ProductFinder interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type PricingService struct {
	pricingRepo PricingRepository
	productRepo ProductFinder
}

func NewPricingService(pricingRepo PricingRepository, productRepo ProductFinder) *PricingService {
	return &PricingService{
		pricingRepo: pricingRepo,
		productRepo: productRepo,
	}
}

// UpsertPricing creates or replaces the pricing record of a product. The
// final price is computed here, before the write.
func (s *PricingService) UpsertPricing(ctx context.Context, productID uint64, input domain.PricingInput) (domain.Pricing, error) {
	if input.BasePrice == nil {
		return domain.Pricing{}, fmt.Errorf("%w: base_price is required", domain.ErrValidation)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		logger.Warn("pricing target product missing", "product_id", productID, "error", err)
		return domain.Pricing{}, err
	}

	discount := decimal.Zero
	if input.Discount != nil {
		discount = *input.Discount
	}
	taxRate := decimal.Zero
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}

	pricing, err := domain.NewPricing(productID, *input.BasePrice, discount, taxRate)
	if err != nil {
		return domain.Pricing{}, err
	}

	if err := s.pricingRepo.Upsert(ctx, &pricing); err != nil {
		logger.Error("failed to upsert pricing", "product_id", productID, "error", err)
		return domain.Pricing{}, err
	}

	metrics.PricingUpserts.Inc()
	logger.Info("pricing saved", "product_id", productID, "final_price", pricing.FinalPrice.StringFixed(2))

	return pricing, nil
}

func (s *PricingService) GetPricing(ctx context.Context, productID uint64) (domain.Pricing, error) {
	return s.pricingRepo.FindByProductID(ctx, productID)
}

func (s *PricingService) GetAllPricing(ctx context.Context) ([]domain.Pricing, error) {
	return s.pricingRepo.FindAll(ctx)
}

func (s *PricingService) DeletePricing(ctx context.Context, productID uint64) error {
	return s.pricingRepo.DeleteByProductID(ctx, productID)
}
