package product

import (
	"context"
	"errors"
	"fmt"
	"myCatalogStore/domain"
	"myCatalogStore/pkg/logger"
	"myCatalogStore/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context, productType domain.ProductType) ([]domain.Product, error)
	ExistsBySKU(ctx context.Context, sku string, excludeID uint64) (bool, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type productService struct {
	productRepo ProductRepository
	validate    *validator.Validate
}

func NewProductService(productRepo ProductRepository, validate *validator.Validate) *productService {
	return &productService{
		productRepo: productRepo,
		validate:    validate,
	}
}

// GetAllProducts lists every product, or only those of productType when it
// is non-empty. A type nobody stores simply matches nothing.
func (s *productService) GetAllProducts(ctx context.Context, productType string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	var filter domain.ProductType
	if productType != "" {
		t, err := domain.ParseProductType(productType)
		if err != nil {
			return []domain.Product{}, nil
		}
		filter = t
	}

	return s.findAll(ctx, filter)
}

// GetStandardSpecifications lists the products of one type, which must be
// a known one.
func (s *productService) GetStandardSpecifications(ctx context.Context, productType string) ([]domain.Product, error) {
	t, err := domain.ParseProductType(productType)
	if err != nil {
		return nil, err
	}

	return s.findAll(ctx, t)
}

func (s *productService) findAll(ctx context.Context, filter domain.ProductType) ([]domain.Product, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		logger.Error("Failed to find all product", "error", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "product_id", id, "error", err)
		return nil, err
	}

	return &product, nil
}

// CreateProduct resolves productType to its variant, decodes fields and
// stores the product with its variant row.
func (s *productService) CreateProduct(ctx context.Context, productType string, fields domain.Fields) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := domain.BuildProduct(productType, fields)
	if err != nil {
		logger.Warn("Invalid product data", "product_type", productType, "error", err)
		return nil, err
	}

	if err := s.validateProduct(product); err != nil {
		logger.Warn("Invalid product data", "product_type", productType, "error", err)
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, product.SKU, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("sku %q already exists: %w", product.SKU, domain.ErrDuplicateKey)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, err
	}

	metrics.ProductsCreated.WithLabelValues(string(product.ProductType)).Inc()
	logger.Info("product created successfully", "product_id", product.ID, "product_type", product.ProductType)

	return product, nil
}

// UpdateProduct applies a partial update. Unknown or immutable keys are
// rejected before anything is written.
func (s *productService) UpdateProduct(ctx context.Context, id uint64, fields domain.Fields) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return nil, fmt.Errorf("%w: product ID is required", domain.ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found", "product_id", id, "error", err)
		return nil, err
	}

	previousSKU := product.SKU

	if err := product.ApplyUpdate(fields); err != nil {
		return nil, err
	}

	if err := s.validateProduct(&product); err != nil {
		return nil, err
	}

	if product.SKU != previousSKU {
		exists, err := s.productRepo.ExistsBySKU(ctx, product.SKU, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("sku %q already exists: %w", product.SKU, domain.ErrDuplicateKey)
		}
	}

	if err := s.productRepo.Update(ctx, &product); err != nil {
		logger.Error("failed to update product", "product_id", id, "error", err)
		return nil, err
	}

	updatedProduct, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to fetch updated product", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	logger.Info("product updated success", "product_id", id)

	return &updatedProduct, nil
}

// DeleteProduct removes the product, its variant and its pricing record.
func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: invalid product id", domain.ErrValidation)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("failed to delete product", "product_id", id, "error", err)
		}
		return err
	}

	logger.Info("product deleted success", "product_id", id)

	return nil
}

func (s *productService) validateProduct(product *domain.Product) error {
	product.Price = product.Price.Round(2)

	if err := s.validate.Struct(product); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := domain.ValidatePrice("price", product.Price); err != nil {
		return err
	}

	if product.Variant == nil || product.Variant.Type() != product.ProductType {
		return fmt.Errorf("%w: %s payload is missing", domain.ErrValidation, product.ProductType)
	}

	if err := s.validate.Struct(product.Variant); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return nil
}
