package postgres

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"time"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// Create inserts the base row and the variant row(s) in one transaction.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if product.Variant == nil {
		return fmt.Errorf("%w: product has no %s payload", domain.ErrValidation, product.ProductType)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		product.Variant.SetProductID(product.ID)
		return createVariant(tx, product.Variant)
	})
	if err != nil {
		return translateError("product", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product

	db := r.DB.WithContext(ctx)
	if err := db.First(&product, id).Error; err != nil {
		return domain.Product{}, translateError("product", err)
	}

	if err := loadVariants(db, []*domain.Product{&product}); err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

// FindAll lists products, optionally restricted to one product type.
func (r *ProductRepository) FindAll(ctx context.Context, productType domain.ProductType) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	db := r.DB.WithContext(ctx)

	query := db.Order("id")
	if productType != "" {
		query = query.Where("product_type = ?", productType)
	}

	var products []domain.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	ptrs := make([]*domain.Product, len(products))
	for i := range products {
		ptrs[i] = &products[i]
	}
	if err := loadVariants(db, ptrs); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *ProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID uint64) (bool, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}

	return count > 0, nil
}

// Update writes the base columns and the full variant payload.
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updateData := map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"sku":         product.SKU,
			"price":       product.Price,
			"updated_at":  time.Now(),
		}

		result := tx.Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if product.Variant == nil {
			return nil
		}
		product.Variant.SetProductID(product.ID)
		return saveVariant(tx, product.Variant)
	})
	if err != nil {
		return translateError("product", err)
	}

	return nil
}

// Delete removes the product, its variant row(s) and its pricing record as
// one unit, so no orphan survives a partial failure.
func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.Select("id", "product_type").First(&product, id).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&domain.Pricing{}).Error; err != nil {
			return err
		}

		if err := deleteVariant(tx, product.ProductType, id); err != nil {
			return err
		}

		return tx.Delete(&domain.Product{}, id).Error
	})
	if err != nil {
		return translateError("product", err)
	}

	return nil
}

func createVariant(tx *gorm.DB, v domain.Variant) error {
	switch v := v.(type) {
	case *domain.ChildrenBook:
		if err := tx.Create(&v.Book).Error; err != nil {
			return err
		}
		return tx.Create(&v.ChildrenBookDetails).Error
	case *domain.Book, *domain.ComicBook, *domain.TShirt, *domain.EBook:
		return tx.Create(v).Error
	}

	return fmt.Errorf("%w: %T", domain.ErrUnknownVariant, v)
}

func saveVariant(tx *gorm.DB, v domain.Variant) error {
	switch v := v.(type) {
	case *domain.ChildrenBook:
		if err := tx.Save(&v.Book).Error; err != nil {
			return err
		}
		return tx.Save(&v.ChildrenBookDetails).Error
	case *domain.Book, *domain.ComicBook, *domain.TShirt, *domain.EBook:
		return tx.Save(v).Error
	}

	return fmt.Errorf("%w: %T", domain.ErrUnknownVariant, v)
}

func deleteVariant(tx *gorm.DB, productType domain.ProductType, id uint64) error {
	switch productType {
	case domain.ProductTypeChildrenBook:
		if err := tx.Delete(&domain.ChildrenBookDetails{}, id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Book{}, id).Error
	case domain.ProductTypeBook:
		return tx.Delete(&domain.Book{}, id).Error
	case domain.ProductTypeComicBook:
		return tx.Delete(&domain.ComicBook{}, id).Error
	case domain.ProductTypeTShirt:
		return tx.Delete(&domain.TShirt{}, id).Error
	case domain.ProductTypeEBook:
		return tx.Delete(&domain.EBook{}, id).Error
	}

	return fmt.Errorf("%w: %q", domain.ErrUnknownVariant, productType)
}

// loadVariants fills Variant for every product with one query per table.
func loadVariants(db *gorm.DB, products []*domain.Product) error {
	ids := make(map[domain.ProductType][]uint64)
	for _, p := range products {
		ids[p.ProductType] = append(ids[p.ProductType], p.ID)
	}

	variants := make(map[uint64]domain.Variant, len(products))

	bookIDs := append(append([]uint64{}, ids[domain.ProductTypeBook]...), ids[domain.ProductTypeChildrenBook]...)
	books, err := findByIDs[domain.Book](db, bookIDs)
	if err != nil {
		return err
	}
	booksByID := make(map[uint64]domain.Book, len(books))
	for _, b := range books {
		booksByID[b.ID] = b
	}
	for _, id := range ids[domain.ProductTypeBook] {
		if b, ok := booksByID[id]; ok {
			variants[id] = &b
		}
	}

	details, err := findByIDs[domain.ChildrenBookDetails](db, ids[domain.ProductTypeChildrenBook])
	if err != nil {
		return err
	}
	for _, d := range details {
		if b, ok := booksByID[d.ID]; ok {
			variants[d.ID] = &domain.ChildrenBook{Book: b, ChildrenBookDetails: d}
		}
	}

	comics, err := findByIDs[domain.ComicBook](db, ids[domain.ProductTypeComicBook])
	if err != nil {
		return err
	}
	for _, c := range comics {
		variants[c.ID] = &c
	}

	shirts, err := findByIDs[domain.TShirt](db, ids[domain.ProductTypeTShirt])
	if err != nil {
		return err
	}
	for _, s := range shirts {
		variants[s.ID] = &s
	}

	ebooks, err := findByIDs[domain.EBook](db, ids[domain.ProductTypeEBook])
	if err != nil {
		return err
	}
	for _, e := range ebooks {
		variants[e.ID] = &e
	}

	for _, p := range products {
		v, ok := variants[p.ID]
		if !ok {
			return fmt.Errorf("product %d has no %s row", p.ID, p.ProductType)
		}
		p.Variant = v
	}

	return nil
}

func findByIDs[T any](db *gorm.DB, ids []uint64) ([]T, error) {
	var rows []T
	if len(ids) == 0 {
		return rows, nil
	}

	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("failed to load %T rows: %w", zero, err)
	}

	return rows, nil
}
