package product

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"myCatalogStore/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[uint64]domain.Product
	nextID   uint64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uint64]domain.Product), nextID: 1}
}

// cloneVariant keeps stored rows isolated from callers mutating what they read.
func cloneVariant(v domain.Variant) domain.Variant {
	switch t := v.(type) {
	case *domain.Book:
		c := *t
		return &c
	case *domain.ComicBook:
		c := *t
		return &c
	case *domain.ChildrenBook:
		c := *t
		return &c
	case *domain.TShirt:
		c := *t
		return &c
	case *domain.EBook:
		c := *t
		return &c
	}
	return nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	p.Variant.SetProductID(p.ID)

	stored := *p
	stored.Variant = cloneVariant(p.Variant)
	r.products[p.ID] = stored
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %w", domain.ErrNotFound)
	}
	p.Variant = cloneVariant(p.Variant)
	return p, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, productType domain.ProductType) ([]domain.Product, error) {
	products := []domain.Product{}
	for _, p := range r.products {
		if productType != "" && p.ProductType != productType {
			continue
		}
		p.Variant = cloneVariant(p.Variant)
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *fakeProductRepo) ExistsBySKU(_ context.Context, sku string, excludeID uint64) (bool, error) {
	for id, p := range r.products {
		if p.SKU == sku && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return fmt.Errorf("product %w", domain.ErrNotFound)
	}
	stored := *p
	stored.UpdatedAt = time.Now()
	stored.Variant = cloneVariant(p.Variant)
	r.products[p.ID] = stored
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %w", domain.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func bookFields(sku string) domain.Fields {
	return domain.Fields{
		"name":       "The Go Programming Language",
		"sku":        sku,
		"price":      "39.99",
		"isbn":       "9780134190440",
		"author":     "Donovan",
		"page_count": 380,
		"cover_type": "paperback",
		"trim_size":  "7x9",
		"paper_type": "matte",
	}
}

func childrenBookFields(sku string) domain.Fields {
	f := bookFields(sku)
	f["isbn"] = "9780000000001"
	f["age_group"] = "4-8"
	f["illustration_style"] = "watercolor"
	return f
}

func comicBookFields(sku string) domain.Fields {
	return domain.Fields{
		"name":         "Gopher Adventures",
		"sku":          sku,
		"price":        "4.99",
		"issue_number": 7,
		"series_title": "Gopher Adventures",
		"trim_size":    "6.625x10.25",
		"page_count":   32,
	}
}

func fieldsFor(productType, sku string) domain.Fields {
	if productType == "comic_book" {
		return comicBookFields(sku)
	}
	return bookFields(sku)
}

func newTestService() (*productService, *fakeProductRepo) {
	repo := newFakeProductRepo()
	return NewProductService(repo, validator.New()), repo
}

func TestCreateProduct_ChildrenBook(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.CreateProduct(context.Background(), "children_book", childrenBookFields("CB-1"))
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	rep := domain.ProductRepresentation(*p)
	for _, key := range []string{
		"id", "product_type", "name", "description", "sku", "price", "created_at", "updated_at",
		"isbn", "author", "page_count", "cover_type", "trim_size", "paper_type",
		"age_group", "illustration_style",
	} {
		assert.Contains(t, rep, key)
	}
	assert.Equal(t, "4-8", rep["age_group"])
	assert.Equal(t, "watercolor", rep["illustration_style"])
	assert.Equal(t, "39.99", rep["price"])
	assert.Equal(t, "children_book", rep["product_type"])
}

func TestCreateProduct_UnknownType(t *testing.T) {
	svc, repo := newTestService()

	for _, tag := range []string{"product", "vinyl", ""} {
		_, err := svc.CreateProduct(context.Background(), tag, bookFields("X-1"))
		assert.ErrorIs(t, err, domain.ErrUnknownVariant, tag)
	}
	assert.Empty(t, repo.products)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, "book", bookFields("SKU-1"))
	require.NoError(t, err)

	shirt := domain.Fields{
		"name": "Gopher Tee", "sku": "SKU-1", "price": "15",
		"size": "M", "color": "blue", "material": "cotton",
	}
	_, err = svc.CreateProduct(ctx, "tshirt", shirt)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	shirt["sku"] = "SKU-2"
	_, err = svc.CreateProduct(ctx, "tshirt", shirt)
	assert.NoError(t, err)
	assert.Len(t, repo.products, 2)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name        string
		productType string
		mutate      func(domain.Fields)
	}{
		{"missing isbn", "book", func(f domain.Fields) { delete(f, "isbn") }},
		{"isbn too long", "book", func(f domain.Fields) { f["isbn"] = "97801341904401" }},
		{"missing name", "book", func(f domain.Fields) { delete(f, "name") }},
		{"negative price", "book", func(f domain.Fields) { f["price"] = "-1" }},
		{"unknown field", "book", func(f domain.Fields) { f["weight"] = 10 }},
		{"immutable field", "book", func(f domain.Fields) { f["id"] = 5 }},
		{"wrong shape", "book", func(f domain.Fields) { f["page_count"] = "many" }},
		{"tshirt field on a book", "book", func(f domain.Fields) { f["size"] = "M" }},
		{"missing price", "book", func(f domain.Fields) { delete(f, "price") }},
		{"null price", "book", func(f domain.Fields) { f["price"] = nil }},
		{"null author", "book", func(f domain.Fields) { f["author"] = nil }},
		{"comic missing issue_number", "comic_book", func(f domain.Fields) { delete(f, "issue_number") }},
		{"comic null series_title", "comic_book", func(f domain.Fields) { f["series_title"] = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService()
			fields := fieldsFor(tt.productType, "V-1")
			tt.mutate(fields)

			_, err := svc.CreateProduct(context.Background(), tt.productType, fields)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, repo.products)
		})
	}
}

func TestCreateProduct_ComicBook(t *testing.T) {
	svc, _ := newTestService()

	fields := comicBookFields("CM-1")
	fields["issue_number"] = 0
	p, err := svc.CreateProduct(context.Background(), "comic_book", fields)
	require.NoError(t, err)

	rep := domain.ProductRepresentation(*p)
	assert.Equal(t, 0, rep["issue_number"])
	assert.Nil(t, rep["cover_type"])
	assert.Nil(t, rep["description"])
}

func TestCreateProduct_EBookFormat(t *testing.T) {
	svc, _ := newTestService()
	fields := domain.Fields{
		"name": "Go Patterns", "sku": "EB-1", "price": "9.50",
		"file_format": "DOCX", "download_url": "https://example.com/go.docx",
	}

	_, err := svc.CreateProduct(context.Background(), "ebook", fields)
	assert.ErrorIs(t, err, domain.ErrValidation)

	fields["file_format"] = "EPUB"
	p, err := svc.CreateProduct(context.Background(), "ebook", fields)
	require.NoError(t, err)
	assert.Nil(t, domain.ProductRepresentation(*p)["file_size"])
}

func TestUpdateProduct(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, "book", bookFields("U-1"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, "book", func() domain.Fields {
		f := bookFields("U-2")
		f["isbn"] = "9780000000002"
		return f
	}())
	require.NoError(t, err)

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		updated, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"name": "Renamed", "page_count": 400})
		require.NoError(t, err)

		rep := domain.ProductRepresentation(*updated)
		assert.Equal(t, "Renamed", rep["name"])
		assert.Equal(t, 400, rep["page_count"])
		assert.Equal(t, "Donovan", rep["author"])
		assert.Equal(t, "U-1", rep["sku"])
	})

	t.Run("unknown key rejected and nothing written", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"name": "Other", "colour": "red"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "Renamed", repo.products[created.ID].Name)
	})

	t.Run("null on a required field rejected", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"price": nil})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "39.99", repo.products[created.ID].Price.StringFixed(2))
	})

	t.Run("product_type is immutable", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"product_type": "tshirt"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("sku collision", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"sku": "U-2"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	})

	t.Run("keeping own sku is fine", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, created.ID, domain.Fields{"sku": "U-1"})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.UpdateProduct(ctx, 999, domain.Fields{"name": "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, "book", bookFields("D-1"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))

	_, err = svc.GetProductByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), domain.ErrNotFound)
}

func TestGetAllProducts_Filter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, "book", bookFields("F-1"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, "tshirt", domain.Fields{
		"name": "Tee", "sku": "F-2", "price": "10", "size": "L", "color": "black", "material": "cotton",
	})
	require.NoError(t, err)

	all, err := svc.GetAllProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shirts, err := svc.GetAllProducts(ctx, "tshirt")
	require.NoError(t, err)
	require.Len(t, shirts, 1)
	assert.Equal(t, domain.ProductTypeTShirt, shirts[0].ProductType)

	none, err := svc.GetAllProducts(ctx, "vinyl")
	require.NoError(t, err)
	assert.Empty(t, none)

	specs, err := svc.GetStandardSpecifications(ctx, "book")
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "F-1", specs[0].SKU)

	_, err = svc.GetStandardSpecifications(ctx, "vinyl")
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
}
