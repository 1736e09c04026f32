package pricing

import (
	"context"
	"fmt"
	"testing"

	"myCatalogStore/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducts map[uint64]bool

func (f fakeProducts) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	if !f[id] {
		return domain.Product{}, fmt.Errorf("product %w", domain.ErrNotFound)
	}
	return domain.Product{ID: id, ProductType: domain.ProductTypeBook}, nil
}

type fakePricingRepo struct {
	rows   map[uint64]domain.Pricing
	nextID uint
}

func newFakePricingRepo() *fakePricingRepo {
	return &fakePricingRepo{rows: make(map[uint64]domain.Pricing), nextID: 1}
}

func (r *fakePricingRepo) Upsert(_ context.Context, p *domain.Pricing) error {
	if existing, ok := r.rows[p.ProductID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	r.rows[p.ProductID] = *p
	return nil
}

func (r *fakePricingRepo) FindByProductID(_ context.Context, productID uint64) (domain.Pricing, error) {
	p, ok := r.rows[productID]
	if !ok {
		return domain.Pricing{}, fmt.Errorf("pricing %w", domain.ErrNotFound)
	}
	return p, nil
}

func (r *fakePricingRepo) FindAll(_ context.Context) ([]domain.Pricing, error) {
	out := make([]domain.Pricing, 0, len(r.rows))
	for _, p := range r.rows {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePricingRepo) DeleteByProductID(_ context.Context, productID uint64) error {
	if _, ok := r.rows[productID]; !ok {
		return fmt.Errorf("pricing %w", domain.ErrNotFound)
	}
	delete(r.rows, productID)
	return nil
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestUpsertPricing_ComputesFinalPrice(t *testing.T) {
	svc := NewPricingService(newFakePricingRepo(), fakeProducts{1: true})

	p, err := svc.UpsertPricing(context.Background(), 1, domain.PricingInput{
		BasePrice: dec("100.00"),
		Discount:  dec("0.10"),
		TaxRate:   dec("0.08"),
	})
	require.NoError(t, err)
	assert.Equal(t, "97.20", p.FinalPrice.StringFixed(2))
}

func TestUpsertPricing_DefaultsFractionsToZero(t *testing.T) {
	svc := NewPricingService(newFakePricingRepo(), fakeProducts{1: true})

	p, err := svc.UpsertPricing(context.Background(), 1, domain.PricingInput{BasePrice: dec("12.34")})
	require.NoError(t, err)
	assert.True(t, p.Discount.IsZero())
	assert.True(t, p.TaxRate.IsZero())
	assert.Equal(t, "12.34", p.FinalPrice.StringFixed(2))
}

func TestUpsertPricing_TwiceKeepsOneRow(t *testing.T) {
	repo := newFakePricingRepo()
	svc := NewPricingService(repo, fakeProducts{7: true})
	ctx := context.Background()

	first, err := svc.UpsertPricing(ctx, 7, domain.PricingInput{BasePrice: dec("50"), Discount: dec("0.5")})
	require.NoError(t, err)

	second, err := svc.UpsertPricing(ctx, 7, domain.PricingInput{BasePrice: dec("80"), TaxRate: dec("0.25")})
	require.NoError(t, err)

	all, err := svc.GetAllPricing(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "100.00", all[0].FinalPrice.StringFixed(2))
	assert.True(t, all[0].Discount.IsZero())
}

func TestUpsertPricing_Errors(t *testing.T) {
	svc := NewPricingService(newFakePricingRepo(), fakeProducts{1: true})
	ctx := context.Background()

	tests := []struct {
		name      string
		productID uint64
		input     domain.PricingInput
		want      error
	}{
		{"unknown product", 2, domain.PricingInput{BasePrice: dec("1")}, domain.ErrNotFound},
		{"missing base price", 1, domain.PricingInput{}, domain.ErrValidation},
		{"negative base price", 1, domain.PricingInput{BasePrice: dec("-1")}, domain.ErrValidation},
		{"discount above one", 1, domain.PricingInput{BasePrice: dec("1"), Discount: dec("1.5")}, domain.ErrValidation},
		{"negative tax", 1, domain.PricingInput{BasePrice: dec("1"), TaxRate: dec("-0.1")}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertPricing(ctx, tt.productID, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeletePricing(t *testing.T) {
	svc := NewPricingService(newFakePricingRepo(), fakeProducts{1: true})
	ctx := context.Background()

	_, err := svc.UpsertPricing(ctx, 1, domain.PricingInput{BasePrice: dec("10")})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePricing(ctx, 1))
	_, err = svc.GetPricing(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePricing(ctx, 1), domain.ErrNotFound)
}
