package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Representations are the wire shapes of catalog entities. Money is
// rendered as fixed two-place decimal strings so values survive repeated
// read/write cycles unchanged.

func UserRepresentation(u User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_at": formatTime(u.CreatedAt),
		"updated_at": formatTime(u.UpdatedAt),
	}
}

// ProductRepresentation flattens the base product and its variant into one
// record. Variant attributes win on a name collision.
func ProductRepresentation(p Product) map[string]any {
	rep := map[string]any{
		"id":           p.ID,
		"product_type": string(p.ProductType),
		"name":         p.Name,
		"description":  p.Description,
		"sku":          p.SKU,
		"price":        formatMoney(p.Price),
		"created_at":   formatTime(p.CreatedAt),
		"updated_at":   formatTime(p.UpdatedAt),
	}

	if p.Variant != nil {
		for k, v := range p.Variant.Attributes() {
			rep[k] = v
		}
	}

	return rep
}

func ProductRepresentations(products []Product) []map[string]any {
	reps := make([]map[string]any, 0, len(products))
	for _, p := range products {
		reps = append(reps, ProductRepresentation(p))
	}
	return reps
}

func PricingRepresentation(p Pricing) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"product_id":  p.ProductID,
		"base_price":  formatMoney(p.BasePrice),
		"discount":    formatMoney(p.Discount),
		"tax_rate":    formatMoney(p.TaxRate),
		"final_price": formatMoney(p.FinalPrice),
		"created_at":  formatTime(p.CreatedAt),
		"updated_at":  formatTime(p.UpdatedAt),
	}
}

func OrderRepresentation(o Order) map[string]any {
	return map[string]any{
		"id":          o.ID,
		"customer_id": o.CustomerID,
		"status":      o.Status,
		"total_price": formatMoney(o.TotalPrice),
		"created_at":  formatTime(o.CreatedAt),
		"updated_at":  formatTime(o.UpdatedAt),
	}
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(priceScale)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
