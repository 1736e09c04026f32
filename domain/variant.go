package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

type ProductType string

const (
	ProductTypeBook         ProductType = "book"
	ProductTypeComicBook    ProductType = "comic_book"
	ProductTypeChildrenBook ProductType = "children_book"
	ProductTypeTShirt       ProductType = "tshirt"
	ProductTypeEBook        ProductType = "ebook"
)

// Fields is an already-parsed, not yet validated attribute map, as it
// arrives from a request body.
type Fields map[string]any

type variantSpec struct {
	newVariant func() Variant
	fields     []string
	// nullable fields may be absent on create and may be set to null.
	nullable []string
}

var (
	baseProductFields = []string{"name", "description", "sku", "price"}

	baseNullableFields = []string{"description"}

	// immutableProductFields may appear in a representation but never in a write.
	immutableProductFields = []string{"id", "product_type", "created_at", "updated_at"}

	bookFields = []string{"isbn", "author", "page_count", "cover_type", "trim_size", "paper_type"}
)

// variantRegistry is the single place a product type tag is mapped to the
// shape it stands for.
var variantRegistry = map[ProductType]variantSpec{
	ProductTypeBook: {
		newVariant: func() Variant { return &Book{} },
		fields:     bookFields,
	},
	ProductTypeComicBook: {
		newVariant: func() Variant { return &ComicBook{} },
		fields:     []string{"issue_number", "series_title", "cover_type", "trim_size", "page_count"},
		nullable:   []string{"cover_type"},
	},
	ProductTypeChildrenBook: {
		newVariant: func() Variant { return &ChildrenBook{} },
		fields:     append(append([]string{}, bookFields...), "age_group", "illustration_style"),
	},
	ProductTypeTShirt: {
		newVariant: func() Variant { return &TShirt{} },
		fields:     []string{"size", "color", "material"},
	},
	ProductTypeEBook: {
		newVariant: func() Variant { return &EBook{} },
		fields:     []string{"file_format", "download_url", "file_size"},
		nullable:   []string{"file_size"},
	},
}

// ParseProductType resolves a discriminator tag against the registry.
func ParseProductType(tag string) (ProductType, error) {
	t := ProductType(tag)
	if _, ok := variantRegistry[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, tag)
	}
	return t, nil
}

// ProductTypes returns every known tag in stable order.
func ProductTypes() []ProductType {
	types := make([]ProductType, 0, len(variantRegistry))
	for t := range variantRegistry {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// NewVariant returns an empty payload for t.
func NewVariant(t ProductType) (Variant, error) {
	spec, ok := variantRegistry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, t)
	}
	return spec.newVariant(), nil
}

// BuildProduct creates an unsaved product of the given type from fields.
// Keys outside the base and variant allow-lists are rejected, as is a
// missing or null value for any field that is not nullable.
func BuildProduct(productType string, fields Fields) (*Product, error) {
	t, err := ParseProductType(productType)
	if err != nil {
		return nil, err
	}
	spec := variantRegistry[t]

	base, variant, err := splitFields(fields, spec)
	if err != nil {
		return nil, err
	}
	if err := checkRequired(fields, spec); err != nil {
		return nil, err
	}

	p := &Product{ProductType: t, Variant: spec.newVariant()}
	if err := decodeFields(base, p); err != nil {
		return nil, err
	}
	if err := decodeFields(variant, p.Variant); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyUpdate overlays the present fields onto p. Fields that are absent
// keep their current values; only nullable fields may be set to null.
func (p *Product) ApplyUpdate(fields Fields) error {
	spec, ok := variantRegistry[p.ProductType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, p.ProductType)
	}
	if p.Variant == nil {
		p.Variant = spec.newVariant()
	}

	base, variant, err := splitFields(fields, spec)
	if err != nil {
		return err
	}
	if err := checkNotNull(fields, spec); err != nil {
		return err
	}
	if err := decodeFields(base, p); err != nil {
		return err
	}
	return decodeFields(variant, p.Variant)
}

func splitFields(fields Fields, spec variantSpec) (Fields, Fields, error) {
	base := Fields{}
	variant := Fields{}
	var unknown []string

	for key, value := range fields {
		switch {
		case contains(baseProductFields, key):
			base[key] = value
		case contains(spec.fields, key):
			variant[key] = value
		case contains(immutableProductFields, key):
			return nil, nil, fmt.Errorf("%w: field %q cannot be set", ErrValidation, key)
		default:
			unknown = append(unknown, key)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, nil, fmt.Errorf("%w: unknown fields %v", ErrValidation, unknown)
	}

	return base, variant, nil
}

// checkRequired reports every non-nullable field that is absent or null.
func checkRequired(fields Fields, spec variantSpec) error {
	var missing []string
	for _, list := range [][]string{baseProductFields, spec.fields} {
		for _, key := range list {
			if spec.isNullable(key) {
				continue
			}
			if v, ok := fields[key]; !ok || v == nil {
				missing = append(missing, key)
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing required fields %v", ErrValidation, missing)
	}
	return nil
}

// checkNotNull rejects an explicit null for a field that cannot be empty.
func checkNotNull(fields Fields, spec variantSpec) error {
	var nulls []string
	for key, v := range fields {
		if v == nil && !spec.isNullable(key) {
			nulls = append(nulls, key)
		}
	}

	if len(nulls) > 0 {
		sort.Strings(nulls)
		return fmt.Errorf("%w: fields %v cannot be null", ErrValidation, nulls)
	}
	return nil
}

func (s variantSpec) isNullable(key string) bool {
	return contains(baseNullableFields, key) || contains(s.nullable, key)
}

// decodeFields writes fields onto target through their json tags.
func decodeFields(fields Fields, target any) error {
	if len(fields) == 0 {
		return nil
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
