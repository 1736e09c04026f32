package rest

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context, productType string) ([]domain.Product, error)
	GetStandardSpecifications(ctx context.Context, productType string) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
	CreateProduct(ctx context.Context, productType string, fields domain.Fields) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uint64, fields domain.Fields) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		timeout:        10 * time.Second,
	}
}

// GetAllProducts lists products, narrowed by the optional ?type= filter.
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx, c.QueryParam("type"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.ProductRepresentations(products))
}

func (h *ProductHandler) GetStandardSpecifications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetStandardSpecifications(ctx, c.Param("product_type"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.ProductRepresentations(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.GetProductByID(ctx, productID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, domain.ProductRepresentation(*product))
}

// CreateProduct reads product_type from the body and hands the remaining
// keys to the catalog as the product's fields.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return errorResponse(c, err)
	}

	productType := "product"
	if raw, ok := fields["product_type"]; ok {
		tag, ok := raw.(string)
		if !ok {
			return errorResponse(c, fmt.Errorf("%w: product_type must be a string", domain.ErrValidation))
		}
		productType = tag
		delete(fields, "product_type")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.CreateProduct(ctx, productType, fields)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": fmt.Sprintf("%s created successfully!", displayName(product.ProductType)),
		"product": domain.ProductRepresentation(*product),
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	fields, err := bindFields(c)
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	product, err := h.productService.UpdateProduct(ctx, productID, fields)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully!",
		"product": domain.ProductRepresentation(*product),
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product deleted successfully!",
	})
}

// displayName turns "comic_book" into "Comic Book".
func displayName(t domain.ProductType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
