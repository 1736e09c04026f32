package rest

import (
	"context"
	"fmt"
	"myCatalogStore/domain"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	PricingHandler struct {
		validate       *validator.Validate
		pricingService PricingService
		timeout        time.Duration
	}

	PricingService interface {
		UpsertPricing(ctx context.Context, productID uint64, input domain.PricingInput) (domain.Pricing, error)
		GetPricing(ctx context.Context, productID uint64) (domain.Pricing, error)
		GetAllPricing(ctx context.Context) ([]domain.Pricing, error)
		DeletePricing(ctx context.Context, productID uint64) error
	}

	PricingRequest struct {
		ProductID uint64 `json:"product_id" validate:"required"`
		domain.PricingInput
	}
)

func NewPricingHandler(pricingService PricingService) *PricingHandler {
	return &PricingHandler{
		validate:       validator.New(),
		pricingService: pricingService,
		timeout:        10 * time.Second,
	}
}

// UpsertPricing creates the pricing record of a product or replaces it.
func (h *PricingHandler) UpsertPricing(c echo.Context) error {
	var request PricingRequest

	if err := bindStrict(c, &request); err != nil {
		return errorResponse(c, err)
	}

	if err := h.validate.Struct(&request); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pricing, err := h.pricingService.UpsertPricing(ctx, request.ProductID, request.PricingInput)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(domain.PricingRepresentation(pricing)))
}

func (h *PricingHandler) GetAllPricing(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	records, err := h.pricingService.GetAllPricing(ctx)
	if err != nil {
		return errorResponse(c, err)
	}

	reps := make([]map[string]any, 0, len(records))
	for _, p := range records {
		reps = append(reps, domain.PricingRepresentation(p))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reps))
}

func (h *PricingHandler) GetPricing(c echo.Context) error {
	productID, err := paramID(c, "product_id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pricing, err := h.pricingService.GetPricing(ctx, productID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.PricingRepresentation(pricing)))
}

func (h *PricingHandler) DeletePricing(c echo.Context) error {
	productID, err := paramID(c, "product_id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.pricingService.DeletePricing(ctx, productID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Pricing deleted successfully"))
}
