package rest

import (
	"context"
	"myCatalogStore/domain"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, customerID uint, input domain.OrderInput) (domain.Order, error)
		GetOrders(ctx context.Context, customerID uint) ([]domain.Order, error)
		GetOrder(ctx context.Context, orderID, customerID uint) (domain.Order, error)
		UpdateOrder(ctx context.Context, orderID, customerID uint, input domain.OrderInput) (domain.Order, error)
		DeleteOrder(ctx context.Context, orderID, customerID uint) error
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func currentUser(c echo.Context) (uint, bool) {
	userID, ok := c.Get("user_id").(uint)
	return userID, ok
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var request domain.OrderInput
	if err := bindStrict(c, &request); err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, userID, request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(domain.OrderRepresentation(order)))
}

func (h *OrdersHandler) GetAllOrders(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	orders, err := h.ordersService.GetOrders(ctx, userID)
	if err != nil {
		return errorResponse(c, err)
	}

	reps := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		reps = append(reps, domain.OrderRepresentation(o))
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reps))
}

func (h *OrdersHandler) GetOrder(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(orderID), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.OrderRepresentation(order)))
}

func (h *OrdersHandler) UpdateOrder(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	var request domain.OrderInput
	if err := bindStrict(c, &request); err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateOrder(ctx, uint(orderID), userID, request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(domain.OrderRepresentation(order)))
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	userID, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	orderID, err := paramID(c, "id")
	if err != nil {
		return errorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ordersService.DeleteOrder(ctx, uint(orderID), userID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order deleted successfully"))
}
