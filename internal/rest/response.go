package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"myCatalogStore/domain"
	"myCatalogStore/pkg/logger"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// statusFor maps catalog errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrDuplicateKey),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownVariant):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(c echo.Context, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(status, ResponseError{Message: http.StatusText(status)})
	}

	return c.JSON(status, ResponseError{Message: err.Error()})
}

// bindStrict decodes the JSON body into v and refuses keys v does not
// declare.
func bindStrict(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return nil
}

// bindFields decodes the JSON body into a field map, keeping numbers
// exact so money values are not routed through float64.
func bindFields(c echo.Context) (domain.Fields, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var fields domain.Fields
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", domain.ErrValidation)
	}

	return fields, nil
}

func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrValidation, name)
	}

	return id, nil
}
