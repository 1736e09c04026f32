package middleware

import (
	"errors"
	"myCatalogStore/pkg/logger"
	"net/http"
	"strings"

	jsonres "myCatalogStore/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers and middleware, such as
// unknown routes or recovered panics, in the same envelope auth uses.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled error", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	}

	errCode := strings.ToUpper(strings.ReplaceAll(http.StatusText(code), " ", "_"))

	var respErr error
	if c.Request().Method == http.MethodHead {
		respErr = c.NoContent(code)
	} else {
		respErr = c.JSON(code, jsonres.Error(errCode, message, nil))
	}
	if respErr != nil {
		logger.Error("failed to write error response", "error", respErr)
	}
}
