package utils

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
)

// BindRequest decodes the request body into T and runs struct validation.
// Handlers receive either a fully validated value or a 400 carrying the
// decode or validation detail in the error meta.
func BindRequest[T any](c echo.Context) (T, error) {
	var v T

	if err := c.Bind(&v); err != nil {
		httpErr := httperror.NewHTTPError(http.StatusBadRequest, "request body could not be parsed")
		httpErr = httpErr.AddMetaValue("detail", err.Error())
		return v, httpErr
	}

	if _, err := Validate(v); err != nil {
		httpErr := httperror.NewHTTPError(http.StatusBadRequest, "request validation failed")
		httpErr = httpErr.AddMetaValue("detail", err.Error())
		return v, httpErr
	}

	return v, nil
}
