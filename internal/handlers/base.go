package handlers

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/GittyRyan/compass/pkg/appctx"
	"github.com/GittyRyan/compass/pkg/planlib"
)

// GetTenantID extracts the tenant ID from context
func GetTenantID(c echo.Context) (string, error) {
	tenantID := appctx.GetTenantID(c.Request().Context())
	if tenantID == "" {
		return "", httperror.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return tenantID, nil
}

// PlanID extracts the plan id path parameter
func PlanID(c echo.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", httperror.NewHTTPError(http.StatusBadRequest, "missing plan id")
	}
	return id, nil
}

// SuccessResponse returns a 200 OK with data
func SuccessResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// CreatedResponse returns a 201 Created with data
func CreatedResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// NoContentResponse returns a 204 No Content
func NoContentResponse(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// BadRequest returns a 400 Bad Request error
func BadRequest(message string) error {
	return httperror.NewHTTPError(http.StatusBadRequest, message)
}

// LibraryError translates a typed plan library error into an HTTP error
// carrying the tag and its context in the meta map. Validation failures map
// to 400, missing plans to 404, and lifecycle conflicts to 409.
func LibraryError(err error) error {
	libErr, ok := planlib.AsError(err)
	if !ok {
		return err
	}

	status := http.StatusConflict
	switch libErr.Type {
	case planlib.ErrValidation:
		status = http.StatusBadRequest
	case planlib.ErrPlanNotFound:
		status = http.StatusNotFound
	}

	httpErr := httperror.NewHTTPError(status, libErr.Error()).AddMetaValue("type", string(libErr.Type))
	switch libErr.Type {
	case planlib.ErrInvalidTransition:
		httpErr = httpErr.AddMetaValue("from", string(libErr.From)).AddMetaValue("to", string(libErr.To))
	case planlib.ErrCapacityExceeded:
		httpErr = httpErr.AddMetaValue("status", string(libErr.Status)).
			AddMetaValue("limit", strconv.Itoa(libErr.Limit)).
			AddMetaValue("current", strconv.Itoa(libErr.Current))
	case planlib.ErrArchiveOverflow:
		httpErr = httpErr.AddMetaValue("oldest_plan_id", libErr.OldestPlanID)
	case planlib.ErrPlanNotFound:
		httpErr = httpErr.AddMetaValue("plan_id", libErr.PlanID)
	}
	return httpErr
}
