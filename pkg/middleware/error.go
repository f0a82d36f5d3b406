package middleware

import (
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/GittyRyan/compass/pkg/appctx"
	"github.com/GittyRyan/compass/pkg/tracing"
)

// ErrorResponse is the JSON body returned for every failed request. Meta
// carries machine-readable detail such as the lifecycle transition that was
// rejected or the plan blocking an archive.
type ErrorResponse struct {
	Message   string         `json:"message"`
	RequestID string         `json:"request_id"`
	TraceID   string         `json:"trace_id"`
	Meta      map[string]any `json:"meta"`
}

// Error converts any error escaping a handler into an ErrorResponse.
func Error(logger ectologger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		ctx := c.Request().Context()

		code := http.StatusInternalServerError
		message := "Internal Server Error"
		meta := map[string]any{}

		if httperror.IsHTTPError(err) {
			httpErr := httperror.ToHTTPError(err)
			code = httperror.GetStatusCode(err)
			message = httpErr.Error()
			meta = httpErr.Meta
		} else if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			}
		}

		// Lifecycle conflicts and validation failures are expected traffic,
		// only server faults log as errors.
		entry := logger.WithContext(ctx).WithError(err)
		if code >= http.StatusInternalServerError {
			entry.Error("Request failed")
		} else {
			entry.Info("Request rejected")
		}

		if c.Response().Committed {
			return
		}

		_ = c.JSON(code, ErrorResponse{
			Message:   message,
			RequestID: appctx.GetRequestID(ctx),
			TraceID:   tracing.GetTraceID(ctx),
			Meta:      meta,
		})
	}
}
