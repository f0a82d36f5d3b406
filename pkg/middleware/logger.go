package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/GittyRyan/compass/pkg/appctx"
)

// Logger emits one structured line per request. Health probes are logged at
// debug so kubelet traffic does not drown out real requests.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			req := c.Request()
			res := c.Response()
			start := time.Now()
			if err = next(c); err != nil {
				c.Error(err)
			}

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
				if id == "" {
					id = uuid.New().String()
				}
			}

			ctx := c.Request().Context()
			entry := logger.WithContext(ctx).WithFields(map[string]interface{}{
				"request_id":    id,
				"tenant_id":     appctx.GetTenantID(ctx),
				"method":        req.Method,
				"route":         c.Path(),
				"uri":           req.RequestURI,
				"status":        res.Status,
				"remote_ip":     c.RealIP(),
				"user_agent":    req.UserAgent(),
				"duration_ms":   time.Since(start).Milliseconds(),
				"response_size": strconv.FormatInt(res.Size, 10),
			})

			if strings.HasPrefix(c.Path(), "/api/v1/health") {
				entry.Debug("Request")
			} else {
				entry.Info("Request")
			}

			return nil
		}
	}
}
