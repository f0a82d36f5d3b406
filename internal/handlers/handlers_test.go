package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/GittyRyan/compass/internal/handlers"
	"github.com/GittyRyan/compass/pkg/appctx"
	"github.com/GittyRyan/compass/pkg/kafka"
	"github.com/GittyRyan/compass/pkg/middleware"
	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/redis"
	"github.com/GittyRyan/compass/pkg/strategy"
)

const testTenant = "tenant-a"

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

// fakeRepo keeps libraries in memory, one per tenant.
type fakeRepo struct {
	libs    map[string]planlib.Library
	getErr  error
	saveErr error
	saves   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{libs: map[string]planlib.Library{}}
}

func (r *fakeRepo) Get(_ context.Context, tenantID string) (planlib.Library, error) {
	if r.getErr != nil {
		return planlib.Library{}, r.getErr
	}
	lib, ok := r.libs[tenantID]
	if !ok {
		return planlib.NewLibrary(tenantID), nil
	}
	return lib, nil
}

func (r *fakeRepo) Save(_ context.Context, lib planlib.Library) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.libs[lib.TenantID] = lib
	return nil
}

// fakeEmitter records every published event.
type fakeEmitter struct {
	events []*kafka.PlanEventMessage
}

func (e *fakeEmitter) PublishPlanEvent(_ context.Context, evt *kafka.PlanEventMessage) error {
	e.events = append(e.events, evt)
	return nil
}

func (e *fakeEmitter) lastEvent() *kafka.PlanEventMessage {
	if len(e.events) == 0 {
		return nil
	}
	return e.events[len(e.events)-1]
}

// fakeLocker runs the critical section inline unless primed with an error.
type fakeLocker struct {
	err   error
	calls int
}

func (l *fakeLocker) WithLock(_ context.Context, _ string, _ time.Duration, fn func() error) error {
	l.calls++
	if l.err != nil {
		return l.err
	}
	return fn()
}

// fakeGenerator captures the request and returns a canned result.
type fakeGenerator struct {
	got    strategy.Request
	result strategy.Result
}

func (g *fakeGenerator) Generate(_ context.Context, req strategy.Request) strategy.Result {
	g.got = req
	return g.result
}

// fakeLimiter returns a canned rate limit decision.
type fakeLimiter struct {
	res   *redis.RateLimitResult
	err   error
	calls int
}

func (l *fakeLimiter) Allow(_ context.Context, _ string, _ int64, _ time.Duration) (*redis.RateLimitResult, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.res, nil
}

// testServer wires the handlers onto an echo instance the way main does,
// with a header-based tenant middleware standing in for authentication.
type testServer struct {
	e         *echo.Echo
	repo      *fakeRepo
	emitter   *fakeEmitter
	locker    *fakeLocker
	generator *fakeGenerator
	limiter   *fakeLimiter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := testLogger()

	s := &testServer{
		e:         echo.New(),
		repo:      newFakeRepo(),
		emitter:   &fakeEmitter{},
		locker:    &fakeLocker{},
		generator: &fakeGenerator{result: strategy.Result{Success: true}},
		limiter:   &fakeLimiter{res: &redis.RateLimitResult{Allowed: true, Remaining: 4}},
	}

	s.e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tenant := c.Request().Header.Get("X-Tenant-ID"); tenant != "" {
				ctx := appctx.SetTenantID(c.Request().Context(), tenant)
				c.SetRequest(c.Request().WithContext(ctx))
			}
			return next(c)
		}
	})
	s.e.HTTPErrorHandler = middleware.Error(logger)

	api := s.e.Group("/api/v1")
	handlers.NewMotionHandler(logger).Register(api.Group("/motions"))
	plans := api.Group("/plans")
	handlers.NewPlanHandler(s.repo, s.locker, time.Second, s.emitter, logger).Register(plans)
	handlers.NewStrategyHandler(s.repo, s.generator, s.limiter, 5, time.Minute, s.emitter, "test-source", logger).Register(plans)

	return s
}

func (s *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Tenant-ID", testTenant)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) requestNoTenant(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	return decodeJSON[middleware.ErrorResponse](t, rec)
}
