package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/GittyRyan/compass/pkg/kafka"
	"github.com/GittyRyan/compass/pkg/metrics"
	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/preview"
	"github.com/GittyRyan/compass/pkg/redis"
	"github.com/GittyRyan/compass/pkg/repositories"
	"github.com/GittyRyan/compass/pkg/scoring"
	"github.com/GittyRyan/compass/pkg/strategy"
	"github.com/GittyRyan/compass/pkg/tracing"
	"github.com/GittyRyan/compass/pkg/utils"
)

// StrategyLimiter bounds strategy generations per tenant. A nil limiter
// disables throttling.
type StrategyLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redis.RateLimitResult, error)
}

// StrategyHandler forwards active plans to the strategy-generation backend
type StrategyHandler struct {
	repo       repositories.LibraryRepo
	generator  strategy.Generator
	limiter    StrategyLimiter
	rateLimit  int64
	rateWindow time.Duration
	emitter    kafka.Emitter
	source     string
	logger     ectologger.Logger
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(repo repositories.LibraryRepo, generator strategy.Generator, limiter StrategyLimiter, rateLimit int64, rateWindow time.Duration, emitter kafka.Emitter, source string, logger ectologger.Logger) *StrategyHandler {
	if rateWindow <= 0 {
		rateWindow = time.Hour
	}
	return &StrategyHandler{
		repo:       repo,
		generator:  generator,
		limiter:    limiter,
		rateLimit:  rateLimit,
		rateWindow: rateWindow,
		emitter:    emitter,
		source:     source,
		logger:     logger,
	}
}

// GenerateStrategyRequest represents the strategy generation request body
type GenerateStrategyRequest struct {
	IncludePreview   bool   `json:"include_preview,omitempty"`
	SalesCycleMonths int    `json:"sales_cycle_months,omitempty"`
	SeasonalContext  string `json:"seasonal_context,omitempty"`
}

// Register registers strategy routes on the plans group
func (h *StrategyHandler) Register(g *echo.Group) {
	g.POST("/:id/strategy", h.Generate)
}

// Generate submits a plan for strategy generation. The response body always
// carries the Result shape; generation failures are payload, not HTTP errors.
func (h *StrategyHandler) Generate(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "StrategyHandler.Generate")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}
	id, err := PlanID(c)
	if err != nil {
		return err
	}

	if h.limiter != nil && h.rateLimit > 0 {
		res, limErr := h.limiter.Allow(ctx, tenantID, h.rateLimit, h.rateWindow)
		if limErr != nil {
			// The limiter failing is not a reason to block tenants.
			h.logger.WithContext(ctx).WithError(limErr).Error("Rate limit check failed, allowing request")
		} else if !res.Allowed {
			metrics.StrategyRequestsTotal.WithLabelValues(tenantID, "rate_limited").Inc()
			httpErr := httperror.NewHTTPError(http.StatusTooManyRequests, "strategy generation limit reached")
			httpErr = httpErr.AddMetaValue("retry_in", res.RetryIn.Round(time.Second).String())
			return httpErr
		}
	}

	req, err := utils.BindRequest[GenerateStrategyRequest](c)
	if err != nil {
		return err
	}

	lib, err := h.repo.Get(ctx, tenantID)
	if err != nil {
		return err
	}
	plan, found := lib.Find(id)
	if !found {
		return LibraryError(&planlib.Error{Type: planlib.ErrPlanNotFound, PlanID: id})
	}

	genReq := strategy.Request{
		Plan:     plan,
		TenantID: tenantID,
		Source:   h.source,
	}
	if req.SalesCycleMonths > 0 || req.SeasonalContext != "" {
		genReq.SalesContext = &strategy.SalesContext{
			SalesCycleMonths: req.SalesCycleMonths,
			SalesCycleBucket: salesCycleBucket(req.SalesCycleMonths),
			SeasonalContext:  req.SeasonalContext,
		}
	}
	if req.IncludePreview {
		if cfg, ok := motion.Lookup(motion.ID(plan.MotionID)); ok {
			in := scoring.SelectorInputs{
				CompanySize:       motion.CompanySize(plan.Segment.CompanySize),
				PrimaryObjective:  motion.Objective(plan.Objective),
				ACVBand:           motion.ACVBand(plan.ACVBand),
				Personas:          plan.Personas,
				TimeHorizonMonths: plan.TimelineMonths,
				SalesCycleMonths:  req.SalesCycleMonths,
				SeasonalContext:   req.SeasonalContext,
			}
			p := preview.Generate(cfg, scoring.ScoreMotion(cfg, in), in)
			genReq.Preview = &p
		}
	}

	if err := h.emitter.PublishPlanEvent(ctx, &kafka.PlanEventMessage{
		Type:     kafka.EventStrategyRequested,
		TenantID: tenantID,
		PlanID:   plan.ID,
		MotionID: plan.MotionID,
		Status:   string(plan.Status),
	}); err != nil {
		h.logger.WithContext(ctx).WithError(err).Errorf("Failed to publish strategy request event for plan %s", plan.ID)
	}

	result := h.generator.Generate(ctx, genReq)
	if !result.Success {
		h.logger.WithContext(ctx).WithFields(map[string]any{
			"tenant_id": tenantID,
			"plan_id":   plan.ID,
		}).Errorf("Strategy generation failed: %s", result.Message)
	}

	return SuccessResponse(c, result)
}

// salesCycleBucket coarsens the sales cycle length for the backend prompt.
func salesCycleBucket(months int) string {
	switch {
	case months <= 0:
		return ""
	case months <= 2:
		return "short"
	case months <= 6:
		return "medium"
	default:
		return "long"
	}
}
