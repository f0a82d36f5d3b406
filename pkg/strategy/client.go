package strategy

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel/attribute"

	"github.com/GittyRyan/compass/pkg/httpclient"
	"github.com/GittyRyan/compass/pkg/metrics"
	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/tracing"
)

// Generator produces a strategy for an active plan.
type Generator interface {
	Generate(ctx context.Context, req Request) Result
}

// Client talks to the strategy-generation backend over HTTP.
type Client struct {
	http    *httpclient.Client
	baseURL string
	source  string
	logger  ectologger.Logger
}

// NewClient creates a strategy client. source tags every request so the
// backend can attribute traffic.
func NewClient(http *httpclient.Client, baseURL, source string, logger ectologger.Logger) *Client {
	return &Client{
		http:    http,
		baseURL: baseURL,
		source:  source,
		logger:  logger,
	}
}

func failure(planID, message string) Result {
	return Result{Success: false, PlanID: planID, Message: message}
}

// Generate submits the plan for strategy generation. The returned Result is
// always usable; inspect Success rather than an error value. Only active
// plans with an id are submitted, mirroring the backend's own validation.
func (c *Client) Generate(ctx context.Context, req Request) Result {
	ctx, span := tracing.StartSpan(ctx, "Strategy.Generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("tenant_id", req.TenantID),
		attribute.String("plan_id", req.Plan.ID),
	)

	if req.Plan.ID == "" {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "rejected").Inc()
		return failure("", "plan has no id")
	}
	if req.Plan.Status != planlib.StatusActive {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "rejected").Inc()
		return failure(req.Plan.ID, "plan must be active to generate a strategy")
	}

	if req.Source == "" {
		req.Source = c.source
	}

	start := time.Now()
	resp, err := c.http.PostJSON(ctx, c.baseURL+"/api/v1/strategies/generate", req, map[string]string{
		"X-Tenant-ID": req.TenantID,
	})
	metrics.StrategyRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "transport_error").Inc()
		c.logger.WithContext(ctx).WithError(err).Errorf("Strategy generation request failed for plan %s", req.Plan.ID)
		return failure(req.Plan.ID, "strategy generation request failed: "+err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "upstream_error").Inc()
		c.logger.WithContext(ctx).WithFields(map[string]any{
			"plan_id":     req.Plan.ID,
			"status_code": resp.StatusCode,
		}).Error("strategy generation returned an error status")
		return failure(req.Plan.ID, upstreamMessage(resp))
	}

	var result Result
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "bad_response").Inc()
		c.logger.WithContext(ctx).WithError(err).Errorf("Strategy generation returned an unreadable body for plan %s", req.Plan.ID)
		return failure(req.Plan.ID, "strategy generation returned an unreadable response")
	}

	if result.PlanID == "" {
		result.PlanID = req.Plan.ID
	}
	if result.Success {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "success").Inc()
	} else {
		metrics.StrategyRequestsTotal.WithLabelValues(req.TenantID, "failure").Inc()
	}
	return result
}

// upstreamMessage pulls a message out of an error body when one is present.
func upstreamMessage(resp *httpclient.Response) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return "strategy generation failed upstream"
}
