package handlers

import (
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/GittyRyan/compass/pkg/explain"
	"github.com/GittyRyan/compass/pkg/metrics"
	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/preview"
	"github.com/GittyRyan/compass/pkg/scoring"
	"github.com/GittyRyan/compass/pkg/tracing"
	"github.com/GittyRyan/compass/pkg/utils"
)

// MotionHandler handles motion catalog and scoring endpoints
type MotionHandler struct {
	logger ectologger.Logger
}

// NewMotionHandler creates a new motion handler
func NewMotionHandler(logger ectologger.Logger) *MotionHandler {
	return &MotionHandler{logger: logger}
}

// ScoreRequest represents the scoring request body
type ScoreRequest struct {
	CompanySize         motion.CompanySize `json:"company_size" validate:"required,oneof=smb mid enterprise"`
	PrimaryObjective    motion.Objective   `json:"primary_objective,omitempty" validate:"omitempty,oneof=pipeline awareness expansion new_market"`
	SecondaryObjectives []motion.Objective `json:"secondary_objectives,omitempty" validate:"omitempty,dive,oneof=pipeline awareness expansion new_market"`
	ACVBand             motion.ACVBand     `json:"acv_band,omitempty" validate:"omitempty,oneof=low mid high"`
	Geography           string             `json:"geography,omitempty"`
	Personas            []string           `json:"personas,omitempty"`
	TimeHorizonMonths   int                `json:"time_horizon_months,omitempty"`
	SalesCycleMonths    int                `json:"sales_cycle_months,omitempty"`
	SeasonalContext     string             `json:"seasonal_context,omitempty"`

	IncludeRationale bool `json:"include_rationale,omitempty"`
}

// normalizedHorizons is the set of horizons the templates are keyed on.
var normalizedHorizons = map[int]bool{3: true, 6: true, 9: true, 12: true}

// toSelectorInputs maps the request into engine inputs, normalizing any
// unsupported horizon to six months. The engine itself assumes a normalized
// horizon; the boundary owns the coercion.
func (r ScoreRequest) toSelectorInputs() scoring.SelectorInputs {
	horizon := r.TimeHorizonMonths
	if !normalizedHorizons[horizon] {
		horizon = 6
	}
	return scoring.SelectorInputs{
		CompanySize:         r.CompanySize,
		PrimaryObjective:    r.PrimaryObjective,
		SecondaryObjectives: r.SecondaryObjectives,
		ACVBand:             r.ACVBand,
		Geography:           r.Geography,
		Personas:            r.Personas,
		TimeHorizonMonths:   horizon,
		SalesCycleMonths:    r.SalesCycleMonths,
		SeasonalContext:     r.SeasonalContext,
	}
}

// ScoredMotion is one entry of the ranked scoring response
type ScoredMotion struct {
	scoring.Breakdown
	Rationale []string `json:"rationale,omitempty"`
}

// ScoreResponse represents the ranked scoring response
type ScoreResponse struct {
	Inputs  scoring.SelectorInputs `json:"inputs"`
	Results []ScoredMotion         `json:"results"`
}

// Register registers motion routes
func (h *MotionHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("/score", h.Score)
	g.POST("/:id/preview", h.Preview)
}

// List returns the scoring motion catalog
func (h *MotionHandler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MotionHandler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	return SuccessResponse(c, motion.Catalog())
}

// Score ranks every catalog motion against the supplied inputs
func (h *MotionHandler) Score(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MotionHandler.Score")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	req, err := utils.BindRequest[ScoreRequest](c)
	if err != nil {
		return err
	}

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}

	in := req.toSelectorInputs()

	start := time.Now()
	ranked := scoring.ScoreAll(motion.Catalog(), in)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	metrics.ScoringRequestsTotal.WithLabelValues(tenantID).Inc()

	results := make([]ScoredMotion, len(ranked))
	for i, b := range ranked {
		results[i] = ScoredMotion{Breakdown: b}
		if req.IncludeRationale {
			cfg, _ := motion.Lookup(b.MotionID)
			results[i].Rationale = explain.Build(cfg, b, in)
		}
	}

	h.logger.WithContext(ctx).WithFields(map[string]any{
		"tenant_id": tenantID,
		"motions":   len(results),
	}).Debugf("Scored %d motions", len(results))

	return SuccessResponse(c, ScoreResponse{Inputs: in, Results: results})
}

// Preview builds the phased execution preview for one motion
func (h *MotionHandler) Preview(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MotionHandler.Preview")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	id := motion.ID(c.Param("id"))
	cfg, ok := motion.Lookup(id)
	if !ok {
		return BadRequest("unknown motion: " + string(id))
	}

	req, err := utils.BindRequest[ScoreRequest](c)
	if err != nil {
		return err
	}

	in := req.toSelectorInputs()
	breakdown := scoring.ScoreMotion(cfg, in)

	return SuccessResponse(c, preview.Generate(cfg, breakdown, in))
}
