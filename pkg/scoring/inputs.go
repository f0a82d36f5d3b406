// Package scoring implements the deterministic motion scoring engine: fit
// sub-scores, the effort/impact model, and match ranking. Every function is
// pure and total over its input domain; missing optional fields degrade to
// documented neutral scores instead of erroring.
package scoring

import (
	"math"

	"github.com/GittyRyan/compass/pkg/motion"
)

// SelectorInputs is the query object driving a scoring pass. The engine
// assumes TimeHorizonMonths is one of 3/6/9/12; callers normalize anything
// else before reaching the core.
type SelectorInputs struct {
	CompanySize         motion.CompanySize `json:"company_size"`
	PrimaryObjective    motion.Objective   `json:"primary_objective,omitempty"`
	SecondaryObjectives []motion.Objective `json:"secondary_objectives,omitempty"`
	ACVBand             motion.ACVBand     `json:"acv_band,omitempty"`
	Geography           string             `json:"geography,omitempty"`
	Personas            []string           `json:"personas,omitempty"`
	TimeHorizonMonths   int                `json:"time_horizon_months"`
	SalesCycleMonths    int                `json:"sales_cycle_months,omitempty"`
	SeasonalContext     string             `json:"seasonal_context,omitempty"`
}

// Breakdown is the full scoring output for one motion. All intermediate
// multipliers and deltas are retained so every score can be attributed back
// to its inputs by the explanation builder.
type Breakdown struct {
	MotionID   motion.ID `json:"motion_id"`
	MotionName string    `json:"motion_name"`

	Effort       int `json:"effort"`
	Impact       int `json:"impact"`
	MatchPercent int `json:"match_percent"`

	ObjectiveFit int `json:"objective_fit"`
	SizeFit      int `json:"size_fit"`
	ACVFit       int `json:"acv_fit"`
	PersonaFit   int `json:"persona_fit"`
	FitScore     int `json:"fit_score"`

	FitMultiplier     float64 `json:"fit_multiplier"`
	MarketMultiplier  float64 `json:"market_multiplier"`
	HorizonMultiplier float64 `json:"horizon_multiplier"`

	TimeCompressionDelta   int `json:"time_compression_delta"`
	SegmentComplexityDelta int `json:"segment_complexity_delta"`
	PersonaComplexityDelta int `json:"persona_complexity_delta"`
	MotionOpsDelta         int `json:"motion_ops_delta"`
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundf(v float64) int {
	return int(math.Round(v))
}
