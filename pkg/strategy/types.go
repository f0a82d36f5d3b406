// Package strategy calls the external strategy-generation backend. The
// client never returns a Go error: every transport failure, non-2xx status,
// or malformed body is folded into a Result with Success=false so callers
// have exactly one shape to handle.
package strategy

import (
	"encoding/json"

	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/preview"
)

// SalesContext carries deal-cycle context alongside the plan.
type SalesContext struct {
	SalesCycleMonths int    `json:"sales_cycle_months,omitempty"`
	SalesCycleBucket string `json:"sales_cycle_bucket,omitempty"`
	SeasonalContext  string `json:"seasonal_context,omitempty"`
}

// Request is the payload sent to the generation backend.
type Request struct {
	Plan         planlib.Plan     `json:"plan"`
	TenantID     string           `json:"tenant_id"`
	Source       string           `json:"source"`
	Preview      *preview.Preview `json:"preview,omitempty"`
	SalesContext *SalesContext    `json:"sales_context,omitempty"`
}

// Section is one named block of the generated strategy.
type Section struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// Result is the outcome of a generation call, success or failure.
type Result struct {
	Success  bool            `json:"success"`
	PlanID   string          `json:"plan_id"`
	Message  string          `json:"message,omitempty"`
	Sections []Section       `json:"sections,omitempty"`
	RawRef   json.RawMessage `json:"raw_ref,omitempty"`
}
