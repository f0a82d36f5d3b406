// Package motion defines the catalog of go-to-market motions and the
// vocabulary shared by the scoring engine and plan preview generator.
package motion

// ID identifies a go-to-market motion. The set is closed: scoring configs
// and workstream templates are both keyed by it.
type ID string

const (
	OutboundABM    ID = "outbound_abm"
	ProductLed     ID = "product_led_growth"
	InboundContent ID = "inbound_content"
	PartnerChannel ID = "partner_channel"
	PaidAcquisition ID = "paid_acquisition"

	// Motions below carry preview/workstream templates only; they do not
	// participate in live scoring yet.
	OutboundSDR   ID = "outbound_sdr"
	CommunityLed  ID = "community_led"
	EventsField   ID = "events_field"
	LifecycleCRM  ID = "lifecycle_crm"
)

// CompanySize buckets the target company size.
type CompanySize string

const (
	SizeSMB        CompanySize = "smb"
	SizeMid        CompanySize = "mid"
	SizeEnterprise CompanySize = "enterprise"
)

// Objective is a go-to-market objective.
type Objective string

const (
	ObjectivePipeline  Objective = "pipeline"
	ObjectiveAwareness Objective = "awareness"
	ObjectiveExpansion Objective = "expansion"
	ObjectiveNewMarket Objective = "new_market"
)

// ACVBand buckets annual contract value.
type ACVBand string

const (
	ACVLow  ACVBand = "low"
	ACVMid  ACVBand = "mid"
	ACVHigh ACVBand = "high"
)

// OpsIntensity describes how operationally heavy a motion is to run.
type OpsIntensity string

const (
	OpsLight    OpsIntensity = "light"
	OpsModerate OpsIntensity = "moderate"
	OpsHeavy    OpsIntensity = "heavy"
)

// Dimension names a scoring dimension in a motion's match-weight table.
type Dimension string

const (
	DimensionObjective Dimension = "objective"
	DimensionSize      Dimension = "size"
	DimensionACV       Dimension = "acv"
	DimensionPersona   Dimension = "persona"
)

// Config is the static, immutable definition of a scoring motion.
type Config struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	BaseEffort  int    `json:"base_effort"`
	BaseImpact  int    `json:"base_impact"`

	BestForSizes      []CompanySize `json:"best_for_sizes"`
	BestForObjectives []Objective   `json:"best_for_objectives"`
	BestForACV        []ACVBand     `json:"best_for_acv"`
	BestForPersonas   []string      `json:"best_for_personas"`

	// MatchWeights maps scoring dimension -> category value -> 0-100 weight.
	// Only the ACV dimension is consulted by the fit functions today; the
	// nested shape keeps room for per-dimension overrides.
	MatchWeights map[Dimension]map[string]int `json:"match_weights,omitempty"`

	RecommendedHorizonMonths int          `json:"recommended_horizon_months"`
	OpsIntensity             OpsIntensity `json:"ops_intensity"`
	ChannelCount             int          `json:"channel_count"`
}

// ACVAffinity returns the motion's ACV affinity row, or nil when the motion
// does not define one.
func (c Config) ACVAffinity() map[string]int {
	if c.MatchWeights == nil {
		return nil
	}
	row := c.MatchWeights[DimensionACV]
	if len(row) == 0 {
		return nil
	}
	return row
}
