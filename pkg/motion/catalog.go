package motion

import "fmt"

// scoringCatalog is the closed set of motions fed to the scoring engine.
// Catalog order is the tie-break order for ranked results.
var scoringCatalog = []Config{
	{
		ID:         OutboundABM,
		Name:       "Outbound ABM",
		BaseEffort: 72,
		BaseImpact: 78,
		BestForSizes:      []CompanySize{SizeMid, SizeEnterprise},
		BestForObjectives: []Objective{ObjectivePipeline, ObjectiveExpansion},
		BestForACV:        []ACVBand{ACVHigh},
		BestForPersonas:   []string{"VP Sales", "CRO", "CMO", "VP Marketing"},
		MatchWeights: map[Dimension]map[string]int{
			DimensionACV: {"low": 25, "mid": 60, "high": 95},
		},
		RecommendedHorizonMonths: 9,
		OpsIntensity:             OpsHeavy,
		ChannelCount:             4,
	},
	{
		ID:         ProductLed,
		Name:       "Product-Led Growth",
		BaseEffort: 55,
		BaseImpact: 74,
		BestForSizes:      []CompanySize{SizeSMB, SizeMid},
		BestForObjectives: []Objective{ObjectivePipeline, ObjectiveAwareness},
		BestForACV:        []ACVBand{ACVLow},
		BestForPersonas:   []string{"Product Manager", "Developer", "Founder"},
		MatchWeights: map[Dimension]map[string]int{
			DimensionACV: {"low": 95, "mid": 65, "high": 30},
		},
		RecommendedHorizonMonths: 6,
		OpsIntensity:             OpsModerate,
		ChannelCount:             2,
	},
	{
		ID:         InboundContent,
		Name:       "Inbound Content",
		BaseEffort: 48,
		BaseImpact: 62,
		BestForSizes:      []CompanySize{SizeSMB, SizeMid},
		BestForObjectives: []Objective{ObjectiveAwareness, ObjectivePipeline},
		BestForACV:        []ACVBand{ACVLow, ACVMid},
		BestForPersonas:   []string{"Marketing Manager", "Founder", "Demand Gen Lead"},
		MatchWeights: map[Dimension]map[string]int{
			DimensionACV: {"low": 85, "mid": 75, "high": 45},
		},
		RecommendedHorizonMonths: 12,
		OpsIntensity:             OpsModerate,
		ChannelCount:             3,
	},
	{
		ID:         PartnerChannel,
		Name:       "Partner & Channel",
		BaseEffort: 64,
		BaseImpact: 70,
		BestForSizes:      []CompanySize{SizeMid, SizeEnterprise},
		BestForObjectives: []Objective{ObjectiveExpansion, ObjectiveNewMarket},
		BestForACV:        []ACVBand{ACVMid, ACVHigh},
		BestForPersonas:   []string{"VP Partnerships", "CEO", "Channel Manager"},
		MatchWeights: map[Dimension]map[string]int{
			DimensionACV: {"low": 35, "mid": 70, "high": 85},
		},
		RecommendedHorizonMonths: 12,
		OpsIntensity:             OpsHeavy,
		ChannelCount:             3,
	},
	{
		ID:         PaidAcquisition,
		Name:       "Paid Acquisition",
		BaseEffort: 42,
		BaseImpact: 58,
		BestForSizes:      []CompanySize{SizeSMB, SizeMid},
		BestForObjectives: []Objective{ObjectivePipeline, ObjectiveAwareness},
		BestForACV:        []ACVBand{ACVLow, ACVMid},
		BestForPersonas:   []string{"Growth Marketer", "Demand Gen Lead"},
		MatchWeights: map[Dimension]map[string]int{
			DimensionACV: {"low": 80, "mid": 70, "high": 40},
		},
		RecommendedHorizonMonths: 3,
		OpsIntensity:             OpsLight,
		ChannelCount:             5,
	},
}

// Catalog returns the scoring motion configs in catalog order.
func Catalog() []Config {
	out := make([]Config, len(scoringCatalog))
	copy(out, scoringCatalog)
	return out
}

// Lookup returns the scoring config for the given motion ID.
func Lookup(id ID) (Config, bool) {
	for _, cfg := range scoringCatalog {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks catalog consistency at startup. Every scoring motion must
// be unique, carry sane weights, and resolve a workstream template; a scoring
// motion without workstreams would make the preview generator fail at request
// time, so it is rejected at boot instead.
func Validate() error {
	seen := make(map[ID]bool, len(scoringCatalog))
	for _, cfg := range scoringCatalog {
		if seen[cfg.ID] {
			return fmt.Errorf("motion catalog: duplicate motion id %q", cfg.ID)
		}
		seen[cfg.ID] = true

		if cfg.BaseEffort < 0 || cfg.BaseEffort > 100 {
			return fmt.Errorf("motion catalog: motion %q base effort %d out of range", cfg.ID, cfg.BaseEffort)
		}
		if cfg.BaseImpact < 0 || cfg.BaseImpact > 100 {
			return fmt.Errorf("motion catalog: motion %q base impact %d out of range", cfg.ID, cfg.BaseImpact)
		}
		switch cfg.RecommendedHorizonMonths {
		case 3, 6, 9, 12:
		default:
			return fmt.Errorf("motion catalog: motion %q recommended horizon %d is not one of 3/6/9/12", cfg.ID, cfg.RecommendedHorizonMonths)
		}
		for dim, row := range cfg.MatchWeights {
			for value, weight := range row {
				if weight < 0 || weight > 100 {
					return fmt.Errorf("motion catalog: motion %q weight %s/%s=%d out of range", cfg.ID, dim, value, weight)
				}
			}
		}

		ws, ok := workstreamCatalog[cfg.ID]
		if !ok {
			return fmt.Errorf("motion catalog: scoring motion %q has no workstream template", cfg.ID)
		}
		if len(ws.Phases) == 0 {
			return fmt.Errorf("motion catalog: workstream template for %q has no phases", cfg.ID)
		}
	}
	return nil
}
