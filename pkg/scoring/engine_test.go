package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GittyRyan/compass/pkg/motion"
)

func sampleInputs() []SelectorInputs {
	return []SelectorInputs{
		{},
		{CompanySize: motion.SizeSMB, TimeHorizonMonths: 6},
		{
			CompanySize:       motion.SizeEnterprise,
			PrimaryObjective:  motion.ObjectivePipeline,
			ACVBand:           motion.ACVHigh,
			Geography:         "global",
			Personas:          []string{"VP Sales", "CRO", "Head of Demand Gen"},
			TimeHorizonMonths: 3,
			SalesCycleMonths:  9,
		},
		{
			CompanySize:         motion.SizeMid,
			PrimaryObjective:    motion.ObjectiveAwareness,
			SecondaryObjectives: []motion.Objective{motion.ObjectivePipeline, motion.ObjectiveExpansion},
			ACVBand:             motion.ACVLow,
			Geography:           "APAC",
			Personas:            []string{"Marketing Manager"},
			TimeHorizonMonths:   12,
		},
		{
			CompanySize:       motion.SizeSMB,
			PrimaryObjective:  motion.ObjectiveNewMarket,
			ACVBand:           motion.ACVMid,
			Geography:         "LATAM",
			Personas:          []string{"CEO", "CFO", "CTO", "CIO", "VP Ops", "Head of IT"},
			TimeHorizonMonths: 9,
		},
	}
}

func TestScoreRanges(t *testing.T) {
	for _, in := range sampleInputs() {
		for _, cfg := range motion.Catalog() {
			b := ScoreMotion(cfg, in)

			for name, v := range map[string]int{
				"objective_fit": b.ObjectiveFit,
				"size_fit":      b.SizeFit,
				"acv_fit":       b.ACVFit,
				"persona_fit":   b.PersonaFit,
				"fit_score":     b.FitScore,
				"effort":        b.Effort,
				"impact":        b.Impact,
				"match_percent": b.MatchPercent,
			} {
				assert.GreaterOrEqual(t, v, 0, "%s for %s", name, cfg.ID)
				assert.LessOrEqual(t, v, 100, "%s for %s", name, cfg.ID)
			}
		}
	}
}

func TestScoreMotionIdempotent(t *testing.T) {
	for _, in := range sampleInputs() {
		for _, cfg := range motion.Catalog() {
			first := ScoreMotion(cfg, in)
			second := ScoreMotion(cfg, in)
			assert.Equal(t, first, second)
		}
	}
}

func TestObjectiveFit(t *testing.T) {
	cfg, ok := motion.Lookup(motion.OutboundABM)
	require.True(t, ok)

	tests := []struct {
		name string
		in   SelectorInputs
		want int
	}{
		{"primary match", SelectorInputs{PrimaryObjective: motion.ObjectivePipeline}, 100},
		{"secondary match", SelectorInputs{
			PrimaryObjective:    motion.ObjectiveAwareness,
			SecondaryObjectives: []motion.Objective{motion.ObjectivePipeline},
		}, 75},
		{"no match", SelectorInputs{PrimaryObjective: motion.ObjectiveAwareness}, 40},
		{"unset objective is neutral", SelectorInputs{}, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ObjectiveFit(cfg, tc.in))
		})
	}
}

func TestSizeFitAdjacency(t *testing.T) {
	cfg, ok := motion.Lookup(motion.OutboundABM)
	require.True(t, ok)
	require.Contains(t, cfg.BestForSizes, motion.SizeEnterprise)

	assert.Equal(t, 100, SizeFit(cfg, SelectorInputs{CompanySize: motion.SizeEnterprise}))
	assert.Equal(t, 70, SizeFit(cfg, SelectorInputs{CompanySize: motion.SizeMid}))
	assert.Equal(t, 40, SizeFit(cfg, SelectorInputs{CompanySize: motion.SizeSMB}))
}

func TestPersonaFit(t *testing.T) {
	cfg, ok := motion.Lookup(motion.OutboundABM)
	require.True(t, ok)

	t.Run("vacuous when the motion defines no personas", func(t *testing.T) {
		blank := motion.Config{ID: "blank"}
		assert.Equal(t, 60, PersonaFit(blank, SelectorInputs{Personas: []string{"CEO"}}))
	})

	t.Run("no supplied personas counts as no overlap", func(t *testing.T) {
		assert.Equal(t, 20, PersonaFit(cfg, SelectorInputs{}))
	})

	t.Run("no overlap", func(t *testing.T) {
		in := SelectorInputs{Personas: []string{"Office Manager"}}
		assert.Equal(t, 20, PersonaFit(cfg, in))
	})

	t.Run("overlap is case insensitive and clamped to at least 40", func(t *testing.T) {
		in := SelectorInputs{Personas: []string{cfg.BestForPersonas[0]}}
		got := PersonaFit(cfg, in)
		assert.GreaterOrEqual(t, got, 40)
		assert.LessOrEqual(t, got, 100)
	})
}

func TestPersonaComplexityMonotonic(t *testing.T) {
	base := []string{"analyst", "manager", "director"}
	withSeniority := []string{"analyst", "manager", "VP Sales"}

	assert.GreaterOrEqual(t, PersonaComplexityDelta(withSeniority), PersonaComplexityDelta(base))

	// Adding another seniority keyword never lowers the delta.
	more := append([]string{"CFO"}, withSeniority...)
	assert.GreaterOrEqual(t, PersonaComplexityDelta(more), PersonaComplexityDelta(withSeniority))
}

func TestEffortConcreteScenario(t *testing.T) {
	cfg := motion.Config{
		ID:                       "test_motion",
		Name:                     "Test Motion",
		BaseEffort:               38,
		RecommendedHorizonMonths: 6,
		OpsIntensity:             motion.OpsLight,
		ChannelCount:             3,
	}
	in := SelectorInputs{
		CompanySize:       motion.SizeSMB,
		TimeHorizonMonths: 6,
	}

	effort, timeDelta, segmentDelta, personaDelta, opsDelta := Effort(cfg, in)
	assert.Equal(t, 0, timeDelta)
	assert.Equal(t, 0, segmentDelta)
	assert.Equal(t, 0, personaDelta)
	assert.Equal(t, 5, opsDelta)
	assert.Equal(t, 43, effort)
}

func TestTimeCompressionDelta(t *testing.T) {
	tests := []struct {
		name        string
		recommended int
		chosen      int
		want        int
	}{
		{"matched horizon", 6, 6, 0},
		{"severe compression", 9, 3, 20},
		{"mild compression", 9, 8, 10},
		{"generous runway", 6, 8, -5},
		{"very generous runway", 6, 12, -10},
		{"zero horizon is neutral", 6, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeCompressionDelta(tc.recommended, tc.chosen))
		})
	}
}

func TestHorizonMultiplier(t *testing.T) {
	assert.Equal(t, 0.90, HorizonMultiplier(3))
	assert.Equal(t, 1.00, HorizonMultiplier(6))
	assert.Equal(t, 1.05, HorizonMultiplier(9))
	assert.Equal(t, 1.15, HorizonMultiplier(12))
	assert.Equal(t, 1.00, HorizonMultiplier(7))
}

func TestScoreAllRanking(t *testing.T) {
	for _, in := range sampleInputs() {
		results := ScoreAll(motion.Catalog(), in)
		require.Len(t, results, len(motion.Catalog()))

		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].MatchPercent, results[i].MatchPercent,
				"ranking out of order at position %d", i)
		}
	}
}

func TestScoreAllTieBreakIsCatalogOrder(t *testing.T) {
	// Two identical configs must rank in input order when they tie.
	cfg, ok := motion.Lookup(motion.InboundContent)
	require.True(t, ok)
	twin := cfg
	twin.ID = "twin_motion"
	twin.Name = "Twin Motion"

	results := ScoreAll([]motion.Config{cfg, twin}, SelectorInputs{
		CompanySize:       motion.SizeMid,
		TimeHorizonMonths: 6,
	})
	require.Len(t, results, 2)
	assert.Equal(t, cfg.ID, results[0].MotionID)
	assert.Equal(t, motion.ID("twin_motion"), results[1].MotionID)
}
