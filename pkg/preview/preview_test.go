package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/scoring"
)

func TestClassifyEffort(t *testing.T) {
	assert.Equal(t, EffortLightweight, ClassifyEffort(0))
	assert.Equal(t, EffortLightweight, ClassifyEffort(39))
	assert.Equal(t, EffortModerate, ClassifyEffort(40))
	assert.Equal(t, EffortModerate, ClassifyEffort(64))
	assert.Equal(t, EffortHeavy, ClassifyEffort(65))
	assert.Equal(t, EffortHeavy, ClassifyEffort(79))
	assert.Equal(t, EffortTransformational, ClassifyEffort(80))
	assert.Equal(t, EffortTransformational, ClassifyEffort(100))
}

func TestGeneratePhaseCounts(t *testing.T) {
	cfg, ok := motion.Lookup(motion.OutboundABM)
	require.True(t, ok)

	counts := map[int]int{3: 3, 6: 3, 9: 4, 12: 4}
	for horizon, want := range counts {
		in := scoring.SelectorInputs{CompanySize: motion.SizeEnterprise, TimeHorizonMonths: horizon}
		b := scoring.ScoreMotion(cfg, in)
		p := Generate(cfg, b, in)
		assert.Len(t, p.Phases, want, "horizon %d", horizon)
	}
}

func TestGenerateClampsWorkstreamTable(t *testing.T) {
	// Preview-only motions carry three workstream entries; a four-phase
	// horizon repeats the final entry.
	ws, ok := motion.WorkstreamsFor(motion.OutboundSDR)
	require.True(t, ok)
	require.Len(t, ws.Phases, 3)

	cfg := motion.Config{ID: motion.OutboundSDR, Name: "Outbound SDR", BaseEffort: 50, BaseImpact: 60, RecommendedHorizonMonths: 6}
	in := scoring.SelectorInputs{CompanySize: motion.SizeMid, TimeHorizonMonths: 12}
	b := scoring.ScoreMotion(cfg, in)

	p := Generate(cfg, b, in)
	require.Len(t, p.Phases, 4)
	assert.Equal(t, ws.Phases[2], p.Phases[2].Workstream)
	assert.Equal(t, ws.Phases[2], p.Phases[3].Workstream)
}

func TestGenerateCaps(t *testing.T) {
	cfg, ok := motion.Lookup(motion.PartnerChannel)
	require.True(t, ok)
	in := scoring.SelectorInputs{
		CompanySize:       motion.SizeEnterprise,
		Geography:         "global",
		Personas:          []string{"CEO", "CFO", "VP Partnerships", "Channel Manager"},
		TimeHorizonMonths: 6,
		SalesCycleMonths:  9,
		SeasonalContext:   "end-of-year budget flush",
	}
	b := scoring.ScoreMotion(cfg, in)

	p := Generate(cfg, b, in)
	assert.LessOrEqual(t, len(p.Risks), maxRisks)
	assert.LessOrEqual(t, len(p.Dependencies), maxDependencies)
	assert.NotEmpty(t, p.Theme)
	assert.Contains(t, p.Theme, "end-of-year budget flush")
}

func TestGenerateDeterministic(t *testing.T) {
	cfg, ok := motion.Lookup(motion.InboundContent)
	require.True(t, ok)
	in := scoring.SelectorInputs{CompanySize: motion.SizeSMB, TimeHorizonMonths: 9}
	b := scoring.ScoreMotion(cfg, in)

	assert.Equal(t, Generate(cfg, b, in), Generate(cfg, b, in))
}

func TestPhaseGradesByClass(t *testing.T) {
	cfg, ok := motion.Lookup(motion.OutboundABM)
	require.True(t, ok)
	// Enterprise + global + senior personas pushes ABM effort into the
	// heavy band or above.
	in := scoring.SelectorInputs{
		CompanySize:       motion.SizeEnterprise,
		Geography:         "global",
		Personas:          []string{"CRO", "VP Sales"},
		TimeHorizonMonths: 3,
	}
	b := scoring.ScoreMotion(cfg, in)
	p := Generate(cfg, b, in)
	require.True(t, p.EffortClass == EffortHeavy || p.EffortClass == EffortTransformational)

	assert.Equal(t, LevelHigh, p.Phases[0].EffortSlice)
	assert.Equal(t, LevelHigh, p.Phases[0].RiskLevel)
}
