package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/scoring"
)

func TestBuildIsDeterministic(t *testing.T) {
	cfg, ok := motion.Lookup(motion.OutboundABM)
	require.True(t, ok)
	in := scoring.SelectorInputs{
		CompanySize:       motion.SizeEnterprise,
		PrimaryObjective:  motion.ObjectivePipeline,
		ACVBand:           motion.ACVHigh,
		Personas:          []string{"VP Sales", "CRO"},
		TimeHorizonMonths: 6,
	}
	b := scoring.ScoreMotion(cfg, in)

	first := Build(cfg, b, in)
	second := Build(cfg, b, in)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestBuildCoversEveryDimension(t *testing.T) {
	cfg, ok := motion.Lookup(motion.ProductLed)
	require.True(t, ok)
	in := scoring.SelectorInputs{
		CompanySize:       motion.SizeSMB,
		PrimaryObjective:  motion.ObjectiveExpansion,
		ACVBand:           motion.ACVLow,
		Personas:          []string{"Developer"},
		TimeHorizonMonths: 6,
	}
	b := scoring.ScoreMotion(cfg, in)

	sentences := Build(cfg, b, in)
	// Objective, size, acv, persona, effort, impact.
	assert.Len(t, sentences, 6)
	for _, s := range sentences {
		assert.NotEmpty(t, s)
	}
}

func TestBuildSkipsUnsetOptionalInputs(t *testing.T) {
	cfg, ok := motion.Lookup(motion.PaidAcquisition)
	require.True(t, ok)
	in := scoring.SelectorInputs{
		CompanySize:       motion.SizeSMB,
		TimeHorizonMonths: 3,
	}
	b := scoring.ScoreMotion(cfg, in)

	sentences := Build(cfg, b, in)
	// No acv or persona sentences without those inputs.
	assert.Len(t, sentences, 4)
}
