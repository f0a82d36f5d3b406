package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestCatalogReturnsCopies(t *testing.T) {
	first := Catalog()
	first[0].Name = "mutated"

	second := Catalog()
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestLookup(t *testing.T) {
	cfg, ok := Lookup(OutboundABM)
	require.True(t, ok)
	assert.Equal(t, OutboundABM, cfg.ID)

	_, ok = Lookup("not_a_motion")
	assert.False(t, ok)
}

func TestEveryScoringMotionHasWorkstreams(t *testing.T) {
	for _, cfg := range Catalog() {
		ws, ok := WorkstreamsFor(cfg.ID)
		require.True(t, ok, "motion %s has no workstream template", cfg.ID)
		assert.NotEmpty(t, ws.Phases, "motion %s has no phase text", cfg.ID)
	}
}

func TestACVAffinityRowsAreComplete(t *testing.T) {
	for _, cfg := range Catalog() {
		row := cfg.ACVAffinity()
		require.NotNil(t, row, "motion %s has no acv affinity row", cfg.ID)
		for _, band := range []string{"low", "mid", "high"} {
			assert.Contains(t, row, band, "motion %s missing acv band %s", cfg.ID)
		}
	}
}
