package scoring

import (
	"sort"

	"github.com/GittyRyan/compass/pkg/motion"
)

// MatchPercent folds fit, impact, and effort into a single 0-100 match
// score. Lower effort raises the match: given two equally promising motions,
// the easier one ranks first.
func MatchPercent(fitScore, impact, effort int) int {
	return clampScore(roundf(0.4*float64(fitScore) + 0.3*float64(impact) + 0.3*float64(100-effort)))
}

// ScoreMotion produces the full breakdown for one motion against the inputs.
func ScoreMotion(cfg motion.Config, in SelectorInputs) Breakdown {
	objectiveFit := ObjectiveFit(cfg, in)
	sizeFit := SizeFit(cfg, in)
	acvFit := ACVFit(cfg, in)
	personaFit := PersonaFit(cfg, in)
	fitScore := CompositeFit(objectiveFit, sizeFit, acvFit, personaFit)

	effort, timeDelta, segmentDelta, personaDelta, opsDelta := Effort(cfg, in)
	impact, fitMult, marketMult, horizonMult := Impact(cfg, in, fitScore)

	return Breakdown{
		MotionID:   cfg.ID,
		MotionName: cfg.Name,

		Effort:       effort,
		Impact:       impact,
		MatchPercent: MatchPercent(fitScore, impact, effort),

		ObjectiveFit: objectiveFit,
		SizeFit:      sizeFit,
		ACVFit:       acvFit,
		PersonaFit:   personaFit,
		FitScore:     fitScore,

		FitMultiplier:     fitMult,
		MarketMultiplier:  marketMult,
		HorizonMultiplier: horizonMult,

		TimeCompressionDelta:   timeDelta,
		SegmentComplexityDelta: segmentDelta,
		PersonaComplexityDelta: personaDelta,
		MotionOpsDelta:         opsDelta,
	}
}

// ScoreAll scores every motion in the catalog and returns the full list
// sorted descending by match percent. The sort is stable, so ties keep
// catalog order; truncating to a top-N is the caller's concern.
func ScoreAll(catalog []motion.Config, in SelectorInputs) []Breakdown {
	results := make([]Breakdown, 0, len(catalog))
	for _, cfg := range catalog {
		results = append(results, ScoreMotion(cfg, in))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercent > results[j].MatchPercent
	})

	return results
}
