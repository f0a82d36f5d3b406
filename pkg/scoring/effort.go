package scoring

import (
	"strings"

	"github.com/GittyRyan/compass/pkg/motion"
)

// seniorityKeywords flag personas that pull executive stakeholders into the
// motion, which raises coordination effort.
var seniorityKeywords = []string{"vp", "cfo", "cio", "chief", "cmo", "ceo", "c-suite", "executive", "cro", "cto"}

const contextualDeltaCap = 20

// TimeCompressionDelta compares the motion's recommended horizon against the
// chosen horizon. Running a long motion on a short clock adds effort;
// generous runway removes some.
func TimeCompressionDelta(recommendedMonths, chosenMonths int) int {
	if chosenMonths <= 0 {
		return 0
	}
	ratio := float64(recommendedMonths) / float64(chosenMonths)
	switch {
	case ratio >= 1.5:
		return 20
	case ratio >= 1.1:
		return 10
	case ratio >= 0.9:
		return 0
	case ratio >= 0.7:
		return -5
	default:
		return -10
	}
}

// SegmentComplexityDelta adds effort for larger companies and broader
// geographies, capped at 20.
func SegmentComplexityDelta(in SelectorInputs) int {
	delta := 0
	switch in.CompanySize {
	case motion.SizeMid:
		delta += 5
	case motion.SizeEnterprise:
		delta += 10
	}

	if in.Geography != "" {
		if strings.EqualFold(in.Geography, "global") {
			delta += 10
		} else {
			delta += 5
		}
	}

	if delta > contextualDeltaCap {
		delta = contextualDeltaCap
	}
	return delta
}

// PersonaComplexityDelta adds effort for wide persona sets, with a surcharge
// when any persona is senior. Duplicate persona names count toward the
// total; the inputs are taken as given.
func PersonaComplexityDelta(personas []string) int {
	delta := 0
	switch count := len(personas); {
	case count <= 1:
	case count <= 3:
		delta = 5
	case count <= 5:
		delta = 10
	default:
		delta = 15
	}

	for _, persona := range personas {
		lower := strings.ToLower(persona)
		found := false
		for _, keyword := range seniorityKeywords {
			if strings.Contains(lower, keyword) {
				found = true
				break
			}
		}
		if found {
			delta += 5
			break
		}
	}

	if delta > contextualDeltaCap {
		delta = contextualDeltaCap
	}
	return delta
}

// MotionOpsDelta adds effort for operationally heavy motions and wide
// channel footprints, capped at 20.
func MotionOpsDelta(cfg motion.Config) int {
	delta := 0
	switch cfg.OpsIntensity {
	case motion.OpsModerate:
		delta += 5
	case motion.OpsHeavy:
		delta += 10
	}

	switch {
	case cfg.ChannelCount >= 5:
		delta += 10
	case cfg.ChannelCount >= 3:
		delta += 5
	}

	if delta > contextualDeltaCap {
		delta = contextualDeltaCap
	}
	return delta
}

// Effort computes the 0-100 effort score for a motion against the inputs,
// returning the total along with the four deltas for attribution.
func Effort(cfg motion.Config, in SelectorInputs) (effort, timeDelta, segmentDelta, personaDelta, opsDelta int) {
	timeDelta = TimeCompressionDelta(cfg.RecommendedHorizonMonths, in.TimeHorizonMonths)
	segmentDelta = SegmentComplexityDelta(in)
	personaDelta = PersonaComplexityDelta(in.Personas)
	opsDelta = MotionOpsDelta(cfg)

	effort = clampScore(cfg.BaseEffort + timeDelta + segmentDelta + personaDelta + opsDelta)
	return effort, timeDelta, segmentDelta, personaDelta, opsDelta
}
