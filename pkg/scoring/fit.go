package scoring

import (
	"strings"

	"github.com/GittyRyan/compass/pkg/motion"
)

const (
	fitNeutral        = 50
	fitMiss           = 40
	personaFitVacuous = 60
	personaFitMiss    = 20
)

// ObjectiveFit scores how well the motion's best-for objectives cover the
// stated objectives. Primary takes precedence over secondaries; first match
// wins with no blending.
func ObjectiveFit(cfg motion.Config, in SelectorInputs) int {
	if in.PrimaryObjective == "" {
		return fitNeutral
	}
	for _, obj := range cfg.BestForObjectives {
		if obj == in.PrimaryObjective {
			return 100
		}
	}
	for _, secondary := range in.SecondaryObjectives {
		for _, obj := range cfg.BestForObjectives {
			if obj == secondary {
				return 75
			}
		}
	}
	return fitMiss
}

// sizeAdjacent reports whether two company sizes are adjacent. smb and
// enterprise are never adjacent.
func sizeAdjacent(a, b motion.CompanySize) bool {
	switch {
	case a == motion.SizeSMB && b == motion.SizeMid,
		a == motion.SizeMid && b == motion.SizeSMB,
		a == motion.SizeMid && b == motion.SizeEnterprise,
		a == motion.SizeEnterprise && b == motion.SizeMid:
		return true
	}
	return false
}

// SizeFit scores the company-size match: exact 100, adjacent 70, otherwise 40.
func SizeFit(cfg motion.Config, in SelectorInputs) int {
	for _, size := range cfg.BestForSizes {
		if size == in.CompanySize {
			return 100
		}
	}
	for _, size := range cfg.BestForSizes {
		if sizeAdjacent(size, in.CompanySize) {
			return 70
		}
	}
	return fitMiss
}

func acvAdjacent(a, b motion.ACVBand) bool {
	switch {
	case a == motion.ACVLow && b == motion.ACVMid,
		a == motion.ACVMid && b == motion.ACVLow,
		a == motion.ACVMid && b == motion.ACVHigh,
		a == motion.ACVHigh && b == motion.ACVMid:
		return true
	}
	return false
}

// ACVFit looks up the motion's ACV affinity row when one is defined. Motions
// without an affinity row fall back to exact/adjacent matching against their
// best-for bands. No band supplied scores neutral.
func ACVFit(cfg motion.Config, in SelectorInputs) int {
	if in.ACVBand == "" {
		return fitNeutral
	}

	if row := cfg.ACVAffinity(); row != nil {
		if weight, ok := row[string(in.ACVBand)]; ok {
			return weight
		}
		return fitMiss
	}

	for _, band := range cfg.BestForACV {
		if band == in.ACVBand {
			return 100
		}
	}
	for _, band := range cfg.BestForACV {
		if acvAdjacent(band, in.ACVBand) {
			return 70
		}
	}
	return fitMiss
}

// PersonaFit scores the case-insensitive overlap between the motion's
// best-for personas and the supplied personas. The overlap ratio is clamped
// to [40,100] whenever any persona matches; a motion with personas but no
// overlap scores 20, and a motion that defines no personas scores 60.
func PersonaFit(cfg motion.Config, in SelectorInputs) int {
	if len(cfg.BestForPersonas) == 0 {
		return personaFitVacuous
	}

	supplied := make(map[string]bool, len(in.Personas))
	for _, p := range in.Personas {
		supplied[strings.ToLower(p)] = true
	}

	matched := 0
	for _, p := range cfg.BestForPersonas {
		if supplied[strings.ToLower(p)] {
			matched++
		}
	}
	if matched == 0 {
		return personaFitMiss
	}

	ratio := roundf(float64(matched) / float64(len(cfg.BestForPersonas)) * 100)
	if ratio < 40 {
		return 40
	}
	if ratio > 100 {
		return 100
	}
	return ratio
}

// CompositeFit combines the four sub-scores with fixed weights.
func CompositeFit(objectiveFit, sizeFit, acvFit, personaFit int) int {
	return roundf(0.35*float64(objectiveFit) + 0.25*float64(sizeFit) + 0.25*float64(acvFit) + 0.15*float64(personaFit))
}
