// Package explain turns a motion score breakdown into natural-language
// rationale bullets. Template selection is purely threshold-driven, so the
// output is stable for identical inputs.
package explain

import (
	"fmt"
	"strings"

	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/scoring"
)

var objectiveLabels = map[motion.Objective]string{
	motion.ObjectivePipeline:  "pipeline generation",
	motion.ObjectiveAwareness: "brand awareness",
	motion.ObjectiveExpansion: "customer expansion",
	motion.ObjectiveNewMarket: "new market entry",
}

var sizeLabels = map[motion.CompanySize]string{
	motion.SizeSMB:        "SMB",
	motion.SizeMid:        "mid-market",
	motion.SizeEnterprise: "enterprise",
}

var acvLabels = map[motion.ACVBand]string{
	motion.ACVLow:  "low ACV",
	motion.ACVMid:  "mid ACV",
	motion.ACVHigh: "high ACV",
}

func objectiveLabel(obj motion.Objective) string {
	if label, ok := objectiveLabels[obj]; ok {
		return label
	}
	return string(obj)
}

// Build returns an ordered list of rationale sentences for a scored motion.
func Build(cfg motion.Config, b scoring.Breakdown, in scoring.SelectorInputs) []string {
	rationale := make([]string, 0, 6)

	// Objective
	switch {
	case in.PrimaryObjective == "":
		rationale = append(rationale, fmt.Sprintf("%s was scored without a primary objective, so objective alignment is neutral.", cfg.Name))
	case b.ObjectiveFit >= 80:
		rationale = append(rationale, fmt.Sprintf("%s directly serves your primary objective of %s.", cfg.Name, objectiveLabel(in.PrimaryObjective)))
	case b.ObjectiveFit >= 60:
		rationale = append(rationale, fmt.Sprintf("%s supports one of your secondary objectives rather than %s itself.", cfg.Name, objectiveLabel(in.PrimaryObjective)))
	default:
		rationale = append(rationale, fmt.Sprintf("%s is a stretch for %s; expect indirect contribution only.", cfg.Name, objectiveLabel(in.PrimaryObjective)))
	}

	// Company size
	switch {
	case b.SizeFit >= 80:
		rationale = append(rationale, fmt.Sprintf("It is a proven motion for %s companies like yours.", sizeLabels[in.CompanySize]))
	case b.SizeFit >= 60:
		rationale = append(rationale, fmt.Sprintf("It usually targets a neighboring segment, but adapts to %s with some tuning.", sizeLabels[in.CompanySize]))
	default:
		rationale = append(rationale, fmt.Sprintf("It is rarely run for %s companies; treat segment fit as a risk.", sizeLabels[in.CompanySize]))
	}

	// ACV
	if in.ACVBand != "" {
		switch {
		case b.ACVFit >= 80:
			rationale = append(rationale, fmt.Sprintf("Its velocity profile matches your %s deals.", acvLabels[in.ACVBand]))
		case b.ACVFit >= 60:
			rationale = append(rationale, fmt.Sprintf("It can carry %s deals, though that is not its sweet spot.", acvLabels[in.ACVBand]))
		default:
			rationale = append(rationale, fmt.Sprintf("Its economics work against %s deals.", acvLabels[in.ACVBand]))
		}
	}

	// Personas
	if len(in.Personas) > 0 {
		personaList := strings.Join(in.Personas, ", ")
		switch {
		case b.PersonaFit >= 70:
			rationale = append(rationale, fmt.Sprintf("It reaches most of your target personas (%s).", personaList))
		case b.PersonaFit >= 40:
			rationale = append(rationale, fmt.Sprintf("It reaches some of your target personas (%s); plan supplementary channels for the rest.", personaList))
		default:
			rationale = append(rationale, fmt.Sprintf("It does not naturally reach your target personas (%s).", personaList))
		}
	}

	// Effort
	switch {
	case b.TimeCompressionDelta >= 20:
		rationale = append(rationale, fmt.Sprintf("A %d-month window severely compresses a motion that wants %d months, raising effort to %d.", in.TimeHorizonMonths, cfg.RecommendedHorizonMonths, b.Effort))
	case b.TimeCompressionDelta >= 10:
		rationale = append(rationale, fmt.Sprintf("Your %d-month window is tighter than the recommended %d months, adding execution pressure.", in.TimeHorizonMonths, cfg.RecommendedHorizonMonths))
	case b.TimeCompressionDelta < 0:
		rationale = append(rationale, fmt.Sprintf("Your %d-month window gives this motion generous runway, easing effort to %d.", in.TimeHorizonMonths, b.Effort))
	default:
		rationale = append(rationale, fmt.Sprintf("Your timeline is well matched to this motion; overall effort lands at %d.", b.Effort))
	}

	// Impact
	switch {
	case b.FitMultiplier > 1.0:
		rationale = append(rationale, fmt.Sprintf("Strong overall fit amplifies expected impact to %d.", b.Impact))
	case b.FitMultiplier < 1.0:
		rationale = append(rationale, fmt.Sprintf("Weak overall fit discounts expected impact to %d.", b.Impact))
	default:
		rationale = append(rationale, fmt.Sprintf("Expected impact holds near its baseline at %d.", b.Impact))
	}

	return rationale
}
