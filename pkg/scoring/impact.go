package scoring

import (
	"strings"

	"github.com/GittyRyan/compass/pkg/motion"
)

// FitMultiplier scales impact by how well the motion fits overall.
func FitMultiplier(fitScore int) float64 {
	switch {
	case fitScore >= 80:
		return 1.30
	case fitScore >= 65:
		return 1.15
	case fitScore >= 45:
		return 1.00
	case fitScore >= 30:
		return 0.90
	default:
		return 0.80
	}
}

func acvMultiplier(band motion.ACVBand) float64 {
	switch band {
	case motion.ACVHigh:
		return 1.20
	case motion.ACVMid:
		return 1.00
	case motion.ACVLow:
		return 0.90
	default:
		return 1.00
	}
}

func geoMultiplier(geography string) float64 {
	switch {
	case geography == "", strings.EqualFold(geography, "global"):
		return 1.00
	case strings.EqualFold(geography, "APAC"):
		return 0.95
	case strings.EqualFold(geography, "LATAM"):
		return 1.05
	default:
		// North America, EMEA, Europe, and anything unrecognized
		return 1.00
	}
}

// MarketMultiplier is the product of the ACV and geography multipliers.
func MarketMultiplier(in SelectorInputs) float64 {
	return acvMultiplier(in.ACVBand) * geoMultiplier(in.Geography)
}

// HorizonMultiplier rewards longer runways: compounding motions pay off
// later in the window.
func HorizonMultiplier(months int) float64 {
	switch months {
	case 3:
		return 0.90
	case 6:
		return 1.00
	case 9:
		return 1.05
	case 12:
		return 1.15
	default:
		return 1.00
	}
}

// Impact computes the 0-100 dynamic impact score and returns the three
// multipliers applied to the motion's base impact.
func Impact(cfg motion.Config, in SelectorInputs, fitScore int) (impact int, fitMult, marketMult, horizonMult float64) {
	fitMult = FitMultiplier(fitScore)
	marketMult = MarketMultiplier(in)
	horizonMult = HorizonMultiplier(in.TimeHorizonMonths)

	impact = clampScore(roundf(float64(cfg.BaseImpact) * fitMult * marketMult * horizonMult))
	return impact, fitMult, marketMult, horizonMult
}
