// Package preview derives a phased execution preview for a chosen motion:
// a horizon-keyed phase timeline with motion-specific workstream text, an
// execution theme, and capped risk/dependency lists. Everything is template
// driven and deterministic.
package preview

import (
	"fmt"

	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/scoring"
)

// EffortClass buckets the overall effort score into four bands.
type EffortClass string

const (
	EffortLightweight      EffortClass = "lightweight"
	EffortModerate         EffortClass = "moderate"
	EffortHeavy            EffortClass = "heavy"
	EffortTransformational EffortClass = "transformational"
)

// Level grades a phase's effort slice or risk.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Phase is one segment of the execution timeline.
type Phase struct {
	Timeframe   string `json:"timeframe"`
	Workstream  string `json:"workstream"`
	EffortSlice Level  `json:"effort_slice"`
	RiskLevel   Level  `json:"risk_level"`
}

// Preview is the full plan preview for a motion under given inputs.
type Preview struct {
	MotionID     motion.ID   `json:"motion_id"`
	MotionName   string      `json:"motion_name"`
	EffortClass  EffortClass `json:"effort_class"`
	Theme        string      `json:"theme"`
	Phases       []Phase     `json:"phases"`
	Risks        []string    `json:"risks"`
	Dependencies []string    `json:"dependencies"`
}

const (
	maxRisks        = 4
	maxDependencies = 3
)

// phaseTimeframes maps a normalized horizon to its phase template. 3 and 6
// month horizons use three phases, 9 and 12 use four.
var phaseTimeframes = map[int][]string{
	3:  {"Month 1", "Month 2", "Month 3"},
	6:  {"Months 1-2", "Months 3-4", "Months 5-6"},
	9:  {"Months 1-2", "Months 3-4", "Months 5-6", "Months 7-9"},
	12: {"Months 1-3", "Months 4-6", "Months 7-9", "Months 10-12"},
}

// ClassifyEffort maps an effort score to its band.
func ClassifyEffort(effort int) EffortClass {
	switch {
	case effort < 40:
		return EffortLightweight
	case effort < 65:
		return EffortModerate
	case effort < 80:
		return EffortHeavy
	default:
		return EffortTransformational
	}
}

var classIntensity = map[EffortClass]string{
	EffortLightweight:      "focused",
	EffortModerate:         "steady",
	EffortHeavy:            "demanding",
	EffortTransformational: "all-in",
}

var classRisk = map[EffortClass]string{
	EffortModerate:         "Competing priorities can dilute execution focus",
	EffortHeavy:            "Sustained resourcing is required across the full horizon",
	EffortTransformational: "Organization-wide change management is a prerequisite",
}

// phaseEffortSlice assigns per-phase effort by position and overall class.
// Heavier motions front-load; lighter ones stay flat.
func phaseEffortSlice(class EffortClass, idx, count int) Level {
	first := idx == 0
	last := idx == count-1
	switch class {
	case EffortLightweight:
		return LevelLow
	case EffortModerate:
		if last {
			return LevelLow
		}
		return LevelMedium
	case EffortHeavy:
		if first {
			return LevelHigh
		}
		return LevelMedium
	default: // transformational
		if last {
			return LevelMedium
		}
		return LevelHigh
	}
}

// phaseRiskLevel mirrors the effort rules but decays toward the end of the
// timeline: risk concentrates in early phases where the motion is unproven.
func phaseRiskLevel(class EffortClass, idx, count int) Level {
	first := idx == 0
	last := idx == count-1
	switch class {
	case EffortLightweight:
		return LevelLow
	case EffortModerate:
		if first {
			return LevelMedium
		}
		return LevelLow
	case EffortHeavy:
		if first {
			return LevelHigh
		}
		if last {
			return LevelLow
		}
		return LevelMedium
	default: // transformational
		if last {
			return LevelMedium
		}
		return LevelHigh
	}
}

var sizeDependencies = map[motion.CompanySize]string{
	motion.SizeSMB:        "Founder or exec time committed to the motion",
	motion.SizeMid:        "Dedicated owner with cross-functional authority",
	motion.SizeEnterprise: "Stakeholder alignment across regions and business units",
}

// Generate builds the preview for a motion. The horizon in the inputs must
// already be normalized to 3/6/9/12; unknown horizons fall back to the
// 6-month template.
func Generate(cfg motion.Config, b scoring.Breakdown, in scoring.SelectorInputs) Preview {
	class := ClassifyEffort(b.Effort)

	timeframes, ok := phaseTimeframes[in.TimeHorizonMonths]
	if !ok {
		timeframes = phaseTimeframes[6]
	}

	ws, _ := motion.WorkstreamsFor(cfg.ID)

	phases := make([]Phase, len(timeframes))
	for i, tf := range timeframes {
		text := ""
		if len(ws.Phases) > 0 {
			wi := i
			if wi >= len(ws.Phases) {
				wi = len(ws.Phases) - 1
			}
			text = ws.Phases[wi]
		}
		phases[i] = Phase{
			Timeframe:   tf,
			Workstream:  text,
			EffortSlice: phaseEffortSlice(class, i, len(timeframes)),
			RiskLevel:   phaseRiskLevel(class, i, len(timeframes)),
		}
	}

	return Preview{
		MotionID:     cfg.ID,
		MotionName:   cfg.Name,
		EffortClass:  class,
		Theme:        buildTheme(cfg, class, in),
		Phases:       phases,
		Risks:        buildRisks(class, ws, in),
		Dependencies: buildDependencies(ws, in),
	}
}

func buildTheme(cfg motion.Config, class EffortClass, in scoring.SelectorInputs) string {
	theme := fmt.Sprintf("A %s %d-month %s program", classIntensity[class], in.TimeHorizonMonths, cfg.Name)
	if in.SeasonalContext != "" {
		theme += fmt.Sprintf(", timed around %s", in.SeasonalContext)
	}
	return theme + "."
}

func buildRisks(class EffortClass, ws motion.Workstreams, in scoring.SelectorInputs) []string {
	risks := make([]string, 0, maxRisks)
	if generic, ok := classRisk[class]; ok {
		risks = append(risks, generic)
	}
	if in.SalesCycleMonths > 0 && in.SalesCycleMonths*2 > in.TimeHorizonMonths {
		risks = append(risks, fmt.Sprintf("A %d-month sales cycle leaves few full deal cycles inside the horizon", in.SalesCycleMonths))
	}
	if in.SeasonalContext != "" {
		risks = append(risks, fmt.Sprintf("Seasonal timing (%s) narrows the launch window", in.SeasonalContext))
	}
	for _, r := range ws.Risks {
		if len(risks) >= maxRisks {
			break
		}
		risks = append(risks, r)
	}
	if len(risks) > maxRisks {
		risks = risks[:maxRisks]
	}
	return risks
}

func buildDependencies(ws motion.Workstreams, in scoring.SelectorInputs) []string {
	deps := make([]string, 0, maxDependencies)
	if d, ok := sizeDependencies[in.CompanySize]; ok {
		deps = append(deps, d)
	}
	for _, d := range ws.Dependencies {
		if len(deps) >= maxDependencies {
			break
		}
		deps = append(deps, d)
	}
	return deps
}
