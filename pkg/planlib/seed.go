package planlib

import "time"

// SeedLibrary returns a fresh demo library for a tenant. Every call builds
// new values; nothing here is shared process state.
func SeedLibrary(tenantID string, now time.Time) Library {
	activatedAt := now.Add(-72 * time.Hour)
	return Library{
		TenantID: tenantID,
		Plans: []Plan{
			{
				ID:         "seed-plan-abm",
				TenantID:   tenantID,
				Name:       "Enterprise ABM push",
				Status:     StatusActive,
				MotionID:   "outbound_abm",
				MotionName: "Outbound ABM",
				Segment: Segment{
					Industry:    "saas",
					CompanySize: "enterprise",
					Region:      "NA",
				},
				Objective:      "pipeline",
				ACVBand:        "high",
				Personas:       []string{"VP Sales", "CRO"},
				Effort:         68,
				Impact:         81,
				MatchPercent:   74,
				KPIs:           []string{"Tier-1 account coverage", "Pipeline sourced"},
				TimelineMonths: 9,
				CreatedAt:      now.Add(-240 * time.Hour),
				UpdatedAt:      activatedAt,
				ActivatedAt:    &activatedAt,
			},
			{
				ID:         "seed-plan-plg",
				TenantID:   tenantID,
				Name:       "Self-serve activation experiments",
				Status:     StatusDraft,
				MotionID:   "product_led_growth",
				MotionName: "Product-Led Growth",
				Segment: Segment{
					Industry:    "saas",
					CompanySize: "smb",
					Region:      "NA",
				},
				Objective:      "expansion",
				ACVBand:        "low",
				Personas:       []string{"Head of Product"},
				Effort:         51,
				Impact:         69,
				MatchPercent:   66,
				TimelineMonths: 6,
				CreatedAt:      now.Add(-48 * time.Hour),
				UpdatedAt:      now.Add(-48 * time.Hour),
			},
		},
	}
}
