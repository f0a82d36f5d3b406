// Package planlib implements the tenant-scoped plan library and its status
// lifecycle. All mutating operations are pure: they take a Library value and
// return a new Library value or a typed error, never touching the input.
package planlib

import "time"

// Status is a plan's lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSaved    Status = "saved"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Capacity limits per status. Active is not listed because activation is
// governed by the single-active invariant, not a count check.
const (
	LimitDraft    = 5
	LimitSaved    = 5
	LimitArchived = 10
)

// validTransitions enumerates every allowed from→to pair. Anything absent
// fails with an invalid-transition error, including self-loops.
var validTransitions = map[Status][]Status{
	StatusDraft:    {StatusSaved, StatusArchived},
	StatusSaved:    {StatusActive, StatusArchived},
	StatusActive:   {StatusSaved, StatusArchived},
	StatusArchived: {StatusSaved},
}

func transitionAllowed(from, to Status) bool {
	for _, t := range validTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Segment is the company-profile snapshot captured when a plan is created.
type Segment struct {
	Industry    string `json:"industry,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Region      string `json:"region,omitempty"`
}

// Plan is a persisted planning artifact. Plans are value objects: every
// library operation returns fresh copies rather than mutating in place.
type Plan struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	Name       string `json:"name"`
	Status     Status `json:"status"`
	MotionID   string `json:"motion_id"`
	MotionName string `json:"motion_name"`

	Segment   Segment  `json:"segment"`
	Objective string   `json:"objective,omitempty"`
	ACVBand   string   `json:"acv_band,omitempty"`
	Personas  []string `json:"personas,omitempty"`

	Effort       int `json:"effort"`
	Impact       int `json:"impact"`
	MatchPercent int `json:"match_percent"`

	KPIs           []string `json:"kpis,omitempty"`
	TimelineMonths int      `json:"timeline_months"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	ArchivedAt  *time.Time `json:"archived_at,omitempty"`
}

// Library is the aggregate root for one tenant's plans. Plan order is
// insertion order; it carries no meaning beyond display.
type Library struct {
	TenantID string `json:"tenant_id"`
	Plans    []Plan `json:"plans"`
}

// NewLibrary returns an empty library for a tenant.
func NewLibrary(tenantID string) Library {
	return Library{TenantID: tenantID, Plans: []Plan{}}
}

// CountByStatus returns how many plans currently hold the given status.
func (l Library) CountByStatus(s Status) int {
	n := 0
	for _, p := range l.Plans {
		if p.Status == s {
			n++
		}
	}
	return n
}

// Find returns the plan with the given id, if present.
func (l Library) Find(id string) (Plan, bool) {
	for _, p := range l.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// clonePlans copies the plan slice so callers can rewrite entries without
// aliasing the input library.
func (l Library) clonePlans() []Plan {
	plans := make([]Plan, len(l.Plans))
	copy(plans, l.Plans)
	return plans
}
