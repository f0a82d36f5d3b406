package planlib

import (
	"strings"
	"time"
)

// PlanPatch carries optional field updates for UpdatePlan. Nil fields are
// left untouched. Name changes go through RenamePlan, status changes through
// ChangeStatus.
type PlanPatch struct {
	Objective      *string   `json:"objective,omitempty"`
	ACVBand        *string   `json:"acv_band,omitempty"`
	Personas       *[]string `json:"personas,omitempty"`
	KPIs           *[]string `json:"kpis,omitempty"`
	TimelineMonths *int      `json:"timeline_months,omitempty"`
	Segment        *Segment  `json:"segment,omitempty"`
}

// ChangeStatusOptions tunes ChangeStatus behavior.
type ChangeStatusOptions struct {
	// ForceArchiveOverflow evicts the oldest archived plan instead of
	// failing when the archive is at capacity.
	ForceArchiveOverflow bool
}

// CreatePlan inserts a new plan into the library. The plan's ID must be set
// by the caller; creation timestamps come from now. Draft and saved creation
// is capacity-checked, and creating an active plan demotes any currently
// active plan so the single-active invariant holds.
func CreatePlan(lib Library, plan Plan, now time.Time) (Library, error) {
	if strings.TrimSpace(plan.Name) == "" {
		return Library{}, validationError("plan name must not be empty")
	}
	if plan.ID == "" {
		return Library{}, validationError("plan id must not be empty")
	}
	if _, exists := lib.Find(plan.ID); exists {
		return Library{}, validationError("plan id already exists: " + plan.ID)
	}

	switch plan.Status {
	case StatusDraft:
		if n := lib.CountByStatus(StatusDraft); n >= LimitDraft {
			return Library{}, capacityExceeded(StatusDraft, LimitDraft, n)
		}
	case StatusSaved:
		if n := lib.CountByStatus(StatusSaved); n >= LimitSaved {
			return Library{}, capacityExceeded(StatusSaved, LimitSaved, n)
		}
	case StatusActive, StatusArchived:
		// Creation into these states is allowed; active displaces the
		// current active plan below, archived counts toward the archive
		// limit.
		if plan.Status == StatusArchived {
			if n := lib.CountByStatus(StatusArchived); n >= LimitArchived {
				return Library{}, capacityExceeded(StatusArchived, LimitArchived, n)
			}
		}
	default:
		return Library{}, validationError("unknown plan status: " + string(plan.Status))
	}

	plans := lib.clonePlans()
	if plan.Status == StatusActive {
		for i := range plans {
			if plans[i].Status == StatusActive {
				plans[i].Status = StatusSaved
				plans[i].UpdatedAt = now
			}
		}
		t := now
		plan.ActivatedAt = &t
	}
	if plan.Status == StatusArchived {
		t := now
		plan.ArchivedAt = &t
	}

	plan.TenantID = lib.TenantID
	plan.CreatedAt = now
	plan.UpdatedAt = now
	plans = append(plans, plan)

	return Library{TenantID: lib.TenantID, Plans: plans}, nil
}

// UpdatePlan applies a field patch to a plan. An empty patch still bumps the
// plan's UpdatedAt timestamp.
func UpdatePlan(lib Library, id string, patch PlanPatch, now time.Time) (Library, error) {
	idx := indexOf(lib, id)
	if idx < 0 {
		return Library{}, planNotFound(id)
	}

	plans := lib.clonePlans()
	p := &plans[idx]
	if patch.Objective != nil {
		p.Objective = *patch.Objective
	}
	if patch.ACVBand != nil {
		p.ACVBand = *patch.ACVBand
	}
	if patch.Personas != nil {
		p.Personas = append([]string(nil), (*patch.Personas)...)
	}
	if patch.KPIs != nil {
		p.KPIs = append([]string(nil), (*patch.KPIs)...)
	}
	if patch.TimelineMonths != nil {
		p.TimelineMonths = *patch.TimelineMonths
	}
	if patch.Segment != nil {
		p.Segment = *patch.Segment
	}
	p.UpdatedAt = now

	return Library{TenantID: lib.TenantID, Plans: plans}, nil
}

// ChangeStatus moves a plan through the lifecycle. Activation demotes any
// currently active plan to saved in the same update. Archiving at capacity
// fails with an archive-overflow error unless opts.ForceArchiveOverflow is
// set, in which case the oldest archived plan is evicted first.
func ChangeStatus(lib Library, id string, to Status, now time.Time, opts ChangeStatusOptions) (Library, error) {
	idx := indexOf(lib, id)
	if idx < 0 {
		return Library{}, planNotFound(id)
	}
	from := lib.Plans[idx].Status
	if !transitionAllowed(from, to) {
		return Library{}, invalidTransition(from, to)
	}

	switch to {
	case StatusSaved:
		if n := lib.CountByStatus(StatusSaved); n >= LimitSaved {
			return Library{}, capacityExceeded(StatusSaved, LimitSaved, n)
		}
	case StatusDraft:
		if n := lib.CountByStatus(StatusDraft); n >= LimitDraft {
			return Library{}, capacityExceeded(StatusDraft, LimitDraft, n)
		}
	}

	plans := lib.clonePlans()

	if to == StatusArchived {
		if n := lib.CountByStatus(StatusArchived); n >= LimitArchived {
			oldest := oldestArchived(lib)
			if !opts.ForceArchiveOverflow {
				return Library{}, archiveOverflow(oldest)
			}
			plans = removePlan(plans, oldest)
			idx = indexOfPlans(plans, id)
		}
	}

	if to == StatusActive {
		for i := range plans {
			if i != idx && plans[i].Status == StatusActive {
				plans[i].Status = StatusSaved
				plans[i].UpdatedAt = now
			}
		}
	}

	p := &plans[idx]
	p.Status = to
	p.UpdatedAt = now
	switch to {
	case StatusActive:
		t := now
		p.ActivatedAt = &t
	case StatusArchived:
		t := now
		p.ArchivedAt = &t
	}
	if from == StatusArchived && to != StatusArchived {
		p.ArchivedAt = nil
	}

	return Library{TenantID: lib.TenantID, Plans: plans}, nil
}

// RenamePlan sets a plan's name. The new name must be non-empty after
// trimming.
func RenamePlan(lib Library, id, name string, now time.Time) (Library, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Library{}, validationError("plan name must not be empty")
	}
	idx := indexOf(lib, id)
	if idx < 0 {
		return Library{}, planNotFound(id)
	}

	plans := lib.clonePlans()
	plans[idx].Name = trimmed
	plans[idx].UpdatedAt = now

	return Library{TenantID: lib.TenantID, Plans: plans}, nil
}

// DeletePlan removes a plan from the library.
func DeletePlan(lib Library, id string) (Library, error) {
	idx := indexOf(lib, id)
	if idx < 0 {
		return Library{}, planNotFound(id)
	}

	plans := make([]Plan, 0, len(lib.Plans)-1)
	plans = append(plans, lib.Plans[:idx]...)
	plans = append(plans, lib.Plans[idx+1:]...)

	return Library{TenantID: lib.TenantID, Plans: plans}, nil
}

func indexOf(lib Library, id string) int {
	return indexOfPlans(lib.Plans, id)
}

func indexOfPlans(plans []Plan, id string) int {
	for i, p := range plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func removePlan(plans []Plan, id string) []Plan {
	idx := indexOfPlans(plans, id)
	if idx < 0 {
		return plans
	}
	out := make([]Plan, 0, len(plans)-1)
	out = append(out, plans[:idx]...)
	out = append(out, plans[idx+1:]...)
	return out
}

// oldestArchived picks the archived plan with the earliest archive
// timestamp, falling back to the update timestamp when absent.
func oldestArchived(lib Library) string {
	oldestID := ""
	var oldestAt time.Time
	for _, p := range lib.Plans {
		if p.Status != StatusArchived {
			continue
		}
		at := p.UpdatedAt
		if p.ArchivedAt != nil {
			at = *p.ArchivedAt
		}
		if oldestID == "" || at.Before(oldestAt) {
			oldestID = p.ID
			oldestAt = at
		}
	}
	return oldestID
}
