package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/GittyRyan/compass/pkg/kafka"
	"github.com/GittyRyan/compass/pkg/metrics"
	"github.com/GittyRyan/compass/pkg/motion"
	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/redis"
	"github.com/GittyRyan/compass/pkg/repositories"
	"github.com/GittyRyan/compass/pkg/scoring"
	"github.com/GittyRyan/compass/pkg/tracing"
	"github.com/GittyRyan/compass/pkg/utils"
)

// LibraryLocker serializes read-modify-write cycles on a tenant's library.
// A nil locker disables locking, which single-writer tests rely on.
type LibraryLocker interface {
	WithLock(ctx context.Context, key string, ttl time.Duration, fn func() error) error
}

// PlanHandler handles plan library endpoints
type PlanHandler struct {
	repo    repositories.LibraryRepo
	locker  LibraryLocker
	lockTTL time.Duration
	emitter kafka.Emitter
	logger  ectologger.Logger
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(repo repositories.LibraryRepo, locker LibraryLocker, lockTTL time.Duration, emitter kafka.Emitter, logger ectologger.Logger) *PlanHandler {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Second
	}
	return &PlanHandler{
		repo:    repo,
		locker:  locker,
		lockTTL: lockTTL,
		emitter: emitter,
		logger:  logger,
	}
}

// CreatePlanRequest represents the create plan request body
type CreatePlanRequest struct {
	Name     string         `json:"name" validate:"required"`
	MotionID motion.ID      `json:"motion_id" validate:"required"`
	Status   planlib.Status `json:"status,omitempty" validate:"omitempty,oneof=draft saved active archived"`

	Industry            string             `json:"industry,omitempty"`
	Region              string             `json:"region,omitempty"`
	CompanySize         motion.CompanySize `json:"company_size" validate:"required,oneof=smb mid enterprise"`
	PrimaryObjective    motion.Objective   `json:"primary_objective,omitempty" validate:"omitempty,oneof=pipeline awareness expansion new_market"`
	SecondaryObjectives []motion.Objective `json:"secondary_objectives,omitempty" validate:"omitempty,dive,oneof=pipeline awareness expansion new_market"`
	ACVBand             motion.ACVBand     `json:"acv_band,omitempty" validate:"omitempty,oneof=low mid high"`
	Geography           string             `json:"geography,omitempty"`
	Personas            []string           `json:"personas,omitempty"`
	TimeHorizonMonths   int                `json:"time_horizon_months,omitempty"`

	KPIs []string `json:"kpis,omitempty"`
}

// UpdatePlanRequest represents the field update request body
type UpdatePlanRequest struct {
	Objective      *string          `json:"objective,omitempty"`
	ACVBand        *string          `json:"acv_band,omitempty" validate:"omitempty,oneof=low mid high"`
	Personas       *[]string        `json:"personas,omitempty"`
	KPIs           *[]string        `json:"kpis,omitempty"`
	TimelineMonths *int             `json:"timeline_months,omitempty"`
	Segment        *planlib.Segment `json:"segment,omitempty"`
}

// ChangeStatusRequest represents the status transition request body
type ChangeStatusRequest struct {
	Status               planlib.Status `json:"status" validate:"required,oneof=draft saved active archived"`
	ForceArchiveOverflow bool           `json:"force_archive_overflow,omitempty"`
}

// RenamePlanRequest represents the rename request body
type RenamePlanRequest struct {
	Name string `json:"name" validate:"required"`
}

// Register registers plan routes
func (h *PlanHandler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.PATCH("/:id/status", h.ChangeStatus)
	g.PATCH("/:id/name", h.Rename)
	g.DELETE("/:id", h.Delete)
}

func (h *PlanHandler) emit(ctx context.Context, evt *kafka.PlanEventMessage) {
	if err := h.emitter.PublishPlanEvent(ctx, evt); err != nil {
		// Event publishing never fails the request.
		h.logger.WithContext(ctx).WithError(err).Errorf("Failed to publish %s event for plan %s", evt.Type, evt.PlanID)
	}
}

func (h *PlanHandler) withLibraryLock(ctx context.Context, tenantID string, fn func() error) error {
	if h.locker == nil {
		return fn()
	}
	err := h.locker.WithLock(ctx, "library:"+tenantID, h.lockTTL, fn)
	if errors.Is(err, redis.ErrLockNotAcquired) {
		return httperror.NewHTTPError(http.StatusConflict, "another change to the plan library is in progress")
	}
	return err
}

// List returns the current tenant's plan library
func (h *PlanHandler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.List")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}

	lib, err := h.repo.Get(ctx, tenantID)
	if err != nil {
		return err
	}
	return SuccessResponse(c, lib)
}

// Get returns one plan by id
func (h *PlanHandler) Get(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.Get")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}
	id, err := PlanID(c)
	if err != nil {
		return err
	}

	lib, err := h.repo.Get(ctx, tenantID)
	if err != nil {
		return err
	}
	plan, found := lib.Find(id)
	if !found {
		return LibraryError(&planlib.Error{Type: planlib.ErrPlanNotFound, PlanID: id})
	}
	return SuccessResponse(c, plan)
}

// Create scores the chosen motion and inserts a new plan
func (h *PlanHandler) Create(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.Create")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[CreatePlanRequest](c)
	if err != nil {
		return err
	}

	cfg, ok := motion.Lookup(req.MotionID)
	if !ok {
		return BadRequest("unknown motion: " + string(req.MotionID))
	}

	status := req.Status
	if status == "" {
		status = planlib.StatusDraft
	}

	in := ScoreRequest{
		CompanySize:         req.CompanySize,
		PrimaryObjective:    req.PrimaryObjective,
		SecondaryObjectives: req.SecondaryObjectives,
		ACVBand:             req.ACVBand,
		Geography:           req.Geography,
		Personas:            req.Personas,
		TimeHorizonMonths:   req.TimeHorizonMonths,
	}.toSelectorInputs()
	breakdown := scoring.ScoreMotion(cfg, in)

	plan := planlib.Plan{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Status:     status,
		MotionID:   string(cfg.ID),
		MotionName: cfg.Name,
		Segment: planlib.Segment{
			Industry:    req.Industry,
			CompanySize: string(req.CompanySize),
			Region:      req.Region,
		},
		Objective:      string(req.PrimaryObjective),
		ACVBand:        string(req.ACVBand),
		Personas:       req.Personas,
		Effort:         breakdown.Effort,
		Impact:         breakdown.Impact,
		MatchPercent:   breakdown.MatchPercent,
		KPIs:           req.KPIs,
		TimelineMonths: in.TimeHorizonMonths,
	}

	var updated planlib.Library
	err = h.withLibraryLock(ctx, tenantID, func() error {
		lib, getErr := h.repo.Get(ctx, tenantID)
		if getErr != nil {
			return getErr
		}

		var opErr error
		updated, opErr = planlib.CreatePlan(lib, plan, time.Now().UTC())
		if opErr != nil {
			metrics.PlanOperationsTotal.WithLabelValues(tenantID, "create", "error").Inc()
			return LibraryError(opErr)
		}
		return h.repo.Save(ctx, updated)
	})
	if err != nil {
		return err
	}
	metrics.PlanOperationsTotal.WithLabelValues(tenantID, "create", "success").Inc()

	h.emit(ctx, &kafka.PlanEventMessage{
		Type:     kafka.EventPlanCreated,
		TenantID: tenantID,
		PlanID:   plan.ID,
		MotionID: plan.MotionID,
		Status:   string(status),
	})

	created, _ := updated.Find(plan.ID)
	return CreatedResponse(c, created)
}

// Update applies a field patch to a plan
func (h *PlanHandler) Update(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.Update")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}
	id, err := PlanID(c)
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[UpdatePlanRequest](c)
	if err != nil {
		return err
	}

	var updated planlib.Library
	err = h.withLibraryLock(ctx, tenantID, func() error {
		lib, getErr := h.repo.Get(ctx, tenantID)
		if getErr != nil {
			return getErr
		}

		var opErr error
		updated, opErr = planlib.UpdatePlan(lib, id, planlib.PlanPatch{
			Objective:      req.Objective,
			ACVBand:        req.ACVBand,
			Personas:       req.Personas,
			KPIs:           req.KPIs,
			TimelineMonths: req.TimelineMonths,
			Segment:        req.Segment,
		}, time.Now().UTC())
		if opErr != nil {
			metrics.PlanOperationsTotal.WithLabelValues(tenantID, "update", "error").Inc()
			return LibraryError(opErr)
		}
		return h.repo.Save(ctx, updated)
	})
	if err != nil {
		return err
	}
	metrics.PlanOperationsTotal.WithLabelValues(tenantID, "update", "success").Inc()

	h.emit(ctx, &kafka.PlanEventMessage{
		Type:     kafka.EventPlanUpdated,
		TenantID: tenantID,
		PlanID:   id,
	})

	plan, _ := updated.Find(id)
	return SuccessResponse(c, plan)
}

// ChangeStatus moves a plan through the lifecycle
func (h *PlanHandler) ChangeStatus(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.ChangeStatus")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}
	id, err := PlanID(c)
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[ChangeStatusRequest](c)
	if err != nil {
		return err
	}

	var updated planlib.Library
	var from planlib.Status
	err = h.withLibraryLock(ctx, tenantID, func() error {
		lib, getErr := h.repo.Get(ctx, tenantID)
		if getErr != nil {
			return getErr
		}

		if existing, found := lib.Find(id); found {
			from = existing.Status
		}

		var opErr error
		updated, opErr = planlib.ChangeStatus(lib, id, req.Status, time.Now().UTC(), planlib.ChangeStatusOptions{
			ForceArchiveOverflow: req.ForceArchiveOverflow,
		})
		if opErr != nil {
			metrics.PlanOperationsTotal.WithLabelValues(tenantID, "change_status", "error").Inc()
			return LibraryError(opErr)
		}
		return h.repo.Save(ctx, updated)
	})
	if err != nil {
		return err
	}
	metrics.PlanOperationsTotal.WithLabelValues(tenantID, "change_status", "success").Inc()
	metrics.PlanStatusTransitionsTotal.WithLabelValues(string(from), string(req.Status)).Inc()

	h.emit(ctx, &kafka.PlanEventMessage{
		Type:       kafka.EventPlanStatusChanged,
		TenantID:   tenantID,
		PlanID:     id,
		FromStatus: string(from),
		ToStatus:   string(req.Status),
	})

	plan, _ := updated.Find(id)
	return SuccessResponse(c, plan)
}

// Rename sets a plan's name
func (h *PlanHandler) Rename(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.Rename")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}
	id, err := PlanID(c)
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[RenamePlanRequest](c)
	if err != nil {
		return err
	}

	var updated planlib.Library
	err = h.withLibraryLock(ctx, tenantID, func() error {
		lib, getErr := h.repo.Get(ctx, tenantID)
		if getErr != nil {
			return getErr
		}

		var opErr error
		updated, opErr = planlib.RenamePlan(lib, id, req.Name, time.Now().UTC())
		if opErr != nil {
			metrics.PlanOperationsTotal.WithLabelValues(tenantID, "rename", "error").Inc()
			return LibraryError(opErr)
		}
		return h.repo.Save(ctx, updated)
	})
	if err != nil {
		return err
	}
	metrics.PlanOperationsTotal.WithLabelValues(tenantID, "rename", "success").Inc()

	h.emit(ctx, &kafka.PlanEventMessage{
		Type:     kafka.EventPlanRenamed,
		TenantID: tenantID,
		PlanID:   id,
	})

	plan, _ := updated.Find(id)
	return SuccessResponse(c, plan)
}

// Delete removes a plan from the library
func (h *PlanHandler) Delete(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "PlanHandler.Delete")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	tenantID, err := GetTenantID(c)
	if err != nil {
		return err
	}
	id, err := PlanID(c)
	if err != nil {
		return err
	}

	err = h.withLibraryLock(ctx, tenantID, func() error {
		lib, getErr := h.repo.Get(ctx, tenantID)
		if getErr != nil {
			return getErr
		}

		updated, opErr := planlib.DeletePlan(lib, id)
		if opErr != nil {
			metrics.PlanOperationsTotal.WithLabelValues(tenantID, "delete", "error").Inc()
			return LibraryError(opErr)
		}
		return h.repo.Save(ctx, updated)
	})
	if err != nil {
		return err
	}
	metrics.PlanOperationsTotal.WithLabelValues(tenantID, "delete", "success").Inc()

	h.emit(ctx, &kafka.PlanEventMessage{
		Type:     kafka.EventPlanDeleted,
		TenantID: tenantID,
		PlanID:   id,
	})

	return NoContentResponse(c)
}
