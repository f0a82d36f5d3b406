package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/GittyRyan/compass/pkg/metrics"
	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/redis"
	"github.com/GittyRyan/compass/pkg/tracing"
)

// KV is the key-value surface the repository needs. *redis.Client satisfies
// it; tests substitute an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// LibraryRepository stores each tenant's plan library as one serialized value
// under a namespaced key. Writes are last-write-wins per tenant key.
type LibraryRepository struct {
	kv        KV
	namespace string
	logger    ectologger.Logger
}

// NewLibraryRepository creates a new plan library repository
func NewLibraryRepository(kv KV, namespace string, logger ectologger.Logger) *LibraryRepository {
	return &LibraryRepository{
		kv:        kv,
		namespace: namespace,
		logger:    logger,
	}
}

func (r *LibraryRepository) key(tenantID string) string {
	return r.namespace + ":" + tenantID
}

// Get loads a tenant's library. A missing key is an empty library, not an
// error.
func (r *LibraryRepository) Get(ctx context.Context, tenantID string) (planlib.Library, error) {
	ctx, span := tracing.StartSpan(ctx, "LibraryRepository.Get")
	defer span.End()

	raw, err := r.kv.Get(ctx, r.key(tenantID))
	if err != nil {
		if redis.IsNotFound(err) {
			metrics.LibraryReadsTotal.WithLabelValues("empty").Inc()
			return planlib.NewLibrary(tenantID), nil
		}
		metrics.LibraryReadsTotal.WithLabelValues("error").Inc()
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"tenant_id": tenantID,
		}).Error("failed to load plan library")
		return planlib.Library{}, httperror.NewHTTPError(http.StatusInternalServerError, "failed to load plan library")
	}
	metrics.LibraryReadsTotal.WithLabelValues("hit").Inc()

	var lib planlib.Library
	if err := json.Unmarshal([]byte(raw), &lib); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"tenant_id": tenantID,
		}).Error("failed to decode plan library")
		return planlib.Library{}, httperror.NewHTTPError(http.StatusInternalServerError, "failed to decode plan library")
	}
	if lib.TenantID == "" {
		lib.TenantID = tenantID
	}
	return lib, nil
}

// Save writes the full library value for its tenant. No expiration; plan
// libraries live until deleted.
func (r *LibraryRepository) Save(ctx context.Context, lib planlib.Library) error {
	ctx, span := tracing.StartSpan(ctx, "LibraryRepository.Save")
	defer span.End()

	raw, err := json.Marshal(lib)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to encode plan library")
	}

	if err := r.kv.Set(ctx, r.key(lib.TenantID), string(raw), 0); err != nil {
		metrics.LibraryWritesTotal.WithLabelValues("error").Inc()
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"tenant_id": lib.TenantID,
		}).Error("failed to save plan library")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to save plan library")
	}

	metrics.LibraryWritesTotal.WithLabelValues("success").Inc()
	r.logger.WithContext(ctx).WithFields(map[string]any{
		"tenant_id": lib.TenantID,
		"plans":     len(lib.Plans),
	}).Debugf("Saved plan library for tenant=%s", lib.TenantID)
	return nil
}
