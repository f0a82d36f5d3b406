package repositories

import (
	"context"

	"github.com/GittyRyan/compass/pkg/planlib"
)

// LibraryRepo defines the interface for plan library storage operations
type LibraryRepo interface {
	Get(ctx context.Context, tenantID string) (planlib.Library, error)
	Save(ctx context.Context, lib planlib.Library) error
}
