package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
)

type IsSlotTaken struct {
	repo    domain.Repository
	catalog domain.Catalog
}

func NewIsSlotTaken(
	repo domain.Repository,
	catalog domain.Catalog,
) *IsSlotTaken {
	return &IsSlotTaken{
		repo:    repo,
		catalog: catalog,
	}
}

// Execute reports whether booking serviceIDs at start would overlap an
// active appointment.
func (uc *IsSlotTaken) Execute(
	ctx context.Context,
	start time.Time,
	serviceIDs []uint,
) (bool, error) {

	services, err := resolveServices(ctx, uc.catalog, serviceIDs)
	if err != nil {
		return false, err
	}

	cand := domain.NewInterval(domain.NormalizeStart(start), domain.TotalDuration(services))

	taken, err := uc.repo.HasTimeConflict(ctx, cand.Start, cand.End)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}
	return taken, nil
}
