package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// resolveServices loads ids from the catalog in request order. The first id
// missing from the catalog is reported as an invalid service reference.
func resolveServices(
	ctx context.Context,
	catalog domain.Catalog,
	ids []uint,
) ([]models.Service, error) {

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, httperr.ErrValidation([]httperr.FieldError{
			{Field: "serviceIds", Rule: "min", Param: "1"},
		})
	}

	found, err := catalog.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve services: %w", err)
	}

	byID := make(map[uint]models.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.ErrInvalidServiceReference(id)
		}
		out = append(out, s)
	}
	return out, nil
}
