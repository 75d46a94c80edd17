package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/catalog"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
)

// DeleteService removes a service no appointment refers to.
type DeleteService struct {
	repo   domain.Repository
	cache  ServiceListCache
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewDeleteService(
	repo domain.Repository,
	cache ServiceListCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *DeleteService {
	return &DeleteService{
		repo:   repo,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

func (uc *DeleteService) Execute(ctx context.Context, id uint, actor string) error {
	s, err := findService(ctx, uc.repo, id)
	if err != nil {
		return err
	}

	refs, err := uc.repo.CountServiceReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("count references of service %d: %w", id, err)
	}
	if refs > 0 {
		return httperr.ErrReferenced(httperr.CodeServiceInUse)
	}

	if err := uc.repo.DeleteService(ctx, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return httperr.ErrNotFound(httperr.CodeServiceNotFound)
		case httperr.IsForeignKeyViolation(err):
			// A booking linked the service after the reference count.
			return httperr.ErrReferenced(httperr.CodeServiceInUse)
		}
		return fmt.Errorf("delete service %d: %w", id, err)
	}

	_ = uc.cache.InvalidateServiceList(ctx)

	uc.logger.Info().Uint("service_id", id).Msg("service deleted")

	uc.audit.Dispatch(audit.Event{
		ActorEmail: actor,
		Action:     audit.ActionServiceDeleted,
		Entity:     audit.EntityService,
		EntityID:   &id,
		Metadata:   map[string]any{"name": s.Name},
	})

	return nil
}
