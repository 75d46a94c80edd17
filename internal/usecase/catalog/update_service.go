package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/catalog"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
	"github.com/BruksfildServices01/makeup-studio/internal/validators"
)

// UpdateServiceInput is a partial update; nil fields are left unchanged.
type UpdateServiceInput struct {
	ID uint

	Name            *string
	DurationMinutes *int
	Price           *float64

	Actor string
}

// UpdateService changes catalog terms. Existing appointments keep the terms
// they were booked with.
type UpdateService struct {
	repo   domain.Repository
	cache  ServiceListCache
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewUpdateService(
	repo domain.Repository,
	cache ServiceListCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *UpdateService {
	return &UpdateService{
		repo:   repo,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

func (uc *UpdateService) Execute(
	ctx context.Context,
	in UpdateServiceInput,
) (*models.Service, error) {

	s, err := findService(ctx, uc.repo, in.ID)
	if err != nil {
		return nil, err
	}

	fields := serviceFields{
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
	if in.Name != nil {
		fields.Name = strings.TrimSpace(*in.Name)
	}
	if in.DurationMinutes != nil {
		fields.DurationMinutes = *in.DurationMinutes
	}
	if in.Price != nil {
		fields.Price = *in.Price
	}

	if err := validators.Struct(fields); err != nil {
		return nil, err
	}

	s.Name = fields.Name
	s.DurationMinutes = fields.DurationMinutes
	s.Price = fields.Price

	if err := uc.repo.UpdateService(ctx, s); err != nil {
		return nil, fmt.Errorf("update service %d: %w", s.ID, err)
	}

	_ = uc.cache.InvalidateServiceList(ctx)

	uc.logger.Info().Uint("service_id", s.ID).Msg("service updated")

	uc.audit.Dispatch(audit.Event{
		ActorEmail: in.Actor,
		Action:     audit.ActionServiceUpdated,
		Entity:     audit.EntityService,
		EntityID:   &s.ID,
		Metadata: map[string]any{
			"name":             s.Name,
			"duration_minutes": s.DurationMinutes,
			"price":            s.Price,
		},
	})

	return s, nil
}
