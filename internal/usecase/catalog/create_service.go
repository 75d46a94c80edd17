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

// ======================================================
// INPUT
// ======================================================

// serviceFields carries the validation rules shared by create and update.
type serviceFields struct {
	Name            string  `json:"name" validate:"required,max=100"`
	DurationMinutes int     `json:"durationMinutes" validate:"min=1,max=600"`
	Price           float64 `json:"price" validate:"min=0,max=100000"`
}

type CreateServiceInput struct {
	Name            string
	DurationMinutes int
	Price           float64

	Actor string
}

// ======================================================
// USE CASE
// ======================================================

type CreateService struct {
	repo   domain.Repository
	cache  ServiceListCache
	audit  *audit.Dispatcher
	logger zerolog.Logger
}

func NewCreateService(
	repo domain.Repository,
	cache ServiceListCache,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *CreateService {
	return &CreateService{
		repo:   repo,
		cache:  cache,
		audit:  audit,
		logger: logger,
	}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	in CreateServiceInput,
) (*models.Service, error) {

	fields := serviceFields{
		Name:            strings.TrimSpace(in.Name),
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
	}
	if err := validators.Struct(fields); err != nil {
		return nil, err
	}

	s := &models.Service{
		Name:            fields.Name,
		DurationMinutes: fields.DurationMinutes,
		Price:           fields.Price,
	}
	if err := uc.repo.CreateService(ctx, s); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	_ = uc.cache.InvalidateServiceList(ctx)

	uc.logger.Info().
		Uint("service_id", s.ID).
		Str("name", s.Name).
		Msg("service created")

	uc.audit.Dispatch(audit.Event{
		ActorEmail: in.Actor,
		Action:     audit.ActionServiceCreated,
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
