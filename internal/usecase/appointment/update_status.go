package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/metrics"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

const maxStatusAttempts = 3

type UpdateStatusInput struct {
	ID     uint
	Status domain.Status
	Actor  string
}

type UpdateAppointmentStatus struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     func() time.Time
}

func NewUpdateAppointmentStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:    repo,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {
	return uc.transition(ctx, in, audit.ActionAppointmentStatusChanged, nil)
}

func (uc *UpdateAppointmentStatus) transition(
	ctx context.Context,
	in UpdateStatusInput,
	action string,
	authorize func(*models.Appointment) error,
) (*models.Appointment, error) {

	var (
		ap   *models.Appointment
		from domain.Status
	)

	for attempt := 1; ; attempt++ {
		var err error
		ap, err = findAppointment(ctx, uc.repo, in.ID)
		if err != nil {
			return nil, err
		}

		if authorize != nil {
			if err := authorize(ap); err != nil {
				return nil, err
			}
		}

		from = domain.Status(ap.Status)

		changed, err := domain.Transition(ap, in.Status, uc.now())
		if err != nil {
			return nil, err
		}
		if !changed {
			return ap, nil
		}

		updated, err := uc.repo.UpdateAppointmentStatus(ctx, ap, from)
		if err != nil {
			return nil, fmt.Errorf("update appointment %d: %w", ap.ID, err)
		}
		if updated {
			break
		}

		// The status moved since it was read; decide again on the fresh row.
		if attempt == maxStatusAttempts {
			return nil, httperr.ErrInvalidTransition(string(from), string(in.Status))
		}

		uc.logger.Debug().
			Uint("appointment_id", ap.ID).
			Str("stale_status", string(from)).
			Msg("appointment status changed concurrently, retrying")
	}

	uc.metrics.StatusChanged(ap.Status)

	uc.logger.Info().
		Uint("appointment_id", ap.ID).
		Str("from", string(from)).
		Str("to", ap.Status).
		Msg("appointment status changed")

	uc.audit.Dispatch(audit.Event{
		ActorEmail: in.Actor,
		Action:     action,
		Entity:     audit.EntityAppointment,
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})

	return ap, nil
}
