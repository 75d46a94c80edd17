package appointment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/metrics"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
	"github.com/BruksfildServices01/makeup-studio/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AppointmentDate time.Time `json:"appointmentDate" validate:"required"`
	ClientName      string    `json:"clientName" validate:"required,max=100"`
	PhoneNumber     string    `json:"phoneNumber" validate:"required,phone"`
	Email           string    `json:"email" validate:"required,email,max=100"`
	ServiceIDs      []uint    `json:"serviceIds" validate:"required,min=1,dive,gt=0"`

	// Actor is the authenticated caller, recorded in the audit trail.
	Actor string `json:"-" validate:"-"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	catalog domain.Catalog
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	logger  zerolog.Logger

	// Serializes bookings within the process; the repository lock covers
	// other processes.
	mu sync.Mutex
}

func NewCreateAppointment(
	repo domain.Repository,
	catalog domain.Catalog,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		catalog: catalog,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Fields
	// --------------------------------------------------
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.TrimSpace(in.Email)

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Services (fail fast on the first unknown id)
	// --------------------------------------------------
	services, err := resolveServices(ctx, uc.catalog, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	total := domain.TotalDuration(services)
	slot := domain.NewInterval(domain.NormalizeStart(in.AppointmentDate), total)

	links := make([]models.AppointmentService, 0, len(services))
	for _, s := range services {
		links = append(links, models.AppointmentService{
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		})
	}

	ap := &models.Appointment{
		AppointmentDate: slot.Start,
		EndsAt:          slot.End,
		DurationMinutes: total,
		ClientName:      in.ClientName,
		PhoneNumber:     in.PhoneNumber,
		Email:           in.Email,
		Status:          string(domain.InitialStatus()),
		Services:        links,
	}

	// --------------------------------------------------
	// 3. Overlap check + insert under the booking lock
	// --------------------------------------------------
	err = uc.book(ctx, ap, slot)
	if err != nil {
		if httperr.IsForeignKeyViolation(err) {
			// A service was deleted after it was resolved above.
			if _, rerr := resolveServices(ctx, uc.catalog, in.ServiceIDs); rerr != nil {
				return nil, rerr
			}
		}
		if httperr.IsBusiness(err, httperr.CodeTimeConflict) {
			uc.metrics.BookingConflict()

			uc.logger.Info().
				Time("start", slot.Start).
				Time("end", slot.End).
				Msg("booking rejected: slot taken")

			uc.audit.Dispatch(audit.Event{
				ActorEmail: in.Actor,
				Action:     audit.ActionAppointmentConflict,
				Entity:     audit.EntityAppointment,
				Metadata: map[string]any{
					"start": slot.Start,
					"end":   slot.End,
				},
			})

			return nil, httperr.ErrSlotConflict()
		}
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.metrics.BookingCreated()

	uc.logger.Info().
		Uint("appointment_id", ap.ID).
		Time("start", ap.AppointmentDate).
		Int("duration_minutes", ap.DurationMinutes).
		Msg("appointment booked")

	uc.audit.Dispatch(audit.Event{
		ActorEmail: in.Actor,
		Action:     audit.ActionAppointmentCreated,
		Entity:     audit.EntityAppointment,
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"service_ids": in.ServiceIDs,
			"start":       ap.AppointmentDate,
		},
	})

	return ap, nil
}

func (uc *CreateAppointment) book(
	ctx context.Context,
	ap *models.Appointment,
	slot domain.Interval,
) error {

	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.repo.WithBookingLock(ctx, func(tx domain.Repository) error {
		taken, err := tx.HasTimeConflict(ctx, slot.Start, slot.End)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrSlotConflict()
		}
		return tx.CreateAppointment(ctx, ap)
	})
}
