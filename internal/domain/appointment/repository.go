package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

type Repository interface {
	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// HasTimeConflict reports whether any active appointment overlaps
	// [start, end).
	HasTimeConflict(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) (bool, error)

	// WithBookingLock runs fn inside a transaction that holds the booking
	// lock. fn must use the repository it receives.
	WithBookingLock(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	ListAppointmentsByEmail(
		ctx context.Context,
		email string,
	) ([]models.Appointment, error)

	// ListActiveAppointmentsBetween returns active appointments overlapping
	// [start, end).
	ListActiveAppointmentsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------

	// UpdateAppointmentStatus writes ap's status and lifecycle timestamps
	// only if the stored status is still from. It reports whether the row
	// was updated.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) (bool, error)
}

// Catalog is the read side of the service catalog the scheduler depends on.
type Catalog interface {
	// GetServicesByIDs returns the services that exist among ids.
	GetServicesByIDs(ctx context.Context, ids []uint) ([]models.Service, error)
}
