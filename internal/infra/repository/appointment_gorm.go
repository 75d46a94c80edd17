package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// bookingLockKey is the Postgres advisory lock key serializing bookings.
const bookingLockKey int64 = 0x4d4b5550

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func orderedServices(db *gorm.DB) *gorm.DB {
	return db.Order("service_id ASC")
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) WithBookingLock(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", bookingLockKey).Error; err != nil {
				return err
			}
		}
		return fn(&AppointmentGormRepository{db: tx})
	})
}

func (r *AppointmentGormRepository) HasTimeConflict(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"status <> ? AND appointment_date < ? AND ends_at > ?",
			string(domain.StatusCancelled),
			end.UTC(),
			start.UTC(),
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// CreateAppointment inserts the appointment and its service links atomically.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		links := ap.Services

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		for i := range links {
			links[i].AppointmentID = ap.ID
		}
		if len(links) > 0 {
			if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
				return err
			}
		}

		ap.Services = links
		return nil
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services", orderedServices).
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Preload("Services", orderedServices).
		Order("appointment_date ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByEmail(
	ctx context.Context,
	email string,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Preload("Services", orderedServices).
		Where("LOWER(email) = LOWER(?)", email).
		Order("appointment_date ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListActiveAppointmentsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where(
			"status <> ? AND appointment_date < ? AND ends_at > ?",
			string(domain.StatusCancelled),
			end.UTC(),
			start.UTC(),
		).
		Order("appointment_date ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

// UpdateAppointmentStatus is a compare-and-set on the status column, so a
// decision taken on a stale read never overwrites a newer status.
func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) (bool, error) {

	now := time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"updated_at":   now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	ap.UpdatedAt = now
	return true, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
