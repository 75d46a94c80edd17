package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
	"github.com/BruksfildServices01/makeup-studio/internal/testutil"
)

func TestDeleteService_ReferencedRowIsRestricted(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewServiceGormRepository(gdb)
	ctx := context.Background()

	s := testutil.SeedService(t, gdb, "Bridal Makeup", 120, 3500)

	start := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	ap := models.Appointment{
		AppointmentDate: start,
		EndsAt:          start.Add(2 * time.Hour),
		DurationMinutes: 120,
		ClientName:      "Ana",
		PhoneNumber:     "070123456",
		Email:           "ana@example.com",
		Status:          "Pending",
		Services: []models.AppointmentService{{
			ServiceID:       s.ID,
			ServiceName:     s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
		}},
	}
	if err := gdb.Create(&ap).Error; err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	err := repo.DeleteService(ctx, s.ID)
	if err == nil {
		t.Fatalf("expected the booked service to be protected")
	}
	if !httperr.IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
	if _, err := repo.GetService(ctx, s.ID); err != nil {
		t.Fatalf("service must survive: %v", err)
	}
}

func TestCreateAppointment_UnknownServiceIsRejected(t *testing.T) {
	gdb := testutil.NewDB(t)

	start := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	ap := models.Appointment{
		AppointmentDate: start,
		EndsAt:          start.Add(time.Hour),
		DurationMinutes: 60,
		ClientName:      "Ana",
		PhoneNumber:     "070123456",
		Email:           "ana@example.com",
		Status:          "Pending",
		Services: []models.AppointmentService{{
			ServiceID:       404,
			ServiceName:     "Gone",
			DurationMinutes: 60,
			Price:           1000,
		}},
	}
	err := NewAppointmentGormRepository(gdb).CreateAppointment(context.Background(), &ap)
	if !httperr.IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}

	var n int64
	gdb.Model(&models.Appointment{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected the booking to be rolled back, found %d rows", n)
	}
	if _, err := NewServiceGormRepository(gdb).GetService(context.Background(), 404); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected no service 404, got %v", err)
	}
}
