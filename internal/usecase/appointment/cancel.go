package appointment

import (
	"context"

	"github.com/BruksfildServices01/makeup-studio/internal/audit"
	"github.com/BruksfildServices01/makeup-studio/internal/auth"
	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

// CancelAppointment is a status update to Cancelled, allowed to admins and
// to the client who booked. Cancelling an already cancelled appointment
// succeeds without changes.
type CancelAppointment struct {
	status *UpdateAppointmentStatus
}

func NewCancelAppointment(status *UpdateAppointmentStatus) *CancelAppointment {
	return &CancelAppointment{status: status}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	caller auth.Identity,
) (*models.Appointment, error) {

	return uc.status.transition(ctx, UpdateStatusInput{
		ID:     appointmentID,
		Status: domain.StatusCancelled,
		Actor:  caller.Email,
	}, audit.ActionAppointmentCancelled, func(ap *models.Appointment) error {
		if caller.IsAdmin() || caller.Owns(ap.Email) {
			return nil
		}
		return httperr.ErrForbidden()
	})
}
