package dto

import (
	"time"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/models"
)

type AppointmentServiceDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

type AppointmentDTO struct {
	ID              uint      `json:"id"`
	AppointmentDate time.Time `json:"appointmentDate"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`

	ClientName  string `json:"clientName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`

	// Status is the numeric code (0 Pending, 1 Confirmed, 2 Cancelled,
	// 3 Completed) existing clients switch on; StatusName spells it out.
	Status     int    `json:"status"`
	StatusName string `json:"statusName"`

	Services   []AppointmentServiceDTO `json:"services"`
	TotalPrice float64                 `json:"totalPrice"`

	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewAppointmentDTO resolves the booked services from the terms recorded at
// booking time.
func NewAppointmentDTO(ap models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:              ap.ID,
		AppointmentDate: ap.AppointmentDate,
		EndsAt:          ap.EndsAt,
		DurationMinutes: ap.DurationMinutes,
		ClientName:      ap.ClientName,
		PhoneNumber:     ap.PhoneNumber,
		Email:           ap.Email,
		Status:          domain.Status(ap.Status).Code(),
		StatusName:      ap.Status,
		Services:        make([]AppointmentServiceDTO, 0, len(ap.Services)),
		CancelledAt:     ap.CancelledAt,
		CompletedAt:     ap.CompletedAt,
		CreatedAt:       ap.CreatedAt,
	}

	for _, link := range ap.Services {
		out.Services = append(out.Services, AppointmentServiceDTO{
			ID:              link.ServiceID,
			Name:            link.ServiceName,
			DurationMinutes: link.DurationMinutes,
			Price:           link.Price,
		})
		out.TotalPrice += link.Price
	}

	return out
}

func NewAppointmentDTOs(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, NewAppointmentDTO(ap))
	}
	return out
}
