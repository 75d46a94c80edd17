package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentDate time.Time `gorm:"not null;index" json:"appointmentDate"`
	EndsAt          time.Time `gorm:"not null;index" json:"endsAt"`
	DurationMinutes int       `gorm:"not null" json:"durationMinutes"`

	ClientName  string `gorm:"size:100;not null" json:"clientName"`
	PhoneNumber string `gorm:"size:30;not null" json:"phoneNumber"`
	Email       string `gorm:"size:100;not null;index" json:"email"`

	Status string `gorm:"size:20;not null;default:'Pending';index" json:"status"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"services"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentService links an appointment to a catalog service and keeps
// the service terms that applied when the booking was made.
type AppointmentService struct {
	AppointmentID uint `gorm:"primaryKey;autoIncrement:false" json:"appointmentId"`
	ServiceID     uint `gorm:"primaryKey;autoIncrement:false" json:"serviceId"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ServiceName     string  `gorm:"size:100;not null" json:"serviceName"`
	DurationMinutes int     `gorm:"not null" json:"durationMinutes"`
	Price           float64 `gorm:"type:numeric(18,2);not null" json:"price"`
}
