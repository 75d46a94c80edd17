package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	DurationMinutes int     `gorm:"not null" json:"durationMinutes"`
	Price           float64 `gorm:"type:numeric(18,2);not null" json:"price"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
