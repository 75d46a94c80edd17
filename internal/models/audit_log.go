package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ActorEmail string `gorm:"size:100;index" json:"actorEmail"`
	Action     string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entityId"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"createdAt"`
}
