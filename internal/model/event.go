package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventType names an audit event.
type EventType string

const (
	EventTypeAppointmentCreated     EventType = "appointment_created"
	EventTypeAppointmentStatus      EventType = "appointment_status_changed"
	EventTypeAppointmentRescheduled EventType = "appointment_rescheduled"
)

// appointment_events: audit trail of changes made by collaborators.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	EventType EventType `gorm:"type:varchar(64);not null;index"`

	CreatedAt time.Time `gorm:"not null;index"`

	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Free-form payload: previous/next status, old/new slot, actor.
	Details datatypes.JSON

	Appointment *Appointment `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Event) TableName() string { return "appointment_events" }

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
