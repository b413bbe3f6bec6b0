package models

import (
	"time"

	"gorm.io/gorm"
)

// EventStatus is descriptive only. Unlike proposals and bookings there is no
// enforced transition table; events are never deleted, only re-labelled.
type EventStatus string

const (
	EventPlanning  EventStatus = "planning"
	EventConfirmed EventStatus = "confirmed"
	EventDone      EventStatus = "done"
	EventCancelled EventStatus = "cancelled"
)

type Event struct {
	gorm.Model
	CustomerProfileID uint            `json:"customer_profile_id"` // immutable after creation
	Customer          CustomerProfile `json:"customer,omitempty" gorm:"foreignKey:CustomerProfileID"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	Location          string          `json:"location"`
	Status            EventStatus     `json:"status"`
	Budget            int64           `json:"budget"` // minor currency units
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.Status == "" {
		e.Status = EventPlanning
	}
	return nil
}
