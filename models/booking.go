package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no transition is defined out of the status.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingDeclined, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	gorm.Model
	EventID           uint            `json:"event_id"`
	Event             Event           `json:"event,omitempty" gorm:"foreignKey:EventID"`
	CustomerProfileID uint            `json:"customer_profile_id"`
	Customer          CustomerProfile `json:"customer,omitempty" gorm:"foreignKey:CustomerProfileID"`
	ProviderProfileID uint            `json:"provider_profile_id"`
	Provider          ProviderProfile `json:"provider,omitempty" gorm:"foreignKey:ProviderProfileID"`
	ServiceID         uint            `json:"service_id"`
	Service           Service         `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	StartTime         time.Time       `json:"start_time"`
	EndTime           time.Time       `json:"end_time"`
	AgreedPrice       int64           `json:"agreed_price"` // minor currency units
	Status            BookingStatus   `json:"status"`
	CancelReason      string          `json:"cancel_reason"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = BookingPending
	}
	return nil
}
