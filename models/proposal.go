package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "draft"
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
	ProposalExpired  ProposalStatus = "expired"
)

// Terminal reports whether no transition is defined out of the status.
func (s ProposalStatus) Terminal() bool {
	switch s {
	case ProposalAccepted, ProposalRejected, ProposalExpired:
		return true
	}
	return false
}

// LineItem is a single priced position on a proposal. Prices are minor
// currency units; totals are integer arithmetic, never floating point.
type LineItem struct {
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

// LineItems stores the ordered item list as a JSONB column.
type LineItems []LineItem

// Value implements the driver.Valuer interface
func (l LineItems) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal LineItems: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

// Total sums unitPrice × quantity over all items.
func (l LineItems) Total() int64 {
	var total int64
	for _, item := range l {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

type Proposal struct {
	gorm.Model
	EventID         uint           `json:"event_id"`
	Event           Event          `json:"event,omitempty" gorm:"foreignKey:EventID"`
	AuthorProfileID uint           `json:"author_profile_id"`
	AuthorRole      Role           `json:"author_role"` // admin or employee
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Items           LineItems      `json:"items" gorm:"type:jsonb"`
	TotalPrice      int64          `json:"total_price"` // always recomputed from Items
	Status          ProposalStatus `json:"status"`
	ValidUntil      time.Time      `json:"valid_until"`
	Feedback        string         `json:"feedback"`
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = ProposalDraft
	}
	return nil
}
