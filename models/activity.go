package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Payload is an opaque structured blob attached to an activity record,
// stored as JSONB.
type Payload map[string]interface{}

// Value implements the driver.Valuer interface
func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	jsonData, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (p *Payload) Scan(value interface{}) error {
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
		return fmt.Errorf("failed to unmarshal Payload: unsupported type %T", value)
	}

	return json.Unmarshal(data, p)
}

// Activity is an append-only audit record. Rows are never updated or
// deleted; there is deliberately no gorm.Model so no UpdatedAt/DeletedAt.
type Activity struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ActorAccountID uint      `json:"actor_account_id"`
	Action         string    `json:"action"`
	Description    string    `json:"description"`
	EntityType     string    `json:"entity_type"`
	EntityID       uint      `json:"entity_id"`
	Payload        Payload   `json:"payload,omitempty" gorm:"type:jsonb"`
	CreatedAt      time.Time `json:"created_at"`
}
