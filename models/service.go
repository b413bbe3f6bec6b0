package models

import (
	"time"

	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ProviderProfileID uint            `json:"provider_profile_id"`
	Provider          ProviderProfile `json:"provider,omitempty" gorm:"foreignKey:ProviderProfileID"`
	BasePrice         int64           `json:"base_price"` // minor currency units
	Duration          time.Duration   `json:"duration"`
	Active            bool            `json:"active" gorm:"default:true"`
}
