package models

import (
	"gorm.io/gorm"
)

// Each account owns exactly one profile of the matching role. The unique
// index on AccountID is what makes "exactly one" hold under concurrent
// first-resolutions.

type AdminProfile struct {
	gorm.Model
	AccountID  uint    `json:"account_id" gorm:"uniqueIndex"`
	Account    Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Department string  `json:"department"`
	Title      string  `json:"title"`
}

type EmployeeProfile struct {
	gorm.Model
	AccountID  uint    `json:"account_id" gorm:"uniqueIndex"`
	Account    Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Department string  `json:"department"`
	Title      string  `json:"title"`
}

type CustomerProfile struct {
	gorm.Model
	AccountID uint    `json:"account_id" gorm:"uniqueIndex"`
	Account   Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	Company   string  `json:"company"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Phone     string  `json:"phone"`
}

type ProviderProfile struct {
	gorm.Model
	AccountID   uint    `json:"account_id" gorm:"uniqueIndex"`
	Account     Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
	DisplayName string  `json:"display_name"`
	About       string  `json:"about"`
	IsTeam      bool    `json:"is_team"`
	Languages   string  `json:"languages"` // comma separated
	Verified    bool    `json:"verified"`
	Phone       string  `json:"phone"`
}
