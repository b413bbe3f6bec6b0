package models

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// Valid reports whether the role is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer, RoleProvider:
		return true
	}
	return false
}

// Staff reports whether the role is an internal one (admin or employee).
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountPending  AccountStatus = "pending"
	AccountRejected AccountStatus = "rejected"
	AccountInactive AccountStatus = "inactive"
)

type Account struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Username     string        `json:"username" gorm:"unique"`
	Email        string        `json:"email" gorm:"unique"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"` // immutable after creation
	Status       AccountStatus `json:"status"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
