// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// AccountType distinguishes personal accounts from business accounts.
type AccountType string

const (
	// AccountPersonal is a regular end-user account.
	AccountPersonal AccountType = "personal"
	// AccountBusiness is a business account that can author events.
	AccountBusiness AccountType = "business"
)

// User represents a locally cached user in the Gatherly application.
type User struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Email       string      `gorm:"unique;not null" json:"email"`
	AccountType AccountType `gorm:"type:varchar(20);default:'personal'" json:"account_type"`
	Avatar      string      `json:"avatar"`
	Bio         string      `json:"bio"`
	Category    string      `json:"category"`
	// Last known coordinates, absent until a location fix is stored.
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
