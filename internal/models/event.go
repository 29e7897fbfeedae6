// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MediaType is the kind of a single event media item.
type MediaType string

const (
	// MediaImage is a still image.
	MediaImage MediaType = "image"
	// MediaVideo is a short video (rendered as a reel).
	MediaVideo MediaType = "video"
)

// EventMedia is one item of an event's ordered media list. The list is
// stored serialized as JSON text on the events row, mirroring how the
// server embeds it.
type EventMedia struct {
	Type      MediaType `json:"type"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// Event represents a business-authored post in the Gatherly application.
type Event struct {
	ID             string       `gorm:"primaryKey" json:"id"`
	Title          string       `gorm:"not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	BusinessID     string       `gorm:"not null;index" json:"business_id"`
	BusinessName   string       `json:"business_name"`
	BusinessAvatar string       `json:"business_avatar"`
	Media          []EventMedia `gorm:"serializer:json" json:"media"`
	Date           time.Time    `gorm:"index" json:"date"`
	Address        string       `json:"address"`
	Latitude       float64      `json:"latitude"`
	Longitude      float64      `json:"longitude"`
	Category       string       `gorm:"index" json:"category"`
	CreatedAt      time.Time    `json:"created_at"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// Liked indicates whether the requesting user liked this event (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Saved indicates whether the requesting user saved this event (computed)
	Saved bool `gorm:"->" json:"saved"`
	// DistanceKm is filled in Go from the caller's coordinates; zero when
	// no coordinates were supplied.
	DistanceKm float64 `gorm:"-" json:"distance_km"`
	// Comments are attached on detail reads only.
	Comments []*Comment `gorm:"-" json:"comments,omitempty"`
}

// EventLike marks that a user liked an event.
// The combination of EventID and UserID must be unique.
type EventLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"not null;uniqueIndex:idx_event_like" json:"event_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_event_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (EventLike) TableName() string {
	return "event_likes"
}

// EventSave marks that a user saved an event.
// The combination of EventID and UserID must be unique.
type EventSave struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"not null;uniqueIndex:idx_event_save" json:"event_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_event_save" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (EventSave) TableName() string {
	return "event_saves"
}
