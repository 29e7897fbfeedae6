// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Comment represents a comment on an event. The local cache keeps comments
// flat; reply threading only exists in the remote API's richer model.
// Author name and avatar are denormalized onto the row for list rendering.
type Comment struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	EventID    string    `gorm:"not null;index:idx_comments_event_created" json:"event_id"`
	UserID     string    `gorm:"not null" json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `gorm:"index:idx_comments_event_created" json:"created_at"`
}
