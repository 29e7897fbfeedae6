// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Chat represents a direct-message pair between two users. The pair is
// order-normalized so (a,b) and (b,a) map onto the same row: UserAID is
// always the lexicographically smaller id. The last message is denormalized
// onto the row for cheap list rendering.
type Chat struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	UserAID       string    `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user_a_id"`
	UserBID       string    `gorm:"not null;uniqueIndex:idx_chat_pair" json:"user_b_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Peer is the counterpart user relative to the requesting user (computed)
	Peer *User `gorm:"-" json:"peer,omitempty"`
	// UnreadCount is not persisted; computed at query time
	UnreadCount int `gorm:"->" json:"unread_count"`
}

// Message represents one chat message.
type Message struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ChatID    string    `gorm:"not null;index:idx_messages_chat_created" json:"chat_id"`
	SenderID  string    `gorm:"not null" json:"sender_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `gorm:"index:idx_messages_chat_created" json:"created_at"`
}

// MessageRead marks a message as read by a user. A message without a marker
// row counts as unread for that user.
// The combination of MessageID and UserID must be unique.
type MessageRead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID string    `gorm:"not null;uniqueIndex:idx_message_read" json:"message_id"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_message_read" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (MessageRead) TableName() string {
	return "message_read_status"
}
