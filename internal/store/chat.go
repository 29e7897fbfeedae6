package store

import (
	"context"
	"strings"
	"time"

	"gatherly/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines persistence operations for direct-message chats,
// their messages and per-user read state.
type ChatRepository interface {
	GetOrCreate(ctx context.Context, a, b string) (*models.Chat, error)
	SendMessage(ctx context.Context, chatID, senderID, text string) (*models.Message, error)
	Messages(ctx context.Context, chatID string) ([]*models.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Chat, error)
	MarkRead(ctx context.Context, chatID, userID string) error
}

type chatRepository struct {
	conn *conn
}

// NewChatRepository returns a ChatRepository over the given store.
func NewChatRepository(s *Store) ChatRepository {
	return &chatRepository{conn: s.conn}
}

// NormalizePair orders a chat pair lexicographically so the pair key is
// canonical regardless of who initiated the chat.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// GetOrCreate returns the chat for the unordered pair (a, b), creating it
// when absent. The insert is guarded by ON CONFLICT DO NOTHING and followed
// by a re-read, so concurrent first-contact from both sides converges on a
// single row.
func (r *chatRepository) GetOrCreate(ctx context.Context, a, b string) (*models.Chat, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	userA, userB := NormalizePair(a, b)

	candidate := &models.Chat{
		ID:      uuid.NewString(),
		UserAID: userA,
		UserBID: userB,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(candidate).Error; err != nil {
		return nil, err
	}

	var chat models.Chat
	if err := db.First(&chat, "user_a_id = ? AND user_b_id = ?", userA, userB).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// SendMessage inserts the message and refreshes the parent chat's
// denormalized last-message snapshot in one transaction. Sending to an
// unknown chat yields a NotFound error.
func (r *chatRepository) SendMessage(ctx context.Context, chatID, senderID, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("message text is required")
	}
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	message := &models.Message{
		ID:       uuid.NewString(),
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Chat{}).
			Where("id = ?", chatID).
			Updates(map[string]any{
				"last_message":    text,
				"last_message_at": time.Now(),
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("chat", chatID)
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// Messages returns a chat's messages in chronological order.
func (r *chatRepository) Messages(ctx context.Context, chatID string) ([]*models.Message, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var messages []*models.Message
	err = db.Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// ListForUser returns the user's chats ordered by last activity, each
// annotated with the counterpart user and the count of foreign messages
// lacking a read marker for this user.
func (r *chatRepository) ListForUser(ctx context.Context, userID string) ([]*models.Chat, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var chats []*models.Chat
	if err := db.Model(&models.Chat{}).
		Select("chats.*, "+
			"(SELECT COUNT(*) FROM messages m WHERE m.chat_id = chats.id AND m.sender_id <> ? "+
			"AND NOT EXISTS (SELECT 1 FROM message_read_status mr WHERE mr.message_id = m.id AND mr.user_id = ?)) as unread_count",
			userID, userID).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&chats).Error; err != nil {
		return nil, err
	}

	if len(chats) == 0 {
		return chats, nil
	}

	peerIDs := make([]string, 0, len(chats))
	for _, c := range chats {
		peerIDs = append(peerIDs, peerOf(c, userID))
	}
	var peers []models.User
	if err := db.Where("id IN ?", peerIDs).Find(&peers).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(peers))
	for i := range peers {
		byID[peers[i].ID] = &peers[i]
	}
	for _, c := range chats {
		c.Peer = byID[peerOf(c, userID)]
	}
	return chats, nil
}

// MarkRead inserts one read marker per unread foreign message in the chat.
// INSERT OR IGNORE makes repeated calls idempotent against the
// (message, user) uniqueness constraint.
func (r *chatRepository) MarkRead(ctx context.Context, chatID, userID string) error {
	db, err := r.conn.use(ctx)
	if err != nil {
		return err
	}
	return db.Exec(
		`INSERT OR IGNORE INTO message_read_status (message_id, user_id, created_at)
		 SELECT m.id, ?, CURRENT_TIMESTAMP
		 FROM messages m
		 WHERE m.chat_id = ? AND m.sender_id <> ?`,
		userID, chatID, userID,
	).Error
}

func peerOf(c *models.Chat, userID string) string {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}
