package store

import (
	"context"
	"errors"
	"strings"

	"gatherly/internal/geo"
	"gatherly/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository defines persistence operations for locally cached events
// and their per-user derived state (like count, liked/saved flags,
// distance, comments).
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context, userID string, at *geo.Point) ([]*models.Event, error)
	GetByID(ctx context.Context, eventID, userID string) (*models.Event, error)
	ToggleLike(ctx context.Context, eventID, userID string) (bool, error)
	ToggleSave(ctx context.Context, eventID, userID string) (bool, error)
	AddComment(ctx context.Context, eventID, userID, userName, userAvatar, text string) (*models.Comment, error)
	Comments(ctx context.Context, eventID string) ([]*models.Comment, error)
}

type eventRepository struct {
	conn *conn
}

// NewEventRepository returns an EventRepository over the given store.
func NewEventRepository(s *Store) EventRepository {
	return &eventRepository{conn: s.conn}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	db, err := r.conn.use(ctx)
	if err != nil {
		return err
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return db.Create(event).Error
}

// applyEventDetails adds subqueries to fetch the like count and the
// requesting user's liked/saved flags in a single query.
func (r *eventRepository) applyEventDetails(db *gorm.DB, userID string) *gorm.DB {
	selectQuery := "events.*, " +
		"(SELECT COUNT(*) FROM event_likes WHERE event_likes.event_id = events.id) as likes_count"

	if userID != "" {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM event_likes WHERE event_likes.event_id = events.id AND event_likes.user_id = ?) as liked"+
			", EXISTS(SELECT 1 FROM event_saves WHERE event_saves.event_id = events.id AND event_saves.user_id = ?) as saved",
			userID, userID)
	}

	return db.Select(selectQuery + ", 0 as liked, 0 as saved")
}

// List returns all cached events newest-first, annotated for the requesting
// user. Distance is computed only when the caller supplies coordinates;
// otherwise it stays zero.
func (r *eventRepository) List(ctx context.Context, userID string, at *geo.Point) ([]*models.Event, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var events []*models.Event
	if err := r.applyEventDetails(db, userID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	if at != nil {
		for _, e := range events {
			e.DistanceKm = geo.Distance(*at, geo.Point{Lat: e.Latitude, Lon: e.Longitude})
		}
	}
	return events, nil
}

// GetByID returns the annotated event with its comment list eagerly
// attached, or (nil, nil) when the event is not cached.
func (r *eventRepository) GetByID(ctx context.Context, eventID, userID string) (*models.Event, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var event models.Event
	if err := r.applyEventDetails(db, userID).
		First(&event, "events.id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	comments, err := r.Comments(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.Comments = comments
	return &event, nil
}

// ToggleLike flips the (event, user) like membership and returns the
// resulting state. The read and the write run in one transaction so two
// racing toggles cannot double-insert against the uniqueness constraint.
func (r *eventRepository) ToggleLike(ctx context.Context, eventID, userID string) (bool, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return false, err
	}
	var liked bool
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.EventLike{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			liked = false
			return tx.Where("event_id = ? AND user_id = ?", eventID, userID).
				Delete(&models.EventLike{}).Error
		}
		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.EventLike{EventID: eventID, UserID: userID}).Error
	})
	return liked, err
}

// ToggleSave flips the (event, user) save membership and returns the
// resulting state.
func (r *eventRepository) ToggleSave(ctx context.Context, eventID, userID string) (bool, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return false, err
	}
	var saved bool
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.EventSave{}).
			Where("event_id = ? AND user_id = ?", eventID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			saved = false
			return tx.Where("event_id = ? AND user_id = ?", eventID, userID).
				Delete(&models.EventSave{}).Error
		}
		saved = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.EventSave{EventID: eventID, UserID: userID}).Error
	})
	return saved, err
}

// AddComment inserts a flat comment row with a short random id, matching
// the ids the mobile client generates.
func (r *eventRepository) AddComment(ctx context.Context, eventID, userID, userName, userAvatar, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("comment text is required")
	}
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var exists int64
	if err := db.Model(&models.Event{}).Where("id = ?", eventID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, models.NewNotFoundError("event", eventID)
	}
	comment := &models.Comment{
		ID:         shortID(),
		EventID:    eventID,
		UserID:     userID,
		UserName:   userName,
		UserAvatar: userAvatar,
		Text:       text,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Comments returns an event's comments in chronological order.
func (r *eventRepository) Comments(ctx context.Context, eventID string) ([]*models.Comment, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var comments []*models.Comment
	err = db.Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// shortID yields an 8-character comment id.
func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
