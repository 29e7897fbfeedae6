// Package store implements the local relational cache that mirrors a
// subset of server entities (users, events, likes, saves, comments, chats,
// messages) for optimistic UI and offline reads.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gatherly/internal/config"
	"gatherly/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrStoreClosed is returned by every operation invoked after Close (or
// before Open completed, when a zero Store is used by mistake).
var ErrStoreClosed = errors.New("store: not open")

// conn guards the shared gorm handle with the store lifecycle so late
// callers get ErrStoreClosed instead of a driver-level failure.
type conn struct {
	db     *gorm.DB
	closed atomic.Bool
}

func (c *conn) use(ctx context.Context) (*gorm.DB, error) {
	if c == nil || c.db == nil || c.closed.Load() {
		return nil, ErrStoreClosed
	}
	return c.db.WithContext(ctx), nil
}

// Store aggregates the repositories over one SQLite handle. It is an
// explicitly constructed component with an Open/Close lifecycle; nothing in
// this package holds package-level state.
type Store struct {
	conn   *conn
	Users  UserRepository
	Events EventRepository
	Chats  ChatRepository
}

// Open opens (creating if needed) the SQLite cache at cfg.CacheDBPath,
// enables write-ahead logging and runs migrations for the eight mirrored
// tables. Use ":memory:" as the path for an ephemeral store.
func Open(cfg *config.Config, log *slog.Logger) (*Store, error) {
	gormLogger := &slogGormLogger{
		logger: log,
		Config: logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	}

	db, err := gorm.Open(sqlite.Open(cfg.CacheDBPath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	// WAL keeps readers unblocked during writes. In-memory databases
	// report journal_mode=memory; that is fine.
	if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.EventLike{},
		&models.EventSave{},
		&models.Comment{},
		&models.Chat{},
		&models.Message{},
		&models.MessageRead{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}

	log.Info("local cache opened", slog.String("path", cfg.CacheDBPath))

	c := &conn{db: db}
	return &Store{
		conn:   c,
		Users:  &userRepository{conn: c},
		Events: &eventRepository{conn: c},
		Chats:  &chatRepository{conn: c},
	}, nil
}

// DB exposes the underlying gorm handle for seeding and tests.
func (s *Store) DB() *gorm.DB {
	return s.conn.db
}

// Close releases the SQLite handle. Operations issued afterwards return
// ErrStoreClosed.
func (s *Store) Close() error {
	if s == nil || s.conn == nil || s.conn.closed.Swap(true) {
		return nil
	}
	sqlDB, err := s.conn.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
