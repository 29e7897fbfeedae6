package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gatherly/internal/config"
	"gatherly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a per-test shared-cache in-memory database. The shared
// cache keeps all pooled connections on the same database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{
		CacheDBPath: fmt.Sprintf("file:%s?mode=memory&cache=shared",
			strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, name string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: fmt.Sprintf("%s-%s@example.com", strings.ToLower(name), uuid.NewString()[:8]),
	}
	require.NoError(t, s.Users.Create(context.Background(), user))
	return user
}

func createTestEvent(t *testing.T, s *Store, business *models.User, createdAt time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:        "Test Event",
		Description:  "An event for testing",
		BusinessID:   business.ID,
		BusinessName: business.Name,
		Media: []models.EventMedia{
			{Type: models.MediaImage, URL: "https://example.com/a.jpg"},
		},
		Date:      time.Now().Add(24 * time.Hour),
		Address:   "1 Test Street",
		Latitude:  10,
		Longitude: 20,
		Category:  "music",
		CreatedAt: createdAt,
	}
	require.NoError(t, s.Events.Create(context.Background(), event))
	return event
}
