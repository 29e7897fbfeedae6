package store

import (
	"context"
	"testing"

	"gatherly/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	s := newTestStore(t)

	first := &models.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, s.Users.Create(context.Background(), first))

	dup := &models.User{ID: uuid.NewString(), Name: "Ana Again", Email: "ana@example.com"}
	err := s.Users.Create(context.Background(), dup)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepository_GetMissReturnsNil(t *testing.T) {
	s := newTestStore(t)

	user, err := s.Users.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = s.Users.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	s := newTestStore(t)
	created := createTestUser(t, s, "Maya")

	user, err := s.Users.GetByEmail(context.Background(), created.Email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "Maya", user.Name)
}

func TestUserRepository_PartialUpdate(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "Noah")

	require.NoError(t, s.Users.Update(context.Background(), user.ID, map[string]any{
		"bio":    "event lover",
		"avatar": "https://example.com/noah.png",
	}))

	got, err := s.Users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "event lover", got.Bio)
	assert.Equal(t, "https://example.com/noah.png", got.Avatar)
	// Untouched fields survive.
	assert.Equal(t, "Noah", got.Name)
}

func TestUserRepository_EmptyUpdateIsNoop(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "Ines")

	require.NoError(t, s.Users.Update(context.Background(), user.ID, map[string]any{}))

	got, err := s.Users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ines", got.Name)
}

func TestStore_OperationsAfterClose(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "Leo")
	require.NoError(t, s.Close())

	_, err := s.Users.GetByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrStoreClosed)

	_, err = s.Events.List(context.Background(), user.ID, nil)
	assert.ErrorIs(t, err, ErrStoreClosed)

	_, err = s.Chats.ListForUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrStoreClosed)
}
