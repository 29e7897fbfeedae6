package store

import (
	"context"
	"errors"
	"strings"

	"gatherly/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for locally cached users.
// Lookups return (nil, nil) on a miss rather than an error; screens treat
// an absent user as ordinary state, not a failure.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, fields map[string]any) error
}

type userRepository struct {
	conn *conn
}

// NewUserRepository returns a UserRepository over the given store.
func NewUserRepository(s *Store) UserRepository {
	return &userRepository{conn: s.conn}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	db, err := r.conn.use(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return models.NewConflictError("A user with this email already exists", err)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := r.conn.use(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update applies only the fields present in the map. An empty map is a
// silent no-op.
func (r *userRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db, err := r.conn.use(ctx)
	if err != nil {
		return err
	}
	return db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// gorm surfaces ErrDuplicatedKey for drivers with translated errors; the
// sqlite driver may instead bubble the raw constraint message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
