// Package seed provides helpers to create demo data for the local cache.
// These helpers back the first-run experience and tests only; they are not
// a sync mechanism.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"gatherly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var categories = []string{"music", "food", "sports", "art", "nightlife", "market"}

// Factory builds domain entities and persists them to the local cache.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildBusiness constructs a business user without persisting it.
func (f *Factory) BuildBusiness() *models.User {
	return &models.User{
		ID:          uuid.NewString(),
		Name:        gofakeit.Company(),
		Email:       gofakeit.Email(),
		AccountType: models.AccountBusiness,
		Avatar:      fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
		Bio:         gofakeit.Sentence(8),
		Category:    categories[f.r.Intn(len(categories))],
	}
}

// BuildPerson constructs a personal user without persisting it.
func (f *Factory) BuildPerson() *models.User {
	return &models.User{
		ID:          uuid.NewString(),
		Name:        gofakeit.Name(),
		Email:       gofakeit.Email(),
		AccountType: models.AccountPersonal,
		Avatar:      fmt.Sprintf("https://picsum.photos/seed/%s/200/200", gofakeit.UUID()),
	}
}

// BuildEvent constructs an event for the given business, with at least one
// media item and a realistic created_at spread over the last 30 days.
func (f *Factory) BuildEvent(business *models.User) *models.Event {
	media := []models.EventMedia{
		{
			Type: models.MediaImage,
			URL:  fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		},
	}
	if f.r.Intn(2) == 0 {
		media = append(media, models.EventMedia{
			Type:      models.MediaVideo,
			URL:       fmt.Sprintf("https://cdn.gatherly.dev/reels/%s.mp4", gofakeit.UUID()),
			Thumbnail: fmt.Sprintf("https://picsum.photos/seed/thumb-%s/400/700", gofakeit.UUID()),
		})
	}

	daysBack := f.r.Intn(30)
	hoursBack := f.r.Intn(24)

	return &models.Event{
		ID:             uuid.NewString(),
		Title:          gofakeit.Sentence(4),
		Description:    gofakeit.Paragraph(1, 3, 6, "\n"),
		BusinessID:     business.ID,
		BusinessName:   business.Name,
		BusinessAvatar: business.Avatar,
		Media:          media,
		Date:           time.Now().Add(time.Duration(f.r.Intn(30)+1) * 24 * time.Hour),
		Address:        gofakeit.Address().Address,
		Latitude:       gofakeit.Latitude(),
		Longitude:      gofakeit.Longitude(),
		Category:       categories[f.r.Intn(len(categories))],
		CreatedAt:      time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
	}
}

// MockData loads first-run demo content. It is idempotent: events, chats
// and messages are only inserted when the respective tables are empty, so
// running it twice leaves the row counts unchanged.
func MockData(db *gorm.DB) error {
	f := NewFactory(db)

	var eventCount int64
	if err := db.Model(&models.Event{}).Count(&eventCount).Error; err != nil {
		return err
	}
	if eventCount == 0 {
		for i := 0; i < 3; i++ {
			business := f.BuildBusiness()
			if err := db.Create(business).Error; err != nil {
				return err
			}
			for j := 0; j < 2; j++ {
				if err := db.Create(f.BuildEvent(business)).Error; err != nil {
					return err
				}
			}
		}
	}

	var chatCount int64
	if err := db.Model(&models.Chat{}).Count(&chatCount).Error; err != nil {
		return err
	}
	if chatCount == 0 {
		alice := f.BuildPerson()
		bob := f.BuildPerson()
		if err := db.Create(alice).Error; err != nil {
			return err
		}
		if err := db.Create(bob).Error; err != nil {
			return err
		}

		userA, userB := alice.ID, bob.ID
		if userB < userA {
			userA, userB = userB, userA
		}
		chat := &models.Chat{
			ID:      uuid.NewString(),
			UserAID: userA,
			UserBID: userB,
		}
		if err := db.Create(chat).Error; err != nil {
			return err
		}

		var messageCount int64
		if err := db.Model(&models.Message{}).Count(&messageCount).Error; err != nil {
			return err
		}
		if messageCount == 0 {
			senders := []string{alice.ID, bob.ID}
			var last *models.Message
			for i := 0; i < 4; i++ {
				msg := &models.Message{
					ID:        uuid.NewString(),
					ChatID:    chat.ID,
					SenderID:  senders[i%2],
					Text:      gofakeit.Sentence(6),
					CreatedAt: time.Now().Add(-time.Duration(4-i) * time.Minute),
				}
				if err := db.Create(msg).Error; err != nil {
					return err
				}
				last = msg
			}
			if err := db.Model(chat).Updates(map[string]any{
				"last_message":    last.Text,
				"last_message_at": last.CreatedAt,
			}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
