package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-food-backend/internal/model"
)

// ErrNotFound is returned when a single record lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	// Insert creates r. ID and CreatedAt are always assigned here and
	// written back into r.
	Insert(ctx context.Context, r *model.Review) error
	// SelectAll returns every review, most recent first.
	SelectAll(ctx context.Context) ([]model.Review, error)
	Review(ctx context.Context, id string) (model.Review, error)
	Ping(ctx context.Context) error

	PutSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	Subscription(ctx context.Context, endpoint string) (model.PushSubscription, error)
	// SubscriptionsForHostel returns subscriptions for hostel plus those
	// that follow every hostel.
	SubscriptionsForHostel(ctx context.Context, hostel string) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Insert(ctx context.Context, r *model.Review) error {
	r.ID = ""
	r.CreatedAt = time.Time{}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to insert review for hostel %q: %w", r.HostelName, err)
	}
	return nil
}

func (s *gormStore) SelectAll(ctx context.Context) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to select reviews: %w", err)
	}
	return reviews, nil
}

func (s *gormStore) Review(ctx context.Context, id string) (model.Review, error) {
	var r model.Review
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Review{}, ErrNotFound
		}
		return model.Review{}, fmt.Errorf("failed to load review %s: %w", id, err)
	}
	return r, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) PutSubscription(ctx context.Context, sub *model.PushSubscription) error {
	sub.HostelName = strings.TrimSpace(sub.HostelName)
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "hostel_name"}),
	}).Create(sub).Error
	if err != nil {
		return fmt.Errorf("failed to upsert subscription: %w", err)
	}
	return nil
}

func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}

func (s *gormStore) Subscription(ctx context.Context, endpoint string) (model.PushSubscription, error) {
	var sub model.PushSubscription
	if err := s.db.WithContext(ctx).First(&sub, "endpoint = ?", endpoint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.PushSubscription{}, ErrNotFound
		}
		return model.PushSubscription{}, err
	}
	return sub, nil
}

func (s *gormStore) SubscriptionsForHostel(ctx context.Context, hostel string) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	err := s.db.WithContext(ctx).
		Where("hostel_name = ? OR LOWER(hostel_name) = ?", "", strings.ToLower(strings.TrimSpace(hostel))).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find subscriptions for hostel %q: %w", hostel, err)
	}
	return subs, nil
}
