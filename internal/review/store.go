// Package review persists rank-up review requests and applies staff
// decisions to them.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reborn-osrs/reborn-ranks/internal/models"
	"github.com/reborn-osrs/reborn-ranks/internal/notifier"
	"github.com/reborn-osrs/reborn-ranks/internal/promotion"
)

var ErrNotFound = errors.New("review: request not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create stores rr as pending with a fresh id.
func (s *Store) Create(ctx context.Context, rr *models.ReviewRequest) error {
	rr.ID = uuid.NewString()
	rr.Status = string(promotion.StatusPending)
	rr.DecidedAt = nil
	rr.DecidedByID = ""
	return s.db.WithContext(ctx).Create(rr).Error
}

func (s *Store) Get(ctx context.Context, id string) (*models.ReviewRequest, error) {
	var rr models.ReviewRequest
	err := s.db.WithContext(ctx).First(&rr, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rr, nil
}

func (s *Store) List(ctx context.Context, status string) ([]models.ReviewRequest, error) {
	q := s.db.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.ReviewRequest
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetMessage(ctx context.Context, id string, msg notifier.StaffMessage) error {
	return s.db.WithContext(ctx).Model(&models.ReviewRequest{}).Where("id = ?", id).Updates(map[string]any{
		"discord_channel_id": msg.ChannelID,
		"discord_message_id": msg.MessageID,
	}).Error
}

// Decide moves a pending request to the decision's status. The update is
// conditional on the stored status so concurrent deliveries apply once;
// the loser gets promotion.ErrAlreadyDecided and the stored request.
func (s *Store) Decide(ctx context.Context, id string, d promotion.Decision, by string, at time.Time) (*models.ReviewRequest, error) {
	if _, err := promotion.Transition(promotion.StatusPending, d); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&models.ReviewRequest{}).
		Where("id = ? AND status = ?", id, string(promotion.StatusPending)).
		Updates(map[string]any{
			"status":        string(d.Status()),
			"decided_at":    at,
			"decided_by_id": by,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("decide %s: %w", id, res.Error)
	}

	rr, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return rr, promotion.ErrAlreadyDecided
	}
	return rr, nil
}
