// Package players stores clan member profiles and their item checklists.
package players

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
)

var ErrNotFound = errors.New("players: player not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]models.Player, error) {
	var out []models.Player
	if err := s.db.WithContext(ctx).Order("rsn collate nocase asc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, p *models.Player) error {
	p.ID = uuid.NewString()
	if p.Scaling == 0 {
		p.Scaling = 100
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) Get(ctx context.Context, id string) (*models.Player, error) {
	var p models.Player
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the player and every checklist entry it owns.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Player{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Delete(&models.ChecklistEntry{}, "player_id = ?", id).Error
	})
}

// Checklist loads the stored states, explicit false values included.
func (s *Store) Checklist(ctx context.Context, playerID string) (catalog.Checklist, error) {
	var entries []models.ChecklistEntry
	if err := s.db.WithContext(ctx).Where("player_id = ?", playerID).Find(&entries).Error; err != nil {
		return nil, err
	}
	out := make(catalog.Checklist, len(entries))
	for _, e := range entries {
		out[e.ItemID] = e.Checked
	}
	return out, nil
}

// Entries returns the raw rows ordered by item id.
func (s *Store) Entries(ctx context.Context, playerID string) ([]models.ChecklistEntry, error) {
	var entries []models.ChecklistEntry
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).Order("item_id").Find(&entries).Error
	return entries, err
}

func upsertEntries(tx *gorm.DB, playerID string, items map[string]bool, source string) error {
	if len(items) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]models.ChecklistEntry, 0, len(items))
	for id, checked := range items {
		rows = append(rows, models.ChecklistEntry{PlayerID: playerID, ItemID: id, Checked: checked, Source: source, UpdatedAt: now})
	}
	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"checked", "source", "updated_at"}),
	}
	// Tracker rows only fill gaps; an existing row, manual uncheck included, wins.
	if source == models.SourceTracker {
		conflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "item_id"}},
			DoNothing: true,
		}
	}
	return tx.Clauses(conflict).Create(&rows).Error
}

// SetItem stores a manual state for one item.
func (s *Store) SetItem(ctx context.Context, playerID, itemID string, checked bool) error {
	return upsertEntries(s.db.WithContext(ctx), playerID, map[string]bool{itemID: checked}, models.SourceManual)
}

// ApplySync records tracker-applied items and the stamp they came from in
// one transaction.
func (s *Store) ApplySync(ctx context.Context, playerID string, applied []string, stamp string) error {
	items := make(map[string]bool, len(applied))
	for _, id := range applied {
		items[id] = true
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertEntries(tx, playerID, items, models.SourceTracker); err != nil {
			return err
		}
		return tx.Model(&models.Player{}).Where("id = ?", playerID).Update("temple_applied_stamp", stamp).Error
	})
}
