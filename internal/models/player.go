package models

import (
	"time"
)

type Player struct {
	ID        string `json:"id" gorm:"primaryKey"`
	RSN       string `json:"rsn" gorm:"index"`
	DiscordID string `json:"discordId"`
	JoinDate  string `json:"joinDate"`
	Scaling   int    `json:"scaling" gorm:"default:100"`

	// TempleAppliedStamp is the tracker update time of the last applied sync.
	TempleAppliedStamp string `json:"templeAppliedStamp,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	SourceManual  = "manual"
	SourceTracker = "tracker"
)

// ChecklistEntry stores one item state. A false Checked is a manual uncheck.
type ChecklistEntry struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	PlayerID  string    `json:"playerId" gorm:"uniqueIndex:idx_player_item"`
	ItemID    string    `json:"itemId" gorm:"uniqueIndex:idx_player_item"`
	Checked   bool      `json:"checked"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updatedAt"`
}
