package models

import (
	"time"
)

type ReviewRequest struct {
	ID            string `json:"id" gorm:"primaryKey"`
	PlayerID      string `json:"playerId" gorm:"index"`
	RSN           string `json:"rsn"`
	RequestedRank string `json:"requestedRank"`
	RequestedRole string `json:"requestedRole"`
	RequesterID   string `json:"requesterDiscordId"`
	Notes         string `json:"notes,omitempty"`
	Status        string `json:"status" gorm:"index;default:pending"`

	ItemPointsEarned       *int   `json:"itemPointsEarned"`
	ItemNextThreshold      *int   `json:"itemNextThreshold"`
	ItemQualifiedLabel     string `json:"itemQualifiedRankLabel,omitempty"`
	ItemNextLabel          string `json:"itemNextRankLabel,omitempty"`
	TotalLevel             *int   `json:"totalLevel"`
	RaidsTotal             *int   `json:"raidsTotal"`
	BossKillsTotal         *int   `json:"bossKillsTotal"`
	PetsUnique             *int   `json:"petsUnique"`
	CollectionLogCompleted *int   `json:"collectionLogCompleted"`

	DiscordChannelID string `json:"discordChannelId,omitempty"`
	DiscordMessageID string `json:"discordMessageId,omitempty"`

	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	DecidedByID string     `json:"decidedByDiscordId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
