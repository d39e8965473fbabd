package models

import (
	"gorm.io/gorm"
)

// User is a Discord account that logged in through OAuth.
type User struct {
	gorm.Model
	DiscordID string `gorm:"uniqueIndex"`
	Username  string
	Email     string
	Avatar    string
	InGuild   bool
}
