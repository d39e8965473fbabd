package database

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/reborn-osrs/reborn-ranks/internal/config"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
)

// Open connects to the sqlite database at path and migrates the schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// every connection to :memory: is a separate database
	if strings.Contains(path, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Player{},
		&models.ChecklistEntry{},
		&models.ReviewRequest{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

func Connect(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	return db
}
