package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reborn-osrs/reborn-ranks/internal/models"
)

func TestOpenMigrates(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)

	for _, m := range []any{&models.User{}, &models.Player{}, &models.ChecklistEntry{}, &models.ReviewRequest{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}

	require.NoError(t, db.Create(&models.ChecklistEntry{PlayerID: "p", ItemID: "twisted_bow", Checked: true}).Error)
	err = db.Create(&models.ChecklistEntry{PlayerID: "p", ItemID: "twisted_bow"}).Error
	assert.Error(t, err, "player/item pair is unique")
}
