package players

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reborn-osrs/reborn-ranks/internal/database"
	"github.com/reborn-osrs/reborn-ranks/internal/models"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return NewStore(db)
}

func TestCreateListGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	for _, rsn := range []string{"zezima", "Alice", "bob"} {
		require.NoError(t, s.Create(ctx, &models.Player{RSN: rsn, DiscordID: "1"}))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Alice", "bob", "zezima"}, []string{list[0].RSN, list[1].RSN, list[2].RSN})
	assert.Equal(t, 100, list[0].Scaling)

	got, err := s.Get(ctx, list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.RSN)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChecklistUpserts(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	p := &models.Player{RSN: "x", DiscordID: "1"}
	require.NoError(t, s.Create(ctx, p))

	require.NoError(t, s.SetItem(ctx, p.ID, "fire_cape", true))
	require.NoError(t, s.SetItem(ctx, p.ID, "fire_cape", false))
	require.NoError(t, s.ApplySync(ctx, p.ID, []string{"dragon_warhammer", "fang"}, "2024-01-01"))

	cl, err := s.Checklist(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, cl.ExplicitlyUnchecked("fire_cape"))
	assert.True(t, cl.Checked("dragon_warhammer"))
	assert.True(t, cl.Checked("fang"))

	entries, err := s.Entries(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "dragon_warhammer", entries[0].ItemID)
	assert.Equal(t, models.SourceTracker, entries[0].Source)
	assert.Equal(t, models.SourceManual, entries[2].Source)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.TempleAppliedStamp)
}

func TestApplySyncKeepsLaterManualUncheck(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	p := &models.Player{RSN: "x", DiscordID: "1"}
	require.NoError(t, s.Create(ctx, p))

	// checklist read before the uncheck lands still lacks twisted_bow
	stale, err := s.Checklist(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stale.Checked("twisted_bow"))

	require.NoError(t, s.SetItem(ctx, p.ID, "twisted_bow", false))
	require.NoError(t, s.ApplySync(ctx, p.ID, []string{"twisted_bow", "elder_maul"}, "stamp-2"))

	cl, err := s.Checklist(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, cl.ExplicitlyUnchecked("twisted_bow"))
	assert.True(t, cl.Checked("elder_maul"))

	entries, err := s.Entries(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "twisted_bow", entries[1].ItemID)
	assert.Equal(t, models.SourceManual, entries[1].Source)
}

func TestDeleteRemovesChecklist(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	p := &models.Player{RSN: "x", DiscordID: "1"}
	require.NoError(t, s.Create(ctx, p))
	require.NoError(t, s.SetItem(ctx, p.ID, "fire_cape", true))

	require.NoError(t, s.Delete(ctx, p.ID))

	cl, err := s.Checklist(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, cl)
	assert.ErrorIs(t, s.Delete(ctx, p.ID), ErrNotFound)
}
