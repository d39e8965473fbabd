package ranks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
)

func newEvaluator(t *testing.T) (*Evaluator, *catalog.Catalog) {
	t.Helper()
	cat := catalog.MustDefault()
	ev, err := NewDefaultEvaluator(cat)
	require.NoError(t, err)
	return ev, cat
}

func baseKit(cat *catalog.Catalog) catalog.Checklist {
	cl := catalog.Checklist{}
	for _, req := range cat.Requirements() {
		if req.Kind == catalog.AllOf {
			for _, id := range req.ItemIDs {
				cl[id] = true
			}
		} else {
			cl[req.ItemIDs[0]] = true
		}
	}
	return cl
}

// withPoints checks point items in catalog order until at least target is reached.
func withPoints(cat *catalog.Catalog, cl catalog.Checklist, target int, skip ...string) catalog.Checklist {
	skipped := map[string]bool{}
	for _, id := range skip {
		skipped[id] = true
	}
	sum := 0
	for _, it := range cat.Items() {
		if sum >= target {
			break
		}
		if it.Points == nil || skipped[it.ID] {
			continue
		}
		cl[it.ID] = true
		sum += *it.Points
	}
	return cl
}

func TestEvaluate_EmptyChecklist(t *testing.T) {
	ev, cat := newEvaluator(t)

	res := ev.Evaluate(catalog.Checklist{})

	assert.False(t, res.BaseOK)
	assert.Equal(t, 0, res.PointsEarned)
	assert.Equal(t, cat.PointsMax(), res.PointsMax)
	assert.Equal(t, "bob", res.Qualified.ID)
	assert.Equal(t, 0, res.QualifiedIndex)
	require.NotNil(t, res.Next)
	assert.Equal(t, "hellcat", res.Next.ID)
	// 18 all-of items plus both any-of candidates.
	assert.Len(t, res.BaseMissing, 20)
}

func TestEvaluate_BaseOnly(t *testing.T) {
	ev, cat := newEvaluator(t)

	res := ev.Evaluate(baseKit(cat))

	assert.True(t, res.BaseOK)
	assert.Empty(t, res.BaseMissing)
	assert.Equal(t, 0, res.PointsEarned)
	assert.Equal(t, "bob", res.Qualified.ID)
	next, ok := res.NextThreshold()
	require.True(t, ok)
	assert.Equal(t, 250, next)
	assert.Equal(t, 0.0, res.Progress())
}

func TestEvaluate_AnyOfAcceptsEitherItem(t *testing.T) {
	ev, cat := newEvaluator(t)

	cl := baseKit(cat)
	delete(cl, "dragon_warhammer")
	cl["bandos_godsword"] = true

	ok, missing := ev.BaseRequirement(cl)
	assert.True(t, ok)
	assert.Empty(t, missing)

	delete(cl, "bandos_godsword")
	ok, missing = ev.BaseRequirement(cl)
	assert.False(t, ok)
	assert.Equal(t, []string{"dragon_warhammer", "bandos_godsword"}, missing)
}

func TestEvaluate_PointsWithoutBaseStayBob(t *testing.T) {
	ev, cat := newEvaluator(t)

	cl := withPoints(cat, catalog.Checklist{}, 1000)
	res := ev.Evaluate(cl)

	assert.False(t, res.BaseOK)
	assert.GreaterOrEqual(t, res.PointsEarned, 1000)
	assert.Equal(t, "bob", res.Qualified.ID)
}

func TestEvaluate_PointThresholds(t *testing.T) {
	ev, cat := newEvaluator(t)

	cl := withPoints(cat, baseKit(cat), 500, catalog.CapabilityItemID)
	res := ev.Evaluate(cl)

	assert.GreaterOrEqual(t, res.PointsEarned, 500)
	assert.Less(t, res.PointsEarned, 1000)
	assert.Equal(t, "imp", res.Qualified.ID)
	require.NotNil(t, res.Next)
	assert.Equal(t, "goblin", res.Next.ID)
}

func TestEvaluate_CapabilityGate(t *testing.T) {
	ev, cat := newEvaluator(t)

	cl := withPoints(cat, baseKit(cat), 2400, catalog.CapabilityItemID)

	t.Run("WithoutCapability", func(t *testing.T) {
		res := ev.Evaluate(cl)
		assert.False(t, res.CapabilitySatisfied)
		assert.Equal(t, "soul", res.Qualified.ID)
		assert.True(t, res.BlockedByCapability())
	})

	t.Run("WithCapability", func(t *testing.T) {
		with := cl.Clone()
		with[catalog.CapabilityItemID] = true
		res := ev.Evaluate(with)
		assert.True(t, res.CapabilitySatisfied)
		assert.Equal(t, "gnome_child", res.Qualified.ID)
		assert.False(t, res.BlockedByCapability())
	})
}

func TestEvaluate_TopRankHasNoNext(t *testing.T) {
	ev, cat := newEvaluator(t)

	cl := baseKit(cat)
	for _, it := range cat.Items() {
		cl[it.ID] = true
	}
	res := ev.Evaluate(cl)

	assert.Equal(t, "beast", res.Qualified.ID)
	assert.Nil(t, res.Next)
	assert.Equal(t, 1.0, res.Progress())
	assert.Equal(t, res.PointsMax, res.PointsEarned)
}

func TestEvaluate_ScanDoesNotStopAtFailingGate(t *testing.T) {
	cat := catalog.MustDefault()
	table := []Rank{
		{ID: "low", Label: "Low"},
		{ID: "gated", Label: "Gated", ThresholdPoints: threshold(10), RequiresCapability: true},
		{ID: "high", Label: "High", ThresholdPoints: threshold(20)},
	}
	ev, err := NewEvaluator(cat, table, catalog.CapabilityItemID)
	require.NoError(t, err)

	res := ev.Evaluate(catalog.Checklist{"twisted_bow": true})

	assert.Equal(t, "high", res.Qualified.ID)
	assert.Nil(t, res.Next)
}

func TestEvaluate_MonotonicAndDeterministic(t *testing.T) {
	ev, cat := newEvaluator(t)
	items := cat.Items()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		cl := catalog.Checklist{}
		prev := ev.Evaluate(cl)
		for _, i := range rng.Perm(len(items)) {
			cl[items[i].ID] = true
			cur := ev.Evaluate(cl)

			require.GreaterOrEqual(t, cur.PointsEarned, prev.PointsEarned)
			require.GreaterOrEqual(t, cur.QualifiedIndex, prev.QualifiedIndex)
			require.Equal(t, cur, ev.Evaluate(cl))
			prev = cur
		}
	}
}

func TestNewEvaluator_Validation(t *testing.T) {
	cat := catalog.MustDefault()

	_, err := NewEvaluator(cat, nil, catalog.CapabilityItemID)
	assert.Error(t, err)

	_, err = NewEvaluator(cat, DefaultPvMRanks(), "golden_gnome")
	assert.Error(t, err)

	_, err = NewEvaluator(cat, []Rank{{ID: "a"}, {ID: "a"}}, catalog.CapabilityItemID)
	assert.Error(t, err)
}

func TestSkillingEvaluate(t *testing.T) {
	table := DefaultSkillingRanks()

	cases := []struct {
		total     int
		qualified string
		next      string
	}{
		{0, "unranked", "emerald"},
		{999, "unranked", "emerald"},
		{1000, "emerald", "onyx"},
		{1499, "emerald", "onyx"},
		{1500, "onyx", "zenyte"},
		{2000, "zenyte", "maxed"},
		{2376, "maxed", ""},
		{-5, "unranked", "emerald"},
	}
	for _, tc := range cases {
		res := table.Evaluate(tc.total)
		assert.Equal(t, tc.qualified, res.Qualified.ID, "total %d", tc.total)
		if tc.next == "" {
			assert.Nil(t, res.Next)
		} else {
			require.NotNil(t, res.Next)
			assert.Equal(t, tc.next, res.Next.ID)
		}
	}
}

func TestSkillingTiers(t *testing.T) {
	tiers := DefaultSkillingRanks().Tiers()
	assert.Equal(t, map[string]int{"Emerald": 1000, "Onyx": 1500, "Zenyte": 2000, "Maxed": 2376}, tiers)
}
