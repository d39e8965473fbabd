package reconcile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
)

func defaultEngine() *Engine {
	return NewDefaultEngine(catalog.MustDefault())
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Craw's bow (u)":                  "craws bow u",
		"Trident of the seas (uncharged)": "trident of the seas",
		"Masori Mask (f)":                 "masori mask",
		"Torva platebody (damaged)":       "torva platebody",
		"  Tumeken’s   Shadow ":           "tumekens shadow",
		"Salve (ei)":                      "salve ei",
		"Skull of vet'ion":                "skull of vetion",
		"":                                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}

func TestReconcile_UpgradeConsumesBasePart(t *testing.T) {
	res := defaultEngine().Reconcile([]string{"Craw's bow (u)", "Fangs of venenatis"})

	assert.Equal(t, []string{"webweaver_bow"}, res.IDs)
	assert.Empty(t, res.Unmatched)
}

func TestReconcile_AliasWithoutUpgradePart(t *testing.T) {
	res := defaultEngine().Reconcile([]string{"Craw's bow (u)"})

	assert.Equal(t, []string{"craws_bow"}, res.IDs)
}

func TestReconcile_DirectAndVariants(t *testing.T) {
	res := defaultEngine().Reconcile([]string{
		"Twisted bow",
		"trident of the seas (uncharged)",
		"Masori body",
		"Basilisk jaw",
		"Toxic blowpipe (empty)",
	})

	assert.ElementsMatch(t, []string{
		"twisted_bow", "trident_of_the_seas", "masori_body_f", "neitiznot_faceguard", "toxic_blowpipe",
	}, res.IDs)
	assert.Empty(t, res.Unmatched)
}

func TestReconcile_PartImplies(t *testing.T) {
	res := defaultEngine().Reconcile([]string{"Bandos hilt", "Hydra leather"})

	assert.Equal(t, []string{"bandos_godsword", "ferocious_gloves"}, res.IDs)
	assert.Empty(t, res.Unmatched)
}

func TestReconcile_CompositeNeedsEveryPart(t *testing.T) {
	eng := defaultEngine()

	res := eng.Reconcile([]string{"Nihil horn"})
	assert.Empty(t, res.IDs)
	assert.Equal(t, []string{"Nihil horn"}, res.Unmatched)

	res = eng.Reconcile([]string{"Nihil horn", "Armadyl crossbow"})
	assert.Equal(t, []string{"armadyl_crossbow", "zaryte_crossbow"}, res.IDs)
	assert.Empty(t, res.Unmatched)

	res = eng.Reconcile([]string{"Magic fang", "Trident of the seas (charged)"})
	assert.Contains(t, res.IDs, "trident_of_the_swamp")
}

func TestReconcileCounts_Thresholds(t *testing.T) {
	eng := defaultEngine()

	t.Run("BelowThreshold", func(t *testing.T) {
		res := eng.ReconcileCounts(map[string]int{"Zenyte shard": 3})
		assert.Empty(t, res.IDs)
		assert.Equal(t, []string{"Zenyte shard"}, res.Unmatched)
	})

	t.Run("AtThreshold", func(t *testing.T) {
		res := eng.ReconcileCounts(map[string]int{"Zenyte shard": 4})
		assert.Equal(t, []string{"ring_of_suffering", "amulet_of_torture", "necklace_of_anguish", "tormented_bracelet"}, res.IDs)
		assert.Empty(t, res.Unmatched)
	})

	t.Run("SpellingsAreSummed", func(t *testing.T) {
		res := eng.ReconcileCounts(map[string]int{"Venator shard": 2, "Venator shards": 3})
		assert.Equal(t, []string{"venator_bow"}, res.IDs)
	})

	t.Run("SingleCatalogItemMatchesDirectly", func(t *testing.T) {
		res := eng.ReconcileCounts(map[string]int{"Burning claws": 1})
		assert.Equal(t, []string{"burning_claws"}, res.IDs)
		assert.Empty(t, res.Unmatched)

		res = eng.Reconcile([]string{"Burning claws", "Twisted bow"})
		assert.ElementsMatch(t, []string{"burning_claws", "twisted_bow"}, res.IDs)
		assert.Empty(t, res.Unmatched)
	})

	t.Run("NonPositiveCountsIgnored", func(t *testing.T) {
		res := eng.ReconcileCounts(map[string]int{"Twisted bow": 0, "Elder maul": -1})
		assert.Empty(t, res.IDs)
		assert.Empty(t, res.Unmatched)
	})
}

func TestIndex_AmbiguityIsNeverAMatch(t *testing.T) {
	ix := defaultEngine().Index()

	m := ix.Resolve("Twisted")
	assert.Equal(t, Ambiguous, m.Kind)
	assert.ElementsMatch(t, []string{"twisted_bow", "twisted_buckler"}, m.Candidates)
	_, ok := m.Resolved()
	assert.False(t, ok)

	m = ix.Resolve("Scythe")
	assert.Equal(t, Matched, m.Kind)
	assert.Equal(t, "scythe_of_vitur", m.ID)

	res := defaultEngine().Reconcile([]string{"Twisted"})
	assert.Empty(t, res.IDs)
	assert.Equal(t, []string{"Twisted"}, res.Unmatched)
}

func TestIndex_NormalizedCollision(t *testing.T) {
	cat, err := catalog.New([]catalog.ItemDefinition{
		catalog.Points("Masori Mask (f)", 10, "ToA"),
		catalog.Points("Masori Mask", 5, "ToA"),
		catalog.Points("Lightbearer", 5, "ToA"),
	}, nil)
	require.NoError(t, err)
	ix := NewIndex(cat)

	m := ix.Exact("masori mask")
	assert.Equal(t, Ambiguous, m.Kind)
	assert.Equal(t, []string{"masori_mask_f", "masori_mask"}, m.Candidates)

	// ids still resolve verbatim
	m = ix.Exact("masori_mask_f")
	assert.Equal(t, Matched, m.Kind)

	res := NewEngine(cat, Rules{}).Reconcile([]string{"Masori mask", "Lightbearer"})
	assert.Equal(t, []string{"lightbearer"}, res.IDs)
	assert.Equal(t, []string{"Masori mask"}, res.Unmatched)
}

func TestReconcile_Deterministic(t *testing.T) {
	eng := defaultEngine()
	names := []string{
		"Craw's bow (u)", "Fangs of venenatis", "Bandos hilt", "Nihil horn", "Armadyl crossbow",
		"Zenyte shard", "Zenyte shard", "Zenyte shard", "Zenyte shard", "Twisted", "Pet chaos elemental",
		"Dragon warhammer", "Elder maul",
	}
	want := eng.Reconcile(names)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		shuffled := append([]string(nil), names...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		require.Equal(t, want, eng.Reconcile(shuffled))
	}
	assert.Contains(t, want.IDs, "ring_of_suffering")
	assert.Equal(t, []string{"Pet chaos elemental", "Twisted"}, want.Unmatched)
}

func TestMerge(t *testing.T) {
	state := catalog.Checklist{"twisted_bow": false, "elder_maul": true}

	next, applied := Merge(state, []string{"twisted_bow", "elder_maul", "kodai_wand"})

	assert.Equal(t, []string{"kodai_wand"}, applied)
	assert.False(t, next["twisted_bow"])
	assert.True(t, next.ExplicitlyUnchecked("twisted_bow"))
	assert.True(t, next["kodai_wand"])
	// input is untouched
	assert.Equal(t, catalog.Checklist{"twisted_bow": false, "elder_maul": true}, state)
}

func TestSuggest(t *testing.T) {
	ix := defaultEngine().Index()

	got := ix.Suggest("twisted bw", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "twisted_bow", got[0].ID)

	assert.Nil(t, ix.Suggest("", 3))
	assert.Len(t, ix.Suggest("a", 2), 2)
}
