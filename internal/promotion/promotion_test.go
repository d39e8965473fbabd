package promotion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(n int) *int { return &n }

func TestZamorakianCheck(t *testing.T) {
	p := DefaultPolicy()

	t.Run("RaidsPathAlone", func(t *testing.T) {
		c := p.ZamorakianCheck(Input{RequestedRole: "Zamorakian", RaidsTotal: ptr(3000), BossKillsTotal: ptr(0)})
		require.NotNil(t, c)
		assert.Equal(t, Matches, c.Outcome)
		assert.Contains(t, c.Line, "Raids 3,000/3,000")
	})

	t.Run("BossPathAlone", func(t *testing.T) {
		c := p.ZamorakianCheck(Input{RequestedRole: "Zamorakian", RaidsTotal: ptr(10), BossKillsTotal: ptr(35000)})
		require.NotNil(t, c)
		assert.Equal(t, Matches, c.Outcome)
	})

	t.Run("Neither", func(t *testing.T) {
		c := p.ZamorakianCheck(Input{RequestedRole: "Zamorakian", RaidsTotal: ptr(2999), BossKillsTotal: ptr(34999)})
		require.NotNil(t, c)
		assert.Equal(t, Verify, c.Outcome)
		assert.False(t, c.Missing)
	})

	t.Run("MissingInput", func(t *testing.T) {
		c := p.ZamorakianCheck(Input{RequestedRole: "Zamorakian", RaidsTotal: ptr(5000)})
		require.NotNil(t, c)
		assert.Equal(t, Verify, c.Outcome)
		assert.True(t, c.Missing)
		assert.Equal(t, "• **Zamorakian check:** ⚠️ verify (missing PvM totals)", c.Line)
	})

	t.Run("NotApplicable", func(t *testing.T) {
		assert.Nil(t, p.ZamorakianCheck(Input{RequestedRole: "Imp"}))
	})
}

func TestSkillingCheck(t *testing.T) {
	p := DefaultPolicy()

	c := p.SkillingCheck(Input{RequestedRole: "Emerald", TotalLevel: ptr(999)})
	require.NotNil(t, c)
	assert.Equal(t, Verify, c.Outcome)
	assert.Equal(t, "• **Skilling check:** ⚠️ verify (999 / 1,000 total level)", c.Line)

	c = p.SkillingCheck(Input{RequestedRole: "Emerald", TotalLevel: ptr(1000)})
	require.NotNil(t, c)
	assert.Equal(t, Matches, c.Outcome)

	c = p.SkillingCheck(Input{RequestedRole: "Maxed"})
	require.NotNil(t, c)
	assert.True(t, c.Missing)

	assert.Nil(t, p.SkillingCheck(Input{RequestedRole: "Zamorakian", TotalLevel: ptr(2376)}))
}

func TestMilestoneCheck(t *testing.T) {
	p := DefaultPolicy()

	c := p.MilestoneCheck(Input{RequestedRole: "Major", PetsUnique: ptr(10), CollectionLogCompleted: ptr(850)})
	require.NotNil(t, c)
	assert.Equal(t, Matches, c.Outcome)
	assert.Equal(t, "• **Major check:** ✅ matches qualified (Pets 10/10, CLog 850/850)", c.Line)

	c = p.MilestoneCheck(Input{RequestedRole: "Major", PetsUnique: ptr(30), CollectionLogCompleted: ptr(849)})
	require.NotNil(t, c)
	assert.Equal(t, Verify, c.Outcome)

	c = p.MilestoneCheck(Input{RequestedRole: "Colonel", PetsUnique: ptr(30)})
	require.NotNil(t, c)
	assert.True(t, c.Missing)
	assert.Contains(t, c.Line, "missing pets/clog")
}

func TestItemCheck(t *testing.T) {
	p := DefaultPolicy()

	c := p.ItemCheck(Input{RequestedRole: "Goblin", ItemQualifiedLabel: "Goblin"})
	require.NotNil(t, c)
	assert.Equal(t, Matches, c.Outcome)

	c = p.ItemCheck(Input{RequestedRole: "Soul", ItemQualifiedLabel: "Goblin"})
	require.NotNil(t, c)
	assert.Equal(t, Verify, c.Outcome)

	for _, role := range []string{"Zamorakian", "Onyx", "Proselyte"} {
		assert.Nil(t, p.ItemCheck(Input{RequestedRole: role, ItemQualifiedLabel: "Goblin"}), role)
	}
	assert.Nil(t, p.ItemCheck(Input{RequestedRole: "Goblin"}))
}

func TestBuild_Message(t *testing.T) {
	p := DefaultPolicy()

	s := p.Build(Input{
		RSN:                "Iron Reborn",
		RequestedRole:      "Goblin",
		RequesterID:        "1234",
		Notes:              "  thanks  ",
		ItemPointsEarned:   ptr(1200),
		ItemNextThreshold:  ptr(1500),
		ItemQualifiedLabel: "Goblin",
		ItemNextLabel:      "Skulled",
		TotalLevel:         ptr(1875),
		PetsUnique:         ptr(3),
	})

	want := strings.Join([]string{
		"📝 **Rank Up Review Request**",
		"• **RSN:** Iron Reborn",
		"• **Requested Role:** Goblin",
		"• **Requester:** <@1234> (`1234`)",
		"• **Total level:** 1,875",
		"• **Item points:** 1,200 / 1,500",
		"• **Item qualified:** Goblin (Next: Skulled)",
		"• **Item request check:** ✅ matches qualified",
		"• **Unique pets:** 3",
		"• **Notes:** thanks",
		"Request ID: `abc`",
	}, "\n")
	assert.Equal(t, want, s.Message("abc"))
	require.Len(t, s.Checks, 1)
	assert.Equal(t, "item", s.Checks[0].Name)
}

func TestBuild_UnknownInputs(t *testing.T) {
	s := DefaultPolicy().Build(Input{RSN: "x", RequestedRole: "Zamorakian", RequesterID: "1"})

	assert.Contains(t, s.Lines, "• **Total level:** —")
	assert.Contains(t, s.Lines, "• **Item points:** —")
	require.Len(t, s.Checks, 1)
	assert.True(t, s.Checks[0].Missing)
}

func TestTransition(t *testing.T) {
	st, err := Transition(StatusPending, Approve)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, st)

	st, err = Transition(st, Deny)
	assert.True(t, errors.Is(err, ErrAlreadyDecided))
	assert.Equal(t, StatusApproved, st)

	st, err = Transition(StatusPending, Deny)
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, st)
	assert.True(t, st.Terminal())
}

func TestCustomID(t *testing.T) {
	id := CustomID(Approve, "5f0c")
	assert.Equal(t, "review:approve:5f0c", id)

	d, reqID, err := ParseCustomID(id)
	require.NoError(t, err)
	assert.Equal(t, Approve, d)
	assert.Equal(t, "5f0c", reqID)

	for _, bad := range []string{"", "review:approve", "review:maybe:1", "other:deny:1", "review:deny:"} {
		_, _, err := ParseCustomID(bad)
		assert.Error(t, err, bad)
	}
}

func TestPolicyLabels(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.IsItemRank("Beast"))
	assert.False(t, p.IsItemRank("Zenyte"))
	assert.Len(t, p.Labels(), 9)
}
