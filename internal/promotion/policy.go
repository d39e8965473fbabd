// Package promotion builds the staff review summary for a rank-up request
// and owns the request decision state machine.
package promotion

import (
	"sort"

	"github.com/reborn-osrs/reborn-ranks/internal/ranks"
)

// Milestone ranks need both a unique pet count and a collection log count.
type Milestone struct {
	Label         string `json:"label"`
	Pets          int    `json:"pets"`
	CollectionLog int    `json:"collectionLog"`
}

// Policy holds the fixed promotion targets for every non-item rank.
type Policy struct {
	SkillingTiers map[string]int `json:"skillingTiers"`

	ZamorakianLabel     string `json:"zamorakianLabel"`
	ZamorakianRaids     int    `json:"zamorakianRaids"`
	ZamorakianBossKills int    `json:"zamorakianBossKills"`

	Milestones []Milestone `json:"milestones"`
}

func DefaultPolicy() Policy {
	return Policy{
		SkillingTiers:       ranks.DefaultSkillingRanks().Tiers(),
		ZamorakianLabel:     "Zamorakian",
		ZamorakianRaids:     3000,
		ZamorakianBossKills: 35000,
		Milestones: []Milestone{
			{Label: "Proselyte", Pets: 2, CollectionLog: 700},
			{Label: "Major", Pets: 10, CollectionLog: 850},
			{Label: "Master", Pets: 15, CollectionLog: 1000},
			{Label: "Colonel", Pets: 25, CollectionLog: 1250},
		},
	}
}

func (p Policy) milestone(label string) (Milestone, bool) {
	for _, m := range p.Milestones {
		if m.Label == label {
			return m, true
		}
	}
	return Milestone{}, false
}

// IsItemRank reports whether label is judged by item points rather than by
// a skilling, Zamorakian or milestone target.
func (p Policy) IsItemRank(label string) bool {
	if label == p.ZamorakianLabel {
		return false
	}
	if _, ok := p.SkillingTiers[label]; ok {
		return false
	}
	_, ok := p.milestone(label)
	return !ok
}

// Labels lists every non-item rank label, sorted.
func (p Policy) Labels() []string {
	out := []string{p.ZamorakianLabel}
	for l := range p.SkillingTiers {
		out = append(out, l)
	}
	for _, m := range p.Milestones {
		out = append(out, m.Label)
	}
	sort.Strings(out)
	return out
}
