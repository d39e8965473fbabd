package tracker

import "sort"

var raidKeys = map[string]bool{
	"chambers_of_xeric":                true,
	"chambers_of_xeric_challenge_mode": true,
	"theatre_of_blood":                 true,
	"theatre_of_blood_hard_mode":       true,
	"tombs_of_amascut":                 true,
	"tombs_of_amascut_expert":          true,
}

// Skilling bosses do not count toward the Zamorakian boss path.
var excludedBossKeys = map[string]bool{
	"wintertodt":            true,
	"zalcano":               true,
	"hespori":               true,
	"guardians_of_the_rift": true,
	"gotr":                  true,
}

type BossCount struct {
	Key string `json:"key"`
	KC  int    `json:"kc"`
}

type PvMTotals struct {
	RaidsTotal     int        `json:"raidsTotal"`
	BossKillsTotal int        `json:"bossKillsTotal"`
	HighestRaid    *BossCount `json:"highestRaid,omitempty"`
	HighestBoss    *BossCount `json:"highestBoss,omitempty"`
}

// PartitionBosses splits boss metrics into raid and boss totals, dropping
// excluded keys.
func PartitionBosses(bosses map[string]Metric) PvMTotals {
	keys := make([]string, 0, len(bosses))
	for k := range bosses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var t PvMTotals
	for _, k := range keys {
		kc := bosses[k].Count()
		switch {
		case raidKeys[k]:
			t.RaidsTotal += kc
			if kc > 0 && (t.HighestRaid == nil || kc > t.HighestRaid.KC) {
				t.HighestRaid = &BossCount{Key: k, KC: kc}
			}
		case excludedBossKeys[k]:
		default:
			t.BossKillsTotal += kc
			if kc > 0 && (t.HighestBoss == nil || kc > t.HighestBoss.KC) {
				t.HighestBoss = &BossCount{Key: k, KC: kc}
			}
		}
	}
	return t
}
