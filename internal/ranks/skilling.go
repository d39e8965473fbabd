package ranks

type SkillingRank struct {
	ID                 string `json:"id"`
	Label              string `json:"label"`
	TotalLevelRequired int    `json:"totalLevelRequired"`
}

// SkillingTable is ordered ascending and starts at a zero requirement.
type SkillingTable []SkillingRank

func DefaultSkillingRanks() SkillingTable {
	return SkillingTable{
		{ID: "unranked", Label: "Unranked", TotalLevelRequired: 0},
		{ID: "emerald", Label: "Emerald", TotalLevelRequired: 1000},
		{ID: "onyx", Label: "Onyx", TotalLevelRequired: 1500},
		{ID: "zenyte", Label: "Zenyte", TotalLevelRequired: 2000},
		{ID: "maxed", Label: "Maxed", TotalLevelRequired: 2376},
	}
}

type SkillingResult struct {
	Qualified SkillingRank  `json:"qualified"`
	Next      *SkillingRank `json:"next"`
}

func (t SkillingTable) Evaluate(totalLevel int) SkillingResult {
	if len(t) == 0 {
		return SkillingResult{}
	}
	qualified := 0
	for i, r := range t {
		if totalLevel >= r.TotalLevelRequired {
			qualified = i
		}
	}
	res := SkillingResult{Qualified: t[qualified]}
	if qualified < len(t)-1 {
		n := t[qualified+1]
		res.Next = &n
	}
	return res
}

// Tiers returns the ranks that have a non-zero requirement, keyed by label.
func (t SkillingTable) Tiers() map[string]int {
	out := map[string]int{}
	for _, r := range t {
		if r.TotalLevelRequired > 0 {
			out[r.Label] = r.TotalLevelRequired
		}
	}
	return out
}
