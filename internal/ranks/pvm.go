// Package ranks evaluates PvM and skilling ranks from a player's progress.
package ranks

import (
	"errors"
	"fmt"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
)

type Rank struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	ThresholdPoints *int   `json:"thresholdPoints,omitempty"`
	RequiresBase    bool   `json:"requiresBase"`
	// RequiresCapability gates the rank on the capability item regardless
	// of points.
	RequiresCapability bool `json:"requiresCapability,omitempty"`
}

func threshold(n int) *int { return &n }

// DefaultPvMRanks is ordered ascending; order is the rank total order.
func DefaultPvMRanks() []Rank {
	return []Rank{
		{ID: "bob", Label: "Bob", RequiresBase: true},
		{ID: "hellcat", Label: "Hellcat", RequiresBase: true, ThresholdPoints: threshold(250)},
		{ID: "imp", Label: "Imp", RequiresBase: true, ThresholdPoints: threshold(500)},
		{ID: "goblin", Label: "Goblin", RequiresBase: true, ThresholdPoints: threshold(1000)},
		{ID: "skulled", Label: "Skulled", RequiresBase: true, ThresholdPoints: threshold(1500)},
		{ID: "soul", Label: "Soul", RequiresBase: true, ThresholdPoints: threshold(2000)},
		{ID: "gnome_child", Label: "Gnome Child", RequiresBase: true, ThresholdPoints: threshold(2400), RequiresCapability: true},
		{ID: "wrath", Label: "Wrath", RequiresBase: true, ThresholdPoints: threshold(2800), RequiresCapability: true},
		{ID: "beast", Label: "Beast", RequiresBase: true, ThresholdPoints: threshold(3200), RequiresCapability: true},
	}
}

// Evaluation is derived from a checklist and never persisted.
type Evaluation struct {
	BaseOK              bool     `json:"baseOk"`
	BaseMissing         []string `json:"baseMissingItemIds"`
	PointsEarned        int      `json:"pointsEarned"`
	PointsMax           int      `json:"pointsMax"`
	CapabilitySatisfied bool     `json:"capabilityFlagSatisfied"`
	Qualified           Rank     `json:"qualifiedRank"`
	QualifiedIndex      int      `json:"qualifiedIndex"`
	Next                *Rank    `json:"nextRank"`
}

// NextThreshold is the point threshold of the next rank, if it has one.
func (e Evaluation) NextThreshold() (int, bool) {
	if e.Next == nil || e.Next.ThresholdPoints == nil {
		return 0, false
	}
	return *e.Next.ThresholdPoints, true
}

// Progress is the fraction of the next threshold earned, clamped to [0,1].
// At the top rank it is 1.
func (e Evaluation) Progress() float64 {
	next, ok := e.NextThreshold()
	if !ok {
		return 1
	}
	if next <= 0 {
		return 1
	}
	p := float64(e.PointsEarned) / float64(next)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// BlockedByCapability is true when the next rank needs the capability item
// and the player does not have it.
func (e Evaluation) BlockedByCapability() bool {
	return e.Next != nil && e.Next.RequiresCapability && !e.CapabilitySatisfied
}

type Evaluator struct {
	catalog      *catalog.Catalog
	ranks        []Rank
	capabilityID string
}

// NewEvaluator binds a rank table to a catalog. The capability item is
// referenced by catalog id.
func NewEvaluator(cat *catalog.Catalog, ranks []Rank, capabilityID string) (*Evaluator, error) {
	if cat == nil {
		return nil, errors.New("ranks: catalog is required")
	}
	if len(ranks) == 0 {
		return nil, errors.New("ranks: rank table is empty")
	}
	if !cat.Has(capabilityID) {
		return nil, fmt.Errorf("ranks: capability item %q is not in the catalog", capabilityID)
	}
	seen := map[string]bool{}
	for _, r := range ranks {
		if seen[r.ID] {
			return nil, fmt.Errorf("ranks: duplicate rank id %q", r.ID)
		}
		seen[r.ID] = true
	}
	return &Evaluator{
		catalog:      cat,
		ranks:        append([]Rank(nil), ranks...),
		capabilityID: capabilityID,
	}, nil
}

// NewDefaultEvaluator wires the clan tables.
func NewDefaultEvaluator(cat *catalog.Catalog) (*Evaluator, error) {
	return NewEvaluator(cat, DefaultPvMRanks(), catalog.CapabilityItemID)
}

func (e *Evaluator) Ranks() []Rank {
	return append([]Rank(nil), e.ranks...)
}

func (e *Evaluator) CapabilityItemID() string {
	return e.capabilityID
}

// BaseRequirement reports whether every requirement holds and which item
// ids are missing. An unmet AnyOf lists all of its candidates.
func (e *Evaluator) BaseRequirement(checked catalog.Checklist) (bool, []string) {
	missing := []string{}
	for _, req := range e.catalog.Requirements() {
		switch req.Kind {
		case catalog.AllOf:
			for _, id := range req.ItemIDs {
				if !checked.Checked(id) {
					missing = append(missing, id)
				}
			}
		case catalog.AnyOf:
			ok := false
			for _, id := range req.ItemIDs {
				if checked.Checked(id) {
					ok = true
					break
				}
			}
			if !ok {
				missing = append(missing, req.ItemIDs...)
			}
		}
	}
	return len(missing) == 0, missing
}

func (e *Evaluator) Points(checked catalog.Checklist) (earned, total int) {
	for _, it := range e.catalog.Items() {
		if it.Points == nil {
			continue
		}
		total += *it.Points
		if checked.Checked(it.ID) {
			earned += *it.Points
		}
	}
	return earned, total
}

// Evaluate never fails: with no rank achieved the first rank is returned.
// Every rank is checked independently; a failing gate does not stop the scan.
func (e *Evaluator) Evaluate(checked catalog.Checklist) Evaluation {
	baseOK, missing := e.BaseRequirement(checked)
	earned, pointsMax := e.Points(checked)
	capability := checked.Checked(e.capabilityID)

	qualified := 0
	for i, r := range e.ranks {
		if r.RequiresBase && !baseOK {
			continue
		}
		if r.ThresholdPoints != nil && earned < *r.ThresholdPoints {
			continue
		}
		if r.RequiresCapability && !capability {
			continue
		}
		qualified = i
	}

	var next *Rank
	if qualified < len(e.ranks)-1 {
		n := e.ranks[qualified+1]
		next = &n
	}

	return Evaluation{
		BaseOK:              baseOK,
		BaseMissing:         missing,
		PointsEarned:        earned,
		PointsMax:           pointsMax,
		CapabilitySatisfied: capability,
		Qualified:           e.ranks[qualified],
		QualifiedIndex:      qualified,
		Next:                next,
	}
}
