package reconcile

import "github.com/reborn-osrs/reborn-ranks/internal/catalog"

// Merge sets matched ids on a copy of state. An id the player explicitly
// unchecked stays unchecked. Applied lists ids that flipped to true.
func Merge(state catalog.Checklist, ids []string) (next catalog.Checklist, applied []string) {
	next = state.Clone()
	applied = []string{}
	for _, id := range ids {
		if next.ExplicitlyUnchecked(id) || next[id] {
			continue
		}
		next[id] = true
		applied = append(applied, id)
	}
	return next, applied
}
