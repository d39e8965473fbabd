package reconcile

import "github.com/sahilm/fuzzy"

// searchEntries implements fuzzy.Source over normalized catalog names.
type searchEntries []entry

func (s searchEntries) Len() int            { return len(s) }
func (s searchEntries) String(i int) string { return s[i].norm }

// Suggestion is a display-only hint for an unmatched name. It is never
// applied to a checklist.
type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Suggest returns up to limit catalog items that fuzzily resemble name,
// best first.
func (ix *Index) Suggest(name string, limit int) []Suggestion {
	q := Normalize(name)
	if q == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.FindFrom(q, searchEntries(ix.entries))
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		e := ix.entries[m.Index]
		out = append(out, Suggestion{ID: e.id, Name: e.name})
	}
	return out
}
