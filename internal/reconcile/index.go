// Package reconcile maps free-form item names reported by an external
// tracker onto catalog item ids.
package reconcile

import (
	"regexp"
	"strings"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
)

var (
	// Charge and wear states do not change which item a player owns.
	variantSuffix = regexp.MustCompile(`\((uncharged|charged|broken|damaged|active|inactive|f)\)`)
	possessives   = strings.NewReplacer("'", "", "’", "")
	nameSeparator = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize lower-cases a name, drops variant-state suffixes and possessive
// marks, and collapses everything else to single spaces.
func Normalize(name string) string {
	s := strings.ToLower(name)
	s = variantSuffix.ReplaceAllString(s, " ")
	s = possessives.Replace(s)
	s = nameSeparator.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

type MatchKind uint8

const (
	NoMatch MatchKind = iota
	Matched
	Ambiguous
)

func (k MatchKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no_match"
	}
}

// Match is the outcome of a lookup. Ambiguous carries the competing ids but
// must be treated as no match by callers.
type Match struct {
	Kind       MatchKind
	ID         string
	Candidates []string
}

// Resolved collapses Ambiguous into a miss.
func (m Match) Resolved() (string, bool) {
	if m.Kind != Matched {
		return "", false
	}
	return m.ID, true
}

type entry struct {
	id   string
	name string
	norm string
}

// Index is a read-only normalized-name view of a catalog.
type Index struct {
	byID      map[string]bool
	byNorm    map[string]string
	collision map[string][]string
	entries   []entry
}

func NewIndex(cat *catalog.Catalog) *Index {
	ix := &Index{
		byID:      map[string]bool{},
		byNorm:    map[string]string{},
		collision: map[string][]string{},
	}
	for _, it := range cat.Items() {
		n := Normalize(it.Name)
		ix.byID[it.ID] = true
		ix.entries = append(ix.entries, entry{id: it.ID, name: it.Name, norm: n})

		if prev, ok := ix.byNorm[n]; ok && prev != it.ID {
			ix.collision[n] = appendUnique(ix.collision[n], prev, it.ID)
			continue
		}
		ix.byNorm[n] = it.ID
	}
	for n := range ix.collision {
		delete(ix.byNorm, n)
	}
	return ix
}

// Exact matches a catalog id verbatim or a normalized display name.
func (ix *Index) Exact(name string) Match {
	if ix.byID[name] {
		return Match{Kind: Matched, ID: name}
	}
	n := Normalize(name)
	if n == "" {
		return Match{Kind: NoMatch}
	}
	if ids, ok := ix.collision[n]; ok {
		return Match{Kind: Ambiguous, Candidates: append([]string(nil), ids...)}
	}
	if id, ok := ix.byNorm[n]; ok {
		return Match{Kind: Matched, ID: id}
	}
	return Match{Kind: NoMatch}
}

// Fuzzy accepts a catalog entry whose normalized name contains every token
// of one of the candidate names, and only when exactly one entry qualifies.
func (ix *Index) Fuzzy(names ...string) Match {
	var tokenSets [][]string
	for _, name := range names {
		if tokens := strings.Fields(Normalize(name)); len(tokens) > 0 {
			tokenSets = append(tokenSets, tokens)
		}
	}
	if len(tokenSets) == 0 {
		return Match{Kind: NoMatch}
	}

	var ids []string
	for _, e := range ix.entries {
		for _, tokens := range tokenSets {
			if containsAll(e.norm, tokens) {
				ids = appendUnique(ids, e.id)
				break
			}
		}
	}

	switch len(ids) {
	case 0:
		return Match{Kind: NoMatch}
	case 1:
		return Match{Kind: Matched, ID: ids[0]}
	default:
		return Match{Kind: Ambiguous, Candidates: ids}
	}
}

// Resolve tries each candidate exactly, in order, then falls back to Fuzzy
// over all of them.
func (ix *Index) Resolve(names ...string) Match {
	for _, name := range names {
		if m := ix.Exact(name); m.Kind == Matched {
			return m
		}
	}
	return ix.Fuzzy(names...)
}

func containsAll(s string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}

func appendUnique(list []string, ids ...string) []string {
	for _, id := range ids {
		dup := false
		for _, have := range list {
			if have == id {
				dup = true
				break
			}
		}
		if !dup {
			list = append(list, id)
		}
	}
	return list
}
