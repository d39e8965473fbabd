package reconcile

import (
	"sort"

	"github.com/reborn-osrs/reborn-ranks/internal/catalog"
)

// Result lists matched ids in catalog order. Unmatched holds the raw names
// that neither matched an item nor took part in a rule that fired.
type Result struct {
	IDs       []string `json:"matchedIds"`
	Unmatched []string `json:"unmatched"`
}

type Engine struct {
	catalog *catalog.Catalog
	index   *Index
	rules   Rules
	aliases map[string]string
}

func NewEngine(cat *catalog.Catalog, rules Rules) *Engine {
	e := &Engine{
		catalog: cat,
		index:   NewIndex(cat),
		rules:   rules,
		aliases: map[string]string{},
	}
	for from, to := range rules.Aliases {
		e.aliases[Normalize(from)] = to
	}
	return e
}

func NewDefaultEngine(cat *catalog.Catalog) *Engine {
	return NewEngine(cat, DefaultRules())
}

func (e *Engine) Index() *Index { return e.index }

// Reconcile treats every name as seen once.
func (e *Engine) Reconcile(names []string) Result {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}
	return e.ReconcileCounts(counts)
}

// ReconcileCounts runs direct matching, part implications, composite
// upgrades and count thresholds over names with their reported counts.
// Every step only adds ids; the outcome does not depend on map order.
func (e *Engine) ReconcileCounts(counts map[string]int) Result {
	have := map[string]int{}
	raw := map[string][]string{}
	for name, n := range counts {
		if n <= 0 {
			continue
		}
		k := Normalize(name)
		if k == "" {
			continue
		}
		have[k] += n
		raw[k] = append(raw[k], name)
	}

	present := func(name string) bool { return have[Normalize(name)] > 0 }
	found := map[string]bool{}
	used := map[string]bool{}
	credit := func(targets []string) {
		if id, ok := e.index.Resolve(targets...).Resolved(); ok {
			found[id] = true
		}
	}

	// Composite parts are settled first so consumed parts are not also
	// credited directly.
	consumed := map[string]int{}
	var fired []CompositeRule
	for _, rule := range e.rules.Composites {
		var keys []string
		ok := true
		for _, part := range rule.Parts {
			k, hit := firstPresent(part, present)
			if !hit {
				ok = false
				break
			}
			keys = append(keys, k)
		}
		if !ok {
			continue
		}
		fired = append(fired, rule)
		for _, k := range keys {
			used[k] = true
		}
		for _, c := range rule.Consumes {
			consumed[Normalize(c)]++
		}
	}

	keys := make([]string, 0, len(have))
	for k := range have {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var missed []string
	for _, k := range keys {
		if have[k]-consumed[k] <= 0 {
			continue
		}
		target := k
		if canonical, ok := e.aliases[k]; ok {
			target = canonical
		}
		if id, ok := e.index.Resolve(target).Resolved(); ok {
			found[id] = true
			continue
		}
		missed = append(missed, k)
	}

	for _, rule := range e.rules.PartImplies {
		if present(rule.Part) {
			used[Normalize(rule.Part)] = true
			credit(rule.Targets)
		}
	}

	for _, rule := range fired {
		credit(rule.Targets)
	}

	for _, rule := range e.rules.Counts {
		total := 0
		for _, src := range rule.Sources {
			total += have[Normalize(src)]
		}
		if total < rule.Min {
			continue
		}
		for _, src := range rule.Sources {
			used[Normalize(src)] = true
		}
		for _, t := range rule.Targets {
			credit([]string{t})
		}
	}

	res := Result{IDs: []string{}, Unmatched: []string{}}
	for _, it := range e.catalog.Items() {
		if found[it.ID] {
			res.IDs = append(res.IDs, it.ID)
		}
	}
	for _, k := range missed {
		if !used[k] {
			res.Unmatched = append(res.Unmatched, raw[k]...)
		}
	}
	sort.Strings(res.Unmatched)
	return res
}

func firstPresent(spellings Part, present func(string) bool) (string, bool) {
	for _, s := range spellings {
		if present(s) {
			return Normalize(s), true
		}
	}
	return "", false
}
