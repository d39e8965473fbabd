package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	maxWalkDepth = 12
	petsCacheKey = "temple:pets"
)

var (
	nameKeys  = []string{"name", "item_name", "itemName", "title"}
	countKeys = []string{"count", "quantity", "qty", "obtained", "owned"}
	stampKeys = []string{"last_changed", "last_updated", "updated"}
)

// CollectionLog is the flattened TempleOSRS collection log of one player.
type CollectionLog struct {
	// Items maps item name to the highest count seen for it.
	Items     map[string]int `json:"items"`
	Completed *int           `json:"completed"`
	Available *int           `json:"available"`
	// Stamp identifies the tracker-side update this log reflects.
	Stamp string `json:"stamp"`
}

// Names returns the item names in no particular order.
func (l *CollectionLog) Names() []string {
	out := make([]string, 0, len(l.Items))
	for n := range l.Items {
		out = append(out, n)
	}
	return out
}

type Temple struct {
	c     *httpClient
	cache *ttlCache
}

func NewTemple(baseURL, userAgent string, timeout time.Duration, cache *ttlCache) *Temple {
	return &Temple{c: newHTTPClient("templeosrs", baseURL, userAgent, timeout), cache: cache}
}

func (t *Temple) CollectionLog(ctx context.Context, rsn string) (*CollectionLog, error) {
	q := url.Values{}
	q.Set("player", strings.TrimSpace(rsn))
	q.Set("categories", "all")
	q.Set("includenames", "1")
	q.Set("includemissingitems", "0")
	q.Set("onlyitems", "0")
	q.Set("dateformat", "unix")

	body, err := t.c.raw(ctx, http.MethodGet, "/collection-log/player_collection_log.php", q)
	if err != nil {
		return nil, err
	}
	return ParseCollectionLog(body)
}

// PetNames returns the lower-cased pet names known to TempleOSRS.
func (t *Temple) PetNames(ctx context.Context) (map[string]bool, error) {
	if t.cache != nil {
		if v, ok := t.cache.get(petsCacheKey); ok {
			return v.(map[string]bool), nil
		}
	}

	var root any
	if err := t.c.json(ctx, http.MethodGet, "/pets/hours.php", nil, &root); err != nil {
		return nil, err
	}
	names := parsePetNames(root)
	if t.cache != nil && len(names) > 0 {
		t.cache.add(petsCacheKey, names)
	}
	return names, nil
}

func parsePetNames(root any) map[string]bool {
	names := map[string]bool{}
	data := root
	if m, ok := root.(map[string]any); ok {
		if d, ok := m["data"]; ok {
			data = d
		}
	}
	add := func(row any) {
		m, ok := row.(map[string]any)
		if !ok {
			return
		}
		if n, ok := m["pet_name"].(string); ok && strings.TrimSpace(n) != "" {
			names[strings.ToLower(strings.TrimSpace(n))] = true
		}
	}
	switch d := data.(type) {
	case []any:
		for _, row := range d {
			add(row)
		}
	case map[string]any:
		for _, row := range d {
			add(row)
		}
	}
	return names
}

// UniquePets counts distinct obtained names that are pets.
func UniquePets(items map[string]int, pets map[string]bool) int {
	seen := map[string]bool{}
	for name, n := range items {
		k := strings.ToLower(strings.TrimSpace(name))
		if n > 0 && pets[k] {
			seen[k] = true
		}
	}
	return len(seen)
}

// ParseCollectionLog walks an arbitrary collection log payload.
func ParseCollectionLog(body []byte) (*CollectionLog, error) {
	var root any
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("templeosrs decode: %w", err)
	}

	log := &CollectionLog{Items: ExtractItems(root)}
	for _, scope := range scopes(root) {
		if log.Completed == nil {
			log.Completed = firstInt(scope, "total_collections_in_response", "total_collections_found", "total_collections")
		}
		if log.Available == nil {
			log.Available = firstInt(scope, "total_collections_available")
		}
		if log.Stamp == "" {
			if s := firstInt(scope, stampKeys...); s != nil {
				log.Stamp = strconv.Itoa(*s)
			}
		}
	}
	if log.Stamp == "" {
		log.Stamp = "no-ts"
	}
	return log, nil
}

// scopes is the payload root followed by its "data" object, if any.
func scopes(root any) []map[string]any {
	m, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	out := []map[string]any{m}
	if d, ok := m["data"].(map[string]any); ok {
		out = append(out, d)
	}
	return out
}

// ExtractItems collects item rows: objects with a name key and no nested
// lists. Rows with a zero or false count are skipped; duplicates keep the
// highest count.
func ExtractItems(root any) map[string]int {
	out := map[string]int{}
	var walk func(node any, depth int)
	walk = func(node any, depth int) {
		if node == nil || depth > maxWalkDepth {
			return
		}
		switch n := node.(type) {
		case []any:
			for _, v := range n {
				walk(v, depth+1)
			}
		case map[string]any:
			if name, ok := itemName(n); ok && !hasList(n) {
				if count, ok := itemCount(n); ok && count > out[name] {
					out[name] = count
				}
			}
			for _, v := range n {
				walk(v, depth+1)
			}
		}
	}
	walk(root, 0)
	return out
}

func itemName(m map[string]any) (string, bool) {
	for _, k := range nameKeys {
		if s, ok := m[k].(string); ok {
			s = strings.TrimSpace(s)
			return s, s != ""
		}
	}
	return "", false
}

func hasList(m map[string]any) bool {
	for _, v := range m {
		if _, ok := v.([]any); ok {
			return true
		}
	}
	return false
}

// itemCount reads the first count key. A missing count means obtained once.
func itemCount(m map[string]any) (int, bool) {
	for _, k := range countKeys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch c := v.(type) {
		case bool:
			if !c {
				return 0, false
			}
			return 1, true
		case float64:
			if c <= 0 {
				return 0, false
			}
			return int(c), true
		case string:
			s := strings.TrimSpace(c)
			if s == "0" {
				return 0, false
			}
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				return n, true
			}
			return 1, true
		default:
			return 1, true
		}
	}
	return 1, true
}

func firstInt(m map[string]any, keys ...string) *int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case float64:
			n := int(v)
			return &n
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return &n
			}
		}
	}
	return nil
}
