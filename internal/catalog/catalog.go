// Package catalog holds the clan's tracked item table and the base-kit
// requirements built on top of it.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrNotFound = errors.New("catalog: item not found")

// IntegrityError reports two display names that derive the same item id.
type IntegrityError struct {
	ID     string
	First  string
	Second string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog: %q and %q both derive id %q", e.First, e.Second, e.ID)
}

// ItemDefinition is a single tracked item. A nil Points marks a required
// gate item that carries no points.
type ItemDefinition struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points *int   `json:"points"`
	Group  string `json:"group"`
	Notes  string `json:"notes,omitempty"`
}

func (d ItemDefinition) Required() bool {
	return d.Points == nil
}

type RequirementKind string

const (
	AllOf RequirementKind = "allOf"
	AnyOf RequirementKind = "anyOf"
)

type Requirement struct {
	Kind    RequirementKind `json:"type"`
	Label   string          `json:"label"`
	ItemIDs []string        `json:"itemIds"`
}

var (
	slugAnnotations = strings.NewReplacer("'", "", "’", "", "*", "", "†", "")
	slugSeparators  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives the stable item id from a display name. Ids are the join
// key for checklists, so this must never change shape.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugAnnotations.Replace(s)
	s = slugSeparators.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Points builds a point-bearing item.
func Points(name string, points int, group string, notes ...string) ItemDefinition {
	p := points
	return ItemDefinition{ID: Slugify(name), Name: name, Points: &p, Group: group, Notes: strings.Join(notes, " ")}
}

// Gate builds a required item with no points.
func Gate(name string, group string, notes ...string) ItemDefinition {
	return ItemDefinition{ID: Slugify(name), Name: name, Group: group, Notes: strings.Join(notes, " ")}
}

// Catalog is immutable once built and safe for concurrent reads.
type Catalog struct {
	items        []ItemDefinition
	byID         map[string]int
	requirements []Requirement
	pointsMax    int
}

// New validates the item table and requirements. Duplicate ids and
// requirements naming unknown items are configuration defects.
func New(items []ItemDefinition, requirements []Requirement) (*Catalog, error) {
	c := &Catalog{
		items: make([]ItemDefinition, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}

	for _, it := range items {
		if it.ID == "" {
			it.ID = Slugify(it.Name)
		}
		if it.ID == "" {
			return nil, fmt.Errorf("catalog: item %q derives an empty id", it.Name)
		}
		if idx, dup := c.byID[it.ID]; dup {
			return nil, &IntegrityError{ID: it.ID, First: c.items[idx].Name, Second: it.Name}
		}
		if it.Points != nil {
			if *it.Points < 0 {
				return nil, fmt.Errorf("catalog: item %q has negative points", it.Name)
			}
			c.pointsMax += *it.Points
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}

	for _, req := range requirements {
		if req.Kind != AllOf && req.Kind != AnyOf {
			return nil, fmt.Errorf("catalog: requirement %q has unknown type %q", req.Label, req.Kind)
		}
		for _, id := range req.ItemIDs {
			if _, ok := c.byID[id]; !ok {
				return nil, fmt.Errorf("catalog: requirement %q references unknown item %q", req.Label, id)
			}
		}
		c.requirements = append(c.requirements, Requirement{
			Kind:    req.Kind,
			Label:   req.Label,
			ItemIDs: append([]string(nil), req.ItemIDs...),
		})
	}

	return c, nil
}

// Items returns a copy of the table in definition order.
func (c *Catalog) Items() []ItemDefinition {
	return append([]ItemDefinition(nil), c.items...)
}

func (c *Catalog) Lookup(id string) (ItemDefinition, error) {
	idx, ok := c.byID[id]
	if !ok {
		return ItemDefinition{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.items[idx], nil
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Position is the definition index of id, or -1.
func (c *Catalog) Position(id string) int {
	idx, ok := c.byID[id]
	if !ok {
		return -1
	}
	return idx
}

func (c *Catalog) Requirements() []Requirement {
	out := make([]Requirement, len(c.requirements))
	for i, r := range c.requirements {
		out[i] = Requirement{Kind: r.Kind, Label: r.Label, ItemIDs: append([]string(nil), r.ItemIDs...)}
	}
	return out
}

// PointsMax is the sum of every non-null point value.
func (c *Catalog) PointsMax() int {
	return c.pointsMax
}

// Groups returns items grouped in first-seen group order.
func (c *Catalog) Groups() []Group {
	var groups []Group
	index := map[string]int{}
	for _, it := range c.items {
		g := it.Group
		if g == "" {
			g = "Other"
		}
		i, ok := index[g]
		if !ok {
			i = len(groups)
			index[g] = i
			groups = append(groups, Group{Name: g})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

type Group struct {
	Name  string           `json:"name"`
	Items []ItemDefinition `json:"items"`
}
