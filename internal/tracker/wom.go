package tracker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Metric is a Wise Old Man boss or activity entry. Unranked values are -1.
type Metric struct {
	Metric string   `json:"metric"`
	Kills  *float64 `json:"kills,omitempty"`
	Score  *float64 `json:"score,omitempty"`
	KC     *float64 `json:"kc,omitempty"`
}

// Count is the first of kills, score or kc, clamped at zero.
func (m Metric) Count() int {
	for _, v := range []*float64{m.Kills, m.Score, m.KC} {
		if v == nil {
			continue
		}
		if *v < 0 {
			return 0
		}
		return int(*v)
	}
	return 0
}

type SkillMetric struct {
	Metric     string `json:"metric"`
	Level      int    `json:"level"`
	Experience int64  `json:"experience"`
}

type SnapshotData struct {
	Skills     map[string]SkillMetric `json:"skills"`
	Bosses     map[string]Metric      `json:"bosses"`
	Activities map[string]Metric      `json:"activities"`
}

type Snapshot struct {
	CreatedAt time.Time    `json:"createdAt"`
	Data      SnapshotData `json:"data"`
}

type WOMPlayer struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Type           string    `json:"type"`
	Build          string    `json:"build"`
	Status         string    `json:"status,omitempty"`
	Exp            int64     `json:"exp"`
	EHP            float64   `json:"ehp"`
	EHB            float64   `json:"ehb"`
	LatestSnapshot *Snapshot `json:"latestSnapshot,omitempty"`
}

func (p *WOMPlayer) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Username
}

// TotalLevel reads the overall skill level from the latest snapshot.
func (p *WOMPlayer) TotalLevel() (int, bool) {
	if p == nil || p.LatestSnapshot == nil {
		return 0, false
	}
	overall, ok := p.LatestSnapshot.Data.Skills["overall"]
	if !ok || overall.Level <= 0 {
		return 0, false
	}
	return overall.Level, true
}

type Membership struct {
	Role   string    `json:"role"`
	Player WOMPlayer `json:"player"`
}

type Group struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Memberships []Membership `json:"memberships"`
}

type RosterEntry struct {
	PlayerID    int     `json:"playerId"`
	Username    string  `json:"username"`
	DisplayName string  `json:"displayName"`
	Role        string  `json:"role,omitempty"`
	Type        string  `json:"type,omitempty"`
	Build       string  `json:"build,omitempty"`
	Exp         int64   `json:"exp"`
	EHP         float64 `json:"ehp"`
	EHB         float64 `json:"ehb"`
}

// Roster lists members sorted case-insensitively by display name.
func (g *Group) Roster() []RosterEntry {
	out := make([]RosterEntry, 0, len(g.Memberships))
	for _, m := range g.Memberships {
		p := m.Player
		if p.Username == "" && p.DisplayName == "" {
			continue
		}
		out = append(out, RosterEntry{
			PlayerID:    p.ID,
			Username:    p.Username,
			DisplayName: p.Name(),
			Role:        m.Role,
			Type:        p.Type,
			Build:       p.Build,
			Exp:         p.Exp,
			EHP:         p.EHP,
			EHB:         p.EHB,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName) < strings.ToLower(out[j].DisplayName)
	})
	return out
}

type WOM struct {
	c     *httpClient
	cache *ttlCache
}

func NewWOM(baseURL, userAgent string, timeout time.Duration, cache *ttlCache) *WOM {
	return &WOM{c: newHTTPClient("wiseoldman", baseURL, userAgent, timeout), cache: cache}
}

func playerPath(rsn string) string {
	return "/players/" + url.PathEscape(strings.TrimSpace(rsn))
}

func (w *WOM) Player(ctx context.Context, rsn string) (*WOMPlayer, error) {
	var p WOMPlayer
	if err := w.c.json(ctx, http.MethodGet, playerPath(rsn), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update asks Wise Old Man to refresh the player from the hiscores.
func (w *WOM) Update(ctx context.Context, rsn string) (*WOMPlayer, error) {
	var p WOMPlayer
	if err := w.c.json(ctx, http.MethodPost, playerPath(rsn), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (w *WOM) Group(ctx context.Context, id int) (*Group, error) {
	key := fmt.Sprintf("group:%d", id)
	if w.cache != nil {
		if v, ok := w.cache.get(key); ok {
			return v.(*Group), nil
		}
	}
	var g Group
	if err := w.c.json(ctx, http.MethodGet, fmt.Sprintf("/groups/%d", id), nil, &g); err != nil {
		return nil, err
	}
	if w.cache != nil {
		w.cache.add(key, &g)
	}
	return &g, nil
}
