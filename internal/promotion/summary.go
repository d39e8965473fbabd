package promotion

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

type Outcome string

const (
	Matches Outcome = "matches"
	Verify  Outcome = "verify"
)

// Check is one qualification result. Missing means an input was absent and
// staff must verify by hand.
type Check struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Missing bool    `json:"missing,omitempty"`
	Line    string  `json:"line"`
}

// Input is everything the summary is built from. Nil numbers are unknown.
type Input struct {
	RSN           string
	RequestedRank string
	RequestedRole string
	RequesterID   string
	Notes         string

	ItemPointsEarned   *int
	ItemNextThreshold  *int
	ItemQualifiedLabel string
	ItemNextLabel      string

	TotalLevel             *int
	RaidsTotal             *int
	BossKillsTotal         *int
	PetsUnique             *int
	CollectionLogCompleted *int
}

type Summary struct {
	Checks []Check  `json:"checks"`
	Lines  []string `json:"lines"`
}

func num(n int) string { return humanize.Comma(int64(n)) }

func optNum(n *int) string {
	if n == nil {
		return "—"
	}
	return num(*n)
}

func verdict(ok bool) (Outcome, string) {
	if ok {
		return Matches, "✅ matches qualified"
	}
	return Verify, "⚠️ verify"
}

// ItemCheck compares the requested role with the PvM-qualified label. It is
// nil for non-item ranks or when no qualified label is known.
func (p Policy) ItemCheck(in Input) *Check {
	if in.ItemQualifiedLabel == "" || in.RequestedRole == "" || !p.IsItemRank(in.RequestedRole) {
		return nil
	}
	out, text := verdict(in.RequestedRole == in.ItemQualifiedLabel)
	return &Check{Name: "item", Outcome: out, Line: "• **Item request check:** " + text}
}

func (p Policy) SkillingCheck(in Input) *Check {
	req, ok := p.SkillingTiers[in.RequestedRole]
	if !ok {
		return nil
	}
	if in.TotalLevel == nil {
		return &Check{Name: "skilling", Outcome: Verify, Missing: true,
			Line: "• **Skilling check:** ⚠️ verify (missing total level)"}
	}
	out, text := verdict(*in.TotalLevel >= req)
	return &Check{Name: "skilling", Outcome: out,
		Line: fmt.Sprintf("• **Skilling check:** %s (%s / %s total level)", text, num(*in.TotalLevel), num(req))}
}

// ZamorakianCheck passes on either the raids or the bossing path.
func (p Policy) ZamorakianCheck(in Input) *Check {
	if in.RequestedRole != p.ZamorakianLabel {
		return nil
	}
	if in.RaidsTotal == nil || in.BossKillsTotal == nil {
		return &Check{Name: "zamorakian", Outcome: Verify, Missing: true,
			Line: "• **Zamorakian check:** ⚠️ verify (missing PvM totals)"}
	}
	ok := *in.RaidsTotal >= p.ZamorakianRaids || *in.BossKillsTotal >= p.ZamorakianBossKills
	out, text := verdict(ok)
	return &Check{Name: "zamorakian", Outcome: out,
		Line: fmt.Sprintf("• **Zamorakian check:** %s (Raids %s/%s • Bossing %s/%s • needs ONE)",
			text, num(*in.RaidsTotal), num(p.ZamorakianRaids), num(*in.BossKillsTotal), num(p.ZamorakianBossKills))}
}

// MilestoneCheck needs both the pet and the collection log target.
func (p Policy) MilestoneCheck(in Input) *Check {
	m, ok := p.milestone(in.RequestedRole)
	if !ok {
		return nil
	}
	if in.PetsUnique == nil || in.CollectionLogCompleted == nil {
		return &Check{Name: "milestone", Outcome: Verify, Missing: true,
			Line: fmt.Sprintf("• **%s check:** ⚠️ verify (missing pets/clog)", m.Label)}
	}
	out, text := verdict(*in.PetsUnique >= m.Pets && *in.CollectionLogCompleted >= m.CollectionLog)
	return &Check{Name: "milestone", Outcome: out,
		Line: fmt.Sprintf("• **%s check:** %s (Pets %s/%s, CLog %s/%s)",
			m.Label, text, num(*in.PetsUnique), num(m.Pets), num(*in.CollectionLogCompleted), num(m.CollectionLog))}
}

// Build assembles the staff-facing lines. Checks that do not apply to the
// requested role are omitted.
func (p Policy) Build(in Input) Summary {
	s := Summary{Checks: []Check{}}

	add := func(line string) { s.Lines = append(s.Lines, line) }

	add("📝 **Rank Up Review Request**")
	add("• **RSN:** " + in.RSN)
	add("• **Requested Role:** " + in.RequestedRole)
	add(fmt.Sprintf("• **Requester:** <@%s> (`%s`)", in.RequesterID, in.RequesterID))
	add("• **Total level:** " + optNum(in.TotalLevel))

	if in.ItemPointsEarned != nil {
		add(fmt.Sprintf("• **Item points:** %s / %s", num(*in.ItemPointsEarned), optNum(in.ItemNextThreshold)))
	} else {
		add("• **Item points:** —")
	}
	if in.ItemQualifiedLabel != "" {
		line := "• **Item qualified:** " + in.ItemQualifiedLabel
		if in.ItemNextLabel != "" {
			line += " (Next: " + in.ItemNextLabel + ")"
		}
		add(line)
	}

	item := p.ItemCheck(in)
	if item != nil {
		add(item.Line)
	}
	if in.PetsUnique != nil {
		add("• **Unique pets:** " + num(*in.PetsUnique))
	}
	if in.CollectionLogCompleted != nil {
		add("• **Collection log:** " + num(*in.CollectionLogCompleted))
	}

	for _, c := range []*Check{item, p.SkillingCheck(in), p.ZamorakianCheck(in), p.MilestoneCheck(in)} {
		if c == nil {
			continue
		}
		s.Checks = append(s.Checks, *c)
		if c.Name != "item" {
			add(c.Line)
		}
	}

	if notes := strings.TrimSpace(in.Notes); notes != "" {
		add("• **Notes:** " + notes)
	}
	return s
}

// Message renders the summary with the request id footer.
func (s Summary) Message(requestID string) string {
	lines := append(append([]string(nil), s.Lines...), fmt.Sprintf("Request ID: `%s`", requestID))
	return strings.Join(lines, "\n")
}
