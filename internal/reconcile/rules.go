package reconcile

// PartRule credits a finished item when the tracker reports one of its
// components.
type PartRule struct {
	Part    string
	Targets []string
}

// Part is one required component; any of its spellings counts.
type Part []string

// CompositeRule credits a finished item only when every part is present.
// Consumes lists parts that the upgrade uses up; those are not also credited
// as items in their own right.
type CompositeRule struct {
	Parts    []Part
	Targets  []string
	Consumes []string
}

// CountRule credits each target once the summed count of the source
// spellings reaches Min. Sources are credited through this rule only.
type CountRule struct {
	Sources []string
	Min     int
	Targets []string
}

type Rules struct {
	// Aliases maps tracker spellings to a catalog display name.
	Aliases     map[string]string
	PartImplies []PartRule
	Composites  []CompositeRule
	Counts      []CountRule
}

func one(names ...string) Part { return Part(names) }

func composite(targets []string, parts ...Part) CompositeRule {
	return CompositeRule{Parts: parts, Targets: targets}
}

// DefaultRules are the TempleOSRS collection-log rules for the clan catalog.
func DefaultRules() Rules {
	trident := one("Trident of the seas", "Trident of the seas (uncharged)", "Trident of the seas (charged)", "Trident of the seas (full)")

	webweaver := composite([]string{"Webweaver bow"}, one("Craw's bow (u)"), one("Fangs of venenatis"))
	webweaver.Consumes = []string{"Craw's bow (u)"}
	accursed := composite([]string{"Accursed sceptre"}, one("Thammaron's sceptre (u)"), one("Skull of vet'ion"))
	accursed.Consumes = []string{"Thammaron's sceptre (u)"}
	ursine := composite([]string{"Ursine chainmace"}, one("Viggora's chainmace (u)"), one("Claws of callisto"))
	ursine.Consumes = []string{"Viggora's chainmace (u)"}

	return Rules{
		Aliases: map[string]string{
			"Craw's bow (u)":          "Craw's bow",
			"Thammaron's sceptre (u)": "Thammaron's sceptre",
			"Viggora's chainmace (u)": "Viggora's chainmace",
			"Basilisk jaw":            "Neitiznot faceguard",
			"Serpentine visage":       "Serpentine helm",
			"Toxic blowpipe (empty)":  "Toxic blowpipe",
		},
		PartImplies: []PartRule{
			{Part: "Bandos hilt", Targets: []string{"Bandos godsword"}},
			{Part: "Saradomin hilt", Targets: []string{"Saradomin godsword"}},
			{Part: "Zamorak hilt", Targets: []string{"Zamorak godsword"}},
			{Part: "Armadyl hilt", Targets: []string{"Armadyl godsword"}},
			{Part: "Harmonised orb", Targets: []string{"Harmonised nightmare staff", "Harmonised staff"}},
			{Part: "Eldritch orb", Targets: []string{"Eldritch nightmare staff", "Eldritch staff"}},
			{Part: "Volatile orb", Targets: []string{"Volatile nightmare staff", "Volatile staff"}},
			{Part: "Avernic defender hilt", Targets: []string{"Avernic defender"}},
			{Part: "Hydra leather", Targets: []string{"Ferocious gloves"}},
			{Part: "Tanzanite fang", Targets: []string{"Toxic blowpipe"}},
			{Part: "Ancient icon", Targets: []string{"Ancient sceptre"}},
			{Part: "Serpentine visage", Targets: []string{"Serpentine helm"}},
		},
		Composites: []CompositeRule{
			composite([]string{"Zaryte crossbow"}, one("Nihil horn"), one("Armadyl crossbow")),
			composite([]string{"Kodai wand"}, one("Kodai insignia"), one("Master wand")),
			composite([]string{"Trident of the swamp"}, one("Magic fang"), trident),
			composite([]string{"Confliction gauntlets"}, one("Mokhaiotl cloth"), one("Tormented bracelet")),
			composite([]string{"Dragon hunter lance"}, one("Zamorakian hasta"), one("Hydra's claw")),
			composite([]string{"Abyssal bludgeon"}, one("Bludgeon spine"), one("Bludgeon claw"), one("Bludgeon axon")),
			composite([]string{"Voidwaker"}, one("Voidwaker hilt"), one("Voidwaker blade"), one("Voidwaker gem")),
			composite([]string{"Primordial boots"}, one("Dragon boots"), one("Primordial crystal")),
			composite([]string{"Pegasian boots"}, one("Ranger boots"), one("Pegasian crystal")),
			composite([]string{"Eternal boots"}, one("Infinity boots"), one("Eternal crystal")),
			composite([]string{"Amulet of rancour"}, one("Araxyte fang"), one("Amulet of torture")),
			webweaver,
			accursed,
			ursine,
			composite([]string{"Soulreaper axe"}, one("Executioner's axe head"), one("Leviathan's lure"), one("Siren's staff"), one("Eye of the duke")),
			composite([]string{"Noxious halberd"}, one("Noxious point"), one("Noxious blade"), one("Noxious pommel")),
			composite([]string{"Magus ring"}, one("Magus vestige"), one("Chromium ingot"), one("Seers ring")),
			composite([]string{"Venator ring"}, one("Venator vestige"), one("Chromium ingot"), one("Archers ring")),
			composite([]string{"Ultor ring"}, one("Ultor vestige"), one("Chromium ingot"), one("Berserker ring")),
			composite([]string{"Bellator ring"}, one("Bellator vestige"), one("Chromium ingot"), one("Warrior ring")),
		},
		Counts: []CountRule{
			{Sources: []string{"Tormented synapse", "Tormented synapses"}, Min: 3, Targets: []string{"Emberlight", "Purging staff", "Scorching bow"}},
			{Sources: []string{"Venator shard", "Venator shards"}, Min: 5, Targets: []string{"Venator bow"}},
			{Sources: []string{"Zenyte shard", "Zenyte shards"}, Min: 4, Targets: []string{"Ring of suffering", "Amulet of torture", "Necklace of anguish", "Tormented bracelet"}},
		},
	}
}
