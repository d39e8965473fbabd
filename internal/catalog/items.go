package catalog

const (
	groupRequired   = "Required Items"
	groupGWD        = "God Wars Dungeon"
	groupYama       = "Yama"
	groupDoom       = "Doom of Mokhaiotl"
	groupZulrah     = "Zulrah"
	groupCoX        = "Chambers of Xeric"
	groupToB        = "Theatre of Blood"
	groupToA        = "Tombs of Amascut"
	groupGauntlet   = "Gauntlet"
	groupNightmare  = "The Nightmare"
	groupCorp       = "Corporeal Beast"
	groupMisc       = "Misc"
	groupWilderness = "Wilderness Drops"
	groupDT2        = "Desert Treasure Drops"
)

// CapabilityItemID is the item whose possession unlocks the top PvM ranks.
var CapabilityItemID = Slugify("Infernal Cape")

// DefaultItems is the clan's item sheet.
func DefaultItems() []ItemDefinition {
	return []ItemDefinition{
		Gate("Elite Void Top", groupRequired),
		Gate("Elite Void Robe", groupRequired),
		Gate("Void Knight Gloves", groupRequired),
		Gate("Void Melee Helm", groupRequired, "***"),
		Gate("Void Mage Helm", groupRequired, "***"),
		Gate("Void Ranger Helm", groupRequired),
		Gate("Abyssal Tentacle", groupRequired),
		Gate("Barrows Gloves", groupRequired),
		Gate("Fighter Torso", groupRequired),
		Gate("Dragon Defender", groupRequired),
		Gate("Salve (ei)", groupRequired),
		Gate("Fire cape", groupRequired),
		Gate("Warped sceptre", groupRequired),
		Gate("Dragon Sword", groupRequired),
		Gate("Ava's Assembler", groupRequired),
		Gate("Rune Crossbow", groupRequired),
		Gate("Helm of Neitiznot", groupRequired),
		Gate("Berserker Ring (i)", groupRequired),
		// Either of these satisfies the special-attack weapon requirement.
		Gate("Dragon Warhammer", groupRequired),
		Gate("Bandos Godsword", groupRequired),

		Points("Armadyl Godsword", 16, groupGWD),
		Points("Armadyl Helmet", 12, groupGWD),
		Points("Armadyl Chestplate", 12, groupGWD),
		Points("Armadyl Chainskirt", 12, groupGWD),
		Points("Saradomin Godsword", 15, groupGWD),
		Points("Armadyl Crossbow", 15, groupGWD),
		Points("Bandos Chestplate", 13, groupGWD),
		Points("Bandos Tassets", 13, groupGWD),
		Points("Bandos Boots", 13, groupGWD, "*"),
		Points("Zamorak Godsword", 17, groupGWD),
		Points("Staff of the Dead", 17, groupGWD, "*"),
		Points("Zamorakian Spear", 5, groupGWD),
		Points("Ancient Godsword", 72, groupGWD),
		Points("Zaryte Crossbow", 65, groupGWD),
		Points("Torva Full helm", 65, groupGWD),
		Points("Torva Platebody", 65, groupGWD),
		Points("Torva Platelegs", 65, groupGWD),
		Points("Zaryte Vambraces", 43, groupGWD),

		Points("Soulflame horn", 15, groupYama),
		Points("Oathplate helm", 30, groupYama, "†"),
		Points("Oathplate chest", 30, groupYama, "†"),
		Points("Oathplate legs", 30, groupYama, "†"),

		Points("Avernic treads", 37, groupDoom),
		Points("Eye of ayak", 34, groupDoom),
		Points("Confliction gauntlets", 23, groupDoom),

		Points("Trident of the Swamp", 11, groupZulrah),
		Points("Serpentine Helm", 11, groupZulrah),
		Points("Toxic Blowpipe", 11, groupZulrah),

		Points("Twisted Bow", 100, groupCoX),
		Points("Kodai Wand", 100, groupCoX),
		Points("Elder Maul", 100, groupCoX),
		Points("Ancestral Hat", 65, groupCoX),
		Points("Ancestral Robe Top", 65, groupCoX),
		Points("Ancestral Robe Bottom", 65, groupCoX),
		Points("Dragon Claws", 65, groupCoX),
		Points("Dinh's Bulwark", 55, groupCoX),
		Points("Dragon Hunter Crossbow", 50, groupCoX),
		Points("Twisted Buckler", 50, groupCoX),
		Points("Dexterous Prayer Scroll", 10, groupCoX),
		Points("Arcane Prayer Scroll", 10, groupCoX),

		Points("Scythe of Vitur", 89, groupToB),
		Points("Ghrazi Rapier", 44, groupToB),
		Points("Sanguinesti Staff", 44, groupToB),
		Points("Justiciar Faceguard", 35, groupToB),
		Points("Justiciar Chestguard", 35, groupToB),
		Points("Justiciar Legguards", 35, groupToB),
		Points("Avernic Defender", 12, groupToB),

		Points("Tumeken's Shadow", 70, groupToA),
		Points("Masori Mask (f)", 34, groupToA),
		Points("Masori Body (f)", 34, groupToA),
		Points("Masori Chaps (f)", 34, groupToA),
		Points("Elidinis' Ward", 19, groupToA, "**"),
		Points("Osmumten's Fang", 8, groupToA),
		Points("Lightbearer", 8, groupToA),

		Points("Bow of Faerdhinen", 56, groupGauntlet),
		Points("Blade of Saeldor", 48, groupGauntlet),
		Points("Crystal Helm", 7, groupGauntlet),
		Points("Crystal Body", 21, groupGauntlet),
		Points("Crystal Legs", 14, groupGauntlet),

		Points("Eldritch nightmare staff", 111, groupNightmare),
		Points("Harmonised nightmare staff", 130, groupNightmare),
		Points("Volatile nightmare staff", 111, groupNightmare),
		Points("Inquisitor's Mace", 87, groupNightmare),
		Points("Inquisitor's great helm", 43, groupNightmare),
		Points("Inquisitor's Hauberk", 43, groupNightmare),
		Points("Inquisitor's Plateskirt", 43, groupNightmare),
		Points("Nightmare Staff", 25, groupNightmare),

		Points("Elysian Spirit Shield", 199, groupCorp),
		Points("Arcane Spirit Shield", 69, groupCorp, "**"),
		Points("Spectral Spirit Shield", 69, groupCorp),

		Points("Dragonfire Shield", 43, groupMisc),
		Points("Ancient Wyvern Shield", 43, groupMisc),
		Points("Dragonfire Ward", 43, groupMisc),
		Points("Imbued Heart", 65, groupMisc),
		Points("Saturated Heart", 8, groupMisc),
		Points("Infernal Cape", 25, groupMisc),
		Points("Neitiznot Faceguard", 14, groupMisc),
		Points("Ring of Suffering", 18, groupMisc),
		Points("Amulet of Torture", 15, groupMisc),
		Points("Necklace of Anguish", 18, groupMisc),
		Points("Tormented Bracelet", 18, groupMisc),
		Points("Occult Necklace", 4, groupMisc),
		Points("Primordial Boots", 9, groupMisc),
		Points("Pegasian Boots", 9, groupMisc),
		Points("Eternal Boots", 9, groupMisc),
		Points("Guardian Boots", 15, groupMisc),
		Points("Ferocious Gloves", 18, groupMisc),
		Points("Dragon Pickaxe", 9, groupMisc),
		Points("Trident of the Seas", 8, groupMisc),
		Points("Abyssal Bludgeon", 15, groupMisc),
		Points("Dragon Hunter Lance", 35, groupMisc),
		Points("Swift Blade", 18, groupMisc),
		Points("Ham Joint", 23, groupMisc),
		Points("Ancient Sceptre", 2, groupMisc),
		Points("Venator Bow", 20, groupMisc),
		Points("Dizana's quiver", 25, groupMisc),
		Points("Burning claws", 25, groupMisc),
		Points("Emberlight", 12, groupMisc),
		Points("Purging staff", 12, groupMisc),
		Points("Scorching bow", 12, groupMisc),
		Points("Amulet of rancour", 16, groupMisc),
		Points("Noxious halberd", 14, groupMisc),
		Points("Aranea boots", 6, groupMisc),
		Points("Tonalztics of ralos", 19, groupMisc),

		Points("Treasonous ring", 13, groupWilderness, "*"),
		Points("Tyrannical ring", 17, groupWilderness, "*"),
		Points("Ring of the gods", 19, groupWilderness, "*"),
		Points("Amulet of avarice", 27, groupWilderness),
		Points("Voidwaker", 50, groupWilderness),
		Points("Craw's bow", 40, groupWilderness),
		Points("Webweaver bow", 6, groupWilderness),
		Points("Thammaron's sceptre", 40, groupWilderness),
		Points("Accursed sceptre", 9, groupWilderness),
		Points("Viggora's chainmace", 40, groupWilderness),
		Points("Ursine chainmace", 7, groupWilderness),

		Points("Ultor ring", 27, groupDT2),
		Points("Bellator ring", 18, groupDT2),
		Points("Venator ring", 22, groupDT2),
		Points("Magus ring", 23, groupDT2),
		Points("Virtus mask", 20, groupDT2),
		Points("Virtus robe top", 20, groupDT2),
		Points("Virtus robe bottom", 20, groupDT2),
		Points("Soulreaper axe", 59, groupDT2),
	}
}

// DefaultRequirements is the base kit every PvM rank needs.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Kind:  AllOf,
			Label: groupRequired,
			ItemIDs: slugs(
				"Elite Void Top",
				"Elite Void Robe",
				"Void Knight Gloves",
				"Void Melee Helm",
				"Void Mage Helm",
				"Void Ranger Helm",
				"Abyssal Tentacle",
				"Barrows Gloves",
				"Fighter Torso",
				"Dragon Defender",
				"Salve (ei)",
				"Fire cape",
				"Warped sceptre",
				"Dragon Sword",
				"Ava's Assembler",
				"Rune Crossbow",
				"Helm of Neitiznot",
				"Berserker Ring (i)",
			),
		},
		{
			Kind:    AnyOf,
			Label:   "Dragon Warhammer or BGS",
			ItemIDs: slugs("Dragon Warhammer", "Bandos Godsword"),
		},
	}
}

// Default builds the clan catalog. An error here means the static tables
// are broken and the process must not start.
func Default() (*Catalog, error) {
	return New(DefaultItems(), DefaultRequirements())
}

func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func slugs(names ...string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = Slugify(n)
	}
	return out
}
