package gamedata

// RoleTincture maps each role to the main stat its tinctures raise.
var RoleTincture = map[Role]string{
	RoleTank:          "Strength",
	RoleHealer:        "Mind",
	RoleMelee:         "Strength",
	RolePhysicalRange: "Dexterity",
	RoleMagicalRange:  "Intelligence",
}

// AdHocJobTincture covers jobs that use a different tincture than their role
// would suggest.
var AdHocJobTincture = map[string]string{
	"Ninja": "Dexterity",
	"Viper": "Dexterity",
}

// TinctureStrengths maps a tincture name to the main stat points it grants.
var TinctureStrengths = map[string]int{
	"Grade 3 Tincture":        106,
	"Grade 3 Tincture [HQ]":   133,
	"Grade 4 Tincture":        115,
	"Grade 4 Tincture [HQ]":   144,
	"Grade 5 Tincture":        137,
	"Grade 5 Tincture [HQ]":   172,
	"Grade 6 Tincture":        151,
	"Grade 6 Tincture [HQ]":   189,
	"Grade 7 Tincture":        178,
	"Grade 7 Tincture [HQ]":   223,
	"Grade 8 Tincture":        209,
	"Grade 8 Tincture [HQ]":   262,
	"Grade 1 Gemdraught":      280,
	"Grade 1 Gemdraught [HQ]": 351,
	"Grade 2 Gemdraught":      313,
	"Grade 2 Gemdraught [HQ]": 392,
	"Grade 3 Gemdraught":      368,
	"Grade 3 Gemdraught [HQ]": 461,
}

// TinctureStrength returns the main stat increase a potion grants the job.
// A potion of the wrong stat grants nothing; an unknown but correctly typed
// potion falls back to 100 (pre grade 3 tinctures).
func TinctureStrength(potionName, potionType, job string) int {
	role, ok := RoleOf(job)
	if !ok {
		return 0
	}

	if RoleTincture[role] != potionType && AdHocJobTincture[job] != potionType {
		return 0
	}

	if strength, ok := TinctureStrengths[potionName]; ok {
		return strength
	}
	return 100
}
