package gamedata

// Role is a job's combat role, matching FFLogs naming.
type Role string

const (
	RoleTank          Role = "Tank"
	RoleHealer        Role = "Healer"
	RoleMelee         Role = "Melee"
	RolePhysicalRange Role = "Physical Ranged"
	RoleMagicalRange  Role = "Magical Ranged"
)

// RoleMapping maps FFLogs job names to roles.
var RoleMapping = map[string]Role{
	"WhiteMage":   RoleHealer,
	"Scholar":     RoleHealer,
	"Astrologian": RoleHealer,
	"Sage":        RoleHealer,
	"Paladin":     RoleTank,
	"Warrior":     RoleTank,
	"DarkKnight":  RoleTank,
	"Gunbreaker":  RoleTank,
	"Bard":        RolePhysicalRange,
	"Dancer":      RolePhysicalRange,
	"Machinist":   RolePhysicalRange,
	"Dragoon":     RoleMelee,
	"Monk":        RoleMelee,
	"Ninja":       RoleMelee,
	"Samurai":     RoleMelee,
	"Reaper":      RoleMelee,
	"Viper":       RoleMelee,
	"BlackMage":   RoleMagicalRange,
	"Summoner":    RoleMagicalRange,
	"RedMage":     RoleMagicalRange,
	"Pictomancer": RoleMagicalRange,
}

// RoleOf returns the role for an FFLogs job name.
func RoleOf(job string) (Role, bool) {
	r, ok := RoleMapping[job]
	return r, ok
}

// autoAttackFiltered lists jobs whose auto attacks are excluded from
// analysis. Casters and healers lose DPS by auto attacking and the hits are
// not modeled.
var autoAttackFiltered = map[string]bool{
	"Pictomancer": true,
	"RedMage":     true,
	"Summoner":    true,
	"Astrologian": true,
	"WhiteMage":   true,
	"Sage":        true,
	"Scholar":     true,
}

// FiltersAutoAttacks reports whether the job's auto attacks are dropped.
func FiltersAutoAttacks(job string) bool {
	return autoAttackFiltered[job]
}
