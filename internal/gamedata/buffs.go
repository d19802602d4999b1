package gamedata

// FFLogs aura IDs are the in-game status ID plus 1e6. Synthetic IDs such as
// "card3" or "echo15" are introduced during analysis for buffs whose strength
// has to be estimated.
const (
	MedicationBuffID    = "1000049"
	RadiantFinaleBuffID = "1002964"
)

// Ability game IDs referenced by job-specific handling.
const (
	WildfireAbilityID    = 1000861
	WildfireBuffID       = 1001946
	SaltedEarthAbilityID = 1000749
	SlipstreamAbilityID  = 1002706
	BurstShotAbilityID   = 16495
	PitchPerfectAbility  = 7404
	RadiantEncoreAbility = 36977
)

// DamageBuff is a flat damage multiplier granted by a status effect.
// ValidStart and ValidEnd bound the patch range [start, end) in which the
// listed strength is correct.
type DamageBuff struct {
	ID         string
	Name       string
	Strength   float64
	ValidStart float64
	ValidEnd   float64
}

// RateBuff raises the critical or direct hit rate while active.
type RateBuff struct {
	ID         string
	Name       string
	Rate       float64
	ValidStart float64
	ValidEnd   float64
}

// GuaranteedByAction marks abilities that always land a given hit type.
// Hit types: 0 normal, 1 auto crit, 2 auto direct hit, 3 auto crit direct hit.
type GuaranteedByAction struct {
	ActionID int
	HitType  int
}

// GuaranteedByBuff marks buffs that grant a guaranteed hit type to specific
// actions.
type GuaranteedByBuff struct {
	BuffID           string
	AffectedActionID int
	HitType          int
}

var damageBuffs = []DamageBuff{
	{ID: "1000049", Name: "Medicated", Strength: 1.05, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1000141", Name: "Battle Voice", Strength: 1.0, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1000638", Name: "Vulnerability Up", Strength: 1.05, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001185", Name: "Brotherhood", Strength: 1.05, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001239", Name: "Embolden", Strength: 1.05, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001821", Name: "Standard Finish", Strength: 1.05, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001822", Name: "Technical Finish", Strength: 1.05, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001878", Name: "Divination", Strength: 1.06, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1002599", Name: "Arcane Circle", Strength: 1.03, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1002703", Name: "Searing Light", Strength: 1.03, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1003685", Name: "Starry Muse", Strength: 1.05, ValidStart: 7.0, ValidEnd: 8.0},

	// AST cards, reworked away in 7.0. Standardized to card3/card6 during
	// analysis so fewer unique actions are produced.
	{ID: "1001882", Name: "The Balance", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "1001883", Name: "The Bole", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "1001884", Name: "The Arrow", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "1001885", Name: "The Spear", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "1001886", Name: "The Ewer", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "1001887", Name: "The Spire", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},

	// Synthetic IDs assigned during analysis.
	{ID: "card3", Name: "AST Card (3%)", Strength: 1.03, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "card6", Name: "AST Card (6%)", Strength: 1.06, ValidStart: 6.0, ValidEnd: 7.0},
	{ID: "RadiantFinale1", Name: "Radiant Finale (1 Coda)", Strength: 1.02, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "RadiantFinale3", Name: "Radiant Finale (3 Coda)", Strength: 1.06, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "Darkside", Name: "Darkside", Strength: 1.10, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "echo10", Name: "The Echo (10%)", Strength: 1.10, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "echo15", Name: "The Echo (15%)", Strength: 1.15, ValidStart: 6.0, ValidEnd: 8.0},
}

var critRateBuffs = []RateBuff{
	{ID: "1000786", Name: "Battle Litany", Rate: 0.10, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001221", Name: "Chain Stratagem", Rate: 0.10, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001825", Name: "Devilment", Rate: 0.20, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1002216", Name: "The Wanderer's Minuet", Rate: 0.02, ValidStart: 6.0, ValidEnd: 8.0},
}

var directHitRateBuffs = []RateBuff{
	{ID: "1000141", Name: "Battle Voice", Rate: 0.20, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1001825", Name: "Devilment", Rate: 0.20, ValidStart: 6.0, ValidEnd: 8.0},
	{ID: "1002218", Name: "Army's Paeon", Rate: 0.03, ValidStart: 6.0, ValidEnd: 8.0},
}

// GuaranteedHitsByAction maps ability game IDs to their inherent hit type.
var GuaranteedHitsByAction = map[int]int{
	16465: 3, // Inner Chaos
	25753: 3, // Primal Rend
	7487:  1, // Midare Setsugekka
}

// GuaranteedHitsByBuff lists buffs granting guaranteed hit types to actions.
var GuaranteedHitsByBuff = []GuaranteedByBuff{
	{BuffID: "1001177", AffectedActionID: 3549, HitType: 3},  // Inner Release -> Fell Cleave
	{BuffID: "1001177", AffectedActionID: 3550, HitType: 3},  // Inner Release -> Decimate
	{BuffID: "1000116", AffectedActionID: 25771, HitType: 1}, // Life Surge -> Heavens' Thrust
	{BuffID: "1000116", AffectedActionID: 36952, HitType: 1}, // Life Surge -> Drakesbane
	{BuffID: "1000851", AffectedActionID: 16498, HitType: 3}, // Reassembled -> Drill
	{BuffID: "1000851", AffectedActionID: 16500, HitType: 3}, // Reassembled -> Air Anchor
	{BuffID: "1000851", AffectedActionID: 25788, HitType: 3}, // Reassembled -> Chain Saw
}

// RangedCardIDs and MeleeCardIDs split the AST cards by which role gets the
// stronger buff.
var (
	RangedCardIDs = []string{"1001883", "1001886", "1001887"} // Bole, Ewer, Spire
	MeleeCardIDs  = []string{"1001884", "1001882", "1001885"} // Arrow, Balance, Spear
)

// DamageBuffsAt returns the damage buffs valid for the given patch.
func DamageBuffsAt(patch float64) []DamageBuff {
	out := make([]DamageBuff, 0, len(damageBuffs))
	for _, b := range damageBuffs {
		if b.ValidStart <= patch && patch < b.ValidEnd {
			out = append(out, b)
		}
	}
	return out
}

// CritRateBuffsAt returns buff ID to crit rate increase for the given patch.
func CritRateBuffsAt(patch float64) map[string]float64 {
	out := make(map[string]float64, len(critRateBuffs))
	for _, b := range critRateBuffs {
		if b.ValidStart <= patch && patch < b.ValidEnd {
			out[b.ID] = b.Rate
		}
	}
	return out
}

// DirectHitRateBuffsAt returns buff ID to direct hit rate increase for the
// given patch.
func DirectHitRateBuffsAt(patch float64) map[string]float64 {
	out := make(map[string]float64, len(directHitRateBuffs))
	for _, b := range directHitRateBuffs {
		if b.ValidStart <= patch && patch < b.ValidEnd {
			out[b.ID] = b.Rate
		}
	}
	return out
}
