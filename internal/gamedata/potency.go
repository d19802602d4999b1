package gamedata

// Damage types for potency rows.
const (
	DamageDirect = "direct"
	DamageDoT    = "dot"
	DamageAuto   = "auto"
	DamagePet    = "pet"
)

// NoBonus marks the absence of a combo or positional bonus percent.
const NoBonus = -1

// Potency describes how much damage an ability deals per use. Rows with a
// BuffID only apply when that buff is present; several rows may share an
// AbilityID with different BuffIDs when a buff changes the potency.
//
// Combo and positional satisfaction is reported by FFLogs as a bonus
// percent on the event, matched here against the *Bonus fields.
type Potency struct {
	AbilityID              int
	Name                   string
	Job                    string
	DamageType             string
	BasePotency            int
	ComboPotency           int
	ComboBonus             int
	PositionalPotency      int
	PositionalBonus        int
	ComboPositionalPotency int
	ComboPositionalBonus   int
	BuffID                 string
	Falloff                []float64
	ValidStart             float64
	ValidEnd               float64
}

func direct(id int, name, job string, base int) Potency {
	return Potency{
		AbilityID: id, Name: name, Job: job, DamageType: DamageDirect,
		BasePotency: base,
		ComboBonus:  NoBonus, PositionalBonus: NoBonus, ComboPositionalBonus: NoBonus,
		Falloff:    []float64{1},
		ValidStart: 6.0, ValidEnd: 8.0,
	}
}

func dot(id int, name, job string, perTick int) Potency {
	p := direct(id, name, job, perTick)
	p.DamageType = DamageDoT
	return p
}

func auto(id int, name string, base int) Potency {
	p := direct(id, name, "", base)
	p.DamageType = DamageAuto
	return p
}

func withCombo(p Potency, potency, bonus int) Potency {
	p.ComboPotency = potency
	p.ComboBonus = bonus
	return p
}

func withPositional(p Potency, potency, bonus int) Potency {
	p.PositionalPotency = potency
	p.PositionalBonus = bonus
	return p
}

func withComboPositional(p Potency, potency, bonus int) Potency {
	p.ComboPositionalPotency = potency
	p.ComboPositionalBonus = bonus
	return p
}

func withBuff(p Potency, buffID string, potency int) Potency {
	p.BuffID = buffID
	p.BasePotency = potency
	return p
}

func withFalloff(p Potency, falloff ...float64) Potency {
	p.Falloff = falloff
	return p
}

var potencies = []Potency{
	// Dark Knight
	direct(3617, "Hard Slash", "DarkKnight", 300),
	withCombo(direct(3623, "Syphon Strike", "DarkKnight", 240), 360, 50),
	withCombo(direct(3632, "Souleater", "DarkKnight", 260), 440, 69),
	direct(7392, "Bloodspiller", "DarkKnight", 580),
	direct(16470, "Edge of Shadow", "DarkKnight", 460),
	withFalloff(direct(16469, "Flood of Shadow", "DarkKnight", 160), 1),
	withFalloff(direct(25757, "Shadowbringer", "DarkKnight", 600), 1, 0.5),
	direct(3643, "Carve and Spit", "DarkKnight", 540),
	dot(SaltedEarthAbilityID, "Salted Earth", "DarkKnight", 50),

	// Machinist
	direct(7411, "Heated Split Shot", "Machinist", 220),
	withCombo(direct(7412, "Heated Slug Shot", "Machinist", 140), 320, 129),
	withCombo(direct(7413, "Heated Clean Shot", "Machinist", 160), 420, 163),
	direct(16498, "Drill", "Machinist", 600),
	direct(16500, "Air Anchor", "Machinist", 600),
	withFalloff(direct(25788, "Chain Saw", "Machinist", 600), 1, 0.65),
	direct(7410, "Heat Blast", "Machinist", 200),

	// Wildfire detonates for 240 potency per weaponskill landed during the
	// buff, capped at six. The GCD count is estimated during analysis and
	// tracked as a wildfire_N buff.
	withBuff(dot(WildfireAbilityID, "Wildfire", "Machinist", 240), "wildfire_1", 240),
	withBuff(dot(WildfireAbilityID, "Wildfire", "Machinist", 240), "wildfire_2", 480),
	withBuff(dot(WildfireAbilityID, "Wildfire", "Machinist", 240), "wildfire_3", 720),
	withBuff(dot(WildfireAbilityID, "Wildfire", "Machinist", 240), "wildfire_4", 960),
	withBuff(dot(WildfireAbilityID, "Wildfire", "Machinist", 240), "wildfire_5", 1200),
	withBuff(dot(WildfireAbilityID, "Wildfire", "Machinist", 240), "wildfire_6", 1440),

	// Bard. Pitch Perfect and Radiant Encore potencies depend on stacks
	// estimated from relative damage, tracked as synthetic buff IDs.
	direct(BurstShotAbilityID, "Burst Shot", "Bard", 220),
	direct(7409, "Refulgent Arrow", "Bard", 280),
	withBuff(direct(PitchPerfectAbility, "Pitch Perfect", "Bard", 100), "pp1", 100),
	withBuff(direct(PitchPerfectAbility, "Pitch Perfect", "Bard", 100), "pp2", 220),
	withBuff(direct(PitchPerfectAbility, "Pitch Perfect", "Bard", 100), "pp3", 360),
	withFalloff(direct(16496, "Apex Arrow", "Bard", 500), 1),
	withBuff(withFalloff(direct(RadiantEncoreAbility, "Radiant Encore", "Bard", 500), 1, 0.5), "c1", 500),
	withBuff(withFalloff(direct(RadiantEncoreAbility, "Radiant Encore", "Bard", 500), 1, 0.5), "c3", 900),
	dot(1000124, "Caustic Bite", "Bard", 20),
	dot(1001201, "Stormbite", "Bard", 25),

	// Paladin. Holy Spirit potency depends on which buff is up.
	direct(7384, "Holy Spirit", "Paladin", 270),
	withBuff(direct(7384, "Holy Spirit", "Paladin", 270), "1002673", 470), // Divine Might
	withBuff(direct(7384, "Holy Spirit", "Paladin", 270), "1001368", 670), // Requiescat
	direct(3538, "Goring Blade", "Paladin", 700),

	// Warrior
	direct(31, "Heavy Swing", "Warrior", 220),
	withCombo(direct(37, "Maim", "Warrior", 190), 340, 79),
	withCombo(direct(42, "Storm's Path", "Warrior", 220), 440, 100),
	direct(3549, "Fell Cleave", "Warrior", 580),
	direct(16465, "Inner Chaos", "Warrior", 660),
	withFalloff(direct(3550, "Decimate", "Warrior", 180), 1),
	withFalloff(direct(25753, "Primal Rend", "Warrior", 700), 1),

	// Samurai
	withComboPositional(
		withPositional(
			withCombo(direct(7481, "Gekko", "Samurai", 160), 330, 106),
			210, 31),
		380, 137),
	direct(7487, "Midare Setsugekka", "Samurai", 640),

	// White Mage
	direct(25859, "Glare III", "WhiteMage", 330),
	dot(1001871, "Dia", "WhiteMage", 80),
	direct(16532, "Dia", "WhiteMage", 80),

	// Auto attacks share a name across jobs.
	auto(7938, "Attack", 90),
}

// PotenciesAt returns every potency row valid for the given patch, keyed by
// ability ID. Multiple rows per ability are possible when potencies are
// buff-conditional.
func PotenciesAt(patch float64) map[int][]Potency {
	out := make(map[int][]Potency)
	for _, p := range potencies {
		if p.ValidStart <= patch && patch < p.ValidEnd {
			out[p.AbilityID] = append(out[p.AbilityID], p)
		}
	}
	return out
}
