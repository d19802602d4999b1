package rotation

import (
	"context"
	"math"
	"sort"
	"strings"

	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/xivmath"
)

// Echo windows and strengths. The Echo is applied to a duty once it is no
// longer current content; its strength was raised from 10% to 15% in 6.58.
const (
	patch657Start = 1707818400000
	patch658Start = 1710849600000

	echo10Mult = 1.10
	echo15Mult = 1.15
	echo10Name = "echo10"
	echo15Name = "echo15"
)

// BandsClient is the slice of the FFLogs client buff-window tracking needs.
type BandsClient interface {
	BuffBands(ctx context.Context, code string, fightID, sourceID, abilityID int) ([][2]int64, error)
}

// Params identifies the player being analyzed and carries the stats the hit
// type math depends on.
type Params struct {
	ReportCode string
	FightID    int
	Job        string
	PlayerID   int
	PetIDs     []int

	ExcludedEnemyIDs []int

	Level int
	Phase int

	CriticalHit   int
	DirectHit     int
	Determination int
}

// Action is one damage event after buff handling: a unique name derived from
// the action and its buff set, the total damage multiplier, hit type
// probabilities and the medication main stat adjustment.
type Action struct {
	Timestamp      int64 // Unix ms
	ElapsedTime    float64
	SourceID       int
	TargetID       int
	PacketID       int64
	TargetInstance int
	AbilityGameID  int
	AbilityName    string
	ActionName     string
	Buffs          []string
	Amount         float64
	Tick           bool
	Multiplier     float64
	HasMultiplier  bool
	BonusPercent   int
	HitType        int
	DirectHit      bool
	Unpaired       bool
	Probs          xivmath.HitProbabilities
	MainStatAdd    int
	CritDamageMult float64
}

// ActionTable turns raw damage events into the per-action rows a damage
// distribution is computed from. The fight window on info must already be
// resolved to the analyzed phase, including its downtime.
type ActionTable struct {
	Job      string
	PlayerID int
	PetIDs   []int
	Level    int
	Phase    int
	Patch    float64

	EncounterID      int
	HasEcho          bool
	ReportStartTime  int64
	FightStartTime   int64 // Unix ms, start of the analyzed window
	FightEndTime     int64
	Downtime         int64
	FightDPSTime     float64
	MedicationAmount int
	ExcludedEnemyIDs []int

	Actions []Action

	rate          xivmath.Rate
	critBuffs     map[string]float64
	dhBuffs       map[string]float64
	damageBuffs   []gamedata.DamageBuff
	buffStrengths map[string]float64
	rangedCards   map[string]bool
	meleeCards    map[string]bool
}

// New builds the action table for one player of a fight. Job specific
// mechanics that need extra report data (wildfire windows) are fetched
// through client.
func New(ctx context.Context, client BandsClient, info *fflogs.FightInfo, events []fflogs.Event, p Params) (*ActionTable, error) {
	rate, err := xivmath.NewRate(p.CriticalHit, p.DirectHit, p.Level)
	if err != nil {
		return nil, err
	}

	t := &ActionTable{
		Job:              p.Job,
		PlayerID:         p.PlayerID,
		PetIDs:           p.PetIDs,
		Level:            p.Level,
		Phase:            p.Phase,
		Patch:            gamedata.PatchAt(info.ReportStartTime, info.Region),
		EncounterID:      info.EncounterID,
		HasEcho:          info.HasEcho,
		ReportStartTime:  info.ReportStartTime,
		FightStartTime:   info.ReportStartTime + info.StartTime,
		FightEndTime:     info.ReportStartTime + info.EndTime,
		Downtime:         info.Downtime,
		MedicationAmount: info.MedicationAmount,
		ExcludedEnemyIDs: p.ExcludedEnemyIDs,
		rate:             rate,
	}
	t.FightDPSTime = float64(t.FightEndTime-t.FightStartTime-t.Downtime) / 1000

	t.filterBuffTables()

	if err := t.buildActions(events); err != nil {
		return nil, err
	}
	if err := t.applyJobSpecifics(ctx, client, p.ReportCode, p.FightID); err != nil {
		return nil, err
	}
	t.dropUnpaired()

	if t.HasEcho {
		t.applyTheEcho()
	}
	return t, nil
}

// filterBuffTables narrows the compiled buff tables to the fight's patch.
func (t *ActionTable) filterBuffTables() {
	t.critBuffs = gamedata.CritRateBuffsAt(t.Patch)
	t.dhBuffs = gamedata.DirectHitRateBuffsAt(t.Patch)
	t.damageBuffs = gamedata.DamageBuffsAt(t.Patch)

	t.buffStrengths = make(map[string]float64, len(t.damageBuffs))
	for _, b := range t.damageBuffs {
		t.buffStrengths[b.ID] = b.Strength
	}

	t.rangedCards = make(map[string]bool, len(gamedata.RangedCardIDs))
	for _, id := range gamedata.RangedCardIDs {
		t.rangedCards[id] = true
	}
	t.meleeCards = make(map[string]bool, len(gamedata.MeleeCardIDs))
	for _, id := range gamedata.MeleeCardIDs {
		t.meleeCards[id] = true
	}
}

// buildActions filters events down to landed damage, derives timing and
// naming, and resolves buffs into hit type probabilities and multiplier
// adjustments.
func (t *ActionTable) buildActions(events []fflogs.Event) error {
	kept := make([]fflogs.Event, 0, len(events))
	for _, ev := range events {
		// calculateddamage is the snapshot of a cast; tick damage events
		// carry DoT and ground effect damage.
		if ev.Type == "calculateddamage" || (ev.Type == "damage" && ev.Tick) {
			kept = append(kept, ev)
		}
	}
	if len(kept) == 0 {
		return apperr.ErrNotFound.Msg("no damage events found for player")
	}

	first := kept[0].Timestamp
	t.FightStartTime = t.ReportStartTime + first

	t.Actions = make([]Action, 0, len(kept))
	for _, ev := range kept {
		a := Action{
			Timestamp:      t.ReportStartTime + ev.Timestamp,
			ElapsedTime:    float64(ev.Timestamp-first) / 1000,
			SourceID:       ev.SourceID,
			TargetID:       ev.TargetID,
			PacketID:       ev.PacketID,
			TargetInstance: ev.TargetInstance,
			AbilityGameID:  ev.AbilityGameID,
			AbilityName:    ev.AbilityName,
			Buffs:          append([]string(nil), ev.Buffs...),
			Amount:         ev.Amount,
			Tick:           ev.Tick,
			Multiplier:     ev.Multiplier,
			HasMultiplier:  ev.HasMultiplier,
			BonusPercent:   ev.BonusPercent,
			HitType:        ev.HitType,
			DirectHit:      ev.DirectHit,
			Unpaired:       ev.Unpaired,
			CritDamageMult: t.rate.CritDamageMultiplier(),
		}

		// Application and tick damage of a DoT share a base name, so ticks
		// are suffixed; pet actions likewise.
		if a.Tick {
			a.AbilityName += " (tick)"
		}
		if a.SourceID != t.PlayerID {
			a.AbilityName += " (Pet)"
		}

		t.resolveBuffs(&a)
		t.Actions = append(t.Actions, a)
	}
	return nil
}

// resolveBuffs walks an action's buff list, accumulating hit rate
// adjustments, dividing out the flat medication multiplier, standardizing
// estimated buffs, and resolving guaranteed hit types.
func (t *ActionTable) resolveBuffs(a *Action) {
	var critMod, dhMod float64
	seen := make(map[string]bool, len(a.Buffs))

	for i, id := range a.Buffs {
		if seen[id] {
			continue
		}
		seen[id] = true

		if r, ok := t.critBuffs[id]; ok {
			critMod += r
		}
		if r, ok := t.dhBuffs[id]; ok {
			dhMod += r
		}

		switch {
		case id == gamedata.MedicationBuffID:
			// FFLogs approximates medication as a flat 5% multiplier; it is
			// modeled here as a main stat increase instead, so the flat
			// bonus is divided back out.
			a.MainStatAdd += t.MedicationAmount
			a.Multiplier = round6(a.Multiplier / 1.05)

		case id == gamedata.RadiantFinaleBuffID:
			// Radiant Finale reports the same aura ID regardless of Coda
			// count; strength is estimated from elapsed time.
			a.Buffs[i] = t.estimateRadiantFinale(a.ElapsedTime)

		case t.Patch < 7.0 && (t.rangedCards[id] || t.meleeCards[id]):
			a.Buffs[i], _ = t.astCardBuff(id)
		}
	}

	critMod = round2(critMod)
	dhMod = round2(dhMod)

	// a.HitType stays as logged: a guaranteed crit still reports hit type
	// 2, and the damage normalization downstream relies on that. The
	// guaranteed code only shapes the probabilities.
	mult, hitType := t.guaranteedHitType(a.AbilityGameID, a.Buffs, a.Multiplier, critMod, dhMod)
	a.Multiplier = mult

	sort.Strings(a.Buffs)
	a.ActionName = a.AbilityName
	if len(a.Buffs) > 0 {
		a.ActionName += "-" + strings.Join(a.Buffs, "_")
	}

	a.Probs = t.rate.HitProbs(critMod, dhMod, hitType)
}

// astCardBuff standardizes an AST card to card3 or card6 so actions under
// equivalent cards group together. Melee jobs get 6% from melee cards and 3%
// from ranged cards, and the other way around for ranged jobs.
func (t *ActionTable) astCardBuff(cardID string) (string, float64) {
	role, _ := gamedata.RoleOf(t.Job)
	melee := role == gamedata.RoleTank || role == gamedata.RoleMelee

	if (melee && t.meleeCards[cardID]) || (!melee && t.rangedCards[cardID]) {
		return "card6", 1.06
	}
	return "card3", 1.03
}

// estimateRadiantFinale guesses the Coda count behind a Radiant Finale
// window. Openers inside the first 100 seconds of a pull only have one Coda
// available; later uses have all three.
func (t *ActionTable) estimateRadiantFinale(elapsed float64) string {
	if elapsed < 100 && t.Phase <= 1 {
		return "RadiantFinale1"
	}
	return "RadiantFinale3"
}

// guaranteedHitType reports the hit type an action is locked into, either
// inherently or through an active buff, and folds the corresponding damage
// adjustment into the multiplier.
func (t *ActionTable) guaranteedHitType(abilityID int, buffs []string, multiplier, critMod, dhMod float64) (float64, int) {
	hitType := xivmath.HitNormal
	valid := false

	for _, g := range gamedata.GuaranteedHitsByBuff {
		if g.AffectedActionID != abilityID {
			continue
		}
		for _, b := range buffs {
			if b == g.BuffID {
				hitType = g.HitType
				valid = true
				break
			}
		}
		if valid {
			break
		}
	}

	if ht, ok := gamedata.GuaranteedHitsByAction[abilityID]; ok {
		hitType = ht
		valid = true
	}

	if valid {
		multiplier *= t.rate.GuaranteedHitTypeDamageBuff(hitType, critMod, dhMod)
	}
	return multiplier, hitType
}

// dropUnpaired removes casts whose damage never landed. They are carried
// this far because they still grant job gauge.
func (t *ActionTable) dropUnpaired() {
	kept := t.Actions[:0]
	for _, a := range t.Actions {
		if !a.Unpaired {
			kept = append(kept, a)
		}
	}
	t.Actions = kept
}

// applyTheEcho folds the Echo into every action's multiplier, name and buff
// list.
func (t *ActionTable) applyTheEcho() {
	strength, name := echo15Mult, echo15Name
	if t.FightStartTime >= patch657Start && t.FightStartTime <= patch658Start {
		strength, name = echo10Mult, echo10Name
	}

	for i := range t.Actions {
		t.Actions[i].Multiplier = round6(t.Actions[i].Multiplier * strength)
		t.Actions[i].ActionName += "_" + name
		t.Actions[i].Buffs = append(t.Actions[i].Buffs, name)
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round6(x float64) float64 { return math.Round(x*1e6) / 1e6 }
