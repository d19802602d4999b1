package rotation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/xivmath"
)

// Portion selects which part of a clipped fight window a rotation is built
// from. Kill time analysis builds the full rotation once, then repeatedly
// shortens the fight by returning the clipped end.
type Portion string

const (
	PortionMain   Portion = ""
	PortionStart  Portion = "start"
	PortionMiddle Portion = "middle"
	PortionEnd    Portion = "end"
)

// Clip trims seconds off the fight window. Zero values leave the
// corresponding edge alone.
type Clip struct {
	StartSeconds float64
	EndSeconds   float64
	Portion      Portion
}

// Row is one line of a rotation: a unique action with its use count, hit
// type probabilities, total buff multiplier and resolved potency.
type Row struct {
	ActionName     string                   `json:"action_name"`
	BaseAction     string                   `json:"base_action"`
	N              int                      `json:"n"`
	TotalDamage    float64                  `json:"total_damage"`
	Probs          xivmath.HitProbabilities `json:"probs"`
	BuffMultiplier float64                  `json:"buff_multiplier"`
	CritDamageMult float64                  `json:"crit_damage_mult"`
	MainStatAdd    int                      `json:"main_stat_add"`
	Potency        int                      `json:"potency"`
	DamageType     string                   `json:"damage_type"`
}

// RotationTable aggregates an action table into rotation rows joined against
// the potency table.
type RotationTable struct {
	*ActionTable

	// Potency rows for the analyzed job at the fight's patch, keyed by
	// ability ID.
	Potencies map[int][]gamedata.Potency

	Rotation []Row
}

// NewRotationTable builds the full-fight rotation from an action table.
func NewRotationTable(t *ActionTable) (*RotationTable, error) {
	rt := &RotationTable{
		ActionTable: t,
		Potencies:   jobPotencies(t.Patch, t.Job),
	}

	rows, err := rt.Rows(Clip{})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperr.ErrInternalError.Msg("no actions matched the potency table for %s", t.Job)
	}
	rt.Rotation = rows
	return rt, nil
}

// jobPotencies narrows the patch-wide potency table to one job. Auto attack
// rows carry no job and are kept unless the job filters autos entirely.
func jobPotencies(patch float64, job string) map[int][]gamedata.Potency {
	filtersAutos := gamedata.FiltersAutoAttacks(job)

	out := make(map[int][]gamedata.Potency)
	for id, pots := range gamedata.PotenciesAt(patch) {
		for _, p := range pots {
			switch {
			case p.Job == job:
			case p.DamageType == gamedata.DamageAuto && !filtersAutos:
			default:
				continue
			}
			out[id] = append(out[id], p)
		}
	}
	return out
}

// Rows aggregates the actions inside the clipped window. An empty result
// means the window contains no matchable actions.
func (t *RotationTable) Rows(clip Clip) ([]Row, error) {
	tStart := t.FightStartTime + int64(clip.StartSeconds*1000)
	tEnd := t.FightEndTime - int64(clip.EndSeconds*1000)

	var window []Action
	for _, a := range t.Actions {
		keep := false
		switch clip.Portion {
		case PortionMain, PortionMiddle:
			keep = a.Timestamp >= tStart && a.Timestamp <= tEnd
		case PortionEnd:
			keep = a.Timestamp > tEnd && a.Timestamp <= t.FightEndTime
		case PortionStart:
			keep = a.Timestamp >= t.FightStartTime && a.Timestamp < tStart
		default:
			return nil, apperr.ErrInvalidReq.Msg("unknown clip portion %q", clip.Portion)
		}
		if keep {
			window = append(window, a)
		}
	}
	if len(window) == 0 {
		return nil, nil
	}
	return t.aggregate(window), nil
}

type groupKey struct {
	actionName   string
	baseAction   string
	abilityID    int
	bonusPercent int
	buffKey      string
	probs        xivmath.HitProbabilities
	multiplier   float64
	critMult     float64
	mainStatAdd  int
	falloff      float64
}

func (t *RotationTable) aggregate(window []Action) []Row {
	base := normalizeHitTypes(window)
	maxBase := groupMultiTargetHits(window, base)

	excluded := make(map[int]bool, len(t.ExcludedEnemyIDs))
	for _, id := range t.ExcludedEnemyIDs {
		excluded[id] = true
	}

	counts := make(map[groupKey]int)
	damage := make(map[groupKey]float64)
	buffLists := make(map[groupKey][]string)

	for i, a := range window {
		// DoT ticks on a dead but castlocked boss deal no damage; drop
		// them along with excluded adds.
		if a.Amount <= 0 || excluded[a.TargetID] {
			continue
		}

		falloff, ok := t.matchPotencyFalloff(a, fractionalPotency(a, base[i], maxBase))
		if !ok {
			continue
		}

		fs := formatFalloff(falloff)
		key := groupKey{
			actionName:   a.ActionName + "_" + fs,
			baseAction:   a.AbilityName,
			abilityID:    a.AbilityGameID,
			bonusPercent: a.BonusPercent,
			buffKey:      strings.Join(a.Buffs, ".") + "." + fs,
			probs:        a.Probs,
			multiplier:   a.Multiplier,
			critMult:     a.CritDamageMult,
			mainStatAdd:  a.MainStatAdd,
			falloff:      falloff,
		}
		counts[key]++
		damage[key] += a.Amount
		if _, ok := buffLists[key]; !ok {
			buffLists[key] = a.Buffs
		}
	}

	rows := make([]Row, 0, len(counts))
	for key, n := range counts {
		pot, ok := t.resolvePotency(key.abilityID, buffLists[key])
		if !ok {
			continue
		}

		name := key.actionName
		potency := pot.BasePotency
		switch {
		case pot.ComboBonus != gamedata.NoBonus && key.bonusPercent == pot.ComboBonus:
			potency = pot.ComboPotency
			name += "_combo"
		case pot.PositionalBonus != gamedata.NoBonus && key.bonusPercent == pot.PositionalBonus:
			potency = pot.PositionalPotency
			name += "_positional"
		case pot.ComboPositionalBonus != gamedata.NoBonus && key.bonusPercent == pot.ComboPositionalBonus:
			potency = pot.ComboPositionalPotency
			name += "_combo_positional"
		}

		rows = append(rows, Row{
			ActionName:     name,
			BaseAction:     key.baseAction,
			N:              n,
			TotalDamage:    damage[key],
			Probs:          key.probs,
			BuffMultiplier: key.multiplier,
			CritDamageMult: key.critMult,
			MainStatAdd:    key.mainStatAdd,
			Potency:        int(float64(potency) * key.falloff),
			DamageType:     pot.DamageType,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].BaseAction != rows[j].BaseAction {
			return rows[i].BaseAction < rows[j].BaseAction
		}
		if rows[i].DamageType != rows[j].DamageType {
			return rows[i].DamageType < rows[j].DamageType
		}
		return rows[i].N > rows[j].N
	})
	return rows
}

// normalizeHitTypes divides the crit and direct hit bonuses back out of each
// damage amount. The result is comparable across hit types, which the
// falloff detection needs.
func normalizeHitTypes(window []Action) []float64 {
	base := make([]float64, len(window))
	for i, a := range window {
		d := a.Amount
		if a.HitType == 2 {
			d /= a.CritDamageMult
		}
		if a.DirectHit {
			d /= xivmath.DirectHitMultiplier
		}
		base[i] = d
	}
	return base
}

// groupMultiTargetHits finds the highest normalized damage per packet ID.
// Hits of one action on multiple targets share a packet ID, so the maximum
// identifies the primary target. Ticks are excluded: a DoT application and
// its first tick share a packet ID, and AoE DoT ticks have no falloff.
func groupMultiTargetHits(window []Action, base []float64) map[int64]float64 {
	maxBase := make(map[int64]float64)
	for i, a := range window {
		if a.Tick {
			continue
		}
		if b, ok := maxBase[a.PacketID]; !ok || base[i] > b {
			maxBase[a.PacketID] = base[i]
		}
	}
	return maxBase
}

func fractionalPotency(a Action, base float64, maxBase map[int64]float64) float64 {
	if a.Tick || a.PacketID == 0 {
		return 1
	}
	m, ok := maxBase[a.PacketID]
	if !ok || m == 0 {
		return 1
	}
	return base / m
}

// matchPotencyFalloff snaps an observed damage fraction to the closest
// falloff value the ability is known to have. The ±5% damage roll keeps
// observations within 0.1 of the true value, and no ability has falloff
// values that close together. Actions without a potency entry are dropped.
func (t *RotationTable) matchPotencyFalloff(a Action, frac float64) (float64, bool) {
	best, bestDiff := 0.0, math.Inf(1)
	for _, pot := range t.Potencies[a.AbilityGameID] {
		for _, f := range pot.Falloff {
			if diff := math.Abs(frac - f); diff < bestDiff {
				best, bestDiff = f, diff
			}
		}
	}
	if bestDiff >= 0.1 {
		return 0, false
	}
	return best, true
}

// resolvePotency picks the potency row matching an action's buff set.
// Rows keyed to a present buff win over the unconditional row; rows keyed
// to an absent buff lose to both.
func (t *RotationTable) resolvePotency(abilityID int, buffs []string) (gamedata.Potency, bool) {
	present := make(map[string]bool, len(buffs))
	for _, b := range buffs {
		present[b] = true
	}

	var (
		found    bool
		bestPrio = -1
		best     gamedata.Potency
	)
	for _, pot := range t.Potencies[abilityID] {
		prio := 0
		switch {
		case pot.BuffID != "" && present[pot.BuffID]:
			prio = 2
		case pot.BuffID == "":
			prio = 1
		}
		if prio > bestPrio {
			bestPrio, best, found = prio, pot, true
		}
	}
	return best, found
}

func formatFalloff(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.1f", f)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
