package service

import (
	"sort"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/rotation"
	"xivcrit.app/backend/internal/xivmath"
)

// clipSeconds are the kill time shortenings party analyses answer for:
// "would the party still have killed N seconds earlier".
var clipSeconds = []float64{2.5, 5, 7.5, 10}

// jobStats assembles the direct damage formula inputs from a persisted
// analysis row.
func jobStats(m *model.PlayerAnalysis, profile gamedata.JobProfile, level int) xivmath.JobStats {
	s := xivmath.JobStats{
		Level:         level,
		MainStat:      m.MainStat,
		Determination: m.Determination,
		WeaponDamage:  m.WeaponDamage,
		JobAttribute:  profile.JobAttribute,
		Tank:          profile.Tank,
		Trait:         profile.Trait,
	}
	if profile.Tank && m.SecondaryStat.Valid {
		s.Tenacity = int(m.SecondaryStat.Int64)
	}
	return s
}

// actionDistributions converts rotation rows into the damage distribution
// inputs. Rows sharing a display name are merged: their per-hit densities
// are identical, only the counts differ.
func actionDistributions(rows []rotation.Row, stats xivmath.JobStats) ([]xivmath.ActionDistribution, error) {
	byName := map[string]int{}
	out := make([]xivmath.ActionDistribution, 0, len(rows))

	for _, row := range rows {
		if i, ok := byName[row.ActionName]; ok {
			out[i].N += row.N
			continue
		}

		base, err := xivmath.D2(stats, row.Potency, row.MainStatAdd)
		if err != nil {
			return nil, err
		}

		byName[row.ActionName] = len(out)
		out = append(out, xivmath.ActionDistribution{
			Name:           row.ActionName,
			N:              row.N,
			BaseDamage:     float64(base),
			BuffMultiplier: row.BuffMultiplier,
			CritMultiplier: row.CritDamageMult,
			Probs:          row.Probs,
		})
	}
	return out, nil
}

// actualDamageByName totals the logged damage per unique action.
func actualDamageByName(rows []rotation.Row) map[string]float64 {
	damage := make(map[string]float64, len(rows))
	for _, row := range rows {
		damage[row.ActionName] += row.TotalDamage
	}
	return damage
}

// hitCountByName totals the hit count per unique action.
func hitCountByName(rows []rotation.Row) map[string]int {
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ActionName] += row.N
	}
	return counts
}

// summarizeActions compares each action's logged damage against its damage
// density: the percentile the actual value landed at and the median DPS.
func summarizeActions(rows []rotation.Row, dist xivmath.RotationDistribution, activeDPSTime float64) []view.ActionSummary {
	if activeDPSTime <= 0 {
		activeDPSTime = 1
	}

	damage := actualDamageByName(rows)
	counts := hitCountByName(rows)

	out := make([]view.ActionSummary, 0, len(damage))
	for name, actual := range damage {
		pdf, ok := dist.UniqueActions[name]
		if !ok {
			continue
		}
		out = append(out, view.ActionSummary{
			Name:       name,
			N:          counts[name],
			ActualDPS:  actual / activeDPSTime,
			DPS50th:    xivmath.ValueAtPercentile(0.5, pdf.PDF, pdf.Support) / activeDPSTime,
			Percentile: xivmath.PercentileOfValue(actual, pdf.PDF, pdf.Support),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// totalDamage sums logged damage over all rows.
func totalDamage(rows []rotation.Row) float64 {
	var sum float64
	for _, row := range rows {
		sum += row.TotalDamage
	}
	return sum
}

// rotationClippings computes the damage density of the final seconds of the
// rotation, one per clip duration. The clip window is anchored to the last
// recorded action rather than the nominal fight end, so trailing downtime
// does not swallow the clip. Phases where the kill time is fixed skip the
// whole exercise.
func rotationClippings(rt *rotation.RotationTable, stats xivmath.JobStats, encounterID, phase int) ([]view.RotationClipping, error) {
	for _, p := range gamedata.SkipKillTimeAnalysisPhases[encounterID] {
		if p == phase && phase > 0 {
			return nil, nil
		}
	}

	offset := clipOffset(rt)

	out := make([]view.RotationClipping, 0, len(clipSeconds))
	for _, seconds := range clipSeconds {
		rows, err := rt.Rows(rotation.Clip{EndSeconds: seconds + offset, Portion: rotation.PortionEnd})
		if err != nil {
			return nil, err
		}

		dists, err := actionDistributions(rows, stats)
		if err != nil {
			return nil, err
		}

		dist := xivmath.ComputeRotation(dists, xivmath.DefaultDamageStep)
		if dist.PDF == nil {
			// nothing was cast in the clip window; an empty density would
			// poison the party convolution
			continue
		}
		out = append(out, view.RotationClipping{
			SecondsShortened: seconds,
			Mean:             dist.Mean,
			PDF:              dist.PDF,
			Support:          dist.Support,
		})
	}
	return out, nil
}

// clipOffset is the gap between the nominal fight end and the last recorded
// action, in seconds.
func clipOffset(rt *rotation.RotationTable) float64 {
	var last int64
	for _, a := range rt.Actions {
		if a.Timestamp > last {
			last = a.Timestamp
		}
	}
	if last == 0 || last >= rt.FightEndTime {
		return 0
	}
	return float64(rt.FightEndTime-last) / 1000
}

// encounterLevel resolves the level a duty syncs to.
func encounterLevel(encounterID int) (int, error) {
	level, ok := gamedata.EncounterLevel[encounterID]
	if !ok {
		return 0, apperr.ErrInvalidReq.Msg("no level data for encounter %d", encounterID)
	}
	return level, nil
}

// resample shrinks a density onto an n point grid over the same range.
// Densities shorter than n are left alone.
func resample(pdf, support []float64, n int) ([]float64, []float64) {
	if len(pdf) == 0 || len(pdf) <= n || len(support) < 2 {
		return pdf, support
	}
	grid := xivmath.Linspace(support[0], support[len(support)-1], n)
	return xivmath.Interp(grid, support, pdf), grid
}

// interpolatePlayerPayload resamples every density in a player payload for
// serving. Blob copies stay at full resolution.
func interpolatePlayerPayload(p *view.PlayerAnalysisPayload, n int) {
	p.PDF, p.Support = resample(p.PDF, p.Support, n)
	for name, a := range p.UniqueActions {
		a.PDF, a.Support = resample(a.PDF, a.Support, n)
		p.UniqueActions[name] = a
	}
	for i := range p.Clippings {
		c := &p.Clippings[i]
		c.PDF, c.Support = resample(c.PDF, c.Support, n)
	}
}

func interpolatePartyPayload(p *view.PartyAnalysisPayload, n int) {
	p.PDF, p.Support = resample(p.PDF, p.Support, n)
	for i := range p.Splits {
		s := &p.Splits[i]
		s.PDF, s.Support = resample(s.PDF, s.Support, n)
	}
}
