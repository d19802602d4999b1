package rotation

// Dark Knight needs two corrections on top of the generic pipeline: Salted
// Earth is a ground effect whose multiplier must be estimated, and the
// Darkside gauge buff is invisible to FFLogs and has to be reconstructed
// from Edge of Shadow and Flood of Shadow timings.

const darksideBuffID = "Darkside"

type darkKnightActions struct {
	// [start, end] elapsed-time intervals during which Darkside was down.
	noDarksideIntervals [][2]float64
}

// apply reconstructs Darkside uptime and multiplies it onto every affected
// action. Salted Earth snapshots Darkside on application; Living Shadow
// never gets it.
func (d *darkKnightActions) apply(t *ActionTable, petID int) {
	d.trackDarkside(t)
	d.applyDarksideBuff(t, petID)
}

// trackDarkside replays Edge/Flood of Shadow usages to find the intervals
// where the 30s (capped at 60s) Darkside timer had run out. Unpaired casts
// still count, since gauge is granted on cast.
func (d *darkKnightActions) trackDarkside(t *ActionTable) {
	type usage struct{ at float64 }
	var usages []usage
	for _, a := range t.Actions {
		if a.SourceID != t.PlayerID {
			continue
		}
		if a.AbilityName == "Edge of Shadow" || a.AbilityName == "Flood of Shadow" {
			usages = append(usages, usage{at: a.ElapsedTime})
		}
	}

	d.noDarksideIntervals = nil
	timerAfter := 30.0
	for i, u := range usages {
		if i == 0 {
			// Darkside is down from the pull until the first usage.
			if u.at > 0 {
				d.noDarksideIntervals = append(d.noDarksideIntervals, [2]float64{0, u.at})
			}
			continue
		}

		// Timer remaining when this usage happens; negative means it
		// lapsed in between.
		remaining := timerAfter - (u.at - usages[i-1].at)
		if remaining < 0 {
			d.noDarksideIntervals = append(d.noDarksideIntervals, [2]float64{u.at + remaining, u.at})
			remaining = 0
		}
		timerAfter = remaining + 30
		if timerAfter > 60 {
			timerAfter = 60
		}
	}
}

func (d *darkKnightActions) darksideUp(elapsed float64) bool {
	for _, iv := range d.noDarksideIntervals {
		if elapsed >= iv[0] && elapsed <= iv[1] {
			return false
		}
	}
	return true
}

func (d *darkKnightActions) applyDarksideBuff(t *ActionTable, petID int) {
	// Salted Earth ticks snapshot the Darkside state at application. Ticks
	// more than 10s apart belong to separate applications.
	saltedSnapshot := make(map[int]bool) // group index -> darkside up
	saltedGroup := make(map[int]int)     // action index -> group index
	group := -1
	lastTick := 0.0
	for i, a := range t.Actions {
		if a.AbilityName != "Salted Earth (tick)" {
			continue
		}
		if group < 0 || a.ElapsedTime-lastTick > 10 {
			group++
			saltedSnapshot[group] = d.darksideUp(a.ElapsedTime)
		}
		saltedGroup[i] = group
		lastTick = a.ElapsedTime
	}

	for i := range t.Actions {
		a := &t.Actions[i]

		buffed := false
		if g, ok := saltedGroup[i]; ok {
			// The estimated ground-effect multiplier is discarded here:
			// Salted Earth snapshots everything at application, so the
			// tick-time buff set cannot be trusted.
			a.Multiplier = 1
			buffed = saltedSnapshot[g]
		} else {
			buffed = d.darksideUp(a.ElapsedTime) && a.SourceID != petID
		}

		if buffed {
			a.Multiplier *= 1.1
			a.Buffs = append(a.Buffs, darksideBuffID)
			a.ActionName += "_" + darksideBuffID
		}
	}
}
