package rotation

import (
	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/pkg/apperr"
)

// PhaseWindow returns the [start, end] of the requested phase, in
// milliseconds relative to report start. The phase ends where the next one
// starts; the last phase of a pull, or the phase a wipe happened in, ends at
// the fight end.
func PhaseWindow(info *fflogs.FightInfo, encounterID, phase int) (start, end int64, err error) {
	start = -1
	for _, p := range info.PhaseTransitions {
		if p.ID == phase {
			start = p.StartTime
		}
	}
	if start < 0 {
		return 0, 0, apperr.ErrInvalidReq.Msg("phase %d was not reached in this fight", phase)
	}

	lastPhase := 0
	for p := range gamedata.EncounterPhases[encounterID] {
		if p > lastPhase {
			lastPhase = p
		}
	}

	if phase < lastPhase && len(info.PhaseTransitions) > phase {
		for _, p := range info.PhaseTransitions {
			if p.ID == phase+1 {
				return start, p.StartTime, nil
			}
		}
	}
	return start, info.EndTime, nil
}
