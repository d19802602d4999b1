package service

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"xivcrit.app/backend/internal/fflogs"
	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/cache"
	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/pkg/apperr"
	"xivcrit.app/backend/internal/repo"
)

// Encounter resolves an FFLogs report link into the "select your player"
// listing and persists the encounter rows later steps key off.
type Encounter struct {
	FFLogs        *fflogs.Client
	EncounterRepo *repo.Encounter
}

func NewEncounter(client *fflogs.Client, encounterRepo *repo.Encounter) *Encounter {
	return &Encounter{
		FFLogs:        client,
		EncounterRepo: encounterRepo,
	}
}

// ResolveReport parses the report URL, fetches the fight's metadata and
// upserts one encounter row per participant. Results are cached briefly:
// the same report tends to get pasted by all eight party members.
func (s *Encounter) ResolveReport(ctx context.Context, reportURL string) (*view.ReportFight, error) {
	code, fightID, err := fflogs.ParseReportURL(reportURL)
	if err != nil {
		return nil, err
	}
	if fightID == fflogs.FightLast {
		if fightID, err = s.FFLogs.LastFightID(ctx, code); err != nil {
			return nil, err
		}
	}

	var listing view.ReportFight
	err = cache.ReportFightByCode.MutexGetSet(fmt.Sprintf("%s:%d", code, fightID), &listing, func() (view.ReportFight, error) {
		return s.resolve(ctx, code, fightID)
	}, time.Minute*10)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *Encounter) resolve(ctx context.Context, code string, fightID int) (view.ReportFight, error) {
	info, err := s.FFLogs.EncounterInfo(ctx, code, fightID)
	if err != nil {
		return view.ReportFight{}, err
	}
	if !gamedata.IsValid(info.EncounterID) {
		return view.ReportFight{}, apperr.ErrInvalidReq.Msg("analyses are not supported for encounter %q (id %d)", info.FightName, info.EncounterID)
	}

	rows := lo.Map(info.Jobs, func(p fflogs.PlayerEntry, _ int) *model.Encounter {
		return s.encounterRow(code, info, p)
	})
	if err := s.EncounterRepo.SaveEncounters(ctx, rows); err != nil {
		return view.ReportFight{}, err
	}

	return view.ReportFight{
		ReportID:      code,
		FightID:       fightID,
		EncounterID:   info.EncounterID,
		EncounterName: info.FightName,
		KillTime:      info.FightTime,
		LastPhase:     info.LastPhase,
		Phases:        gamedata.EncounterPhases[info.EncounterID],
		Players:       rows,
	}, nil
}

func (s *Encounter) encounterRow(code string, info *fflogs.EncounterInfo, p fflogs.PlayerEntry) *model.Encounter {
	lastPhase := null.Int{}
	if info.LastPhase > 0 {
		lastPhase = null.IntFrom(int64(info.LastPhase))
	}

	return &model.Encounter{
		ReportID:       code,
		FightID:        info.FightID,
		PlayerID:       p.PlayerID,
		EncounterID:    info.EncounterID,
		LastPhaseIndex: lastPhase,
		EncounterName:  info.FightName,
		KillTime:       info.FightTime,
		PlayerName:     p.PlayerName,
		PlayerServer:   null.NewString(p.PlayerServer, p.PlayerServer != ""),
		PetIDs:         model.IntList(p.PetIDs),
		Job:            p.Job,
		Role:           string(p.Role),
	}
}

// GetEncounter returns the persisted row for one player of one pull.
func (s *Encounter) GetEncounter(ctx context.Context, reportID string, fightID, playerID int) (*model.Encounter, error) {
	return s.EncounterRepo.GetEncounter(ctx, reportID, fightID, playerID)
}
