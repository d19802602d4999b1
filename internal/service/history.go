package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/model/view"
	"xivcrit.app/backend/internal/pkg/apperr"
)

// Analysis history scopes as shown in the saved results table.
const (
	ScopePlayer = "Player analysis"
	ScopeParty  = "Party analysis"
)

// History serializes finished analyses into the records the frontend keeps
// in its local "recent analyses" table, keyed by (analysis id, hierarchy).
type History struct {
	Encounter *Encounter
	Player    *PlayerAnalysis
	Party     *PartyAnalysis
}

func NewHistory(encounter *Encounter, player *PlayerAnalysis, party *PartyAnalysis) *History {
	return &History{Encounter: encounter, Player: player, Party: party}
}

// PlayerRecords builds the history entry for one standalone player analysis.
func (s *History) PlayerRecords(ctx context.Context, analysisID string) ([]view.HistoryRecord, error) {
	v, err := s.Player.Get(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if v.Payload == nil {
		return nil, apperr.ErrNotFound.Msg("analysis %s has not finished computing", analysisID)
	}

	enc, err := s.Encounter.GetEncounter(ctx, v.Meta.ReportID, v.Meta.FightID, v.Meta.PlayerID)
	if err != nil {
		return nil, err
	}

	rec := s.playerRecord(v.Meta, enc, v.Payload.Percentile)
	rec.Hierarchy = "parent"
	rec.HierarchyID = analysisID
	return []view.HistoryRecord{rec}, nil
}

// PartyRecords builds the history entries for a party analysis: the party
// row itself plus one child row per member.
func (s *History) PartyRecords(ctx context.Context, partyAnalysisID string) ([]view.HistoryRecord, error) {
	v, err := s.Party.Get(ctx, partyAnalysisID)
	if err != nil {
		return nil, err
	}
	if v.Payload == nil {
		return nil, apperr.ErrNotFound.Msg("party analysis %s has not finished computing", partyAnalysisID)
	}
	if len(v.Members) == 0 {
		return nil, apperr.ErrInternalError.Msg("party analysis %s has no members", partyAnalysisID)
	}

	enc, err := s.Encounter.GetEncounter(ctx, v.Meta.ReportID, v.Meta.FightID, v.Members[0].PlayerID)
	if err != nil {
		return nil, err
	}

	records := make([]view.HistoryRecord, 0, len(v.Members)+1)
	records = append(records, view.HistoryRecord{
		AnalysisID:         partyAnalysisID,
		AnalysisScope:      ScopeParty,
		AnalysisDatetime:   formatDatetime(v.Meta.CreatedAt),
		EncounterShortName: shortEncounterName(enc.EncounterID, v.Meta.PhaseID),
		KillTime:           formatKillTime(enc.KillTime),
		Job:                "LB",
		PlayerName:         "Full party",
		AnalysisPercentile: roundPercentile(v.Payload.Percentile),
		Hierarchy:          "parent",
		HierarchyID:        partyAnalysisID,
	})

	for _, member := range v.Members {
		memberView, err := s.Player.Get(ctx, member.AnalysisID)
		if err != nil {
			return nil, err
		}
		var percentile float64
		if memberView.Payload != nil {
			percentile = memberView.Payload.Percentile
		}
		rec := s.playerRecord(member, enc, percentile)
		rec.Hierarchy = "child"
		rec.HierarchyID = partyAnalysisID
		records = append(records, rec)
	}
	return records, nil
}

func (s *History) playerRecord(m *model.PlayerAnalysis, enc *model.Encounter, percentile float64) view.HistoryRecord {
	return view.HistoryRecord{
		AnalysisID:         m.AnalysisID,
		AnalysisScope:      ScopePlayer,
		AnalysisDatetime:   formatDatetime(m.CreatedAt),
		EncounterShortName: shortEncounterName(enc.EncounterID, m.PhaseID),
		KillTime:           formatKillTime(enc.KillTime),
		Job:                gamedata.AbbrevOf(m.Job),
		PlayerName:         m.PlayerName,
		AnalysisPercentile: roundPercentile(percentile),
	}
}

func shortEncounterName(encounterID, phaseID int) string {
	name := gamedata.ShortNameOf(encounterID)
	if phaseID > 0 {
		name = fmt.Sprintf("%s p%d", name, phaseID)
	}
	return name
}

// formatKillTime renders a duration in seconds as MM:SS.mmm.
func formatKillTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := int(seconds) / 60
	rem := seconds - float64(minutes*60)
	return fmt.Sprintf("%02d:%06.3f", minutes, rem)
}

func formatDatetime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// roundPercentile keeps two decimals of the 0 to 100 display value.
func roundPercentile(p float64) float64 {
	return math.Round(p*10000) / 100
}
