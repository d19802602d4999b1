package view

import "xivcrit.app/backend/internal/model"

// ReportFight is the "select your player" listing for one resolved fight.
type ReportFight struct {
	ReportID      string             `json:"reportId"`
	FightID       int                `json:"fightId"`
	EncounterID   int                `json:"encounterId"`
	EncounterName string             `json:"encounterName"`
	KillTime      float64            `json:"killTime"`
	LastPhase     int                `json:"lastPhase"`
	Phases        map[int]string     `json:"phases,omitempty"`
	Players       []*model.Encounter `json:"players"`
}

// HistoryRecord is one serialized analysis history entry, keyed by
// (analysis id, hierarchy) on the client.
type HistoryRecord struct {
	AnalysisID         string  `json:"analysisId"`
	AnalysisScope      string  `json:"analysisScope"`
	AnalysisDatetime   string  `json:"analysisDatetime"`
	EncounterShortName string  `json:"encounterShortName"`
	KillTime           string  `json:"killTime"`
	Job                string  `json:"job"`
	PlayerName         string  `json:"playerName"`
	AnalysisPercentile float64 `json:"analysisPercentile"`
	Hierarchy          string  `json:"hierarchy"`
	HierarchyID        string  `json:"hierarchyId"`
}
