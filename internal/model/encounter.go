package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// Encounter is one player of one pull: the "select your player" step
// resolves a report URL into these rows before any analysis runs.
type Encounter struct {
	bun.BaseModel `bun:"encounters,alias:e"`

	ReportID       string      `bun:",pk" json:"reportId"`
	FightID        int         `bun:",pk" json:"fightId"`
	PlayerID       int         `bun:",pk" json:"playerId"`
	EncounterID    int         `json:"encounterId"`
	LastPhaseIndex null.Int    `json:"lastPhaseIndex"`
	EncounterName  string      `json:"encounterName"`
	KillTime       float64     `json:"killTime"`
	PlayerName     string      `json:"playerName"`
	PlayerServer   null.String `json:"playerServer"`
	PetIDs         IntList     `json:"petIds"`
	Job            string      `json:"job"`
	Role           string      `json:"role"`
}
