package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// PartyAnalysisError records a failed party analysis, one row per party
// member so the per-player inputs stay queryable.
type PartyAnalysisError struct {
	bun.BaseModel `bun:"party_analysis_errors,alias:pae"`

	ErrorID     string `bun:",pk" json:"errorId"`
	ReportID    string `json:"reportId"`
	FightID     int    `json:"fightId"`
	PhaseID     int    `json:"phaseId"`
	EncounterID int    `json:"encounterId"`
	Job         string `json:"job"`
	PlayerName  string `json:"playerName"`
	PlayerID    int    `bun:",pk" json:"playerId"`

	MainStatPreBonus   int      `json:"mainStatPreBonus"`
	SecondaryStat      null.Int `json:"secondaryStat"`
	Determination      int      `json:"determination"`
	Speed              int      `json:"speed"`
	CriticalHit        int      `json:"criticalHit"`
	DirectHit          int      `json:"directHit"`
	WeaponDamage       int      `json:"weaponDamage"`
	MainStatMultiplier float64  `json:"mainStatMultiplier"`
	MedicationAmount   int      `json:"medicationAmount"`

	Message   string     `json:"message"`
	Traceback string     `json:"traceback"`
	ErroredAt *time.Time `json:"erroredAt"`
	Active    bool       `json:"active"`
}
