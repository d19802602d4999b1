package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// AnalysisError records a failed player analysis with enough context to
// reproduce it. The error ID is derived from the failing inputs so repeated
// failures replace the row instead of piling up.
type AnalysisError struct {
	bun.BaseModel `bun:"analysis_errors,alias:ae"`

	ErrorID       string `bun:",pk" json:"errorId"`
	ReportID      string `json:"reportId"`
	FightID       int    `json:"fightId"`
	PlayerID      int    `json:"playerId"`
	EncounterID   int    `json:"encounterId"`
	EncounterName string `json:"encounterName"`
	PhaseID       int    `json:"phaseId"`
	Job           string `json:"job"`
	PlayerName    string `json:"playerName"`

	MainStatPreBonus      int         `json:"mainStatPreBonus"`
	MainStat              int         `json:"mainStat"`
	MainStatType          string      `json:"mainStatType"`
	SecondaryStatPreBonus null.Int    `json:"secondaryStatPreBonus"`
	SecondaryStat         null.Int    `json:"secondaryStat"`
	SecondaryStatType     null.String `json:"secondaryStatType"`
	Determination         int         `json:"determination"`
	Speed                 int         `json:"speed"`
	CriticalHit           int         `json:"criticalHit"`
	DirectHit             int         `json:"directHit"`
	WeaponDamage          int         `json:"weaponDamage"`
	Delay                 float64     `json:"delay"`
	MedicationAmount      int         `json:"medicationAmount"`
	PartyBonus            float64     `json:"partyBonus"`

	Message   string     `json:"message"`
	Traceback string     `json:"traceback"`
	ErroredAt *time.Time `json:"erroredAt"`
	Active    bool       `json:"active"`
}
