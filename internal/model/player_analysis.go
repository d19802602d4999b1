package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// PlayerAnalysis is the persisted record of one player analysis. The
// distribution payload itself lives in the blob store under the analysis ID;
// this row carries the inputs so the analysis can be recomputed.
type PlayerAnalysis struct {
	bun.BaseModel `bun:"player_analyses,alias:pla"`

	AnalysisID    string  `bun:",pk" json:"analysisId"`
	ReportID      string  `json:"reportId"`
	FightID       int     `json:"fightId"`
	PlayerID      int     `json:"playerId"`
	PhaseID       int     `json:"phaseId"`
	EncounterName string  `json:"encounterName"`
	ActiveDPSTime float64 `json:"activeDpsTime"`
	Job           string  `json:"job"`
	PlayerName    string  `json:"playerName"`

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
	GearSetID             null.String `json:"gearSetId"`
	GearSetProvider       null.String `json:"gearSetProvider"`

	RedoDPSFlag      bool       `json:"redoDpsFlag"`
	RedoRotationFlag bool       `json:"redoRotationFlag"`
	CreatedAt        *time.Time `json:"createdAt"`
}
