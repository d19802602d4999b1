package types

import "gopkg.in/guregu/null.v3"

// JobBuildStats is a manually entered (or provider-fetched) gear set. Stats
// are pre party bonus; the bonus multiplier is applied server side.
type JobBuildStats struct {
	MainStatPreBonus int         `json:"mainStatPreBonus" validate:"required,min=100,max=10000"`
	SecondaryStat    null.Int    `json:"secondaryStat"`
	Determination    int         `json:"determination" validate:"required,min=100,max=10000"`
	Speed            int         `json:"speed" validate:"required,min=100,max=10000"`
	CriticalHit      int         `json:"criticalHit" validate:"required,min=100,max=10000"`
	DirectHit        int         `json:"directHit" validate:"required,min=100,max=10000"`
	WeaponDamage     int         `json:"weaponDamage" validate:"required,min=10,max=1000"`
	Delay            float64     `json:"delay" validate:"required,min=1,max=5"`
	PartyBonus       float64     `json:"partyBonus" validate:"omitempty,min=1,max=1.05"`
	GearSetID        null.String `json:"gearSetId"`
	GearSetProvider  null.String `json:"gearSetProvider"`
}

// PlayerAnalysisRequest submits one player of one pull for analysis. Either
// JobBuildURL or Stats must be present; when both are given the explicit
// stats win.
type PlayerAnalysisRequest struct {
	ReportURL        string         `json:"reportUrl" validate:"required,url"`
	PlayerID         int            `json:"playerId" validate:"required,min=1"`
	PhaseID          int            `json:"phaseId" validate:"min=0,max=16"`
	JobBuildURL      string         `json:"jobBuildUrl" validate:"omitempty,url"`
	Stats            *JobBuildStats `json:"stats"`
	MedicationAmount int            `json:"medicationAmount" validate:"min=0,max=1000"`
}

// PartyAnalysisRequest links player analyses of the same pull into a party
// analysis.
type PartyAnalysisRequest struct {
	ReportURL   string   `json:"reportUrl" validate:"required,url"`
	PhaseID     int      `json:"phaseId" validate:"min=0,max=16"`
	AnalysisIDs []string `json:"analysisIds" validate:"required,min=4,max=8,dive,required"`
}

// AnalysisTask is the NATS payload for a queued player analysis. CreatedAt
// is in microseconds.
type AnalysisTask struct {
	AnalysisID string `json:"analysisId"`
	CreatedAt  int64  `json:"createdAt"`
}

// PartyAnalysisTask is the NATS payload for a queued party analysis.
// CreatedAt is in microseconds.
type PartyAnalysisTask struct {
	PartyAnalysisID string `json:"partyAnalysisId"`
	CreatedAt       int64  `json:"createdAt"`
}
