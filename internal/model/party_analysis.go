package model

import (
	"time"

	"github.com/uptrace/bun"
)

// PartyAnalysis links 4 to 8 player analyses of the same pull into one party
// damage distribution. The convolved payload lives in the blob store.
type PartyAnalysis struct {
	bun.BaseModel `bun:"party_analyses,alias:pa"`

	PartyAnalysisID string     `bun:",pk" json:"partyAnalysisId"`
	ReportID        string     `json:"reportId"`
	FightID         int        `json:"fightId"`
	PhaseID         int        `json:"phaseId"`
	MemberIDs       StringList `json:"memberIds"`
	RedoFlag        bool       `json:"redoFlag"`
	CreatedAt       *time.Time `json:"createdAt"`
}
