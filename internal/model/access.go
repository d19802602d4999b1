package model

import (
	"time"

	"github.com/uptrace/bun"
)

// AccessRecord is one page view of an analysis, kept for usage analytics.
type AccessRecord struct {
	bun.BaseModel `bun:"access_records,alias:ar"`

	RecordID   int        `bun:",pk,autoincrement" json:"id"`
	AnalysisID string     `json:"analysisId"`
	AccessedAt *time.Time `json:"accessedAt"`
}
