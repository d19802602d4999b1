package view

import "xivcrit.app/backend/internal/model"

// AnalysisErrorDetail is one failed player analysis with its offloaded dump.
type AnalysisErrorDetail struct {
	Error *model.AnalysisError `json:"error"`
	Dump  string               `json:"dump"`
}

// PartyAnalysisErrorDetail is one failed party analysis: the per-member
// rows share an error ID and the dump is stored once.
type PartyAnalysisErrorDetail struct {
	Errors []*model.PartyAnalysisError `json:"errors"`
	Dump   string                      `json:"dump"`
}
