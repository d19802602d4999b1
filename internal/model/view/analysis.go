package view

import (
	"xivcrit.app/backend/internal/model"
	"xivcrit.app/backend/internal/xivmath"
)

// ActionSummary compares how an action actually rolled against its damage
// distribution: the DPS dealt, the 50th percentile DPS, and the percentile
// the actual value lands at.
type ActionSummary struct {
	Name       string  `json:"name" msgpack:"name"`
	N          int     `json:"n" msgpack:"n"`
	ActualDPS  float64 `json:"actual_dps" msgpack:"actual_dps"`
	DPS50th    float64 `json:"dps_50th_percentile" msgpack:"dps_50th_percentile"`
	Percentile float64 `json:"percentile" msgpack:"percentile"`
}

// RotationClipping is the damage density of the final seconds of a rotation,
// kept alongside the full analysis so party kill time splits can be derived
// without recomputing.
type RotationClipping struct {
	SecondsShortened float64   `json:"seconds_shortened" msgpack:"seconds_shortened"`
	Mean             float64   `json:"mean" msgpack:"mean"`
	PDF              []float64 `json:"pdf" msgpack:"pdf"`
	Support          []float64 `json:"support" msgpack:"support"`
}

// PlayerAnalysisPayload is the msgpack blob stored per player analysis: the
// rotation damage distribution, per-action densities and the actual vs
// expected summary.
type PlayerAnalysisPayload struct {
	AnalysisID    string  `json:"analysis_id" msgpack:"analysis_id"`
	ActiveDPSTime float64 `json:"active_dps_time" msgpack:"active_dps_time"`
	TotalDamage   float64 `json:"total_damage" msgpack:"total_damage"`
	Percentile    float64 `json:"percentile" msgpack:"percentile"`

	Mean     float64 `json:"mean" msgpack:"mean"`
	Std      float64 `json:"std" msgpack:"std"`
	Skewness float64 `json:"skewness" msgpack:"skewness"`

	PDF     []float64 `json:"dps_distribution" msgpack:"dps_distribution"`
	Support []float64 `json:"support" msgpack:"support"`

	UniqueActions map[string]xivmath.ActionPDF `json:"unique_actions" msgpack:"unique_actions"`
	Actions       []ActionSummary              `json:"actions" msgpack:"actions"`

	Clippings []RotationClipping `json:"clippings" msgpack:"clippings"`
}

// PartySplit is the kill time distribution with the final seconds of the
// fight removed: "would the party still have killed N seconds earlier".
type PartySplit struct {
	SecondsShortened float64   `json:"seconds_shortened" msgpack:"seconds_shortened"`
	Percentile       float64   `json:"percentile" msgpack:"percentile"`
	PDF              []float64 `json:"pdf" msgpack:"pdf"`
	Support          []float64 `json:"support" msgpack:"support"`
}

// PartyAnalysisPayload is the msgpack blob stored per party analysis.
type PartyAnalysisPayload struct {
	PartyAnalysisID  string  `json:"party_analysis_id" msgpack:"party_analysis_id"`
	BossHP           float64 `json:"boss_hp" msgpack:"boss_hp"`
	ActiveDPSTime    float64 `json:"active_dps_time" msgpack:"active_dps_time"`
	FightDuration    float64 `json:"fight_duration" msgpack:"fight_duration"`
	LimitBreakDamage float64 `json:"limit_break_damage" msgpack:"limit_break_damage"`
	Percentile       float64 `json:"percentile" msgpack:"percentile"`

	Mean     float64 `json:"mean" msgpack:"mean"`
	Std      float64 `json:"std" msgpack:"std"`
	Skewness float64 `json:"skewness" msgpack:"skewness"`

	PDF     []float64 `json:"damage_distribution" msgpack:"damage_distribution"`
	Support []float64 `json:"support" msgpack:"support"`

	Splits []PartySplit `json:"splits" msgpack:"splits"`
}

// PlayerAnalysis is the full GET payload: the persisted row plus the blob
// distributions.
type PlayerAnalysis struct {
	Meta    *model.PlayerAnalysis  `json:"meta"`
	Payload *PlayerAnalysisPayload `json:"payload"`
}

// PartyAnalysis is the full GET payload for a party analysis.
type PartyAnalysis struct {
	Meta    *model.PartyAnalysis    `json:"meta"`
	Members []*model.PlayerAnalysis `json:"members"`
	Payload *PartyAnalysisPayload   `json:"payload"`
}
