package fflogs

import (
	"strings"

	"github.com/tidwall/gjson"

	"xivcrit.app/backend/internal/gamedata"
)

// PlayerEntry is one actor in a report's damage table.
type PlayerEntry struct {
	Job          string        `json:"job"`
	PlayerName   string        `json:"player_name"`
	PlayerServer string        `json:"player_server"`
	PlayerID     int           `json:"player_id"`
	PetIDs       []int         `json:"pet_ids"`
	Role         gamedata.Role `json:"role"`
}

// EncounterInfo is the metadata needed to set up an analysis of a fight.
type EncounterInfo struct {
	FightID          int           `json:"fight_id"`
	EncounterID      int           `json:"encounter_id"`
	StartTime        int64         `json:"start_time"`
	FightName        string        `json:"fight_name"`
	ReportStartTime  int64         `json:"report_start_time"`
	LastPhase        int           `json:"last_phase"`
	FightTime        float64       `json:"fight_time"`
	Jobs             []PlayerEntry `json:"jobs"`
	LimitBreak       []PlayerEntry `json:"limit_break"`
	ExcludedEnemyIDs []int         `json:"excluded_enemy_ids"`
}

// PhaseTransition marks the start of a phase within a fight.
type PhaseTransition struct {
	ID        int
	StartTime int64
}

// FightInfo carries the fight-level data entering the action table: timing,
// region, echo state and the inferred medication strength.
type FightInfo struct {
	ReportStartTime  int64
	Region           string
	FightName        string
	EncounterID      int
	Kill             bool
	HasEcho          bool
	Difficulty       int
	StartTime        int64 // ms, relative to report start
	EndTime          int64
	PhaseTransitions []PhaseTransition
	RankingDuration  int64
	Downtime         int64
	MedicationAmount int
}

// Event is one damage event from the DpsActions query. Unpaired events are
// casts whose damage never landed; they are kept through job gauge handling
// and filtered before the rotation is built.
type Event struct {
	Timestamp      int64
	Type           string
	SourceID       int
	TargetID       int
	PacketID       int64
	TargetInstance int
	AbilityName    string
	AbilityGameID  int
	Buffs          []string
	Amount         float64
	Multiplier     float64
	HasMultiplier  bool
	BonusPercent   int
	HitType        int
	DirectHit      bool
	Tick           bool
	Unpaired       bool
}

func eventFromJSON(e gjson.Result) Event {
	ev := Event{
		Timestamp:      e.Get("timestamp").Int(),
		Type:           e.Get("type").String(),
		SourceID:       int(e.Get("sourceID").Int()),
		TargetID:       int(e.Get("targetID").Int()),
		PacketID:       e.Get("packetID").Int(),
		TargetInstance: 1,
		AbilityName:    e.Get("ability.name").String(),
		AbilityGameID:  int(e.Get("ability.guid").Int()),
		Amount:         e.Get("amount").Float(),
		HitType:        int(e.Get("hitType").Int()),
		DirectHit:      e.Get("directHit").Bool(),
		Tick:           e.Get("tick").Bool(),
		Unpaired:       e.Get("unpaired").Bool(),
		BonusPercent:   gamedata.NoBonus,
	}

	if ti := e.Get("targetInstance"); ti.Exists() {
		ev.TargetInstance = int(ti.Int())
	}
	if bp := e.Get("bonusPercent"); bp.Exists() {
		ev.BonusPercent = int(bp.Int())
	}
	if m := e.Get("multiplier"); m.Exists() {
		ev.Multiplier = m.Float()
		ev.HasMultiplier = true
	}
	if buffs := e.Get("buffs").String(); buffs != "" {
		ev.Buffs = strings.Split(strings.TrimSuffix(buffs, "."), ".")
	}

	return ev
}
