// Package gamedata holds static FFXIV game information: encounters, patch
// windows, job roles, buffs and potencies. Values originate from the game
// client and FFLogs and only change on patch boundaries, so they are compiled
// in rather than stored.
package gamedata

// Encounter describes a supported duty.
type Encounter struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	ContentType   string `json:"content_type"`
	RelevantPatch string `json:"relevant_patch"`
}

// Encounters lists every duty analyses are accepted for.
var Encounters = []Encounter{
	{ID: 88, Name: "Kokytos", ShortName: "P9S", ContentType: "Raid", RelevantPatch: "6.4 - 6.5"},
	{ID: 89, Name: "Pandaemonium", ShortName: "P10S", ContentType: "Raid", RelevantPatch: "6.4 - 6.5"},
	{ID: 90, Name: "Themis", ShortName: "P11S", ContentType: "Raid", RelevantPatch: "6.4 - 6.5"},
	{ID: 91, Name: "Athena", ShortName: "P12S P1", ContentType: "Raid", RelevantPatch: "6.4 - 6.5"},
	{ID: 92, Name: "Pallas Athena", ShortName: "P12S", ContentType: "Raid", RelevantPatch: "6.4 - 6.5"},
	{ID: 93, Name: "Black Cat", ShortName: "M1S", ContentType: "Raid", RelevantPatch: "7.0 - 7.2"},
	{ID: 94, Name: "Honey B. Lovely", ShortName: "M2S", ContentType: "Raid", RelevantPatch: "7.0 - 7.2"},
	{ID: 95, Name: "Brute Bomber", ShortName: "M3S", ContentType: "Raid", RelevantPatch: "7.0 - 7.2"},
	{ID: 96, Name: "Wicked Thunder", ShortName: "M4S", ContentType: "Raid", RelevantPatch: "7.0 - 7.2"},
	{ID: 1069, Name: "Golbez", ShortName: "Golbez EX", ContentType: "Extreme", RelevantPatch: "6.4 - 6.5"},
	{ID: 1070, Name: "Zeromus", ShortName: "Zeromus EX", ContentType: "Extreme", RelevantPatch: "6.4 - 6.5"},
	{ID: 1072, Name: "Zoraal Ja", ShortName: "Zoraal Ja EX", ContentType: "Extreme", RelevantPatch: "7.0 - 7.2"},
	{ID: 1078, Name: "Queen Eternal", ShortName: "Queen Eternal EX", ContentType: "Extreme", RelevantPatch: "7.0 - 7.2"},
	{ID: 1079, Name: "Futures Rewritten", ShortName: "FRU", ContentType: "Ultimate", RelevantPatch: "7.0 - 7.2"},
}

// ShortNameOf returns the community short name for an encounter, empty when
// the encounter is unknown.
func ShortNameOf(encounterID int) string {
	if e, ok := FindEncounter(encounterID); ok {
		return e.ShortName
	}
	return ""
}

// EncounterLevel maps an encounter ID to the level the duty syncs to.
var EncounterLevel = map[int]int{
	88:   90,
	89:   90,
	90:   90,
	91:   90,
	92:   90,
	93:   100,
	94:   100,
	95:   100,
	96:   100,
	97:   100,
	1069: 90,
	1070: 90,
	1071: 100,
	1072: 100,
	1078: 100,
	1079: 100,
}

// BossHP is used by party analyses to estimate kill time percentiles.
var BossHP = map[int]int{
	88:   36660084,
	89:   43656896,
	90:   49884204,
	91:   32790420,
	92:   40192744,
	93:   75867953,
	94:   83966736,
	95:   96522580,
	96:   114525943,
	1069: 37255204,
	1070: 40478540,
	1072: 66146024,
}

// EncounterPhases maps multi-phase encounters to their named phases.
var EncounterPhases = map[int]map[int]string{
	1079: {
		1: "P1: Fatebreaker",
		2: "P2: Usurper of Frost",
		3: "P3: Oracle of Darkness",
		4: "P4: Enter the Dragon",
		5: "P5: Pandora",
	},
}

// ExcludedEnemyGameIDs names enemies whose damage FFLogs excludes from
// rankings, for example the FRU ice crystals.
var ExcludedEnemyGameIDs = map[int][]int{
	1079: {17828},
}

// SkipKillTimeAnalysisPhases lists fixed-length phases where shortening the
// kill time is not meaningful.
var SkipKillTimeAnalysisPhases = map[int][]int{
	1079: {2, 3},
}

// IsValid reports whether analyses are accepted for the encounter.
func IsValid(encounterID int) bool {
	for _, e := range Encounters {
		if e.ID == encounterID {
			return true
		}
	}
	return false
}

// FindEncounter returns the encounter with the given ID, if supported.
func FindEncounter(encounterID int) (Encounter, bool) {
	for _, e := range Encounters {
		if e.ID == encounterID {
			return e, true
		}
	}
	return Encounter{}, false
}
