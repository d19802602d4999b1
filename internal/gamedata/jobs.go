package gamedata

// JobProfile carries the per-job constants entering the damage formula and
// the job build ingestion: which stat is the main stat, which speed stat the
// job melds, the job's main stat modifier and damage trait.
type JobProfile struct {
	Abbrev       string
	MainStatType string
	SpeedStat    string
	JobAttribute int
	Trait        float64
	Tank         bool
	WeaponDelay  float64
}

// JobProfiles maps FFLogs job names to their profiles. Attribute modifiers
// and traits are level 100 values.
var JobProfiles = map[string]JobProfile{
	"WhiteMage":   {Abbrev: "WHM", MainStatType: "MND", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 3.44},
	"Scholar":     {Abbrev: "SCH", MainStatType: "MND", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 3.12},
	"Astrologian": {Abbrev: "AST", MainStatType: "MND", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 3.2},
	"Sage":        {Abbrev: "SGE", MainStatType: "MND", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 2.8},
	"Paladin":     {Abbrev: "PLD", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 100, Trait: 1, Tank: true, WeaponDelay: 2.24},
	"Warrior":     {Abbrev: "WAR", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 105, Trait: 1, Tank: true, WeaponDelay: 3.36},
	"DarkKnight":  {Abbrev: "DRK", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 105, Trait: 1, Tank: true, WeaponDelay: 2.96},
	"Gunbreaker":  {Abbrev: "GNB", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 100, Trait: 1, Tank: true, WeaponDelay: 2.8},
	"Monk":        {Abbrev: "MNK", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 110, Trait: 1, WeaponDelay: 2.56},
	"Dragoon":     {Abbrev: "DRG", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 115, Trait: 1, WeaponDelay: 2.8},
	"Ninja":       {Abbrev: "NIN", MainStatType: "DEX", SpeedStat: "SKS", JobAttribute: 110, Trait: 1, WeaponDelay: 2.56},
	"Samurai":     {Abbrev: "SAM", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 112, Trait: 1, WeaponDelay: 2.64},
	"Reaper":      {Abbrev: "RPR", MainStatType: "STR", SpeedStat: "SKS", JobAttribute: 115, Trait: 1, WeaponDelay: 3.2},
	"Viper":       {Abbrev: "VPR", MainStatType: "DEX", SpeedStat: "SKS", JobAttribute: 100, Trait: 1, WeaponDelay: 2.64},
	"Bard":        {Abbrev: "BRD", MainStatType: "DEX", SpeedStat: "SKS", JobAttribute: 115, Trait: 1.2, WeaponDelay: 3.04},
	"Dancer":      {Abbrev: "DNC", MainStatType: "DEX", SpeedStat: "SKS", JobAttribute: 115, Trait: 1.2, WeaponDelay: 3.12},
	"Machinist":   {Abbrev: "MCH", MainStatType: "DEX", SpeedStat: "SKS", JobAttribute: 115, Trait: 1.2, WeaponDelay: 2.64},
	"BlackMage":   {Abbrev: "BLM", MainStatType: "INT", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 3.28},
	"Summoner":    {Abbrev: "SMN", MainStatType: "INT", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 3.12},
	"RedMage":     {Abbrev: "RDM", MainStatType: "INT", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 3.44},
	"Pictomancer": {Abbrev: "PCT", MainStatType: "INT", SpeedStat: "SPS", JobAttribute: 115, Trait: 1.3, WeaponDelay: 2.96},
}

// jobsByAbbrev indexes JobProfiles by the three letter abbreviation, which is
// what gear set providers report.
var jobsByAbbrev = func() map[string]string {
	m := make(map[string]string, len(JobProfiles))
	for name, p := range JobProfiles {
		m[p.Abbrev] = name
	}
	return m
}()

// JobProfileOf returns the profile for an FFLogs job name.
func JobProfileOf(job string) (JobProfile, bool) {
	p, ok := JobProfiles[job]
	return p, ok
}

// JobNameByAbbrev resolves a three letter job abbreviation back to the
// FFLogs job name.
func JobNameByAbbrev(abbrev string) (string, bool) {
	name, ok := jobsByAbbrev[abbrev]
	return name, ok
}

// AbbrevOf returns the three letter abbreviation for an FFLogs job name, or
// the name unchanged when unknown.
func AbbrevOf(job string) string {
	if p, ok := JobProfiles[job]; ok {
		return p.Abbrev
	}
	return job
}
