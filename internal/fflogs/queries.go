package fflogs

import (
	"context"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"xivcrit.app/backend/internal/gamedata"
	"xivcrit.app/backend/internal/pkg/apperr"
)

const lastFightIDQuery = `
query LastFightID($code: String!) {
	reportData {
		report(code: $code) {
			segments,
			startTime,
			exportedSegments,
			fights{
				endTime
			}
		}
	}
}`

const encounterInfoQuery = `
query EncounterInfo($code: String!, $id: [Int!]) {
	reportData {
		report(code: $code) {
			startTime
			rankings(fightIDs: $id)
			fights(fightIDs: $id, translate: true) {
				encounterID
				kill,
				startTime,
				endTime,
				name,
				lastPhase
				enemyNPCs{
					gameID,
					id
				}
			}
			playerDetails(fightIDs: $id)
			table(fightIDs: $id, dataType: DamageDone)
		}
	}
}`

const fightInformationQuery = `
query FightInformation($code: String!, $id: [Int]!, $sourceID: Int!) {
	reportData {
		report(code: $code) {
			startTime
			region{
				name,
				compactName
			}
			potionType: table(
				fightIDs: $id
				dataType: Buffs
				abilityID: 1000049
				sourceID: $sourceID
			)
			table(fightIDs: $id, dataType: DamageDone)
			fights(fightIDs: $id, translate: true) {
				encounterID
				kill
				startTime
				endTime
				name
				hasEcho
				difficulty
				phaseTransitions { id startTime }
			}
			rankings(fightIDs: $id)
		}
	}
}`

const phaseTimeQuery = `
query PhaseTime($code: String!, $id: [Int]!, $start: Float!, $end: Float!) {
	reportData {
		report(code: $code) {
			table(
				fightIDs: $id
				dataType: DamageDone
				startTime: $start
				endTime: $end
			)
		}
	}
}`

const dpsActionsQuery = `
query DpsActions(
	$code: String!
	$id: [Int]!
	$sourceID: Int!
	$startTime: Float!
	$endTime: Float!
) {
	reportData {
		report(code: $code) {
			events(
				fightIDs: $id
				startTime: $startTime
				endTime: $endTime
				dataType: DamageDone
				sourceID: $sourceID
				useAbilityIDs: false
				limit: 10000
			) {
				data
				nextPageTimestamp
			}
		}
	}
}`

const buffBandsQuery = `
query BuffBands(
	$code: String!
	$id: [Int]!
	$sourceID: Int!
	$abilityID: Float!
) {
	reportData {
		report(code: $code) {
			startTime
			table(
				fightIDs: $id
				dataType: Buffs
				sourceID: $sourceID
				abilityID: $abilityID
			)
		}
	}
}`

// LastFightID resolves fight=last to the report's final fight number, which
// is the count of fights with an end time.
func (c *Client) LastFightID(ctx context.Context, code string) (int, error) {
	result, err := c.Query(ctx, "LastFightID", lastFightIDQuery, map[string]any{"code": code})
	if err != nil {
		return 0, err
	}

	n := len(result.Get("data.reportData.report.fights").Array())
	if n == 0 {
		return 0, apperr.ErrNotFound.Msg("report has no fights")
	}
	return n, nil
}

// EncounterInfo fetches the metadata of a fight: encounter, participants,
// limit break actors, duration and excluded enemies. A fightID of FightLast
// is resolved first.
func (c *Client) EncounterInfo(ctx context.Context, code string, fightID int) (*EncounterInfo, error) {
	if fightID == FightLast {
		last, err := c.LastFightID(ctx, code)
		if err != nil {
			return nil, err
		}
		fightID = last
	}

	result, err := c.Query(ctx, "EncounterInfo", encounterInfoQuery, map[string]any{
		"code": code,
		"id":   []int{fightID},
	})
	if err != nil {
		return nil, err
	}

	report := result.Get("data.reportData.report")
	fights := report.Get("fights").Array()
	if len(fights) == 0 {
		return nil, apperr.ErrNotFound.Msg("fight=%d does not exist", fightID)
	}
	fight := fights[0]

	info := &EncounterInfo{
		FightID:         fightID,
		EncounterID:     int(fight.Get("encounterID").Int()),
		StartTime:       fight.Get("startTime").Int(),
		FightName:       fight.Get("name").String(),
		ReportStartTime: report.Get("startTime").Int(),
		LastPhase:       int(fight.Get("lastPhase").Int()),
		FightTime:       encounterDuration(report, fight),
	}

	info.Jobs, info.LimitBreak = encounterActors(report)
	info.ExcludedEnemyIDs = excludedEnemyIDs(fight, info.EncounterID)

	return info, nil
}

// encounterDuration prefers the rankings duration and falls back to the
// fight's wall time.
func encounterDuration(report, fight gjson.Result) float64 {
	if rankings := report.Get("rankings.data").Array(); len(rankings) > 0 {
		return rankings[0].Get("duration").Float() / 1000
	}
	return (fight.Get("endTime").Float() - fight.Get("startTime").Float()) / 1000
}

func encounterActors(report gjson.Result) (jobs, limitBreak []PlayerEntry) {
	servers := map[string]string{}
	report.Get("playerDetails.data.playerDetails").ForEach(func(_, group gjson.Result) bool {
		for _, p := range group.Array() {
			servers[p.Get("name").String()] = p.Get("server").String()
		}
		return true
	})

	for _, entry := range report.Get("table.data.entries").Array() {
		var petIDs []int
		for _, pet := range entry.Get("pets").Array() {
			petIDs = append(petIDs, int(pet.Get("id").Int()))
		}

		name := entry.Get("name").String()
		player := PlayerEntry{
			Job:        entry.Get("icon").String(),
			PlayerName: name,
			PlayerID:   int(entry.Get("id").Int()),
			PetIDs:     petIDs,
		}

		if name == "Limit Break" {
			player.Role = "Limit Break"
			limitBreak = append(limitBreak, player)
			continue
		}

		player.PlayerServer = servers[name]
		player.Role, _ = gamedata.RoleOf(player.Job)
		jobs = append(jobs, player)
	}
	return jobs, limitBreak
}

// excludedEnemyIDs maps excluded enemy game IDs to their report actor IDs.
func excludedEnemyIDs(fight gjson.Result, encounterID int) []int {
	gameIDs, ok := gamedata.ExcludedEnemyGameIDs[encounterID]
	if !ok {
		return nil
	}

	var out []int
	for _, npc := range fight.Get("enemyNPCs").Array() {
		for _, gameID := range gameIDs {
			if int(npc.Get("gameID").Int()) == gameID {
				out = append(out, int(npc.Get("id").Int()))
			}
		}
	}
	return out
}

// DefaultMedicationAmount is assumed when the potion strength cannot be
// inferred from the report.
const DefaultMedicationAmount = 262

// FightInformation fetches the fight-level data entering an action table for
// one player: timing, region, echo state, phase transitions and medication.
func (c *Client) FightInformation(ctx context.Context, code string, fightID, sourceID int) (*FightInfo, error) {
	result, err := c.Query(ctx, "FightInformation", fightInformationQuery, map[string]any{
		"code":     code,
		"id":       []int{fightID},
		"sourceID": sourceID,
	})
	if err != nil {
		return nil, err
	}

	report := result.Get("data.reportData.report")
	fights := report.Get("fights").Array()
	if len(fights) == 0 {
		return nil, apperr.ErrNotFound.Msg("fight=%d does not exist", fightID)
	}
	fight := fights[0]

	info := &FightInfo{
		ReportStartTime: report.Get("startTime").Int(),
		Region:          report.Get("region.compactName").String(),
		FightName:       fight.Get("name").String(),
		EncounterID:     int(fight.Get("encounterID").Int()),
		Kill:            fight.Get("kill").Bool(),
		HasEcho:         fight.Get("hasEcho").Bool(),
		Difficulty:      int(fight.Get("difficulty").Int()),
		StartTime:       fight.Get("startTime").Int(),
		EndTime:         fight.Get("endTime").Int(),
		Downtime:        report.Get("table.data.downtime").Int(),
	}

	for _, pt := range fight.Get("phaseTransitions").Array() {
		info.PhaseTransitions = append(info.PhaseTransitions, PhaseTransition{
			ID:        int(pt.Get("id").Int()),
			StartTime: pt.Get("startTime").Int(),
		})
	}

	if rankings := report.Get("rankings.data").Array(); len(rankings) > 0 {
		info.RankingDuration = rankings[0].Get("duration").Int()
	}

	info.MedicationAmount = medicationAmount(report.Get("potionType.data.auras"))

	return info, nil
}

// medicationAmount infers the potion strength from the medicated aura's
// applying abilities. Potions of the wrong stat count for nothing; when the
// aura cannot be parsed the highest current-tier strength is assumed.
func medicationAmount(auras gjson.Result) int {
	arr := auras.Array()
	if len(arr) == 0 {
		return 0
	}

	for _, aura := range arr {
		applied := aura.Get("appliedByAbilities").Array()
		if len(applied) == 0 {
			continue
		}

		job := aura.Get("icon").String()
		strength := 0
		for _, ability := range applied {
			name := ability.Get("name").String()
			potionName, potionType, ok := splitPotionName(name)
			if !ok {
				return DefaultMedicationAmount
			}
			if s := gamedata.TinctureStrength(potionName, potionType, job); s > strength {
				strength = s
			}
		}
		return strength
	}
	return 0
}

// splitPotionName splits an aura ability name such as
// "Grade 2 Gemdraught of Strength [HQ]" into the potion name
// ("Grade 2 Gemdraught [HQ]") and its stat type ("Strength").
func splitPotionName(name string) (potionName, potionType string, ok bool) {
	parts := strings.Split(name, " ")
	if len(parts) < 5 {
		return "", "", false
	}

	potionName = strings.Join(parts[:3], " ")
	if parts[len(parts)-1] == "[HQ]" {
		potionName += " [HQ]"
	}
	return potionName, parts[4], true
}

// PhaseDowntime returns the downtime within [start, end] of a fight, used
// when analyzing a single phase.
func (c *Client) PhaseDowntime(ctx context.Context, code string, fightID int, start, end int64) (int64, error) {
	result, err := c.Query(ctx, "PhaseTime", phaseTimeQuery, map[string]any{
		"code":  code,
		"id":    []int{fightID},
		"start": start,
		"end":   end,
	})
	if err != nil {
		return 0, err
	}
	return result.Get("data.reportData.report.table.data.downtime").Int(), nil
}

// DamageEvents fetches the damage events of one actor over [startTime,
// endTime], relative to report start. The API caps a response at 10000
// events, so long fights come back in pages; we keep re-querying from
// nextPageTimestamp until it runs out.
func (c *Client) DamageEvents(ctx context.Context, code string, fightID, sourceID int, startTime, endTime int64) ([]Event, error) {
	var events []Event
	cursor := startTime
	for {
		result, err := c.Query(ctx, "DpsActions", dpsActionsQuery, map[string]any{
			"code":      code,
			"id":        []int{fightID},
			"sourceID":  sourceID,
			"startTime": cursor,
			"endTime":   endTime,
		})
		if err != nil {
			return nil, err
		}

		page, next := eventsPage(result)
		events = append(events, page...)
		if next <= cursor {
			return events, nil
		}
		cursor = next
	}
}

// eventsPage parses one page of a DpsActions response, returning its events
// and the start timestamp of the following page (0 on the last page).
func eventsPage(result gjson.Result) ([]Event, int64) {
	data := result.Get("data.reportData.report.events.data").Array()
	events := make([]Event, 0, len(data))
	for _, e := range data {
		events = append(events, eventFromJSON(e))
	}
	return events, result.Get("data.reportData.report.events.nextPageTimestamp").Int()
}

// MergeEvents interleaves per-actor event slices into one timeline ordered by
// timestamp. Ties keep the order of the input batches, so a player's cast
// stays ahead of a pet hit landing on the same tick.
func MergeEvents(batches ...[]Event) []Event {
	var n int
	for _, b := range batches {
		n += len(b)
	}
	merged := make([]Event, 0, n)
	for _, b := range batches {
		merged = append(merged, b...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp < merged[j].Timestamp
	})
	return merged
}

// BuffBands returns the absolute [start, end] windows a buff was active on a
// player. Job gauge handling uses these to tell which actions happened under
// a tracked buff.
func (c *Client) BuffBands(ctx context.Context, code string, fightID, sourceID, abilityID int) ([][2]int64, error) {
	result, err := c.Query(ctx, "BuffBands", buffBandsQuery, map[string]any{
		"code":      code,
		"id":        []int{fightID},
		"sourceID":  sourceID,
		"abilityID": abilityID,
	})
	if err != nil {
		return nil, err
	}

	report := result.Get("data.reportData.report")
	reportStart := report.Get("startTime").Int()

	auras := report.Get("table.data.auras").Array()
	if len(auras) == 0 {
		return nil, nil
	}

	var bands [][2]int64
	for _, band := range auras[0].Get("bands").Array() {
		bands = append(bands, [2]int64{
			reportStart + band.Get("startTime").Int(),
			reportStart + band.Get("endTime").Int(),
		})
	}
	return bands, nil
}
