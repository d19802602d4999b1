// Package fflogs is a client for the FFLogs GraphQL v2 API: report URL
// parsing, encounter metadata, and damage event retrieval.
package fflogs

import (
	"net/url"
	"strconv"
	"strings"

	"xivcrit.app/backend/internal/pkg/apperr"
)

// FightLast marks a fight reference of "last", resolved to the report's
// final fight before querying.
const FightLast = -1

var (
	ErrNotFFLogsURL  = apperr.ErrInvalidReq.Msg("URL isn't fflogs.")
	ErrNoFightID     = apperr.ErrInvalidReq.Msg("A specific fight must be linked, ?fight={fightID} or ?fight=last.")
	ErrNoReportID    = apperr.ErrInvalidReq.Msg("No report ID found.")
	ErrReportPrivate = apperr.ErrReportPrivate.Msg("Linked report is private/no longer available.")
)

// ParseReportURL extracts the report code and fight ID from an FFLogs report
// link. A fight of "last" returns FightLast.
func ParseReportURL(raw string) (code string, fightID int, err error) {
	// FFLogs switched from # to ? for the fight fragment at some point;
	// both forms remain in circulation.
	raw = strings.ReplaceAll(raw, "#", "?")

	u, parseErr := url.Parse(raw)
	if parseErr != nil || u.Host != "www.fflogs.com" {
		return "", 0, ErrNotFFLogsURL
	}

	fightID, err = parseFightID(u.Query())
	if err != nil {
		return "", 0, err
	}

	code, err = parseReportCode(u.Path)
	if err != nil {
		return "", 0, err
	}

	return code, fightID, nil
}

func parseFightID(query url.Values) (int, error) {
	fight := query.Get("fight")
	if fight == "" {
		return 0, ErrNoFightID
	}
	if fight == "last" {
		return FightLast, nil
	}

	id, err := strconv.Atoi(fight)
	if err != nil {
		return 0, ErrNoFightID
	}
	return id, nil
}

func parseReportCode(path string) (string, error) {
	parts := make([]string, 0, 2)
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			parts = append(parts, segment)
		}
	}

	if len(parts) != 2 || parts[0] != "reports" || len(parts[1]) != 16 {
		return "", ErrNoReportID
	}
	return parts[1], nil
}
