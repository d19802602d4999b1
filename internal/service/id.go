package service

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// NewAnalysisID mints an opaque identifier for a player or party analysis.
func NewAnalysisID() string {
	return strings.ToLower(ulid.Make().String())
}

// PlayerErrorID derives a stable error row ID from the failing inputs, so a
// repeated failure replaces its previous record.
func PlayerErrorID(reportID string, fightID, phaseID, playerID int) string {
	return fmt.Sprintf("pl-%s-%d.%d.%d", reportID, fightID, phaseID, playerID)
}

// PartyErrorID is the party analysis equivalent of PlayerErrorID.
func PartyErrorID(reportID string, fightID, phaseID int) string {
	return fmt.Sprintf("pa-%s-%d.%d", reportID, fightID, phaseID)
}
