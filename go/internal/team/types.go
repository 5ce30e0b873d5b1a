package team

import (
	"errors"

	"github.com/google/uuid"
)

// ErrTeamsAlreadyCreated is returned when team formation runs against a
// pool that is no longer open
var ErrTeamsAlreadyCreated = errors.New("teams already created for pool")

// ErrTeamNotFound is returned when no team exists for an id
var ErrTeamNotFound = errors.New("team not found")

// ErrDraftRequired is returned when bulk assignment targets a pool whose
// players must be allocated by its draft
var ErrDraftRequired = errors.New("draft required for pool")

// TeamSpec describes one team to form for a pool
type TeamSpec struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	CoachID uuid.UUID `json:"coach_id"`
}
