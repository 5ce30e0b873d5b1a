package models

import (
	"time"

	"github.com/google/uuid"
)

// PlayerStatus is the assignment outcome of a pool registration.
// A player leaves IN_POOL exactly once; both assigned states are terminal.
type PlayerStatus string

const (
	PlayerStatusInPool       PlayerStatus = "IN_POOL"
	PlayerStatusAutoAssigned PlayerStatus = "AUTO_ASSIGNED"
	PlayerStatusDrafted      PlayerStatus = "DRAFTED"
)

// PoolPlayer is one player's registration record inside one pool.
// Records are never deleted; status is the record of outcome.
type PoolPlayer struct {
	ID             uuid.UUID    `json:"id"`
	PoolID         uuid.UUID    `json:"pool_id"`
	FirstName      string       `json:"first_name"`
	LastName       string       `json:"last_name"`
	BirthDate      time.Time    `json:"birth_date"`
	Status         PlayerStatus `json:"status"`
	AssignedTeamID *uuid.UUID   `json:"assigned_team_id,omitempty"`
	RegisteredAt   time.Time    `json:"registered_at"`
}
