package models

import (
	"time"

	"github.com/google/uuid"
)

// PoolStatus represents the lifecycle status of a registration pool
type PoolStatus string

const (
	PoolStatusOpen         PoolStatus = "OPEN"
	PoolStatusTeamsCreated PoolStatus = "TEAMS_CREATED"
	PoolStatusAssigned     PoolStatus = "ASSIGNED"
)

// PoolDraftStatus tracks where a pool sits in the draft pipeline
type PoolDraftStatus string

const (
	PoolDraftNotNeeded      PoolDraftStatus = "NOT_NEEDED"
	PoolDraftPending        PoolDraftStatus = "PENDING"
	PoolDraftScheduled      PoolDraftStatus = "SCHEDULED"
	PoolDraftLotteryPending PoolDraftStatus = "LOTTERY_PENDING"
	PoolDraftInProgress     PoolDraftStatus = "IN_PROGRESS"
	PoolDraftComplete       PoolDraftStatus = "COMPLETE"
)

// RegistrationPool holds the registered-but-unassigned players for one
// sport x division in a season. player_count always equals the number of
// PoolPlayer rows; requires_draft is fixed at team-creation time.
type RegistrationPool struct {
	ID                   uuid.UUID        `json:"id"`
	SeasonID             uuid.UUID        `json:"season_id"`
	Sport                string           `json:"sport"`
	Division             AgeGroupDivision `json:"division"`
	Status               PoolStatus       `json:"status"`
	PlayerCount          int              `json:"player_count"`
	MinRosterSize        int              `json:"min_roster_size"`
	MaxRosterSize        int              `json:"max_roster_size"`
	RecommendedTeamCount int              `json:"recommended_team_count"`
	TeamCount            int              `json:"team_count"`
	TeamIDs              []uuid.UUID      `json:"team_ids,omitempty"`
	RequiresDraft        bool             `json:"requires_draft"`
	DraftStatus          PoolDraftStatus  `json:"draft_status"`
	DraftID              *uuid.UUID       `json:"draft_id,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// IdealTeamSize is the midpoint roster size used to recommend a team count
func (p *RegistrationPool) IdealTeamSize() int {
	return (p.MinRosterSize + p.MaxRosterSize) / 2
}
