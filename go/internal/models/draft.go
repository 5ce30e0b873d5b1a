package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftType defines how the pick order moves between rounds.
type DraftType string

const (
	DraftTypeLinear DraftType = "LINEAR"
	DraftTypeSnake  DraftType = "SNAKE"
)

// DraftStatus defines the status of a draft event.
type DraftStatus string

const (
	DraftStatusLotteryPending DraftStatus = "LOTTERY_PENDING"
	DraftStatusScheduled      DraftStatus = "SCHEDULED"
	DraftStatusInProgress     DraftStatus = "IN_PROGRESS"
	DraftStatusCompleted      DraftStatus = "COMPLETED"
)

// DraftEvent is one draft run over a pool that requires one.
// Immutable once completed except for the pick log, which never shrinks.
type DraftEvent struct {
	ID               uuid.UUID               `json:"id"`
	PoolID           uuid.UUID               `json:"pool_id"`
	DraftType        DraftType               `json:"draft_type"`
	Status           DraftStatus             `json:"status"`
	TeamIDs          []uuid.UUID             `json:"team_ids"`
	CoachByTeam      map[uuid.UUID]uuid.UUID `json:"coach_by_team"`
	DraftOrder       []uuid.UUID             `json:"draft_order"`
	LotteryEnabled   bool                    `json:"lottery_enabled"`
	LotteryCompleted bool                    `json:"lottery_completed"`
	TotalPlayers     int                     `json:"total_players"`
	TotalRounds      int                     `json:"total_rounds"`
	CurrentRound     int                     `json:"current_round"`
	CurrentPick      int                     `json:"current_pick"` // 0-based count of picks made
	PlayersRemaining int                     `json:"players_remaining"`
	ScheduledAt      *time.Time              `json:"scheduled_at,omitempty"`
	StartedAt        *time.Time              `json:"started_at,omitempty"`
	CompletedAt      *time.Time              `json:"completed_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}
