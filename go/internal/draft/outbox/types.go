package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Event types published on the allocation stream.
const (
	EventDraftScheduled   = "draft.scheduled"
	EventLotteryCompleted = "lottery.completed"
	EventPickMade         = "pick.made"
	EventDraftCompleted   = "draft.completed"
	EventPoolAssigned     = "pool.assigned"
)

// Event is one pending outbox row. Rows are written in the same
// transaction as the state change they describe and relayed by the worker.
type Event struct {
	ID          uuid.UUID  `json:"id"`
	EventType   string     `json:"event_type"`
	PoolID      uuid.UUID  `json:"pool_id"`
	DraftID     *uuid.UUID `json:"draft_id,omitempty"`
	Payload     []byte     `json:"payload"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// PickMadePayload describes one completed pick.
type PickMadePayload struct {
	PickID      string    `json:"pick_id"`
	DraftID     string    `json:"draft_id"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`
	OverallPick int       `json:"overall_pick"`
	TeamID      string    `json:"team_id"`
	PlayerID    string    `json:"player_id"`
	CoachID     string    `json:"coach_id"`
	PickedAt    time.Time `json:"picked_at"`
}

// LotteryCompletedPayload carries the randomized draft order.
type LotteryCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	DraftOrder  []string  `json:"draft_order"`
	CompletedAt time.Time `json:"completed_at"`
}

// DraftScheduledPayload announces a newly scheduled draft.
type DraftScheduledPayload struct {
	DraftID     string    `json:"draft_id"`
	PoolID      string    `json:"pool_id"`
	DraftType   string    `json:"draft_type"`
	TotalRounds int       `json:"total_rounds"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// DraftCompletedPayload announces a finished draft.
type DraftCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	PoolID      string    `json:"pool_id"`
	TotalPicks  int       `json:"total_picks"`
	CompletedAt time.Time `json:"completed_at"`
}

// PoolAssignedPayload announces that every player in a pool has a team.
type PoolAssignedPayload struct {
	PoolID       string    `json:"pool_id"`
	TeamID       string    `json:"team_id,omitempty"` // set for auto-assignment
	PlayersMoved int       `json:"players_moved"`
	AssignedAt   time.Time `json:"assigned_at"`
}
