package draft

import (
	"time"

	"github.com/google/uuid"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// ScheduleDraftRequest represents the configuration for a pool's draft
type ScheduleDraftRequest struct {
	ID             uuid.UUID        `json:"id"`
	DraftType      models.DraftType `json:"draft_type"`
	LotteryEnabled bool             `json:"lottery_enabled"`
	ScheduledAt    *time.Time       `json:"scheduled_at,omitempty"`
}

// MakePickRequest represents one turn-validated pick. CoachID comes from
// the verified identity, never from the request body.
type MakePickRequest struct {
	DraftID  uuid.UUID `json:"draft_id"`
	PlayerID uuid.UUID `json:"player_id"`
	CoachID  uuid.UUID `json:"coach_id"`
}

// ApplyPickRequest is the repository-level unit of one successful pick.
// ExpectedPick is the compare-and-set token: the draft row only advances
// if current_pick still equals it.
type ApplyPickRequest struct {
	Pick         models.DraftPick
	PoolID       uuid.UUID
	ExpectedPick int
	NextRound    int
	Completes    bool
}
