package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftPick represents a single pick in a draft. Appended exactly once
// per successful pick; never edited or removed.
type DraftPick struct {
	ID          uuid.UUID `json:"id"`
	DraftID     uuid.UUID `json:"draft_id"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`         // pick number in the round
	OverallPick int       `json:"overall_pick"` // pick number overall
	TeamID      uuid.UUID `json:"team_id"`
	PlayerID    uuid.UUID `json:"player_id"`
	CoachID     uuid.UUID `json:"coach_id"`
	PickedAt    time.Time `json:"picked_at"`
}
