package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is bound to exactly one pool and is never re-bound. The player
// count is incremented only by auto-assignment or draft picks.
type Team struct {
	ID            uuid.UUID `json:"id"`
	ProgramID     uuid.UUID `json:"program_id"`
	SeasonID      uuid.UUID `json:"season_id"`
	PoolID        uuid.UUID `json:"pool_id"`
	Name          string    `json:"name"`
	Sport         string    `json:"sport"`
	DivisionLabel string    `json:"division_label"`
	CoachID       uuid.UUID `json:"coach_id"`
	PlayerCount   int       `json:"player_count"`
	CreatedAt     time.Time `json:"created_at"`
}
