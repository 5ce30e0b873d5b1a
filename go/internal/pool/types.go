package pool

import (
	"time"

	"github.com/google/uuid"
)

// RegisterPlayerRequest represents one registration into a pool
type RegisterPlayerRequest struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"birth_date"`
}

// PoolCounts is the post-registration counter snapshot returned to callers
type PoolCounts struct {
	PlayerCount          int `json:"player_count"`
	RecommendedTeamCount int `json:"recommended_team_count"`
}
