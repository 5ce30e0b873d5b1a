package draft

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// PickTurn identifies whose turn a pick index is.
type PickTurn struct {
	Round  int       // 1-indexed round
	Slot   int       // 0-based position within the round
	TeamID uuid.UUID // picking team
}

// TurnForPick computes the picking team for a 0-based pick index. Linear
// drafts walk the order every round; snake drafts reverse it on
// even-numbered rounds. The same function backs the turn check in MakePick
// and the "whose turn is it" read query, so the two can never diverge.
func TurnForPick(draftType models.DraftType, order []uuid.UUID, pickIndex int) (PickTurn, error) {
	teamCount := len(order)
	if teamCount == 0 {
		return PickTurn{}, fmt.Errorf("draft order is empty")
	}
	if pickIndex < 0 {
		return PickTurn{}, fmt.Errorf("pick index %d is negative", pickIndex)
	}

	round := pickIndex/teamCount + 1
	slot := pickIndex % teamCount

	idx := slot
	if draftType == models.DraftTypeSnake && round%2 == 0 {
		idx = teamCount - 1 - slot
	}

	return PickTurn{
		Round:  round,
		Slot:   slot,
		TeamID: order[idx],
	}, nil
}

// TotalRounds returns ceil(totalPlayers / teamCount).
func TotalRounds(totalPlayers, teamCount int) int {
	if teamCount <= 0 {
		return 0
	}
	return (totalPlayers + teamCount - 1) / teamCount
}
