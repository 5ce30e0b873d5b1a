package draft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

func draftOrder(n int) []uuid.UUID {
	order := make([]uuid.UUID, n)
	for i := range order {
		order[i] = uuid.New()
	}
	return order
}

func TestTurnForPickLinear(t *testing.T) {
	order := draftOrder(3)

	// Linear drafts repeat the same order every round.
	for pick := 0; pick < 12; pick++ {
		turn, err := TurnForPick(models.DraftTypeLinear, order, pick)
		require.NoError(t, err)
		assert.Equal(t, pick/3+1, turn.Round)
		assert.Equal(t, pick%3, turn.Slot)
		assert.Equal(t, order[pick%3], turn.TeamID)
	}
}

func TestTurnForPickSnake(t *testing.T) {
	order := draftOrder(4)

	tests := []struct {
		pick      int
		wantRound int
		wantTeam  uuid.UUID
	}{
		{pick: 0, wantRound: 1, wantTeam: order[0]},
		{pick: 3, wantRound: 1, wantTeam: order[3]},
		{pick: 4, wantRound: 2, wantTeam: order[3]}, // reversal: same team picks back to back
		{pick: 7, wantRound: 2, wantTeam: order[0]},
		{pick: 8, wantRound: 3, wantTeam: order[0]}, // and again at the other wall
		{pick: 11, wantRound: 3, wantTeam: order[3]},
	}

	for _, tt := range tests {
		turn, err := TurnForPick(models.DraftTypeSnake, order, tt.pick)
		require.NoError(t, err)
		assert.Equal(t, tt.wantRound, turn.Round, "pick %d", tt.pick)
		assert.Equal(t, tt.wantTeam, turn.TeamID, "pick %d", tt.pick)
	}
}

// Every full round of a snake draft gives each team exactly one pick,
// regardless of team count.
func TestSnakeRoundsAreFair(t *testing.T) {
	for _, teamCount := range []int{2, 3, 5, 8} {
		order := draftOrder(teamCount)
		for round := 0; round < 6; round++ {
			seen := make(map[uuid.UUID]bool, teamCount)
			for slot := 0; slot < teamCount; slot++ {
				turn, err := TurnForPick(models.DraftTypeSnake, order, round*teamCount+slot)
				require.NoError(t, err)
				seen[turn.TeamID] = true
			}
			assert.Len(t, seen, teamCount, "teams=%d round=%d", teamCount, round+1)
		}
	}
}

func TestTurnForPickErrors(t *testing.T) {
	_, err := TurnForPick(models.DraftTypeSnake, nil, 0)
	assert.Error(t, err)

	_, err = TurnForPick(models.DraftTypeSnake, draftOrder(2), -1)
	assert.Error(t, err)
}

func TestTotalRounds(t *testing.T) {
	tests := []struct {
		players, teams, want int
	}{
		{44, 2, 22},
		{45, 2, 23},
		{10, 3, 4},
		{0, 4, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalRounds(tt.players, tt.teams), "players=%d teams=%d", tt.players, tt.teams)
	}
}
