package team

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
	pooldomain "github.com/Dtheapp/lockerroomlink-sub005/go/internal/pool"
)

// fakeTeamStore backs both TeamRepository and PoolReader so formation and
// auto-assignment see the same state, like the real repositories sharing
// one database.
type fakeTeamStore struct {
	mu      sync.Mutex
	pools   map[uuid.UUID]*models.RegistrationPool
	players map[uuid.UUID]*models.PoolPlayer
	teams   map[uuid.UUID]*models.Team

	failCreate bool
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{
		pools:   make(map[uuid.UUID]*models.RegistrationPool),
		players: make(map[uuid.UUID]*models.PoolPlayer),
		teams:   make(map[uuid.UUID]*models.Team),
	}
}

func (f *fakeTeamStore) GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", pooldomain.ErrPoolNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeTeamStore) CreateTeamsForPool(ctx context.Context, poolID uuid.UUID, teams []models.Team, requiresDraft bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return fmt.Errorf("storage unavailable")
	}
	p, ok := f.pools[poolID]
	if !ok {
		return fmt.Errorf("%w: %s", pooldomain.ErrPoolNotFound, poolID)
	}
	if p.Status != models.PoolStatusOpen {
		return fmt.Errorf("%w: pool %s", ErrTeamsAlreadyCreated, poolID)
	}
	for i := range teams {
		cp := teams[i]
		f.teams[cp.ID] = &cp
		p.TeamIDs = append(p.TeamIDs, cp.ID)
	}
	p.Status = models.PoolStatusTeamsCreated
	p.TeamCount = len(teams)
	p.RequiresDraft = requiresDraft
	if requiresDraft {
		p.DraftStatus = models.PoolDraftPending
	} else {
		p.DraftStatus = models.PoolDraftNotNeeded
	}
	return nil
}

func (f *fakeTeamStore) AssignAllToTeam(ctx context.Context, poolID, teamID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pools[poolID]; ok && p.RequiresDraft {
		return 0, fmt.Errorf("%w: pool %s", ErrDraftRequired, poolID)
	}
	tm, ok := f.teams[teamID]
	if !ok || tm.PoolID != poolID {
		return 0, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	moved := 0
	for _, pl := range f.players {
		if pl.PoolID == poolID && pl.Status == models.PlayerStatusInPool {
			pl.Status = models.PlayerStatusAutoAssigned
			id := teamID
			pl.AssignedTeamID = &id
			moved++
		}
	}
	if p, ok := f.pools[poolID]; ok && p.Status == models.PoolStatusTeamsCreated {
		p.Status = models.PoolStatusAssigned
	}
	tm.PlayerCount += moved
	return moved, nil
}

func (f *fakeTeamStore) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tm, ok := f.teams[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, id)
	}
	cp := *tm
	return &cp, nil
}

// GetTeamsByPool mirrors the repository: formation order comes from the
// pool's team_ids array, not insertion timestamps.
func (f *fakeTeamStore) GetTeamsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[poolID]
	if !ok {
		return nil, nil
	}
	var out []models.Team
	for _, id := range p.TeamIDs {
		if tm, ok := f.teams[id]; ok {
			out = append(out, *tm)
		}
	}
	return out, nil
}

func (f *fakeTeamStore) addOpenPool(playerCount int) *models.RegistrationPool {
	p := &models.RegistrationPool{
		ID:       uuid.New(),
		SeasonID: uuid.New(),
		Sport:    "soccer",
		Division: models.AgeGroupDivision{Label: "U10", MinBirthYear: 2016, MaxBirthYear: 2017},
		Status:   models.PoolStatusOpen,
	}
	f.pools[p.ID] = p
	for i := 0; i < playerCount; i++ {
		pl := &models.PoolPlayer{
			ID:     uuid.New(),
			PoolID: p.ID,
			Status: models.PlayerStatusInPool,
		}
		f.players[pl.ID] = pl
		p.PlayerCount++
	}
	return p
}

func specs(n int) []TeamSpec {
	out := make([]TeamSpec, n)
	for i := range out {
		out[i] = TeamSpec{ID: uuid.New(), CoachID: uuid.New()}
	}
	return out
}

func TestCreateTeamsForPoolRequiresDraft(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(10)
	app := NewApp(store, store)

	teams, err := app.CreateTeamsForPool(context.Background(), p.ID, specs(2))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	pl, _ := store.GetPool(context.Background(), p.ID)
	assert.Equal(t, models.PoolStatusTeamsCreated, pl.Status)
	assert.True(t, pl.RequiresDraft)
	assert.Equal(t, models.PoolDraftPending, pl.DraftStatus)

	// no player moved; a draft must do the assigning
	for _, stored := range store.players {
		assert.Equal(t, models.PlayerStatusInPool, stored.Status)
	}
}

func TestCreateSingleTeamAutoAssigns(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(7)
	app := NewApp(store, store)

	teams, err := app.CreateTeamsForPool(context.Background(), p.ID, specs(1))
	require.NoError(t, err)
	require.Len(t, teams, 1)

	pl, _ := store.GetPool(context.Background(), p.ID)
	assert.Equal(t, models.PoolStatusAssigned, pl.Status)
	assert.False(t, pl.RequiresDraft)

	tm, _ := store.GetTeam(context.Background(), teams[0].ID)
	assert.Equal(t, 7, tm.PlayerCount)
	for _, stored := range store.players {
		require.NotNil(t, stored.AssignedTeamID)
		assert.Equal(t, teams[0].ID, *stored.AssignedTeamID)
		assert.Equal(t, models.PlayerStatusAutoAssigned, stored.Status)
	}
}

func TestCreateTeamsDefaultNames(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(4)
	app := NewApp(store, store)

	sp := specs(2)
	sp[0].Name = "Thunderbolts"

	teams, err := app.CreateTeamsForPool(context.Background(), p.ID, sp)
	require.NoError(t, err)
	assert.Equal(t, "Thunderbolts", teams[0].Name)
	assert.Equal(t, "soccer U10 Team 2", teams[1].Name)
}

func TestCreateTeamsValidation(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(4)
	app := NewApp(store, store)

	dup := specs(2)
	dup[1].ID = dup[0].ID

	noCoach := specs(1)
	noCoach[0].CoachID = uuid.Nil

	tests := []struct {
		name  string
		specs []TeamSpec
	}{
		{"empty specs", nil},
		{"duplicate team id", dup},
		{"missing coach", noCoach},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.CreateTeamsForPool(context.Background(), p.ID, tt.specs)
			assert.Error(t, err)
		})
	}
}

func TestCreateTeamsTwiceRejected(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(4)
	app := NewApp(store, store)

	_, err := app.CreateTeamsForPool(context.Background(), p.ID, specs(2))
	require.NoError(t, err)

	_, err = app.CreateTeamsForPool(context.Background(), p.ID, specs(2))
	assert.ErrorIs(t, err, ErrTeamsAlreadyCreated)
}

func TestAssignAllToTeamIdempotent(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(5)
	app := NewApp(store, store)

	teams, err := app.CreateTeamsForPool(context.Background(), p.ID, specs(1))
	require.NoError(t, err)

	moved, err := app.AssignAllToTeam(context.Background(), p.ID, teams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)

	tm, _ := store.GetTeam(context.Background(), teams[0].ID)
	assert.Equal(t, 5, tm.PlayerCount, "repeat call must not double-count")
}

// A multi-team pool's players can only leave through draft picks; bulk
// assignment must not short-circuit the draft.
func TestAssignAllToTeamRejectedWhenDraftRequired(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(10)
	app := NewApp(store, store)

	teams, err := app.CreateTeamsForPool(context.Background(), p.ID, specs(2))
	require.NoError(t, err)

	moved, err := app.AssignAllToTeam(context.Background(), p.ID, teams[0].ID)
	assert.ErrorIs(t, err, ErrDraftRequired)
	assert.Equal(t, 0, moved)

	pl, _ := store.GetPool(context.Background(), p.ID)
	assert.Equal(t, models.PoolStatusTeamsCreated, pl.Status)
	for _, stored := range store.players {
		assert.Equal(t, models.PlayerStatusInPool, stored.Status)
		assert.Nil(t, stored.AssignedTeamID)
	}
}

func TestCreateTeamsStorageFailureLeavesPoolOpen(t *testing.T) {
	store := newFakeTeamStore()
	p := store.addOpenPool(4)
	store.failCreate = true
	app := NewApp(store, store)

	_, err := app.CreateTeamsForPool(context.Background(), p.ID, specs(2))
	require.Error(t, err)

	pl, _ := store.GetPool(context.Background(), p.ID)
	assert.Equal(t, models.PoolStatusOpen, pl.Status)
	assert.Empty(t, pl.TeamIDs)
}
