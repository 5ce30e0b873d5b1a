package pool

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// fakePoolRepo mirrors the repository's transactional behavior in memory:
// RegisterPlayer re-checks pool status and recomputes the recommendation
// under one lock, exactly like the SQL does in one statement.
type fakePoolRepo struct {
	mu      sync.Mutex
	pools   map[uuid.UUID]*models.RegistrationPool
	players map[uuid.UUID]*models.PoolPlayer
}

func newFakePoolRepo() *fakePoolRepo {
	return &fakePoolRepo{
		pools:   make(map[uuid.UUID]*models.RegistrationPool),
		players: make(map[uuid.UUID]*models.PoolPlayer),
	}
}

func (f *fakePoolRepo) GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePoolRepo) GetPoolsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.RegistrationPool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.RegistrationPool
	for _, p := range f.pools {
		if p.SeasonID == seasonID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePoolRepo) RegisterPlayer(ctx context.Context, player *models.PoolPlayer) (*PoolCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[player.PoolID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPoolNotFound, player.PoolID)
	}
	if p.Status != models.PoolStatusOpen {
		return nil, fmt.Errorf("%w: pool %s", ErrPoolClosed, p.ID)
	}
	p.PlayerCount++
	ideal := p.IdealTeamSize()
	if ideal < 1 {
		ideal = 1
	}
	p.RecommendedTeamCount = (p.PlayerCount + ideal - 1) / ideal
	cp := *player
	f.players[player.ID] = &cp
	return &PoolCounts{PlayerCount: p.PlayerCount, RecommendedTeamCount: p.RecommendedTeamCount}, nil
}

func (f *fakePoolRepo) ListUnassignedPlayers(ctx context.Context, poolID uuid.UUID) ([]models.PoolPlayer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PoolPlayer
	for _, pl := range f.players {
		if pl.PoolID == poolID && pl.Status == models.PlayerStatusInPool {
			out = append(out, *pl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (f *fakePoolRepo) GetPlayer(ctx context.Context, id uuid.UUID) (*models.PoolPlayer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pl, ok := f.players[id]
	if !ok {
		return nil, fmt.Errorf("player %s not found", id)
	}
	cp := *pl
	return &cp, nil
}

func openPool(repo *fakePoolRepo) *models.RegistrationPool {
	p := &models.RegistrationPool{
		ID:       uuid.New(),
		SeasonID: uuid.New(),
		Sport:    "soccer",
		Division: models.AgeGroupDivision{
			Label:        "U10",
			MinBirthYear: 2016,
			MaxBirthYear: 2017,
			DivisionType: models.DivisionTypeAge,
		},
		Status:        models.PoolStatusOpen,
		MinRosterSize: 11,
		MaxRosterSize: 30,
		DraftStatus:   models.PoolDraftPending,
	}
	repo.pools[p.ID] = p
	return p
}

func registerReq() RegisterPlayerRequest {
	return RegisterPlayerRequest{
		ID:        uuid.New(),
		FirstName: "Jamie",
		LastName:  "Okafor",
		BirthDate: time.Date(2016, 5, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegisterPlayer(t *testing.T) {
	repo := newFakePoolRepo()
	p := openPool(repo)
	clock := clockwork.NewFakeClock()
	app := NewApp(repo, clock)

	req := registerReq()
	player, err := app.RegisterPlayer(context.Background(), p.ID, req)
	require.NoError(t, err)

	assert.Equal(t, req.ID, player.ID)
	assert.Equal(t, p.ID, player.PoolID)
	assert.Equal(t, models.PlayerStatusInPool, player.Status)
	assert.Equal(t, clock.Now(), player.RegisteredAt)

	stored, err := app.GetPool(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PlayerCount)
	assert.Equal(t, 1, stored.RecommendedTeamCount)
}

func TestRegisterPlayerValidation(t *testing.T) {
	repo := newFakePoolRepo()
	p := openPool(repo)
	app := NewApp(repo, clockwork.NewFakeClock())

	tests := []struct {
		name   string
		mutate func(*RegisterPlayerRequest)
	}{
		{"missing id", func(r *RegisterPlayerRequest) { r.ID = uuid.Nil }},
		{"missing first name", func(r *RegisterPlayerRequest) { r.FirstName = "" }},
		{"missing last name", func(r *RegisterPlayerRequest) { r.LastName = "" }},
		{"zero birth date", func(r *RegisterPlayerRequest) { r.BirthDate = time.Time{} }},
		{"future birth date", func(r *RegisterPlayerRequest) { r.BirthDate = time.Now().AddDate(1, 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerReq()
			tt.mutate(&req)
			_, err := app.RegisterPlayer(context.Background(), p.ID, req)
			assert.Error(t, err)
		})
	}
}

func TestRegisterPlayerIneligibleAge(t *testing.T) {
	repo := newFakePoolRepo()
	p := openPool(repo)
	app := NewApp(repo, clockwork.NewFakeClock())

	req := registerReq()
	req.BirthDate = time.Date(2014, 5, 20, 0, 0, 0, 0, time.UTC)

	_, err := app.RegisterPlayer(context.Background(), p.ID, req)
	assert.ErrorIs(t, err, ErrIneligibleAge)

	stored, err := app.GetPool(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PlayerCount, "rejected registration must not bump the counter")
}

func TestRegisterPlayerPoolClosed(t *testing.T) {
	repo := newFakePoolRepo()
	p := openPool(repo)
	p.Status = models.PoolStatusTeamsCreated
	app := NewApp(repo, clockwork.NewFakeClock())

	_, err := app.RegisterPlayer(context.Background(), p.ID, registerReq())
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestRegisterPlayerPoolNotFound(t *testing.T) {
	app := NewApp(newFakePoolRepo(), clockwork.NewFakeClock())
	_, err := app.RegisterPlayer(context.Background(), uuid.New(), registerReq())
	assert.ErrorIs(t, err, ErrPoolNotFound)
}

// 20 registrations at roster 11..30 (ideal size 20) recommend a single team.
// The 21st pushes the recommendation to two.
func TestRecommendedTeamCountTracksRegistrations(t *testing.T) {
	repo := newFakePoolRepo()
	p := openPool(repo)
	app := NewApp(repo, clockwork.NewFakeClock())

	for i := 0; i < 20; i++ {
		_, err := app.RegisterPlayer(context.Background(), p.ID, registerReq())
		require.NoError(t, err)
	}
	stored, _ := app.GetPool(context.Background(), p.ID)
	assert.Equal(t, 1, stored.RecommendedTeamCount)

	_, err := app.RegisterPlayer(context.Background(), p.ID, registerReq())
	require.NoError(t, err)
	stored, _ = app.GetPool(context.Background(), p.ID)
	assert.Equal(t, 2, stored.RecommendedTeamCount)

	// ceil(22/20) stays 2
	_, err = app.RegisterPlayer(context.Background(), p.ID, registerReq())
	require.NoError(t, err)
	stored, _ = app.GetPool(context.Background(), p.ID)
	assert.Equal(t, 22, stored.PlayerCount)
	assert.Equal(t, 2, stored.RecommendedTeamCount)
}

func TestListUnassignedPlayersOrderedByRegistration(t *testing.T) {
	repo := newFakePoolRepo()
	p := openPool(repo)
	clock := clockwork.NewFakeClock()
	app := NewApp(repo, clock)

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		req := registerReq()
		_, err := app.RegisterPlayer(context.Background(), p.ID, req)
		require.NoError(t, err)
		ids = append(ids, req.ID)
		clock.Advance(time.Minute)
	}

	players, err := app.ListUnassignedPlayers(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, players, 5)
	for i, pl := range players {
		assert.Equal(t, ids[i], pl.ID)
	}
}
