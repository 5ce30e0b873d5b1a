package pool

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// PoolRepository defines what the pool app layer needs from storage
type PoolRepository interface {
	GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error)
	GetPoolsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.RegistrationPool, error)
	// RegisterPlayer applies the whole registration as one transaction:
	// player insert, pool counter increment, season counter increment and
	// recommended-team-count recompute.
	RegisterPlayer(ctx context.Context, player *models.PoolPlayer) (*PoolCounts, error)
	ListUnassignedPlayers(ctx context.Context, poolID uuid.UUID) ([]models.PoolPlayer, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.PoolPlayer, error)
}

// App handles pool registry business logic
type App struct {
	repo  PoolRepository
	clock clockwork.Clock
}

// NewApp creates a new pool App
func NewApp(repo PoolRepository, clock clockwork.Clock) *App {
	return &App{repo: repo, clock: clock}
}

// RegisterPlayer validates eligibility against the pool's division range and
// records the registration. The counter increments are linearizable with
// respect to concurrent registrations: the repository re-checks pool status
// inside the same transaction as the insert.
func (a *App) RegisterPlayer(ctx context.Context, poolID uuid.UUID, req RegisterPlayerRequest) (*models.PoolPlayer, error) {
	if err := a.validateRegisterPlayerRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p, err := a.repo.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PoolStatusOpen {
		return nil, fmt.Errorf("%w: pool %s has status %s", ErrPoolClosed, poolID, p.Status)
	}
	if !p.Division.ContainsBirthYear(req.BirthDate.Year()) {
		return nil, fmt.Errorf("%w: birth year %d outside %d-%d for division %s",
			ErrIneligibleAge, req.BirthDate.Year(), p.Division.MinBirthYear,
			p.Division.MaxBirthYear, p.Division.Label)
	}

	player := &models.PoolPlayer{
		ID:           req.ID,
		PoolID:       poolID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		Status:       models.PlayerStatusInPool,
		RegisteredAt: a.clock.Now(),
	}

	counts, err := a.repo.RegisterPlayer(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	log.Printf("Registered player %s %s into pool %s (count=%d, recommended_teams=%d)",
		req.FirstName, req.LastName, poolID, counts.PlayerCount, counts.RecommendedTeamCount)
	return player, nil
}

// GetPool retrieves a pool by ID
func (a *App) GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error) {
	return a.repo.GetPool(ctx, id)
}

// GetPoolsBySeason lists a season's pools for read surfaces
func (a *App) GetPoolsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.RegistrationPool, error) {
	pools, err := a.repo.GetPoolsBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pools by season: %w", err)
	}
	return pools, nil
}

// ListUnassignedPlayers returns the pool's IN_POOL players. The repository
// orders by registration time then id, so the list is stable for the whole
// of a draft run.
func (a *App) ListUnassignedPlayers(ctx context.Context, poolID uuid.UUID) ([]models.PoolPlayer, error) {
	players, err := a.repo.ListUnassignedPlayers(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned players: %w", err)
	}
	return players, nil
}

// GetPlayer retrieves a single registration record
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.PoolPlayer, error) {
	return a.repo.GetPlayer(ctx, id)
}

func (a *App) validateRegisterPlayerRequest(req RegisterPlayerRequest) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if req.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}
	if req.LastName == "" {
		return fmt.Errorf("last_name is required")
	}
	if req.BirthDate.IsZero() || req.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth_date is required and must be in the past")
	}
	return nil
}
