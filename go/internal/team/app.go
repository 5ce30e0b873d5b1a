package team

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/pool"
)

// TeamRepository defines what the team app layer needs from storage
type TeamRepository interface {
	// CreateTeamsForPool inserts every team and flips the pool to
	// TEAMS_CREATED as one transaction; a partial failure leaves neither
	// new teams nor a changed pool status.
	CreateTeamsForPool(ctx context.Context, poolID uuid.UUID, teams []models.Team, requiresDraft bool) error
	// AssignAllToTeam moves every IN_POOL player onto the team and marks
	// the pool ASSIGNED in one transaction, returning the number moved.
	AssignAllToTeam(ctx context.Context, poolID, teamID uuid.UUID) (int, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetTeamsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Team, error)
}

// PoolReader is the slice of the pool registry team formation depends on
type PoolReader interface {
	GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error)
}

// App handles team formation and auto-assignment business logic
type App struct {
	repo  TeamRepository
	pools PoolReader
}

// NewApp creates a new team App
func NewApp(repo TeamRepository, pools PoolReader) *App {
	return &App{repo: repo, pools: pools}
}

// CreateTeamsForPool creates one team per spec bound to the pool and fixes
// the pool's draft requirement: more than one team means a draft. When a
// single team is formed the pool's players are auto-assigned immediately.
func (a *App) CreateTeamsForPool(ctx context.Context, poolID uuid.UUID, specs []TeamSpec) ([]models.Team, error) {
	if err := validateTeamSpecs(specs); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p, err := a.pools.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PoolStatusOpen {
		return nil, fmt.Errorf("%w: pool %s has status %s", ErrTeamsAlreadyCreated, poolID, p.Status)
	}

	teams := make([]models.Team, len(specs))
	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("%s %s Team %d", p.Sport, p.Division.Label, i+1)
		}
		teams[i] = models.Team{
			ID:            spec.ID,
			SeasonID:      p.SeasonID,
			PoolID:        p.ID,
			Name:          name,
			Sport:         p.Sport,
			DivisionLabel: p.Division.Label,
			CoachID:       spec.CoachID,
		}
	}

	requiresDraft := len(specs) > 1
	if err := a.repo.CreateTeamsForPool(ctx, poolID, teams, requiresDraft); err != nil {
		return nil, fmt.Errorf("failed to create teams: %w", err)
	}

	log.Printf("Created %d teams for pool %s (requires_draft=%t)", len(teams), poolID, requiresDraft)

	if !requiresDraft {
		if _, err := a.AssignAllToTeam(ctx, poolID, teams[0].ID); err != nil {
			return nil, fmt.Errorf("failed to auto-assign pool: %w", err)
		}
	}
	return teams, nil
}

// AssignAllToTeam bulk-assigns every unassigned player in the pool to the
// team. Rejected for multi-team pools: their players leave the pool only
// through draft picks. Idempotent: a repeat call finds zero unassigned
// players and makes no change.
func (a *App) AssignAllToTeam(ctx context.Context, poolID, teamID uuid.UUID) (int, error) {
	p, err := a.pools.GetPool(ctx, poolID)
	if err != nil {
		return 0, err
	}
	if p.RequiresDraft {
		return 0, fmt.Errorf("%w: pool %s has %d teams", ErrDraftRequired, poolID, p.TeamCount)
	}

	moved, err := a.repo.AssignAllToTeam(ctx, poolID, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to assign pool to team: %w", err)
	}

	if moved > 0 {
		log.Printf("Auto-assigned %d players from pool %s to team %s", moved, poolID, teamID)
	}
	return moved, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return a.repo.GetTeam(ctx, id)
}

// GetTeamsByPool lists the teams bound to a pool in creation order
func (a *App) GetTeamsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Team, error) {
	teams, err := a.repo.GetTeamsByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams by pool: %w", err)
	}
	return teams, nil
}

func validateTeamSpecs(specs []TeamSpec) error {
	if len(specs) == 0 {
		return fmt.Errorf("at least one team spec is required")
	}
	seen := make(map[uuid.UUID]bool, len(specs))
	for i, spec := range specs {
		if spec.ID == uuid.Nil {
			return fmt.Errorf("team spec %d: id is required", i)
		}
		if spec.CoachID == uuid.Nil {
			return fmt.Errorf("team spec %d: coach_id is required", i)
		}
		if seen[spec.ID] {
			return fmt.Errorf("team spec %d: duplicate team id %s", i, spec.ID)
		}
		seen[spec.ID] = true
	}
	return nil
}

// compile-time check that the pool registry satisfies PoolReader
var _ PoolReader = (*pool.App)(nil)
