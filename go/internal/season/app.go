package season

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/division"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// ErrSeasonNotFound is returned when no season exists for an id
var ErrSeasonNotFound = errors.New("season not found")

// SeasonRepository defines what the season app layer needs from storage
type SeasonRepository interface {
	CreateSeasonWithPools(ctx context.Context, season *models.ProgramSeason, pools []models.RegistrationPool) error
	GetSeason(ctx context.Context, id uuid.UUID) (*models.ProgramSeason, error)
	UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.ProgramSeason, error)
}

// App handles season business logic
type App struct {
	repo SeasonRepository
}

// NewApp creates a new season App
func NewApp(repo SeasonRepository) *App {
	return &App{repo: repo}
}

// CreateSeason creates a season together with one registration pool per
// sport x division offering. Either all pools and the season exist, or
// none do; the repository applies the whole set in one transaction.
func (a *App) CreateSeason(ctx context.Context, req CreateSeasonRequest) (*models.ProgramSeason, error) {
	if err := a.validateCreateSeasonRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := division.ValidateOfferings(req.Offerings); err != nil {
		return nil, fmt.Errorf("invalid offerings: %w", err)
	}

	pools := buildPools(req)

	s := &models.ProgramSeason{
		ID:              req.ID,
		ProgramID:       req.ProgramID,
		Name:            req.Name,
		Status:          models.SeasonStatusDraft,
		Offerings:       req.Offerings,
		RegistrationFee: req.RegistrationFee,
		TotalPools:      len(pools),
	}

	if err := a.repo.CreateSeasonWithPools(ctx, s, pools); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}

	log.Printf("Created season %s with %d pools", s.Name, len(pools))
	return s, nil
}

// GetSeason retrieves a season by ID
func (a *App) GetSeason(ctx context.Context, id uuid.UUID) (*models.ProgramSeason, error) {
	s, err := a.repo.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return s, nil
}

// UpdateSeasonStatus advances a season through its lifecycle with validation.
// Seasons are never deleted; COMPLETED is the archival state.
func (a *App) UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.ProgramSeason, error) {
	current, err := a.repo.GetSeason(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("season not found: %w", err)
	}

	if err := validateStatusTransition(current.Status, status); err != nil {
		return nil, fmt.Errorf("invalid status transition: %w", err)
	}

	s, err := a.repo.UpdateSeasonStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update season status: %w", err)
	}

	log.Printf("Updated season status: %s -> %s", current.Status, status)
	return s, nil
}

func buildPools(req CreateSeasonRequest) []models.RegistrationPool {
	var pools []models.RegistrationPool
	for _, offering := range req.Offerings {
		rs := rosterSizeForSport(offering.Sport, req.RosterSizes)
		for _, div := range offering.Divisions {
			pools = append(pools, models.RegistrationPool{
				ID:            uuid.New(),
				SeasonID:      req.ID,
				Sport:         offering.Sport,
				Division:      div,
				Status:        models.PoolStatusOpen,
				MinRosterSize: rs.Min,
				MaxRosterSize: rs.Max,
				DraftStatus:   models.PoolDraftNotNeeded,
			})
		}
	}
	return pools
}

func (a *App) validateCreateSeasonRequest(req CreateSeasonRequest) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if req.ProgramID == uuid.Nil {
		return fmt.Errorf("program_id is required")
	}
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(req.Offerings) == 0 {
		return fmt.Errorf("at least one sport offering is required")
	}
	if req.RegistrationFee < 0 {
		return fmt.Errorf("registration_fee cannot be negative")
	}
	for sport, rs := range req.RosterSizes {
		if rs.Min <= 0 || rs.Max < rs.Min {
			return fmt.Errorf("invalid roster size for sport %s", sport)
		}
	}
	return nil
}

func validateStatusTransition(currentStatus, newStatus models.SeasonStatus) error {
	// Allow same status (no-op)
	if currentStatus == newStatus {
		return nil
	}

	allowedTransitions := map[models.SeasonStatus][]models.SeasonStatus{
		models.SeasonStatusDraft:            {models.SeasonStatusRegistrationOpen},
		models.SeasonStatusRegistrationOpen: {models.SeasonStatusInProgress},
		models.SeasonStatusInProgress:       {models.SeasonStatusCompleted},
		models.SeasonStatusCompleted:        {},
	}

	allowedNext, exists := allowedTransitions[currentStatus]
	if !exists {
		return fmt.Errorf("unknown current status: %s", currentStatus)
	}

	for _, allowed := range allowedNext {
		if newStatus == allowed {
			return nil
		}
	}

	return fmt.Errorf("transition from %s to %s is not allowed", currentStatus, newStatus)
}
