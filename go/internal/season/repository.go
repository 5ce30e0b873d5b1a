package season

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/sqlutil"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateSeasonWithPools inserts the season row and every pool row in one
// transaction so a partial failure leaves neither behind.
func (r *Repository) CreateSeasonWithPools(ctx context.Context, season *models.ProgramSeason, pools []models.RegistrationPool) error {
	offerings, err := json.Marshal(season.Offerings)
	if err != nil {
		return fmt.Errorf("failed to marshal offerings: %w", err)
	}

	return sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO program_seasons (id, program_id, name, status, offerings, registration_fee, total_pools)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			season.ID, season.ProgramID, season.Name, season.Status, offerings,
			season.RegistrationFee, season.TotalPools,
		); err != nil {
			return fmt.Errorf("failed to insert season: %w", err)
		}

		for _, p := range pools {
			if _, err := tx.Exec(ctx, `
				INSERT INTO registration_pools
					(id, season_id, sport, division_label, min_birth_year, max_birth_year,
					 division_type, status, min_roster_size, max_roster_size, draft_status)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				p.ID, p.SeasonID, p.Sport, p.Division.Label, p.Division.MinBirthYear,
				p.Division.MaxBirthYear, p.Division.DivisionType, p.Status,
				p.MinRosterSize, p.MaxRosterSize, p.DraftStatus,
			); err != nil {
				return fmt.Errorf("failed to insert pool %s/%s: %w", p.Sport, p.Division.Label, err)
			}
		}
		return nil
	})
}

func (r *Repository) GetSeason(ctx context.Context, id uuid.UUID) (*models.ProgramSeason, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, program_id, name, status, offerings, registration_fee,
		       total_registrations, total_pools, pools_ready_for_draft, created_at, updated_at
		FROM program_seasons WHERE id = $1`, id)

	s, err := scanSeason(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return s, nil
}

func (r *Repository) UpdateSeasonStatus(ctx context.Context, id uuid.UUID, status models.SeasonStatus) (*models.ProgramSeason, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE program_seasons SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, program_id, name, status, offerings, registration_fee,
		          total_registrations, total_pools, pools_ready_for_draft, created_at, updated_at`,
		id, status)

	s, err := scanSeason(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to update season status: %w", err)
	}
	return s, nil
}

func scanSeason(row pgx.Row) (*models.ProgramSeason, error) {
	var s models.ProgramSeason
	var offerings []byte
	if err := row.Scan(&s.ID, &s.ProgramID, &s.Name, &s.Status, &offerings, &s.RegistrationFee,
		&s.TotalRegistrations, &s.TotalPools, &s.PoolsReadyForDraft, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(offerings, &s.Offerings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offerings: %w", err)
	}
	return &s, nil
}
