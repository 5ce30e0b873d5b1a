package team

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft/outbox"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/sqlutil"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateTeamsForPool applies team formation all-or-nothing. The pool flip
// is conditional on OPEN status: zero rows affected means another caller
// already formed teams, and nothing here commits.
func (r *Repository) CreateTeamsForPool(ctx context.Context, poolID uuid.UUID, teams []models.Team, requiresDraft bool) error {
	teamIDs := make([]uuid.UUID, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	draftStatus := models.PoolDraftNotNeeded
	if requiresDraft {
		draftStatus = models.PoolDraftPending
	}

	return sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		var seasonID, programID uuid.UUID
		err := tx.QueryRow(ctx, `
			SELECT s.id, s.program_id
			FROM registration_pools p
			JOIN program_seasons s ON s.id = p.season_id
			WHERE p.id = $1`, poolID,
		).Scan(&seasonID, &programID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("pool %s not found", poolID)
			}
			return fmt.Errorf("failed to resolve pool season: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE registration_pools
			SET team_count = $2, team_ids = $3, requires_draft = $4,
			    status = 'TEAMS_CREATED', draft_status = $5, updated_at = now()
			WHERE id = $1 AND status = 'OPEN'`,
			poolID, len(teams), teamIDs, requiresDraft, draftStatus)
		if err != nil {
			return fmt.Errorf("failed to update pool for team formation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrTeamsAlreadyCreated
		}

		for _, t := range teams {
			if _, err := tx.Exec(ctx, `
				INSERT INTO teams (id, program_id, season_id, pool_id, name, sport, division_label, coach_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				t.ID, programID, seasonID, t.PoolID, t.Name, t.Sport, t.DivisionLabel, t.CoachID,
			); err != nil {
				return fmt.Errorf("failed to insert team %s: %w", t.Name, err)
			}
		}

		if requiresDraft {
			if _, err := tx.Exec(ctx, `
				UPDATE program_seasons
				SET pools_ready_for_draft = pools_ready_for_draft + 1, updated_at = now()
				WHERE id = $1`, seasonID,
			); err != nil {
				return fmt.Errorf("failed to update season draft counter: %w", err)
			}
		}
		return nil
	})
}

// AssignAllToTeam moves every unassigned player in one transaction. The
// requires_draft re-check runs inside the transaction so a concurrently
// formed multi-team pool can never be bulk-assigned. A repeat call matches
// zero players and zero pool rows and changes nothing.
func (r *Repository) AssignAllToTeam(ctx context.Context, poolID, teamID uuid.UUID) (int, error) {
	var moved int
	err := sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		moved = 0

		var requiresDraft bool
		err := tx.QueryRow(ctx, `
			SELECT requires_draft FROM registration_pools WHERE id = $1`, poolID,
		).Scan(&requiresDraft)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("pool %s not found", poolID)
			}
			return fmt.Errorf("failed to check pool draft requirement: %w", err)
		}
		if requiresDraft {
			return fmt.Errorf("%w: pool %s", ErrDraftRequired, poolID)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE pool_players
			SET status = 'AUTO_ASSIGNED', assigned_team_id = $2
			WHERE pool_id = $1 AND status = 'IN_POOL'`,
			poolID, teamID)
		if err != nil {
			return fmt.Errorf("failed to assign players: %w", err)
		}
		moved = int(tag.RowsAffected())

		poolTag, err := tx.Exec(ctx, `
			UPDATE registration_pools
			SET status = 'ASSIGNED', updated_at = now()
			WHERE id = $1 AND status = 'TEAMS_CREATED' AND requires_draft = FALSE`, poolID)
		if err != nil {
			return fmt.Errorf("failed to mark pool assigned: %w", err)
		}

		if moved == 0 && poolTag.RowsAffected() == 0 {
			// Idempotent repeat: nothing to do.
			return nil
		}

		if moved > 0 {
			teamTag, err := tx.Exec(ctx, `
				UPDATE teams
				SET player_count = player_count + $3
				WHERE id = $2 AND pool_id = $1`,
				poolID, teamID, moved)
			if err != nil {
				return fmt.Errorf("failed to update team player count: %w", err)
			}
			if teamTag.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s in pool %s", ErrTeamNotFound, teamID, poolID)
			}
		}

		payload, err := json.Marshal(outbox.PoolAssignedPayload{
			PoolID:       poolID.String(),
			TeamID:       teamID.String(),
			PlayersMoved: moved,
			AssignedAt:   time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal pool assigned payload: %w", err)
		}
		return outbox.InsertTx(ctx, tx, outbox.EventPoolAssigned, poolID, nil, payload)
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, program_id, season_id, pool_id, name, sport, division_label, coach_id, player_count, created_at
		FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// GetTeamsByPool returns teams in formation order. Teams are inserted in
// one transaction so created_at cannot order them; the pool's team_ids
// array holds the order CreateTeamsForPool fixed.
func (r *Repository) GetTeamsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Team, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.program_id, t.season_id, t.pool_id, t.name, t.sport,
		       t.division_label, t.coach_id, t.player_count, t.created_at
		FROM teams t
		JOIN registration_pools p ON p.id = t.pool_id
		WHERE t.pool_id = $1
		ORDER BY array_position(p.team_ids, t.id)`, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	if err := row.Scan(&t.ID, &t.ProgramID, &t.SeasonID, &t.PoolID, &t.Name,
		&t.Sport, &t.DivisionLabel, &t.CoachID, &t.PlayerCount, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
