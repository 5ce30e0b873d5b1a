package pool

import (
	"context"
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

const poolColumns = `
	id, season_id, sport, division_label, min_birth_year, max_birth_year,
	division_type, status, player_count, min_roster_size, max_roster_size,
	recommended_team_count, team_count, team_ids, requires_draft,
	draft_status, draft_id, created_at, updated_at`

func (r *Repository) GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+poolColumns+` FROM registration_pools WHERE id = $1`, id)
	p, err := scanPool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	return p, nil
}

func (r *Repository) GetPoolsBySeason(ctx context.Context, seasonID uuid.UUID) ([]models.RegistrationPool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+poolColumns+`
		FROM registration_pools WHERE season_id = $1
		ORDER BY sport, division_label`, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	var pools []models.RegistrationPool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool: %w", err)
		}
		pools = append(pools, *p)
	}
	return pools, rows.Err()
}

// RegisterPlayer inserts the registration and bumps the pool and season
// counters as one unit. The pool update is conditional on OPEN status, so
// a concurrently closed pool can never gain a player, and the increment
// itself is a SQL-side add rather than a read-then-write.
func (r *Repository) RegisterPlayer(ctx context.Context, player *models.PoolPlayer) (*PoolCounts, error) {
	var counts PoolCounts
	err := sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		var seasonID uuid.UUID
		err := tx.QueryRow(ctx, `
			UPDATE registration_pools
			SET player_count = player_count + 1,
			    recommended_team_count = CEIL((player_count + 1)::numeric /
			        GREATEST((min_roster_size + max_roster_size) / 2, 1)),
			    updated_at = now()
			WHERE id = $1 AND status = 'OPEN'
			RETURNING season_id, player_count, recommended_team_count`,
			player.PoolID,
		).Scan(&seasonID, &counts.PlayerCount, &counts.RecommendedTeamCount)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrPoolClosed
			}
			return fmt.Errorf("failed to update pool counters: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO pool_players (id, pool_id, first_name, last_name, birth_date, status, registered_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			player.ID, player.PoolID, player.FirstName, player.LastName,
			player.BirthDate, player.Status, player.RegisteredAt,
		); err != nil {
			return fmt.Errorf("failed to insert pool player: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE program_seasons
			SET total_registrations = total_registrations + 1, updated_at = now()
			WHERE id = $1`, seasonID,
		); err != nil {
			return fmt.Errorf("failed to update season registrations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *Repository) ListUnassignedPlayers(ctx context.Context, poolID uuid.UUID) ([]models.PoolPlayer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, pool_id, first_name, last_name, birth_date, status, assigned_team_id, registered_at
		FROM pool_players
		WHERE pool_id = $1 AND status = 'IN_POOL'
		ORDER BY registered_at, id`, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unassigned players: %w", err)
	}
	defer rows.Close()

	var players []models.PoolPlayer
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pool player: %w", err)
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.PoolPlayer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, pool_id, first_name, last_name, birth_date, status, assigned_team_id, registered_at
		FROM pool_players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("pool player %s not found", id)
		}
		return nil, fmt.Errorf("failed to get pool player: %w", err)
	}
	return p, nil
}

func scanPool(row pgx.Row) (*models.RegistrationPool, error) {
	var p models.RegistrationPool
	var draftID uuid.NullUUID
	if err := row.Scan(&p.ID, &p.SeasonID, &p.Sport, &p.Division.Label,
		&p.Division.MinBirthYear, &p.Division.MaxBirthYear, &p.Division.DivisionType,
		&p.Status, &p.PlayerCount, &p.MinRosterSize, &p.MaxRosterSize,
		&p.RecommendedTeamCount, &p.TeamCount, &p.TeamIDs, &p.RequiresDraft,
		&p.DraftStatus, &draftID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.DraftID = sqlutil.FromNullUUID(draftID)
	return &p, nil
}

func scanPlayer(row pgx.Row) (*models.PoolPlayer, error) {
	var p models.PoolPlayer
	var teamID uuid.NullUUID
	if err := row.Scan(&p.ID, &p.PoolID, &p.FirstName, &p.LastName,
		&p.BirthDate, &p.Status, &teamID, &p.RegisteredAt); err != nil {
		return nil, err
	}
	p.AssignedTeamID = sqlutil.FromNullUUID(teamID)
	return &p, nil
}
