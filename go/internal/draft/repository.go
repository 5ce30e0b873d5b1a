package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

const draftColumns = `
	id, pool_id, draft_type, status, team_ids, coach_by_team, draft_order,
	lottery_enabled, lottery_completed, total_players, total_rounds,
	current_round, current_pick, players_remaining,
	scheduled_at, started_at, completed_at, created_at, updated_at`

// CreateDraft inserts the draft event and links it to its pool in one
// transaction. The pool update is conditional on PENDING draft status, so
// a pool can never acquire two drafts.
func (r *Repository) CreateDraft(ctx context.Context, d *models.DraftEvent) error {
	coachByTeam, err := json.Marshal(d.CoachByTeam)
	if err != nil {
		return fmt.Errorf("failed to marshal coach mapping: %w", err)
	}

	poolDraftStatus := models.PoolDraftScheduled
	if d.Status == models.DraftStatusLotteryPending {
		poolDraftStatus = models.PoolDraftLotteryPending
	}

	draftOrder := d.DraftOrder
	if draftOrder == nil {
		draftOrder = []uuid.UUID{}
	}

	return sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE registration_pools
			SET draft_status = $2, draft_id = $3, updated_at = now()
			WHERE id = $1 AND draft_status = 'PENDING'`,
			d.PoolID, poolDraftStatus, d.ID)
		if err != nil {
			return fmt.Errorf("failed to link draft to pool: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: pool %s", ErrDraftAlreadyScheduled, d.PoolID)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO draft_events
				(id, pool_id, draft_type, status, team_ids, coach_by_team, draft_order,
				 lottery_enabled, total_players, total_rounds, players_remaining, scheduled_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			d.ID, d.PoolID, d.DraftType, d.Status, d.TeamIDs, coachByTeam, draftOrder,
			d.LotteryEnabled, d.TotalPlayers, d.TotalRounds, d.PlayersRemaining,
			d.ScheduledAt,
		); err != nil {
			return fmt.Errorf("failed to insert draft: %w", err)
		}

		payload, err := json.Marshal(outbox.DraftScheduledPayload{
			DraftID:     d.ID.String(),
			PoolID:      d.PoolID.String(),
			DraftType:   string(d.DraftType),
			TotalRounds: d.TotalRounds,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal draft scheduled payload: %w", err)
		}
		draftID := d.ID
		return outbox.InsertTx(ctx, tx, outbox.EventDraftScheduled, d.PoolID, &draftID, payload)
	})
}

func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftEvent, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+draftColumns+` FROM draft_events WHERE id = $1`, id)
	d, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return d, nil
}

func (r *Repository) GetDraftByPool(ctx context.Context, poolID uuid.UUID) (*models.DraftEvent, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+draftColumns+` FROM draft_events WHERE pool_id = $1`, poolID)
	d, err := scanDraft(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft by pool: %w", err)
	}
	return d, nil
}

// CompleteLottery stamps the randomized order exactly once. The WHERE
// clause is the one-shot guard: a draft that already left LOTTERY_PENDING
// matches zero rows.
func (r *Repository) CompleteLottery(ctx context.Context, draftID uuid.UUID, order []uuid.UUID) error {
	return sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		var poolID uuid.UUID
		err := tx.QueryRow(ctx, `
			UPDATE draft_events
			SET draft_order = $2, lottery_completed = TRUE, status = 'SCHEDULED', updated_at = now()
			WHERE id = $1 AND status = 'LOTTERY_PENDING'
			  AND lottery_enabled AND NOT lottery_completed
			RETURNING pool_id`,
			draftID, order,
		).Scan(&poolID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: draft %s", ErrLotteryAlreadyRun, draftID)
			}
			return fmt.Errorf("failed to complete lottery: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE registration_pools
			SET draft_status = 'SCHEDULED', updated_at = now()
			WHERE id = $1`, poolID,
		); err != nil {
			return fmt.Errorf("failed to update pool draft status: %w", err)
		}

		payload, err := json.Marshal(outbox.LotteryCompletedPayload{
			DraftID:    draftID.String(),
			DraftOrder: sqlutil.UUIDStrings(order),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal lottery payload: %w", err)
		}
		return outbox.InsertTx(ctx, tx, outbox.EventLotteryCompleted, poolID, &draftID, payload)
	})
}

// ApplyPick is the single atomic unit behind MakePick. Every mutation it
// performs either all commits or none does:
//
//  1. advance the draft counters, CAS-guarded by current_pick
//  2. move the player out of IN_POOL, guarded by its current status
//  3. append the pick to the log
//  4. bump the picking team's player count
//  5. keep the pool's draft status in step: IN_PROGRESS while picks
//     remain, ASSIGNED/COMPLETE on the final pick
func (r *Repository) ApplyPick(ctx context.Context, req ApplyPickRequest) error {
	return sqlutil.RunSerializable(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE draft_events
			SET current_pick = current_pick + 1,
			    current_round = $3,
			    players_remaining = players_remaining - 1,
			    status = CASE WHEN $4 THEN 'COMPLETED' ELSE 'IN_PROGRESS' END,
			    started_at = COALESCE(started_at, now()),
			    completed_at = CASE WHEN $4 THEN now() ELSE completed_at END,
			    updated_at = now()
			WHERE id = $1 AND current_pick = $2
			  AND status IN ('SCHEDULED', 'IN_PROGRESS')`,
			req.Pick.DraftID, req.ExpectedPick, req.NextRound, req.Completes)
		if err != nil {
			return fmt.Errorf("failed to advance draft: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Another pick won this turn between our read and this write.
			return fmt.Errorf("%w: pick %d already taken", ErrNotYourTurn, req.ExpectedPick+1)
		}

		tag, err = tx.Exec(ctx, `
			UPDATE pool_players
			SET status = 'DRAFTED', assigned_team_id = $2
			WHERE id = $1 AND status = 'IN_POOL'`,
			req.Pick.PlayerID, req.Pick.TeamID)
		if err != nil {
			return fmt.Errorf("failed to update player status: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: player %s", ErrPlayerAlreadyAssigned, req.Pick.PlayerID)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO draft_picks (id, draft_id, round, pick, overall_pick, team_id, player_id, coach_id, picked_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			req.Pick.ID, req.Pick.DraftID, req.Pick.Round, req.Pick.Pick, req.Pick.OverallPick,
			req.Pick.TeamID, req.Pick.PlayerID, req.Pick.CoachID, req.Pick.PickedAt,
		); err != nil {
			return fmt.Errorf("failed to insert draft pick: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE teams SET player_count = player_count + 1 WHERE id = $1`,
			req.Pick.TeamID,
		); err != nil {
			return fmt.Errorf("failed to update team player count: %w", err)
		}

		pickPayload, err := json.Marshal(outbox.PickMadePayload{
			PickID:      req.Pick.ID.String(),
			DraftID:     req.Pick.DraftID.String(),
			Round:       req.Pick.Round,
			Pick:        req.Pick.Pick,
			OverallPick: req.Pick.OverallPick,
			TeamID:      req.Pick.TeamID.String(),
			PlayerID:    req.Pick.PlayerID.String(),
			CoachID:     req.Pick.CoachID.String(),
			PickedAt:    req.Pick.PickedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal pick payload: %w", err)
		}
		draftID := req.Pick.DraftID
		if err := outbox.InsertTx(ctx, tx, outbox.EventPickMade, req.PoolID, &draftID, pickPayload); err != nil {
			return err
		}

		if !req.Completes {
			if _, err := tx.Exec(ctx, `
				UPDATE registration_pools
				SET draft_status = 'IN_PROGRESS', updated_at = now()
				WHERE id = $1 AND draft_status <> 'IN_PROGRESS'`, req.PoolID,
			); err != nil {
				return fmt.Errorf("failed to update pool draft status: %w", err)
			}
			return nil
		}

		if _, err := tx.Exec(ctx, `
			UPDATE registration_pools
			SET status = 'ASSIGNED', draft_status = 'COMPLETE', updated_at = now()
			WHERE id = $1`, req.PoolID,
		); err != nil {
			return fmt.Errorf("failed to mark pool assigned: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE program_seasons
			SET pools_ready_for_draft = pools_ready_for_draft - 1, updated_at = now()
			WHERE id = (SELECT season_id FROM registration_pools WHERE id = $1)`,
			req.PoolID,
		); err != nil {
			return fmt.Errorf("failed to update season draft counter: %w", err)
		}

		completedPayload, err := json.Marshal(outbox.DraftCompletedPayload{
			DraftID:    req.Pick.DraftID.String(),
			PoolID:     req.PoolID.String(),
			TotalPicks: req.Pick.OverallPick,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal draft completed payload: %w", err)
		}
		return outbox.InsertTx(ctx, tx, outbox.EventDraftCompleted, req.PoolID, &draftID, completedPayload)
	})
}

func (r *Repository) GetPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, draft_id, round, pick, overall_pick, team_id, player_id, coach_id, picked_at
		FROM draft_picks WHERE draft_id = $1
		ORDER BY overall_pick`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list draft picks: %w", err)
	}
	defer rows.Close()

	var picks []models.DraftPick
	for rows.Next() {
		var p models.DraftPick
		if err := rows.Scan(&p.ID, &p.DraftID, &p.Round, &p.Pick, &p.OverallPick,
			&p.TeamID, &p.PlayerID, &p.CoachID, &p.PickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft pick: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

func scanDraft(row pgx.Row) (*models.DraftEvent, error) {
	var d models.DraftEvent
	var coachByTeam []byte
	if err := row.Scan(&d.ID, &d.PoolID, &d.DraftType, &d.Status, &d.TeamIDs, &coachByTeam,
		&d.DraftOrder, &d.LotteryEnabled, &d.LotteryCompleted, &d.TotalPlayers, &d.TotalRounds,
		&d.CurrentRound, &d.CurrentPick, &d.PlayersRemaining,
		&d.ScheduledAt, &d.StartedAt, &d.CompletedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(coachByTeam, &d.CoachByTeam); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coach mapping: %w", err)
	}
	return &d, nil
}
