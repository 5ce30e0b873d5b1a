package outbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/sqlutil"
)

// InsertTx appends an outbox row inside the caller's transaction so the
// event becomes visible if and only if the state change commits.
func InsertTx(ctx context.Context, tx pgx.Tx, eventType string, poolID uuid.UUID, draftID *uuid.UUID, payload []byte) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO allocation_outbox (id, event_type, pool_id, draft_id, payload)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), eventType, poolID, sqlutil.ToNullUUID(draftID), payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox event %s: %w", eventType, err)
	}
	return nil
}

// Repository reads and settles pending outbox rows for the relay worker.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FetchUnpublished returns up to limit pending events, oldest first.
func (r *Repository) FetchUnpublished(ctx context.Context, limit int32) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_type, pool_id, draft_id, payload, created_at
		FROM allocation_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unpublished events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var draftID uuid.NullUUID
		if err := rows.Scan(&e.ID, &e.EventType, &e.PoolID, &draftID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		e.DraftID = sqlutil.FromNullUUID(draftID)
		events = append(events, e)
	}
	return events, rows.Err()
}

// MarkPublished stamps an event as relayed.
func (r *Repository) MarkPublished(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `
		UPDATE allocation_outbox SET published_at = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark event published: %w", err)
	}
	return nil
}
