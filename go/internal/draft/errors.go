package draft

import "errors"

var (
	// ErrDraftNotFound is returned when no draft exists for an id
	ErrDraftNotFound = errors.New("draft not found")

	// ErrDraftNotRequired is returned when scheduling a draft for a
	// single-team pool
	ErrDraftNotRequired = errors.New("draft not required")

	// ErrDraftAlreadyScheduled is returned when a pool already has a draft
	ErrDraftAlreadyScheduled = errors.New("draft already scheduled")

	// ErrLotteryNotEnabled is returned when running a lottery on a draft
	// configured without one
	ErrLotteryNotEnabled = errors.New("lottery not enabled")

	// ErrLotteryAlreadyRun is returned on a second lottery attempt
	ErrLotteryAlreadyRun = errors.New("lottery already run")

	// ErrLotteryPending is returned when picking before the lottery has
	// fixed the draft order
	ErrLotteryPending = errors.New("lottery pending")

	// ErrDraftCompleted is returned when picking in a finished draft
	ErrDraftCompleted = errors.New("draft completed")

	// ErrNotYourTurn is returned when the acting coach does not own the
	// current pick
	ErrNotYourTurn = errors.New("not your turn")

	// ErrPlayerAlreadyAssigned is returned when the target player has
	// already left the pool
	ErrPlayerAlreadyAssigned = errors.New("player already assigned")
)
