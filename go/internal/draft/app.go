package draft

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/sqlutil"
)

// DraftRepository defines what the draft app layer needs from storage
type DraftRepository interface {
	CreateDraft(ctx context.Context, draft *models.DraftEvent) error
	GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftEvent, error)
	GetDraftByPool(ctx context.Context, poolID uuid.UUID) (*models.DraftEvent, error)
	// CompleteLottery fixes the draft order exactly once; a second attempt
	// matches zero rows and fails.
	CompleteLottery(ctx context.Context, draftID uuid.UUID, order []uuid.UUID) error
	// ApplyPick advances the draft by one pick as a single transaction,
	// guarded by a compare-and-set on current_pick.
	ApplyPick(ctx context.Context, req ApplyPickRequest) error
	GetPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error)
}

// PoolReader is the slice of the pool registry the orchestrator depends on
type PoolReader interface {
	GetPool(ctx context.Context, id uuid.UUID) (*models.RegistrationPool, error)
	ListUnassignedPlayers(ctx context.Context, poolID uuid.UUID) ([]models.PoolPlayer, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.PoolPlayer, error)
}

// TeamReader supplies the teams bound to a pool in creation order
type TeamReader interface {
	GetTeamsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Team, error)
}

// App orchestrates draft scheduling, lottery and turn-validated picks
type App struct {
	repo  DraftRepository
	pools PoolReader
	teams TeamReader
	clock clockwork.Clock
}

// NewApp creates a new draft App
func NewApp(repo DraftRepository, pools PoolReader, teams TeamReader, clock clockwork.Clock) *App {
	return &App{repo: repo, pools: pools, teams: teams, clock: clock}
}

// ScheduleDraft creates the draft event for a multi-team pool. Lottery
// drafts start LOTTERY_PENDING with no order; otherwise the order is the
// team-creation order and the draft starts SCHEDULED.
func (a *App) ScheduleDraft(ctx context.Context, poolID uuid.UUID, req ScheduleDraftRequest) (*models.DraftEvent, error) {
	if err := a.validateScheduleDraftRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	p, err := a.pools.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !p.RequiresDraft {
		return nil, fmt.Errorf("%w: pool %s has %d team(s)", ErrDraftNotRequired, poolID, p.TeamCount)
	}
	if p.DraftStatus != models.PoolDraftPending {
		return nil, fmt.Errorf("%w: pool %s draft status %s", ErrDraftAlreadyScheduled, poolID, p.DraftStatus)
	}

	teams, err := a.teams.GetTeamsByPool(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for pool: %w", err)
	}
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: pool %s has %d team(s)", ErrDraftNotRequired, poolID, len(teams))
	}

	unassigned, err := a.pools.ListUnassignedPlayers(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unassigned players: %w", err)
	}
	if len(unassigned) == 0 {
		return nil, fmt.Errorf("pool %s has no unassigned players to draft", poolID)
	}

	teamIDs := make([]uuid.UUID, len(teams))
	coachByTeam := make(map[uuid.UUID]uuid.UUID, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
		coachByTeam[t.ID] = t.CoachID
	}

	d := &models.DraftEvent{
		ID:               req.ID,
		PoolID:           poolID,
		DraftType:        req.DraftType,
		TeamIDs:          teamIDs,
		CoachByTeam:      coachByTeam,
		LotteryEnabled:   req.LotteryEnabled,
		TotalPlayers:     len(unassigned),
		TotalRounds:      TotalRounds(len(unassigned), len(teams)),
		CurrentRound:     1,
		PlayersRemaining: len(unassigned),
		ScheduledAt:      req.ScheduledAt,
	}
	if req.LotteryEnabled {
		d.Status = models.DraftStatusLotteryPending
	} else {
		d.Status = models.DraftStatusScheduled
		d.DraftOrder = teamIDs
	}

	if err := a.repo.CreateDraft(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	log.Info().
		Str("draft_id", d.ID.String()).
		Str("pool_id", poolID.String()).
		Str("draft_type", string(d.DraftType)).
		Int("total_rounds", d.TotalRounds).
		Bool("lottery", d.LotteryEnabled).
		Msg("scheduled draft")
	return d, nil
}

// RunLottery fixes the draft order as a uniformly random permutation of
// the pool's team ids. Callable exactly once per draft.
func (a *App) RunLottery(ctx context.Context, draftID uuid.UUID) (*models.DraftEvent, error) {
	d, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !d.LotteryEnabled {
		return nil, fmt.Errorf("%w: draft %s", ErrLotteryNotEnabled, draftID)
	}
	if d.LotteryCompleted {
		return nil, fmt.Errorf("%w: draft %s", ErrLotteryAlreadyRun, draftID)
	}

	order := make([]uuid.UUID, len(d.TeamIDs))
	copy(order, d.TeamIDs)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	if err := a.repo.CompleteLottery(ctx, draftID, order); err != nil {
		return nil, err
	}

	log.Info().
		Str("draft_id", draftID.String()).
		Strs("draft_order", sqlutil.UUIDStrings(order)).
		Msg("lottery completed")

	return a.repo.GetDraft(ctx, draftID)
}

// WhoseTurn reports the picking team and coach for the draft's next pick.
// Backed by the same arithmetic as the turn check in MakePick.
func (a *App) WhoseTurn(ctx context.Context, draftID uuid.UUID) (PickTurn, error) {
	d, err := a.repo.GetDraft(ctx, draftID)
	if err != nil {
		return PickTurn{}, err
	}
	if err := pickableStatus(d); err != nil {
		return PickTurn{}, err
	}
	return TurnForPick(d.DraftType, d.DraftOrder, d.CurrentPick)
}

// MakePick executes one turn-validated pick. The repository applies the
// whole mutation (pick log, draft counters, player status, team count,
// completion transitions) as one atomic unit; a compare-and-set on
// current_pick serializes concurrent picks at the same turn.
func (a *App) MakePick(ctx context.Context, req MakePickRequest) (*models.DraftPick, error) {
	if err := a.validateMakePickRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	d, err := a.repo.GetDraft(ctx, req.DraftID)
	if err != nil {
		return nil, err
	}
	if err := pickableStatus(d); err != nil {
		return nil, err
	}

	turn, err := TurnForPick(d.DraftType, d.DraftOrder, d.CurrentPick)
	if err != nil {
		return nil, err
	}
	if d.CoachByTeam[turn.TeamID] != req.CoachID {
		return nil, fmt.Errorf("%w: pick %d belongs to team %s", ErrNotYourTurn, d.CurrentPick+1, turn.TeamID)
	}

	player, err := a.pools.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if player.PoolID != d.PoolID {
		return nil, fmt.Errorf("player %s is not in pool %s", req.PlayerID, d.PoolID)
	}
	if player.Status != models.PlayerStatusInPool {
		return nil, fmt.Errorf("%w: player %s has status %s", ErrPlayerAlreadyAssigned, req.PlayerID, player.Status)
	}

	pick := models.DraftPick{
		ID:          uuid.New(),
		DraftID:     d.ID,
		Round:       turn.Round,
		Pick:        turn.Slot + 1,
		OverallPick: d.CurrentPick + 1,
		TeamID:      turn.TeamID,
		PlayerID:    req.PlayerID,
		CoachID:     req.CoachID,
		PickedAt:    a.clock.Now(),
	}

	nextTurnRound := turn.Round
	if next := d.CurrentPick + 1; next < d.TotalPlayers {
		nextTurnRound = next/len(d.DraftOrder) + 1
	}

	err = a.repo.ApplyPick(ctx, ApplyPickRequest{
		Pick:         pick,
		PoolID:       d.PoolID,
		ExpectedPick: d.CurrentPick,
		NextRound:    nextTurnRound,
		Completes:    d.PlayersRemaining == 1,
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("draft_id", d.ID.String()).
		Str("team_id", turn.TeamID.String()).
		Str("player_id", req.PlayerID.String()).
		Int("round", pick.Round).
		Int("overall_pick", pick.OverallPick).
		Msg("pick made")
	return &pick, nil
}

// GetDraft retrieves a draft by ID
func (a *App) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftEvent, error) {
	return a.repo.GetDraft(ctx, id)
}

// GetDraftByPool retrieves the draft linked to a pool
func (a *App) GetDraftByPool(ctx context.Context, poolID uuid.UUID) (*models.DraftEvent, error) {
	return a.repo.GetDraftByPool(ctx, poolID)
}

// GetPicksByDraft returns the draft's pick log in overall-pick order
func (a *App) GetPicksByDraft(ctx context.Context, draftID uuid.UUID) ([]models.DraftPick, error) {
	picks, err := a.repo.GetPicksByDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks by draft: %w", err)
	}
	return picks, nil
}

func pickableStatus(d *models.DraftEvent) error {
	switch d.Status {
	case models.DraftStatusLotteryPending:
		return fmt.Errorf("%w: draft %s", ErrLotteryPending, d.ID)
	case models.DraftStatusCompleted:
		return fmt.Errorf("%w: draft %s", ErrDraftCompleted, d.ID)
	}
	return nil
}

func (a *App) validateScheduleDraftRequest(req ScheduleDraftRequest) error {
	if req.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	switch req.DraftType {
	case models.DraftTypeLinear, models.DraftTypeSnake:
	default:
		return fmt.Errorf("invalid draft type: %s", req.DraftType)
	}
	return nil
}

func (a *App) validateMakePickRequest(req MakePickRequest) error {
	if req.DraftID == uuid.Nil {
		return fmt.Errorf("draft_id is required")
	}
	if req.PlayerID == uuid.Nil {
		return fmt.Errorf("player_id is required")
	}
	if req.CoachID == uuid.Nil {
		return fmt.Errorf("coach_id is required")
	}
	return nil
}
