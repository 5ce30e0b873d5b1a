package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/identity"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/pool"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/season"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/sqlutil"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/team"
)

// Service exposes the allocation engine's operations over HTTP. Mutating
// draft routes require a verified identity; read accessors are open to the
// dashboard and draft UI.
type Service struct {
	seasons  *season.App
	pools    *pool.App
	teams    *team.App
	drafts   *draft.App
	verifier *identity.Verifier
}

func NewService(seasons *season.App, pools *pool.App, teams *team.App, drafts *draft.App, verifier *identity.Verifier) *Service {
	return &Service{
		seasons:  seasons,
		pools:    pools,
		teams:    teams,
		drafts:   drafts,
		verifier: verifier,
	}
}

// Routes builds the API router.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Use(identity.Middleware(s.verifier))

		r.Post("/seasons", s.handleCreateSeason)
		r.Get("/seasons/{seasonID}", s.handleGetSeason)
		r.Post("/seasons/{seasonID}/status", s.handleUpdateSeasonStatus)
		r.Get("/seasons/{seasonID}/pools", s.handleGetSeasonPools)

		r.Get("/pools/{poolID}", s.handleGetPool)
		r.Post("/pools/{poolID}/players", s.handleRegisterPlayer)
		r.Get("/pools/{poolID}/players/unassigned", s.handleListUnassigned)
		r.Post("/pools/{poolID}/teams", s.handleCreateTeams)
		r.Post("/pools/{poolID}/assign", s.handleAssignAll)
		r.Get("/pools/{poolID}/teams", s.handleGetPoolTeams)

		r.Get("/teams/{teamID}", s.handleGetTeam)

		r.Post("/pools/{poolID}/draft", s.handleScheduleDraft)
		r.Get("/drafts/{draftID}", s.handleGetDraft)
		r.Post("/drafts/{draftID}/lottery", s.handleRunLottery)
		r.Get("/drafts/{draftID}/turn", s.handleWhoseTurn)
		r.Post("/drafts/{draftID}/picks", s.handleMakePick)
		r.Get("/drafts/{draftID}/picks", s.handleGetPicks)
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, err error) {
	respondJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

// statusForError maps the domain taxonomy onto HTTP codes. Turn and
// assignment conflicts are 409s the draft UI treats as refresh-and-retry.
func statusForError(err error) int {
	switch {
	case errors.Is(err, pool.ErrPoolNotFound),
		errors.Is(err, draft.ErrDraftNotFound),
		errors.Is(err, team.ErrTeamNotFound),
		errors.Is(err, season.ErrSeasonNotFound):
		return http.StatusNotFound
	case errors.Is(err, pool.ErrIneligibleAge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pool.ErrPoolClosed),
		errors.Is(err, team.ErrTeamsAlreadyCreated),
		errors.Is(err, team.ErrDraftRequired),
		errors.Is(err, draft.ErrDraftNotRequired),
		errors.Is(err, draft.ErrDraftAlreadyScheduled),
		errors.Is(err, draft.ErrLotteryNotEnabled),
		errors.Is(err, draft.ErrLotteryAlreadyRun),
		errors.Is(err, draft.ErrLotteryPending),
		errors.Is(err, draft.ErrDraftCompleted),
		errors.Is(err, draft.ErrNotYourTurn),
		errors.Is(err, draft.ErrPlayerAlreadyAssigned),
		errors.Is(err, sqlutil.ErrAllocationConflict):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
