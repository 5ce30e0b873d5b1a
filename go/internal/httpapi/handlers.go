package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/draft"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/identity"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/pool"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/season"
	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/team"
)

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func (s *Service) handleCreateSeason(w http.ResponseWriter, r *http.Request) {
	var req season.CreateSeasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}

	created, err := s.seasons.CreateSeason(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Service) handleGetSeason(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "seasonID")
	if err != nil {
		respondError(w, err)
		return
	}
	found, err := s.seasons.GetSeason(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}

func (s *Service) handleUpdateSeasonStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "seasonID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		Status models.SeasonStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	updated, err := s.seasons.UpdateSeasonStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Service) handleGetSeasonPools(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "seasonID")
	if err != nil {
		respondError(w, err)
		return
	}
	pools, err := s.pools.GetPoolsBySeason(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pools)
}

func (s *Service) handleGetPool(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	found, err := s.pools.GetPool(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}

func (s *Service) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req pool.RegisterPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	player, err := s.pools.RegisterPlayer(r.Context(), poolID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, player)
}

func (s *Service) handleListUnassigned(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	players, err := s.pools.ListUnassignedPlayers(r.Context(), poolID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, players)
}

func (s *Service) handleCreateTeams(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		Teams []team.TeamSpec `json:"teams"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	for i := range req.Teams {
		if req.Teams[i].ID == uuid.Nil {
			req.Teams[i].ID = uuid.New()
		}
	}
	teams, err := s.teams.CreateTeamsForPool(r.Context(), poolID, req.Teams)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, teams)
}

func (s *Service) handleAssignAll(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req struct {
		TeamID uuid.UUID `json:"team_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	moved, err := s.teams.AssignAllToTeam(r.Context(), poolID, req.TeamID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"players_moved": moved})
}

func (s *Service) handleGetPoolTeams(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	teams, err := s.teams.GetTeamsByPool(r.Context(), poolID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teams)
}

func (s *Service) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "teamID")
	if err != nil {
		respondError(w, err)
		return
	}
	found, err := s.teams.GetTeam(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}

func (s *Service) handleScheduleDraft(w http.ResponseWriter, r *http.Request) {
	poolID, err := pathUUID(r, "poolID")
	if err != nil {
		respondError(w, err)
		return
	}
	var req draft.ScheduleDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	scheduled, err := s.drafts.ScheduleDraft(r.Context(), poolID, req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, scheduled)
}

func (s *Service) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "draftID")
	if err != nil {
		respondError(w, err)
		return
	}
	found, err := s.drafts.GetDraft(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, found)
}

func (s *Service) handleRunLottery(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "draftID")
	if err != nil {
		respondError(w, err)
		return
	}
	updated, err := s.drafts.RunLottery(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Service) handleWhoseTurn(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "draftID")
	if err != nil {
		respondError(w, err)
		return
	}
	turn, err := s.drafts.WhoseTurn(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, turn)
}

// handleMakePick reads the acting coach from the verified identity, never
// from the request body.
func (s *Service) handleMakePick(w http.ResponseWriter, r *http.Request) {
	draftID, err := pathUUID(r, "draftID")
	if err != nil {
		respondError(w, err)
		return
	}
	claims, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "missing identity", http.StatusUnauthorized)
		return
	}
	var req struct {
		PlayerID uuid.UUID `json:"player_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, fmt.Errorf("invalid request body: %w", err))
		return
	}

	pick, err := s.drafts.MakePick(r.Context(), draft.MakePickRequest{
		DraftID:  draftID,
		PlayerID: req.PlayerID,
		CoachID:  claims.CoachID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pick)
}

func (s *Service) handleGetPicks(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "draftID")
	if err != nil {
		respondError(w, err)
		return
	}
	picks, err := s.drafts.GetPicksByDraft(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, picks)
}
