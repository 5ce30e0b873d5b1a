package season

import (
	"github.com/google/uuid"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// RosterSize bounds the roster for one sport.
type RosterSize struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CreateSeasonRequest represents the data needed to open a new season.
// Roster sizes default per sport when not supplied.
type CreateSeasonRequest struct {
	ID              uuid.UUID              `json:"id"`
	ProgramID       uuid.UUID              `json:"program_id"`
	Name            string                 `json:"name"`
	Offerings       []models.SportOffering `json:"offerings"`
	RegistrationFee float64                `json:"registration_fee"`
	RosterSizes     map[string]RosterSize  `json:"roster_sizes,omitempty"`
}

// defaultRosterSizes covers the sports the portal runs today.
var defaultRosterSizes = map[string]RosterSize{
	"soccer":     {Min: 11, Max: 30},
	"basketball": {Min: 5, Max: 15},
	"baseball":   {Min: 9, Max: 20},
	"softball":   {Min: 9, Max: 20},
	"volleyball": {Min: 6, Max: 15},
	"football":   {Min: 11, Max: 35},
}

var fallbackRosterSize = RosterSize{Min: 7, Max: 20}

// rosterSizeForSport resolves the roster bounds for a sport, preferring
// request overrides over the built-in table.
func rosterSizeForSport(sport string, overrides map[string]RosterSize) RosterSize {
	if rs, ok := overrides[sport]; ok {
		return rs
	}
	if rs, ok := defaultRosterSizes[sport]; ok {
		return rs
	}
	return fallbackRosterSize
}
