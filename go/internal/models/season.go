package models

import (
	"time"

	"github.com/google/uuid"
)

// SeasonStatus represents the lifecycle status of a program season
type SeasonStatus string

const (
	SeasonStatusDraft            SeasonStatus = "DRAFT"
	SeasonStatusRegistrationOpen SeasonStatus = "REGISTRATION_OPEN"
	SeasonStatusInProgress       SeasonStatus = "IN_PROGRESS"
	SeasonStatusCompleted        SeasonStatus = "COMPLETED"
)

// SportOffering is one sport offered in a season with its age-group divisions
type SportOffering struct {
	Sport     string             `json:"sport"`
	Divisions []AgeGroupDivision `json:"divisions"`
}

// ProgramSeason represents one season run by a program.
// Counters are mutated only through pool registry operations.
type ProgramSeason struct {
	ID                 uuid.UUID       `json:"id"`
	ProgramID          uuid.UUID       `json:"program_id"`
	Name               string          `json:"name"`
	Status             SeasonStatus    `json:"status"`
	Offerings          []SportOffering `json:"offerings"`
	RegistrationFee    float64         `json:"registration_fee"`
	TotalRegistrations int             `json:"total_registrations"`
	TotalPools         int             `json:"total_pools"`
	PoolsReadyForDraft int             `json:"pools_ready_for_draft"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
