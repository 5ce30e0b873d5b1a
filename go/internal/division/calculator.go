package division

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

// ErrNoDivisionMatch is returned when a birth year falls in no configured range
var ErrNoDivisionMatch = errors.New("no division match")

// ErrOverlappingDivisions is returned when a sport offering is configured
// with divisions whose birth-year ranges overlap
var ErrOverlappingDivisions = errors.New("overlapping division ranges")

// ForBirthDate returns the division of offering whose birth-year range
// contains dob's year. Pure lookup; overlap is rejected at configuration
// time, so the first match is the only match.
func ForBirthDate(offering models.SportOffering, dob time.Time) (models.AgeGroupDivision, error) {
	year := dob.Year()
	for _, d := range offering.Divisions {
		if d.ContainsBirthYear(year) {
			return d, nil
		}
	}
	return models.AgeGroupDivision{}, fmt.Errorf("%w: birth year %d for sport %s", ErrNoDivisionMatch, year, offering.Sport)
}

// ValidateOfferings rejects a season configuration whose divisions are
// malformed or overlap within a sport. Called at season-creation time.
func ValidateOfferings(offerings []models.SportOffering) error {
	for _, offering := range offerings {
		if offering.Sport == "" {
			return fmt.Errorf("offering is missing a sport")
		}
		if len(offering.Divisions) == 0 {
			return fmt.Errorf("sport %s has no divisions", offering.Sport)
		}
		for i, d := range offering.Divisions {
			if d.Label == "" {
				return fmt.Errorf("sport %s: division %d is missing a label", offering.Sport, i)
			}
			if d.MinBirthYear > d.MaxBirthYear {
				return fmt.Errorf("sport %s division %s: min birth year %d after max %d",
					offering.Sport, d.Label, d.MinBirthYear, d.MaxBirthYear)
			}
			for _, other := range offering.Divisions[i+1:] {
				if rangesOverlap(d, other) {
					return fmt.Errorf("%w: sport %s divisions %s and %s",
						ErrOverlappingDivisions, offering.Sport, d.Label, other.Label)
				}
			}
		}
	}
	return nil
}

func rangesOverlap(a, b models.AgeGroupDivision) bool {
	return a.MinBirthYear <= b.MaxBirthYear && b.MinBirthYear <= a.MaxBirthYear
}
