package models

// DivisionType distinguishes age-based from grade-based divisions
type DivisionType string

const (
	DivisionTypeAge   DivisionType = "AGE"
	DivisionTypeGrade DivisionType = "GRADE"
)

// AgeGroupDivision is an immutable eligibility bracket attached to a
// season's sport offering. Birth-year bounds are inclusive.
type AgeGroupDivision struct {
	Label        string       `json:"label"`
	MinBirthYear int          `json:"min_birth_year"`
	MaxBirthYear int          `json:"max_birth_year"`
	DivisionType DivisionType `json:"division_type"`
}

// ContainsBirthYear reports whether year falls inside the division's range
func (d AgeGroupDivision) ContainsBirthYear(year int) bool {
	return year >= d.MinBirthYear && year <= d.MaxBirthYear
}
