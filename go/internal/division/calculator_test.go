package division

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtheapp/lockerroomlink-sub005/go/internal/models"
)

func soccerOffering() models.SportOffering {
	return models.SportOffering{
		Sport: "soccer",
		Divisions: []models.AgeGroupDivision{
			{Label: "U8", MinBirthYear: 2018, MaxBirthYear: 2019, DivisionType: models.DivisionTypeAge},
			{Label: "U10", MinBirthYear: 2016, MaxBirthYear: 2017, DivisionType: models.DivisionTypeAge},
			{Label: "U12", MinBirthYear: 2014, MaxBirthYear: 2015, DivisionType: models.DivisionTypeAge},
		},
	}
}

func TestForBirthDate(t *testing.T) {
	tests := []struct {
		name      string
		birthDate time.Time
		wantLabel string
		wantErr   error
	}{
		{
			name:      "middle of U10 range",
			birthDate: time.Date(2016, 6, 15, 0, 0, 0, 0, time.UTC),
			wantLabel: "U10",
		},
		{
			name:      "lower boundary year inclusive",
			birthDate: time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC),
			wantLabel: "U12",
		},
		{
			name:      "upper boundary year inclusive",
			birthDate: time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC),
			wantLabel: "U8",
		},
		{
			name:      "too old for any division",
			birthDate: time.Date(2010, 3, 1, 0, 0, 0, 0, time.UTC),
			wantErr:   ErrNoDivisionMatch,
		},
		{
			name:      "too young for any division",
			birthDate: time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC),
			wantErr:   ErrNoDivisionMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			div, err := ForBirthDate(soccerOffering(), tt.birthDate)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, div.Label)
		})
	}
}

func TestValidateOfferings(t *testing.T) {
	tests := []struct {
		name      string
		offerings []models.SportOffering
		wantErr   bool
		wantErrIs error
	}{
		{
			name:      "valid non-overlapping divisions",
			offerings: []models.SportOffering{soccerOffering()},
		},
		{
			name: "overlapping ranges rejected",
			offerings: []models.SportOffering{{
				Sport: "soccer",
				Divisions: []models.AgeGroupDivision{
					{Label: "U10", MinBirthYear: 2016, MaxBirthYear: 2018},
					{Label: "U8", MinBirthYear: 2018, MaxBirthYear: 2019},
				},
			}},
			wantErr:   true,
			wantErrIs: ErrOverlappingDivisions,
		},
		{
			name: "same range in different sports allowed",
			offerings: []models.SportOffering{
				{Sport: "soccer", Divisions: []models.AgeGroupDivision{{Label: "U10", MinBirthYear: 2016, MaxBirthYear: 2017}}},
				{Sport: "basketball", Divisions: []models.AgeGroupDivision{{Label: "U10", MinBirthYear: 2016, MaxBirthYear: 2017}}},
			},
		},
		{
			name: "inverted range rejected",
			offerings: []models.SportOffering{{
				Sport: "soccer",
				Divisions: []models.AgeGroupDivision{
					{Label: "U10", MinBirthYear: 2017, MaxBirthYear: 2016},
				},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOfferings(tt.offerings)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}
		})
	}
}

func TestValidateOfferingsRequiresDivisions(t *testing.T) {
	err := ValidateOfferings([]models.SportOffering{{Sport: "soccer"}})
	assert.Error(t, err)
}
