package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 20240229 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2024-01-15", "20230229", "2024115", "20241301"} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseDate(bad)
			assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{input: "09:30", hour: 9, minute: 30},
		{input: "9:05", hour: 9, minute: 5},
		{input: "23:59", hour: 23, minute: 59},
		{input: "00:00", hour: 0, minute: 0},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "1230", wantErr: true},
		{input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			hour, minute, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestParseTimeOn(t *testing.T) {
	day := time.Date(2024, 1, 15, 18, 45, 12, 0, time.UTC)

	got, err := ParseTimeOn(day, "08:15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 8, 15, 0, 0, time.UTC), got)
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "90", want: 90},
		{input: "1h30m", want: 90},
		{input: "45m", want: 45},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "30s", wantErr: true},
		{input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument, bad)
	}
}

func TestParseActivityChoice(t *testing.T) {
	tests := []struct {
		input   string
		want    models.ActivityType
		wantErr bool
	}{
		{input: "", want: models.TypeGeneral},
		{input: "1", want: models.TypeBug},
		{input: "8", want: models.TypeSupport},
		{input: "m", want: models.TypeMeeting},
		{input: "O", want: models.TypeOutOfOffice},
		{input: "infra", want: models.TypeInfra},
		{input: "OUT_OF_OFFICE", want: models.TypeOutOfOffice},
		{input: "9", wantErr: true},
		{input: "x", wantErr: true},
		{input: "coding", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivityChoice(tt.input, models.TypeGeneral)
			if tt.wantErr {
				assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
