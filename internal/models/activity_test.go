package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
)

func TestParseActivityType(t *testing.T) {
	tests := []struct {
		input   string
		want    ActivityType
		wantErr bool
	}{
		{input: "BUG", want: TypeBug},
		{input: "develop", want: TypeDevelop},
		{input: "  Out_Of_Office ", want: TypeOutOfOffice},
		{input: "coding", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivityType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActivityTypesOrder(t *testing.T) {
	types := ActivityTypes()
	require.Len(t, types, 8)
	assert.Equal(t, TypeBug, types[0])
	assert.Equal(t, TypeSupport, types[7])
}

func TestActivityStatusLabel(t *testing.T) {
	assert.Equal(t, "Active", StatusActive.Label())
	assert.Equal(t, "Paused", StatusPaused.Label())
	assert.Equal(t, "Done", StatusCompleted.Label())
}

func TestWithHelpersDoNotMutate(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	original := NewActive(TypeDevelop, "feature work", start)

	changed := original.WithDescription("review").WithType(TypeMeeting)

	assert.Equal(t, "feature work", original.Description)
	assert.Equal(t, TypeDevelop, original.Type)
	assert.Equal(t, "review", changed.Description)
	assert.Equal(t, TypeMeeting, changed.Type)
}

func TestCompleted(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	a := NewActive(TypeBug, "crash on save", start).Completed(end)

	assert.Equal(t, StatusCompleted, a.Status)
	require.NotNil(t, a.EndTime)
	assert.Equal(t, end, *a.EndTime)
	assert.Equal(t, int64(45), a.Minutes(time.Time{}))
}

func TestDurationOfRunningActivity(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	a := NewActive(TypeDevelop, "x", start)

	assert.Equal(t, 90*time.Minute, a.Duration(start.Add(90*time.Minute)))
	assert.Equal(t, time.Duration(0), a.Duration(start.Add(-time.Hour)))
}

func TestValidate(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		a       Activity
		wantErr bool
	}{
		{name: "running", a: NewActive(TypeDevelop, "work", start)},
		{name: "completed", a: NewCompleted(TypeDevelop, "work", start, start.Add(time.Minute))},
		{name: "blank description", a: NewActive(TypeDevelop, "   ", start), wantErr: true},
		{name: "unknown type", a: NewActive("CODING", "work", start), wantErr: true},
		{name: "missing start", a: NewActive(TypeDevelop, "work", time.Time{}), wantErr: true},
		{name: "end equals start", a: NewCompleted(TypeDevelop, "work", start, start), wantErr: true},
		{name: "end before start", a: NewCompleted(TypeDevelop, "work", start, start.Add(-time.Minute)), wantErr: true},
		{name: "completed without end", a: NewActive(TypeDevelop, "work", start).WithStatus(StatusCompleted), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocalDateTime(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	in := time.Date(2024, 3, 10, 23, 59, 30, 999, zone)

	got := LocalDateTime(in)

	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 30, 0, time.UTC), got)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), DateOf(in))
	assert.True(t, LocalDateTime(time.Time{}).IsZero())
}
