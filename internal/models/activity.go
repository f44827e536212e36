package models

import (
	"fmt"
	"strings"
	"time"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
)

// ActivityType categorizes the kind of work tracked
type ActivityType string

const (
	TypeBug         ActivityType = "BUG"
	TypeDevelop     ActivityType = "DEVELOP"
	TypeGeneral     ActivityType = "GENERAL"
	TypeInfra       ActivityType = "INFRA"
	TypeMeeting     ActivityType = "MEETING"
	TypeOutOfOffice ActivityType = "OUT_OF_OFFICE"
	TypeProblem     ActivityType = "PROBLEM"
	TypeSupport     ActivityType = "SUPPORT"
)

// ActivityTypes returns every activity type in declaration order
func ActivityTypes() []ActivityType {
	return []ActivityType{
		TypeBug,
		TypeDevelop,
		TypeGeneral,
		TypeInfra,
		TypeMeeting,
		TypeOutOfOffice,
		TypeProblem,
		TypeSupport,
	}
}

// ParseActivityType resolves a type by name, ignoring case and surrounding spaces
func ParseActivityType(s string) (ActivityType, error) {
	name := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	if name.Valid() {
		return name, nil
	}
	return "", fmt.Errorf("%w: unknown activity type %q", tmrerrors.ErrInvalidArgument, s)
}

// Valid reports whether t is one of the known types
func (t ActivityType) Valid() bool {
	for _, known := range ActivityTypes() {
		if t == known {
			return true
		}
	}
	return false
}

func (t ActivityType) String() string {
	return string(t)
}

// ActivityStatus is the lifecycle state of an activity
type ActivityStatus string

const (
	StatusActive    ActivityStatus = "ACTIVE"
	StatusPaused    ActivityStatus = "PAUSED" // reserved, never produced
	StatusCompleted ActivityStatus = "COMPLETED"
)

// ParseActivityStatus resolves a status by name, ignoring case
func ParseActivityStatus(s string) (ActivityStatus, error) {
	status := ActivityStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusActive, StatusPaused, StatusCompleted:
		return status, nil
	}
	return "", fmt.Errorf("%w: unknown activity status %q", tmrerrors.ErrInvalidArgument, s)
}

// Label returns the short display name used in tables
func (s ActivityStatus) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusPaused:
		return "Paused"
	case StatusCompleted:
		return "Done"
	}
	return string(s)
}

func (s ActivityStatus) String() string {
	return string(s)
}

// Activity is a tracked unit of work
type Activity struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	StartTime   time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime     *time.Time     `json:"end_time"`
	Type        ActivityType   `gorm:"column:activity_type;type:text;not null" json:"activity_type"`
	Status      ActivityStatus `gorm:"type:text;not null;index" json:"status"`
	Description string         `gorm:"not null" json:"description"`
}

// TableName keeps the table name singular
func (Activity) TableName() string {
	return "activity"
}

// NewActive returns an unsaved running activity
func NewActive(activityType ActivityType, description string, start time.Time) Activity {
	return Activity{
		StartTime:   LocalDateTime(start),
		Type:        activityType,
		Status:      StatusActive,
		Description: description,
	}
}

// NewCompleted returns an unsaved finished activity
func NewCompleted(activityType ActivityType, description string, start, end time.Time) Activity {
	return NewActive(activityType, description, start).Completed(end)
}

// WithStartTime returns a copy with a different start time
func (a Activity) WithStartTime(start time.Time) Activity {
	a.StartTime = LocalDateTime(start)
	return a
}

// WithEndTime returns a copy with a different end time; nil clears it
func (a Activity) WithEndTime(end *time.Time) Activity {
	if end == nil {
		a.EndTime = nil
		return a
	}
	e := LocalDateTime(*end)
	a.EndTime = &e
	return a
}

// WithStatus returns a copy with a different status
func (a Activity) WithStatus(status ActivityStatus) Activity {
	a.Status = status
	return a
}

// WithType returns a copy with a different activity type
func (a Activity) WithType(activityType ActivityType) Activity {
	a.Type = activityType
	return a
}

// WithDescription returns a copy with a different description
func (a Activity) WithDescription(description string) Activity {
	a.Description = description
	return a
}

// Completed returns a copy marked COMPLETED at end
func (a Activity) Completed(end time.Time) Activity {
	return a.WithEndTime(&end).WithStatus(StatusCompleted)
}

// IsActive reports whether the activity is still running
func (a Activity) IsActive() bool {
	return a.Status == StatusActive
}

// Duration returns the tracked time; running activities are measured up to now
func (a Activity) Duration(now time.Time) time.Duration {
	end := LocalDateTime(now)
	if a.EndTime != nil {
		end = *a.EndTime
	}
	if end.Before(a.StartTime) {
		return 0
	}
	return end.Sub(a.StartTime)
}

// Minutes returns the whole minutes of Duration
func (a Activity) Minutes(now time.Time) int64 {
	return int64(a.Duration(now) / time.Minute)
}

// Validate checks the field rules every stored activity must satisfy
func (a Activity) Validate() error {
	if a.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", tmrerrors.ErrInvalidArgument)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown activity type %q", tmrerrors.ErrInvalidArgument, a.Type)
	}
	if _, err := ParseActivityStatus(string(a.Status)); err != nil {
		return err
	}
	if strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("%w: description cannot be blank", tmrerrors.ErrInvalidArgument)
	}
	if a.Status == StatusCompleted && a.EndTime == nil {
		return fmt.Errorf("%w: completed activity needs an end time", tmrerrors.ErrInvalidArgument)
	}
	if a.EndTime != nil && !a.EndTime.After(a.StartTime) {
		return fmt.Errorf("%w: end time %s must be after start time %s",
			tmrerrors.ErrInvalidArgument, a.EndTime.Format(DateTimeLayout), a.StartTime.Format(DateTimeLayout))
	}
	return nil
}
