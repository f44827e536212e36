package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
)

// DateLayout is the compact date format accepted on the command line
const DateLayout = "20060102"

var clockRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseDate parses a yyyyMMdd date (e.g., "20240115")
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)

	date, err := time.Parse(DateLayout, input)
	if err != nil || len(input) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, use yyyyMMdd (e.g., 20240115)", tmrerrors.ErrInvalidArgument, input)
	}
	return date, nil
}

// ParseClock parses a HH:mm time of day (e.g., "09:30")
func ParseClock(input string) (hour, minute int, err error) {
	matches := clockRegex.FindStringSubmatch(strings.TrimSpace(input))
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("%w: invalid time %q, use HH:mm (e.g., 09:30)", tmrerrors.ErrInvalidArgument, input)
	}

	hour, _ = strconv.Atoi(matches[1])
	minute, _ = strconv.Atoi(matches[2])

	// Validate ranges
	if hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour must be between 0 and 23", tmrerrors.ErrInvalidArgument)
	}
	if minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute must be between 0 and 59", tmrerrors.ErrInvalidArgument)
	}

	return hour, minute, nil
}

// ParseTimeOn combines the calendar date of day with a HH:mm time
func ParseTimeOn(day time.Time, input string) (time.Time, error) {
	hour, minute, err := ParseClock(input)
	if err != nil {
		return time.Time{}, err
	}
	return models.At(day, hour, minute), nil
}

// ParseMinutes parses a positive duration given as minutes ("90") or as a
// Go duration ("1h30m", "45m")
func ParseMinutes(input string) (int, error) {
	input = strings.TrimSpace(input)

	minutes, err := strconv.Atoi(input)
	if err != nil {
		d, derr := time.ParseDuration(input)
		if derr != nil {
			return 0, fmt.Errorf("%w: invalid duration %q, use minutes (e.g., 90) or 1h30m", tmrerrors.ErrInvalidArgument, input)
		}
		minutes = int(d / time.Minute)
	}

	if minutes <= 0 {
		return 0, fmt.Errorf("%w: duration must be at least one minute", tmrerrors.ErrInvalidArgument)
	}
	return minutes, nil
}

// ParseID parses a positive activity ID argument
func ParseID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: activity ID must be a positive number, got %q", tmrerrors.ErrInvalidArgument, input)
	}
	return id, nil
}

// ParseActivityChoice resolves a type selection typed by the user.
// Accepted forms, tried in order:
// - empty input selects fallback
// - a 1-based position in models.ActivityTypes() (e.g., "2")
// - a single first letter (e.g., "m" for MEETING)
// - the full name, ignoring case (e.g., "out_of_office")
func ParseActivityChoice(input string, fallback models.ActivityType) (models.ActivityType, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback, nil
	}

	types := models.ActivityTypes()

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(types) {
		return types[n-1], nil
	}

	if len(input) == 1 {
		letter := strings.ToUpper(input)
		for _, t := range types {
			if strings.HasPrefix(string(t), letter) {
				return t, nil
			}
		}
	}

	return models.ParseActivityType(input)
}
