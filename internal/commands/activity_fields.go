package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tmr/internal/models"
	"github.com/balkashynov/tmr/internal/parser"
	"github.com/balkashynov/tmr/internal/tui"
)

// fieldFlags are the flags shared by add, copy and edit
var fieldFlags = []string{"type", "description", "date", "start-time", "end-time", "duration"}

// addFieldFlags registers the shared activity field flags on cmd
func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "activity type: name, first letter or number")
	cmd.Flags().StringP("description", "d", "", "activity description")
	cmd.Flags().String("date", "", "day of the activity (yyyyMMdd)")
	cmd.Flags().StringP("start-time", "s", "", "start time (HH:mm)")
	cmd.Flags().StringP("end-time", "e", "", "end time (HH:mm)")
	cmd.Flags().String("duration", "", "length in minutes or as 1h30m, instead of an end time")
	cmd.MarkFlagsMutuallyExclusive("end-time", "duration")
}

// anyFieldFlag reports whether the user set any activity field on the command line
func anyFieldFlag(cmd *cobra.Command) bool {
	for _, name := range fieldFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// applyFieldFlags derives a new activity from current using only the flags
// that were set. Moving the start keeps the original length unless a new
// end or duration is given.
func applyFieldFlags(cmd *cobra.Command, current models.Activity) (models.Activity, error) {
	flags := cmd.Flags()
	edited := current

	if flags.Changed("type") {
		value, _ := flags.GetString("type")
		t, err := parser.ParseActivityChoice(value, current.Type)
		if err != nil {
			return models.Activity{}, err
		}
		edited = edited.WithType(t)
	}

	if flags.Changed("description") {
		value, _ := flags.GetString("description")
		edited = edited.WithDescription(value)
	}

	day := models.DateOf(current.StartTime)
	if flags.Changed("date") {
		value, _ := flags.GetString("date")
		parsed, err := parser.ParseDate(value)
		if err != nil {
			return models.Activity{}, err
		}
		day = parsed
	}

	start := models.At(day, current.StartTime.Hour(), current.StartTime.Minute())
	if flags.Changed("start-time") {
		value, _ := flags.GetString("start-time")
		parsed, err := parser.ParseTimeOn(day, value)
		if err != nil {
			return models.Activity{}, err
		}
		start = parsed
	}
	if !start.Equal(current.StartTime) {
		edited = edited.WithStartTime(start)
		if current.EndTime != nil {
			end := start.Add(current.EndTime.Sub(current.StartTime))
			edited = edited.WithEndTime(&end)
		}
	}

	end, err := endFromFlags(cmd, day, start)
	if err != nil {
		return models.Activity{}, err
	}
	if end != nil {
		edited = edited.WithEndTime(end)
	}

	return edited, nil
}

// endFromFlags resolves --end-time or --duration, returning nil when neither is set
func endFromFlags(cmd *cobra.Command, day, start time.Time) (*time.Time, error) {
	flags := cmd.Flags()

	if flags.Changed("end-time") {
		value, _ := flags.GetString("end-time")
		end, err := parser.ParseTimeOn(day, value)
		if err != nil {
			return nil, err
		}
		return &end, nil
	}

	if flags.Changed("duration") {
		value, _ := flags.GetString("duration")
		minutes, err := parser.ParseMinutes(value)
		if err != nil {
			return nil, err
		}
		end := start.Add(time.Duration(minutes) * time.Minute)
		return &end, nil
	}

	return nil, nil
}

// promptFields walks the user through every field of current, keeping
// existing values on empty answers. defaultMinutes sizes the proposed end
// when current has none.
func promptFields(current models.Activity, defaultMinutes int) (models.Activity, error) {
	activityType, err := tui.PromptActivityType(current.Type)
	if err != nil {
		return models.Activity{}, err
	}
	description, err := tui.PromptDescription(current.Description)
	if err != nil {
		return models.Activity{}, err
	}
	start, err := tui.PromptDateTime("Start", current.StartTime)
	if err != nil {
		return models.Activity{}, err
	}

	length := time.Duration(defaultMinutes) * time.Minute
	if current.EndTime != nil {
		length = current.EndTime.Sub(current.StartTime)
	}
	end, err := tui.PromptDateTime("End", start.Add(length))
	if err != nil {
		return models.Activity{}, err
	}

	return current.
		WithType(activityType).
		WithDescription(description).
		WithStartTime(start).
		WithEndTime(&end), nil
}
