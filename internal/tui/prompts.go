package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
	"github.com/balkashynov/tmr/internal/parser"
)

// IsInteractive reports whether stdin is a terminal that can answer prompts
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Theme returns the huh theme in tmr colors
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(lipgloss.Color(ColorAccentMain))
	t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.Color(ColorSecondaryText))
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(lipgloss.Color(ColorAccentBright))
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(lipgloss.Color(ColorDisabledText))
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color(ColorError))
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(lipgloss.Color(ColorError))
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color(ColorAccentMain))
	t.Blurred.Title = t.Blurred.Title.Foreground(lipgloss.Color(ColorDisabledText))

	return t
}

// runField runs a single-field form, mapping an abort to ErrPromptCanceled
func runField(field huh.Field) error {
	if !IsInteractive() {
		return tmrerrors.ErrNotInteractive
	}

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(Theme()).
		WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return tmrerrors.ErrPromptCanceled
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// typeChoices describes the accepted answers for the type prompt
func typeChoices() string {
	names := make([]string, 0, len(models.ActivityTypes()))
	for i, t := range models.ActivityTypes() {
		names = append(names, fmt.Sprintf("%d.%s", i+1, t))
	}
	return strings.Join(names, "  ")
}

// PromptActivityType asks for a type by number, first letter or name.
// An empty answer keeps current.
func PromptActivityType(current models.ActivityType) (models.ActivityType, error) {
	var input string
	names := make([]string, 0, len(models.ActivityTypes()))
	for _, t := range models.ActivityTypes() {
		names = append(names, t.String())
	}

	field := huh.NewInput().
		Title(fmt.Sprintf("Activity type [%s]", current)).
		Description(typeChoices()).
		Placeholder("number, first letter or name").
		Suggestions(names).
		Value(&input).
		Validate(func(s string) error {
			_, err := parser.ParseActivityChoice(s, current)
			return err
		})

	if err := runField(field); err != nil {
		return "", err
	}
	return parser.ParseActivityChoice(input, current)
}

// PromptDescription asks for a non-blank description; an empty answer keeps current
func PromptDescription(current string) (string, error) {
	var input string

	title := "Description"
	if current != "" {
		title = fmt.Sprintf("Description [%s]", current)
	}

	field := huh.NewInput().
		Title(title).
		Value(&input).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" && current == "" {
				return errors.New("description cannot be blank")
			}
			return nil
		})

	if err := runField(field); err != nil {
		return "", err
	}
	if strings.TrimSpace(input) == "" {
		return current, nil
	}
	return strings.TrimSpace(input), nil
}

// PromptDate asks for a yyyyMMdd date; an empty answer keeps current
func PromptDate(label string, current time.Time) (time.Time, error) {
	var input string

	field := huh.NewInput().
		Title(fmt.Sprintf("%s date (yyyyMMdd) [%s]", label, current.Format(parser.DateLayout))).
		Value(&input).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			_, err := parser.ParseDate(s)
			return err
		})

	if err := runField(field); err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(input) == "" {
		return models.DateOf(current), nil
	}
	return parser.ParseDate(input)
}

// PromptClock asks for a HH:mm time on day; an empty answer uses fallback ("HH:mm")
func PromptClock(label string, day time.Time, fallback string) (time.Time, error) {
	var input string

	field := huh.NewInput().
		Title(fmt.Sprintf("%s time (HH:mm) [%s]", label, fallback)).
		Value(&input).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				s = fallback
			}
			_, _, err := parser.ParseClock(s)
			return err
		})

	if err := runField(field); err != nil {
		return time.Time{}, err
	}
	if strings.TrimSpace(input) == "" {
		input = fallback
	}
	return parser.ParseTimeOn(day, input)
}

// PromptMinutes asks for a positive duration; an empty answer keeps current
func PromptMinutes(label string, current int) (int, error) {
	var input string

	field := huh.NewInput().
		Title(fmt.Sprintf("%s in minutes [%d]", label, current)).
		Value(&input).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			_, err := parser.ParseMinutes(s)
			return err
		})

	if err := runField(field); err != nil {
		return 0, err
	}
	if strings.TrimSpace(input) == "" {
		return current, nil
	}
	return parser.ParseMinutes(input)
}

// Confirm asks a yes/no question
func Confirm(message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes

	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := runField(field); err != nil {
		return false, err
	}
	return confirmed, nil
}

// clockOf formats the time-of-day part of t for use as a prompt default
func clockOf(t time.Time) string {
	return t.Format(models.TimeLayout)
}

// PromptDateTime asks for a date and then a time on that date, defaulting to current
func PromptDateTime(label string, current time.Time) (time.Time, error) {
	day, err := PromptDate(label, current)
	if err != nil {
		return time.Time{}, err
	}
	return PromptClock(label, day, clockOf(current))
}

