package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/balkashynov/tmr/internal/models"
)

// Column widths for the activity table
const (
	idWidth       = 5
	dateWidth     = 10
	clockWidth    = 5
	minutesWidth  = 7
	typeWidth     = 13
	statusWidth   = 8
	minDescWidth  = 12
	tableFixedGap = 7 // one space between each of the eight columns
)

// RenderActivityTable renders activities as a bordered table with a total row.
// Running activities are measured up to now. A width of zero or less means unlimited.
func RenderActivityTable(activities []models.Activity, now time.Time, totalMinutes int64, width int) string {
	var b strings.Builder

	if len(activities) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Italic(true).
			Render("No activities found")
	}

	// Description takes whatever space the fixed columns leave
	fixed := idWidth + dateWidth + 2*clockWidth + minutesWidth + typeWidth + statusWidth + tableFixedGap
	descWidth := 40
	if width > 0 {
		descWidth = max(width-fixed-4, minDescWidth)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render(row(descWidth,
		"ID", "DATE", "START", "END", "MIN", "TYPE", "STATUS", "DESCRIPTION")))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).
		Render(strings.Repeat("─", fixed+descWidth)))
	b.WriteString("\n")

	for _, a := range activities {
		end := "-"
		if a.EndTime != nil {
			end = a.EndTime.Format(models.TimeLayout)
		}

		// Pad before coloring so escape codes do not break alignment
		cells := []string{
			fmt.Sprintf("#%d", a.ID),
			a.StartTime.Format(models.DateLayout),
			a.StartTime.Format(models.TimeLayout),
			end,
			fmt.Sprintf("%d", a.Minutes(now)),
			a.Type.String(),
			a.Status.Label(),
			a.Description,
		}
		line := row(descWidth, cells...)
		b.WriteString(colorize(line, a))
		b.WriteString("\n")
	}

	totalStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText))
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).
		Render(strings.Repeat("─", fixed+descWidth)))
	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("TOTAL: %d minutes (%s) · %d activities",
		totalMinutes, FormatMinutes(totalMinutes), len(activities))))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(0, 1).
		Render(b.String())
}

// row lays cells out into fixed-width columns
func row(descWidth int, cells ...string) string {
	widths := []int{idWidth, dateWidth, clockWidth, clockWidth, minutesWidth, typeWidth, statusWidth, descWidth}

	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = runewidth.FillRight(runewidth.Truncate(cell, widths[i], "…"), widths[i])
	}
	return strings.Join(out, " ")
}

// colorize tints a rendered row by activity state
func colorize(line string, a models.Activity) string {
	switch a.Status {
	case models.StatusActive:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Bold(true).Render(line)
	case models.StatusCompleted:
		color, ok := typeColors[string(a.Type)]
		if !ok {
			color = ColorPrimaryText
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(line)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDisabledText)).Render(line)
}

// FormatMinutes renders minutes as "1h 05m" or "45m"
func FormatMinutes(minutes int64) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	switch {
	case d.Hours() >= 1:
		return fmt.Sprintf("%.1fh", d.Hours())
	case d.Minutes() >= 1:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}
