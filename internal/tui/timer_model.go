package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/balkashynov/tmr/internal/models"
)

// StopFunc completes the running activity when the user stops the timer
type StopFunc func() (*models.Activity, error)

// TimerOutcome reports how the timer view was left
type TimerOutcome struct {
	Stopped  *models.Activity // set when the user stopped the activity
	Detached bool             // true when the user left the activity running
}

// timerKeyMap defines the timer key bindings
type timerKeyMap struct {
	Stop  key.Binding
	Leave key.Binding
	Quit  key.Binding
}

// ShortHelp implements help.KeyMap
func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Leave, k.Quit}
}

// FullHelp implements help.KeyMap
func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		Stop:  key.NewBinding(key.WithKeys("s", "S"), key.WithHelp("s", "stop & save")),
		Leave: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "exit (keep running)")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
	}
}

// TimerModel represents the TUI model for a running activity
type TimerModel struct {
	width    int
	height   int
	activity models.Activity
	now      func() time.Time

	// Timer state
	elapsedTime time.Duration

	// Animation state
	timerAnimation int
	shimmer        *ShimmerState

	keys timerKeyMap
	help help.Model

	// UI state
	stopping bool // True when user pressed S
	exiting  bool // True when user pressed ESC/Q and the activity keeps running
}

// timerTickMsg is sent every second to update the timer
type timerTickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewTimerModel creates a timer model for a running activity; now must
// return zone-less wall-clock time like the stored start time
func NewTimerModel(activity models.Activity, now func() time.Time) TimerModel {
	h := help.New()
	h.Styles.ShortKey = h.Styles.ShortKey.Foreground(lipgloss.Color(ColorAccentBright))
	h.Styles.ShortDesc = h.Styles.ShortDesc.Foreground(lipgloss.Color(ColorHelpText))

	return TimerModel{
		activity:    activity,
		now:         now,
		elapsedTime: activity.Duration(now()),
		shimmer:     NewShimmerState(DefaultShimmerConfig()),
		keys:        newTimerKeyMap(),
		help:        h,
	}
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

func animationTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}

// Init initializes the timer model
func (m TimerModel) Init() tea.Cmd {
	return tea.Batch(timerTick(), animationTick())
}

// Update handles messages
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsedTime = m.activity.Duration(m.now())
		if m.done() {
			return m, nil
		}
		return m, timerTick()

	case animationTickMsg:
		m.timerAnimation = (m.timerAnimation + 1) % 4
		if m.done() {
			return m, nil
		}
		return m, animationTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Stop):
			m.stopping = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Leave), key.Matches(msg, m.keys.Quit):
			m.exiting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m TimerModel) done() bool {
	return m.stopping || m.exiting
}

// View renders the timer TUI
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(m.width).
		Render(m.help.View(m.keys))

	// Available height for content (total minus help bar and gap)
	contentHeight := m.height - 2

	// Narrow view: just the timer panel
	if m.width < 90 {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderTimerPanel(m.width, contentHeight), helpBar)
	}

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth - 2

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTimerPanel(leftWidth, contentHeight),
		"  ",
		m.renderDetailsPanel(rightWidth, contentHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, content, helpBar)
}

// renderTimerPanel renders the left timer panel
func (m TimerModel) renderTimerPanel(width, height int) string {
	centered := lipgloss.NewStyle().Align(lipgloss.Center).Width(width)

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.timerAnimation]

	components := []string{
		centered.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).
			Render(fmt.Sprintf("%s  TRACKING TIME  %s", animChar, animChar)),
		centered.Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).
			Render(fmt.Sprintf("#%d · %s", m.activity.ID, m.activity.Type)),
		centered.Render(m.shimmer.Render(m.activity.Description, max(width-4, 8))),
	}

	var clock strings.Builder
	for _, line := range strings.Split(m.renderBigClock(), "\n") {
		clock.WriteString(centered.Render(line))
		clock.WriteString("\n")
	}
	components = append(components, strings.TrimRight(clock.String(), "\n"))

	components = append(components, centered.Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
		Render("Started at "+m.activity.StartTime.Format("15:04:05")))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(components, "\n\n"))
}

// renderBigClock renders the elapsed time as ASCII art
func (m TimerModel) renderBigClock() string {
	hours := int(m.elapsedTime.Hours())
	minutes := int(m.elapsedTime.Minutes()) % 60
	seconds := int(m.elapsedTime.Seconds()) % 60

	// ASCII art for digits (5x5 characters each)
	digits := map[rune][][]string{
		'0': {
			{" ███ "},
			{"█   █"},
			{"█   █"},
			{"█   █"},
			{" ███ "},
		},
		'1': {
			{"  █  "},
			{" ██  "},
			{"  █  "},
			{"  █  "},
			{"█████"},
		},
		'2': {
			{" ███ "},
			{"█   █"},
			{"   █ "},
			{"  █  "},
			{"█████"},
		},
		'3': {
			{" ███ "},
			{"█   █"},
			{"  ██ "},
			{"█   █"},
			{" ███ "},
		},
		'4': {
			{"█   █"},
			{"█   █"},
			{"█████"},
			{"    █"},
			{"    █"},
		},
		'5': {
			{"█████"},
			{"█    "},
			{"████ "},
			{"    █"},
			{"████ "},
		},
		'6': {
			{" ███ "},
			{"█    "},
			{"████ "},
			{"█   █"},
			{" ███ "},
		},
		'7': {
			{"█████"},
			{"    █"},
			{"   █ "},
			{"  █  "},
			{" █   "},
		},
		'8': {
			{" ███ "},
			{"█   █"},
			{" ███ "},
			{"█   █"},
			{" ███ "},
		},
		'9': {
			{" ███ "},
			{"█   █"},
			{" ████"},
			{"    █"},
			{" ███ "},
		},
		':': {
			{"     "},
			{"  █  "},
			{"     "},
			{"  █  "},
			{"     "},
		},
	}

	timeStr := fmt.Sprintf("%02d:%02d", minutes, seconds)
	if hours > 0 {
		timeStr = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		if digitArt, ok := digits[char]; ok {
			for i := 0; i < 5; i++ {
				lines[i].WriteString(digitArt[i][0])
				lines[i].WriteString(" ")
			}
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = clockStyle.Render(lines[i].String())
	}
	return strings.Join(rendered, "\n")
}

// renderDetailsPanel renders the right panel with the activity details
func (m TimerModel) renderDetailsPanel(width, height int) string {
	var b strings.Builder
	row := lipgloss.NewStyle().Align(lipgloss.Center).Width(width - 8)

	b.WriteString("\n")

	logoLines := []string{
		"████████╗███╗   ███╗██████╗ ",
		"╚══██╔══╝████╗ ████║██╔══██╗",
		"   ██║   ██╔████╔██║██████╔╝",
		"   ██║   ██║╚██╔╝██║██╔══██╗",
		"   ██║   ██║ ╚═╝ ██║██║  ██║",
		"   ╚═╝   ╚═╝     ╚═╝╚═╝  ╚═╝",
	}
	b.WriteString(row.Foreground(lipgloss.Color(ColorAccentMain)).Bold(true).Render(strings.Join(logoLines, "\n")))
	b.WriteString("\n\n")

	separator := strings.Repeat("─", min(width-12, 40))
	b.WriteString(row.Foreground(lipgloss.Color(ColorBorder)).Render(separator))
	b.WriteString("\n\n")

	// Description in bordered box
	descStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Width(width-12).
		Padding(0, 1)
	b.WriteString(descStyle.Render(runewidth.Truncate(m.activity.Description, (width-16)*3, "...")))
	b.WriteString("\n\n")

	value := func(color, text string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(text)
	}
	typeColor, ok := typeColors[string(m.activity.Type)]
	if !ok {
		typeColor = ColorAccentBright
	}

	details := []string{
		fmt.Sprintf("🆔 ID: %s", value(ColorAccentMain, fmt.Sprintf("#%d", m.activity.ID))),
		fmt.Sprintf("🏷️  Type: %s", value(typeColor, m.activity.Type.String())),
		fmt.Sprintf("● Status: %s", value(ColorWarning, m.activity.Status.Label())),
		fmt.Sprintf("📅 Date: %s", value(ColorSecondaryText, m.activity.StartTime.Format("Jan 02, 2006"))),
		fmt.Sprintf("🕘 Started: %s", value(ColorSecondaryText, m.activity.StartTime.Format("15:04"))),
	}
	for _, line := range details {
		b.WriteString(row.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

// RunTimerTUI shows the running activity until the user stops it or leaves.
// Stopping goes through stop so rounding and persistence stay in one place.
func RunTimerTUI(activity models.Activity, now func() time.Time, stop StopFunc) (TimerOutcome, error) {
	p := tea.NewProgram(NewTimerModel(activity, now), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return TimerOutcome{}, err
	}

	timerModel, ok := finalModel.(TimerModel)
	if !ok || !timerModel.stopping {
		return TimerOutcome{Detached: true}, nil
	}

	stopped, err := stop()
	if err != nil {
		return TimerOutcome{}, fmt.Errorf("failed to stop activity: %w", err)
	}
	return TimerOutcome{Stopped: stopped}, nil
}
