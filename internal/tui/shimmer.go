package tui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// ShimmerConfig holds configuration for the shimmer effect
type ShimmerConfig struct {
	Enabled        bool    // animations on/off
	SpeedMs        int     // time between animation steps
	WidthRatio     float64 // highlight width relative to the text
	CycleMs        int     // time for one sweep across the text
	PauseBetweenMs int     // pause between sweeps
}

// ShimmerState holds the current position of a shimmer sweep
type ShimmerState struct {
	Center            float64
	LastUpdate        time.Time
	Config            ShimmerConfig
	SupportsTrueColor bool
	IsPaused          bool
	PauseStartTime    time.Time
}

// DefaultShimmerConfig returns the default shimmer configuration.
// Setting NO_MOTION in the environment renders static highlighted text.
func DefaultShimmerConfig() ShimmerConfig {
	_, noMotion := os.LookupEnv("NO_MOTION")
	return ShimmerConfig{
		Enabled:        !noMotion,
		SpeedMs:        100,
		WidthRatio:     0.25,
		CycleMs:        1800,
		PauseBetweenMs: 500,
	}
}

// NewShimmerState creates a new shimmer state
func NewShimmerState(config ShimmerConfig) *ShimmerState {
	return &ShimmerState{
		LastUpdate:        time.Now(),
		Config:            config,
		SupportsTrueColor: os.Getenv("COLORTERM") == "truecolor",
	}
}

// Advance moves the sweep forward for text of the given rune length
func (s *ShimmerState) Advance(now time.Time, textLen int) {
	if !s.Config.Enabled || textLen <= 0 {
		return
	}
	if now.Sub(s.LastUpdate).Milliseconds() < int64(s.Config.SpeedMs) {
		return
	}
	s.LastUpdate = now

	if s.IsPaused {
		if now.Sub(s.PauseStartTime).Milliseconds() >= int64(s.Config.PauseBetweenMs) {
			s.IsPaused = false
			s.Center = -float64(textLen) * s.Config.WidthRatio // Start before the beginning
		}
		return
	}

	// The sweep travels from before the first glyph to past the last one
	ticksPerCycle := float64(s.Config.CycleMs) / float64(s.Config.SpeedMs)
	totalDistance := float64(textLen) * (1.0 + 2.0*s.Config.WidthRatio)
	s.Center += totalDistance / ticksPerCycle

	maxCenter := float64(textLen) * (1.0 + s.Config.WidthRatio)
	if s.Center >= maxCenter {
		s.IsPaused = true
		s.PauseStartTime = now
		s.Center = maxCenter
	}
}

// Render draws text no wider than maxWidth cells with the current sweep applied
func (s *ShimmerState) Render(text string, maxWidth int) string {
	visible := runewidth.Truncate(text, maxWidth, "...")
	runes := []rune(visible)
	if len(runes) == 0 {
		return ""
	}

	s.Advance(time.Now(), len(runes))

	switch {
	case !s.Config.Enabled:
		return fmt.Sprintf("\033[38;2;167;139;250m%s\033[0m", visible) // ColorAccentBright
	case !s.SupportsTrueColor:
		return s.renderFallback(runes)
	default:
		return s.renderTrueColor(runes)
	}
}

// renderTrueColor blends each glyph between the base grey and a light violet
// using a Gaussian centered on the sweep position
func (s *ShimmerState) renderTrueColor(runes []rune) string {
	var b strings.Builder

	baseR, baseG, baseB := 177, 184, 199 // #B1B8C7
	highR, highG, highB := 234, 230, 255 // #EAE6FF

	sigma := math.Max(1.0, s.Config.WidthRatio*float64(len(runes))/2.0)

	for i, r := range runes {
		dx := float64(i) - s.Center
		w := math.Exp(-(dx * dx) / (2 * sigma * sigma))

		red := int(float64(baseR)*(1-w) + float64(highR)*w)
		green := int(float64(baseG)*(1-w) + float64(highG)*w)
		blue := int(float64(baseB)*(1-w) + float64(highB)*w)
		fmt.Fprintf(&b, "\033[38;2;%d;%d;%dm%c", red, green, blue, r)
	}
	b.WriteString("\033[0m")

	return b.String()
}

// renderFallback highlights a window of glyphs using the 256-color palette
func (s *ShimmerState) renderFallback(runes []rune) string {
	width := max(1, int(s.Config.WidthRatio*float64(len(runes))))
	start := int(s.Center) - width/2
	end := start + width

	var b strings.Builder
	for i, r := range runes {
		if i >= start && i < end {
			fmt.Fprintf(&b, "\033[38;5;147m%c", r) // Light purple
		} else {
			fmt.Fprintf(&b, "\033[38;5;250m%c", r) // Light grey
		}
	}
	b.WriteString("\033[0m")

	return b.String()
}

// TickInterval returns how often the owning model should request a redraw
func (s *ShimmerState) TickInterval() time.Duration {
	if !s.Config.Enabled {
		return 0
	}
	return time.Duration(s.Config.SpeedMs) * time.Millisecond
}
