package tui

// Color constants for the tmr TUI theme
const (
	// Base Colors
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Hover, highlights, current step

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Completed activities, confirmations
	ColorWarning = "#F59E0B" // Running activities, warnings
)

// typeColors gives each activity type its own accent in tables
var typeColors = map[string]string{
	"BUG":           ColorError,
	"DEVELOP":       ColorAccentBright,
	"GENERAL":       ColorSecondaryText,
	"INFRA":         "#38BDF8",
	"MEETING":       ColorWarning,
	"OUT_OF_OFFICE": ColorDisabledText,
	"PROBLEM":       "#F472B6",
	"SUPPORT":       ColorSuccess,
}
