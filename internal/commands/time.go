package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
	"github.com/balkashynov/tmr/internal/parser"
	"github.com/balkashynov/tmr/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start tracking a new activity",
	Long: `Start tracking a new activity. Any running activity is completed first.
Missing values are prompted for. Opens the interactive timer unless --no-ui is set.

Examples:
  tmr start -t develop -d "login form"     # Start now
  tmr start -t m -d standup -s 09:30       # Start at 09:30 today
  tmr start -d "code review" --connect     # Start when the previous activity ended`,
	Args: cobra.NoArgs,
	RunE: withApp(runStart),
}

func runStart(cmd *cobra.Command, args []string, a *app) error {
	typeFlag, _ := cmd.Flags().GetString("type")
	description, _ := cmd.Flags().GetString("description")
	connect, _ := cmd.Flags().GetBool("connect")
	startFlag, _ := cmd.Flags().GetString("start-time")
	noUI, _ := cmd.Flags().GetBool("no-ui")

	activityType, err := resolveType(typeFlag, a.config.DefaultActivityType())
	if err != nil {
		return err
	}
	description, err = resolveDescription(description, "")
	if err != nil {
		return err
	}

	startTime, err := resolveStartTime(a, connect, startFlag)
	if err != nil {
		return err
	}

	activity, err := a.service.Start(a.ctx, activityType, description, startTime)
	if err != nil {
		return err
	}

	if noUI || !tui.IsInteractive() {
		a.printf("⏱️  Started activity #%d (%s): %s\n", activity.ID, activity.Type, activity.Description)
		a.printf("Started at: %s\n", activity.StartTime.Format(models.TimeLayout))
		return nil
	}

	outcome, err := tui.RunTimerTUI(activity, a.service.Now, func() (*models.Activity, error) {
		return a.service.Stop(a.ctx)
	})
	if err != nil {
		return err
	}
	if outcome.Stopped != nil {
		printStopped(a, *outcome.Stopped)
		return nil
	}
	a.printf("\n💡 Activity #%d is still running: %s\n", activity.ID, activity.Description)
	a.printf("   Use 'tmr status' to check it or 'tmr stop' to stop it.\n")
	return nil
}

// resolveStartTime picks the start from --connect, --start-time, a prompt or now
func resolveStartTime(a *app, connect bool, startFlag string) (time.Time, error) {
	now := a.service.Now()
	today := models.DateOf(now)

	if startFlag != "" {
		return parser.ParseTimeOn(today, startFlag)
	}

	if connect {
		start, err := a.service.ConnectedStartTime(a.ctx, today)
		switch {
		case err == nil:
			a.printf("Connecting to previous activity, starting at %s\n", start.Format(models.TimeLayout))
			return start, nil
		case errors.Is(err, tmrerrors.ErrActivityActive):
			return time.Time{}, fmt.Errorf("cannot connect: the latest activity of today is still running: %w", err)
		case errors.Is(err, tmrerrors.ErrNoActivities):
			// Nothing to connect to, fall back to the configured day start
			fallback := a.config.DefaultStartTime()
			if !tui.IsInteractive() {
				return parser.ParseTimeOn(today, fallback)
			}
			return tui.PromptClock("No activity today yet. Start", today, fallback)
		default:
			return time.Time{}, err
		}
	}

	if !tui.IsInteractive() {
		return now, nil
	}
	start, err := tui.PromptClock("Start", today, now.Format(models.TimeLayout))
	if err != nil {
		return time.Time{}, err
	}
	if start.Equal(now.Truncate(time.Minute)) {
		return now, nil
	}
	return start, nil
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running activity",
	Long:  "Stop the running activity. The end time is rounded up to the configured rounding interval.",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		stopped, err := a.service.Stop(a.ctx)
		if err != nil {
			return err
		}
		if stopped == nil {
			a.printf("No active activity found.\n")
			return nil
		}
		printStopped(a, *stopped)
		return nil
	}),
}

// printStopped reports a completed activity
func printStopped(a *app, activity models.Activity) {
	a.printf("⏹️  Stopped activity #%d (%s): %s\n", activity.ID, activity.Type, activity.Description)
	a.printf("Duration: %d minutes (%s - %s)\n",
		activity.Minutes(a.service.Now()),
		activity.StartTime.Format(models.TimeLayout),
		activity.EndTime.Format(models.TimeLayout))
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running activity",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		active, err := a.service.Active(a.ctx)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			a.printf("No active activity.\n")
			return nil
		}

		now := a.service.Now()
		for _, activity := range active {
			a.printf("⏱️  Currently tracking #%d (%s): %s\n", activity.ID, activity.Type, activity.Description)
			a.printf("Started at: %s\n", activity.StartTime.Format(models.DateTimeLayout))
			a.printf("Elapsed time: %s\n", tui.FormatDuration(activity.Duration(now)))
		}
		return nil
	}),
}

var restartCmd = &cobra.Command{
	Use:   "restart <id>",
	Short: "Start a new activity with the type and description of an existing one",
	Long: `Start a new activity now, copying the type and description of activity <id>.
The running activity, if any, is stopped first. The source activity is not changed.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parser.ParseID(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")

		active, err := a.service.Active(a.ctx)
		if err != nil {
			return err
		}
		if len(active) > 0 && !yes {
			ok, err := tui.Confirm(fmt.Sprintf("Activity #%d (%s) is running. Stop it and restart #%d?",
				active[0].ID, active[0].Description, id), false)
			if err != nil {
				return fmt.Errorf("confirmation required, pass --yes to skip it: %w", err)
			}
			if !ok {
				a.printf("Restart cancelled.\n")
				return nil
			}
		}

		result, err := a.service.Restart(a.ctx, id)
		if err != nil {
			return err
		}
		if result == nil {
			a.printf("Activity with ID %d not found.\n", id)
			return nil
		}

		if result.Stopped != nil {
			a.printf("Stopped activity #%d: %s (%d minutes)\n",
				result.Stopped.ID, result.Stopped.Description, result.Stopped.Minutes(a.service.Now()))
		}
		a.printf("▶️  Started activity #%d (%s): %s at %s\n",
			result.Started.ID, result.Started.Type, result.Started.Description,
			result.Started.StartTime.Format(models.TimeLayout))
		return nil
	}),
}

// resolveType parses a --type value or prompts for one
func resolveType(flag string, fallback models.ActivityType) (models.ActivityType, error) {
	if flag != "" {
		return parser.ParseActivityChoice(flag, fallback)
	}
	if !tui.IsInteractive() {
		return fallback, nil
	}
	return tui.PromptActivityType(fallback)
}

// resolveDescription returns the --description value or prompts for one
func resolveDescription(flag, current string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if !tui.IsInteractive() {
		if current != "" {
			return current, nil
		}
		return "", fmt.Errorf("description is required, pass --description: %w", tmrerrors.ErrNotInteractive)
	}
	return tui.PromptDescription(current)
}

func init() {
	startCmd.Flags().StringP("type", "t", "", "activity type: name, first letter or number")
	startCmd.Flags().StringP("description", "d", "", "what you are working on")
	startCmd.Flags().BoolP("connect", "c", false, "start one minute after today's last activity ended")
	startCmd.Flags().StringP("start-time", "s", "", "start time today (HH:mm)")
	startCmd.Flags().Bool("no-ui", false, "start without the interactive timer")
	startCmd.MarkFlagsMutuallyExclusive("connect", "start-time")

	restartCmd.Flags().BoolP("yes", "y", false, "stop the running activity without asking")
}
