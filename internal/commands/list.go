package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/balkashynov/tmr/internal/models"
	"github.com/balkashynov/tmr/internal/parser"
	"github.com/balkashynov/tmr/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List activities",
	Long: `List activities with their duration and a total. Shows today by default.

Examples:
  tmr ls                    # Today
  tmr ls -y                 # Yesterday
  tmr ls --date 20240115    # A given day
  tmr ls --from 20240108    # From a day until today
  tmr ls --type bug         # Every BUG activity, newest first
  tmr ls --all              # Everything`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		activities, title, err := selectActivities(cmd, a)
		if err != nil {
			return err
		}

		a.printf("%s\n", title)
		a.printf("%s\n", tui.RenderActivityTable(activities, a.service.Now(), a.service.TotalMinutes(activities), terminalWidth()))
		return nil
	}),
}

// selectActivities runs the query chosen by the list flags
func selectActivities(cmd *cobra.Command, a *app) ([]models.Activity, string, error) {
	dateFlag, _ := cmd.Flags().GetString("date")
	fromFlag, _ := cmd.Flags().GetString("from")
	typeFlag, _ := cmd.Flags().GetString("type")
	all, _ := cmd.Flags().GetBool("all")
	yesterday, _ := cmd.Flags().GetBool("yesterday")

	today := models.DateOf(a.service.Now())

	switch {
	case all:
		activities, err := a.service.ListAll(a.ctx)
		return activities, "All activities", err

	case typeFlag != "":
		activityType, err := models.ParseActivityType(typeFlag)
		if err != nil {
			return nil, "", err
		}
		activities, err := a.service.ListByType(a.ctx, activityType)
		return activities, fmt.Sprintf("%s activities", activityType), err

	case fromFlag != "":
		from, err := parser.ParseDate(fromFlag)
		if err != nil {
			return nil, "", err
		}
		activities, err := a.service.ListRange(a.ctx, from, today)
		return activities, fmt.Sprintf("Activities from %s to %s", from.Format(models.DateLayout), today.Format(models.DateLayout)), err

	default:
		day := today
		if yesterday {
			day = today.AddDate(0, 0, -1)
		}
		if dateFlag != "" {
			parsed, err := parser.ParseDate(dateFlag)
			if err != nil {
				return nil, "", err
			}
			day = parsed
		}
		activities, err := a.service.ListDay(a.ctx, day)
		return activities, "Activities on " + day.Format("Mon, "+models.DateLayout), err
	}
}

// terminalWidth returns the stdout width, or 0 when it is not a terminal
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func init() {
	listCmd.Flags().String("date", "", "list a given day (yyyyMMdd)")
	listCmd.Flags().String("from", "", "list from a day (yyyyMMdd) until today")
	listCmd.Flags().String("type", "", "list every activity of a type")
	listCmd.Flags().Bool("all", false, "list every activity")
	listCmd.Flags().BoolP("yesterday", "y", false, "list yesterday")
	listCmd.MarkFlagsMutuallyExclusive("date", "from", "type", "all", "yesterday")
}
