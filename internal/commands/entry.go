package commands

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/models"
	"github.com/balkashynov/tmr/internal/parser"
	"github.com/balkashynov/tmr/internal/service"
	"github.com/balkashynov/tmr/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a finished activity",
	Long: `Record an activity that already happened.
Without flags every field is prompted for. The start defaults to the configured
day start and the end to start plus the default duration.

Examples:
  tmr add -t meeting -d "sprint planning" -s 10:00 -e 11:30
  tmr add -d "support call" --date 20240312 -s 14:00 --duration 45`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		draft, err := addDraft(cmd, a)
		if err != nil {
			return err
		}

		if !anyFieldFlag(cmd) && tui.IsInteractive() {
			draft, err = promptFields(draft, a.config.DefaultDurationMinutes())
			if err != nil {
				return err
			}
		} else {
			typeFlag, _ := cmd.Flags().GetString("type")
			descFlag, _ := cmd.Flags().GetString("description")
			activityType, err := resolveType(typeFlag, draft.Type)
			if err != nil {
				return err
			}
			description, err := resolveDescription(descFlag, "")
			if err != nil {
				return err
			}
			draft = draft.WithType(activityType).WithDescription(description)
		}

		added, err := a.service.Add(a.ctx, draft.Type, draft.Description, draft.StartTime, *draft.EndTime)
		if err != nil {
			return err
		}
		printSaved(a, "Added", added)
		return nil
	}),
}

// addDraft builds the activity add starts from: configured defaults overlaid with flags
func addDraft(cmd *cobra.Command, a *app) (models.Activity, error) {
	day := models.DateOf(a.service.Now())
	if cmd.Flags().Changed("date") {
		value, _ := cmd.Flags().GetString("date")
		parsed, err := parser.ParseDate(value)
		if err != nil {
			return models.Activity{}, err
		}
		day = parsed
	}

	startValue := a.config.DefaultStartTime()
	if cmd.Flags().Changed("start-time") {
		startValue, _ = cmd.Flags().GetString("start-time")
	}
	start, err := parser.ParseTimeOn(day, startValue)
	if err != nil {
		return models.Activity{}, err
	}

	end, err := endFromFlags(cmd, day, start)
	if err != nil {
		return models.Activity{}, err
	}
	if end == nil {
		fallback := start.Add(time.Duration(a.config.DefaultDurationMinutes()) * time.Minute)
		end = &fallback
	}

	return models.NewCompleted(a.config.DefaultActivityType(), "", start, *end), nil
}

var copyCmd = &cobra.Command{
	Use:     "copy <id>",
	Aliases: []string{"cp"},
	Short:   "Save a new activity based on an existing one",
	Long: `Save a new completed activity that starts as a copy of activity <id>.
Fields given as flags replace the copied values, otherwise every field is prompted for.
The source activity is not changed.

Examples:
  tmr cp 12 --date 20240313                # Same activity on another day
  tmr cp 12 -s 15:00                       # Same length, later start`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parser.ParseID(args[0])
		if err != nil {
			return err
		}
		mutate, err := mutationFor(cmd, a, id)
		if err != nil {
			return err
		}
		if mutate == nil {
			return nil
		}

		copied, err := a.service.Copy(a.ctx, id, mutate)
		if err != nil {
			return err
		}
		printSaved(a, "Copied", copied)
		return nil
	}),
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a finished activity",
	Long: `Change the fields of a completed activity.
Fields given as flags are replaced, otherwise every field is prompted for.
Moving the start without a new end keeps the activity's length.

Examples:
  tmr edit 7 -d "code review"              # New description
  tmr edit 7 -e 17:15                      # New end time
  tmr edit 7 --duration 1h30m              # New length`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parser.ParseID(args[0])
		if err != nil {
			return err
		}
		mutate, err := mutationFor(cmd, a, id)
		if err != nil {
			return err
		}
		if mutate == nil {
			return nil
		}

		edited, err := a.service.Edit(a.ctx, id, mutate)
		if err != nil {
			return err
		}
		printSaved(a, "Updated", edited)
		return nil
	}),
}

// mutationFor builds the change copy and edit apply to activity id, either
// from flags or from prompts. It returns nil after reporting a missing id.
func mutationFor(cmd *cobra.Command, a *app, id int64) (service.Mutation, error) {
	current, err := a.service.Get(a.ctx, id)
	if errors.Is(err, tmrerrors.ErrNotFound) {
		a.printf("Activity with ID %d not found.\n", id)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var changed models.Activity
	if anyFieldFlag(cmd) || !tui.IsInteractive() {
		changed, err = applyFieldFlags(cmd, *current)
	} else {
		changed, err = promptFields(*current, a.config.DefaultDurationMinutes())
	}
	if err != nil {
		return nil, err
	}

	return func(models.Activity) models.Activity {
		return changed
	}, nil
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an activity",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parser.ParseID(args[0])
		if err != nil {
			return err
		}

		deleted, err := a.service.Delete(a.ctx, id)
		if errors.Is(err, tmrerrors.ErrNotFound) {
			a.printf("Activity with ID %d not found.\n", id)
			return nil
		}
		if err != nil {
			return err
		}
		a.printf("🗑️  Activity %d deleted: %s\n", deleted.ID, deleted.Description)
		return nil
	}),
}

// printSaved reports a stored completed activity
func printSaved(a *app, verb string, activity models.Activity) {
	a.printf("✅ %s activity #%d (%s): %s\n", verb, activity.ID, activity.Type, activity.Description)
	a.printf("%s - %s, %d minutes\n",
		activity.StartTime.Format(models.DateLayout+" "+models.TimeLayout),
		activity.EndTime.Format(models.TimeLayout),
		activity.Minutes(a.service.Now()))
}

func init() {
	addFieldFlags(addCmd)
	addFieldFlags(copyCmd)
	addFieldFlags(editCmd)
}
