package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show comprehensive help for tmr",
	Long:  `Display detailed help for all tmr commands and flags, or the help of a single command.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err == nil && target != rootCmd {
				target.SetOut(cmd.OutOrStdout())
				_ = target.Help()
				return
			}
		}
		showCustomHelp(cmd.OutOrStdout())
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
████████╗███╗   ███╗██████╗
╚══██╔══╝████╗ ████║██╔══██╗
   ██║   ██╔████╔██║██████╔╝
   ██║   ██║╚██╔╝██║██╔══██╗
   ██║   ██║ ╚═╝ ██║██║  ██║
   ╚═╝   ╚═╝     ╚═╝╚═╝  ╚═╝

tmr - CLI Time Tracker

COMMANDS:

  start                   Start tracking a new activity
    -t, --type            Activity type: name, first letter or number
    -d, --description     What you are working on
    -c, --connect         Start one minute after today's last activity ended
    -s, --start-time      Start time today (HH:mm)
    --no-ui               Skip the interactive timer

    Activity types:
      1 BUG  2 DEVELOP  3 GENERAL  4 INFRA
      5 MEETING  6 OUT_OF_OFFICE  7 PROBLEM  8 SUPPORT

    Timer keys:
      s             Stop the activity
      esc/q         Leave the timer, keep tracking

  stop                    Stop the running activity (end time is rounded up)
  status                  Show the running activity
  restart <id>            Start a new activity like an existing one
    -y, --yes             Stop the running activity without asking

  ls                      List activities with durations and a total
    -y, --yesterday       Yesterday
    --date                A given day (yyyyMMdd)
    --from                From a day until today
    --type                Every activity of a type
    --all                 Everything

  add                     Record a finished activity
  copy <id>, cp <id>      Save a new activity based on an existing one
  edit <id>               Change a finished activity
    -t, --type            Activity type
    -d, --description     Description
    --date                Day (yyyyMMdd)
    -s, --start-time      Start time (HH:mm)
    -e, --end-time        End time (HH:mm)
    --duration            Length: 45 or 1h30m

    Without flags every field is prompted for.

  delete <id>, rm <id>    Delete an activity

  export                  Export activities to CSV (today by default)
    --date                A given day
    --from, --to          A date range
    -o, --output          Target directory

  config get [key]        Show settings
  config set <key> <val>  Change a setting
  config path             Show the config file location

  version                 Show version information
  help                    Show this help

GLOBAL FLAGS:
  --home                  tmr home directory (default $TMR_HOME or ~/.tmr)
  --db                    SQLite database path
  --config                Config file path
  -v, --verbose           Log debug output to stderr

`)
}
