package commands

import (
	"github.com/spf13/cobra"

	"github.com/balkashynov/tmr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change tmr settings. Values can also be overridden with
TMR_-prefixed environment variables, e.g. TMR_ROUNDING_MINUTES=15.

Examples:
  tmr config get                            # Every setting
  tmr config get rounding_minutes
  tmr config set default_activity_type meeting
  tmr config set csv_delimiter ";"`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one or every setting",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		keys := config.Keys()
		if len(args) == 1 {
			keys = args
		}
		for _, key := range keys {
			value, err := a.config.Get(key)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				a.printf("%s\n", value)
				continue
			}
			a.printf("%s = %q\n", key, value)
		}
		return nil
	}),
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.config.Set(args[0], args[1]); err != nil {
			return err
		}
		value, err := a.config.Get(args[0])
		if err != nil {
			return err
		}
		a.printf("%s = %q\n", args[0], value)
		return nil
	}),
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		a.printf("%s\n", a.config.Path())
		return nil
	}),
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
