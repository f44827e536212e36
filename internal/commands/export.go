package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tmr/internal/export"
	"github.com/balkashynov/tmr/internal/models"
	"github.com/balkashynov/tmr/internal/parser"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export activities to a CSV file",
	Long: `Export activities to a new CSV file using the configured delimiter.
Exports today by default.

Examples:
  tmr export                                # Today into the current directory
  tmr export --date 20240115 -o ~/reports   # A given day
  tmr export --from 20240101 --to 20240131  # A date range`,
	Args: cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		dateFlag, _ := cmd.Flags().GetString("date")
		fromFlag, _ := cmd.Flags().GetString("from")
		toFlag, _ := cmd.Flags().GetString("to")
		output, _ := cmd.Flags().GetString("output")

		if toFlag != "" && fromFlag == "" {
			return fmt.Errorf("--to requires --from")
		}

		now := a.service.Now()
		from := models.DateOf(now)
		to := from

		switch {
		case fromFlag != "":
			parsed, err := parser.ParseDate(fromFlag)
			if err != nil {
				return err
			}
			from = parsed
			if toFlag != "" {
				if to, err = parser.ParseDate(toFlag); err != nil {
					return err
				}
			}
		case dateFlag != "":
			parsed, err := parser.ParseDate(dateFlag)
			if err != nil {
				return err
			}
			from, to = parsed, parsed
		}

		activities, err := a.service.ListRange(a.ctx, from, to)
		if err != nil {
			return err
		}

		path, err := export.WriteFile(output, activities, a.config.CSVDelimiter(), now)
		if err != nil {
			return err
		}

		a.logger.Info().Str("path", path).Int("count", len(activities)).Msg("activities exported")
		a.printf("📄 Exported %d activities to %s\n", len(activities), path)
		return nil
	}),
}

func init() {
	exportCmd.Flags().String("date", "", "export a given day (yyyyMMdd)")
	exportCmd.Flags().String("from", "", "first day to export (yyyyMMdd)")
	exportCmd.Flags().String("to", "", "last day to export (yyyyMMdd, default today)")
	exportCmd.Flags().StringP("output", "o", ".", "directory to write the file into")
	exportCmd.MarkFlagsMutuallyExclusive("date", "from")
}
