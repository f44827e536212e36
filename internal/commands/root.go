package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tmr/internal/clock"
	"github.com/balkashynov/tmr/internal/config"
	"github.com/balkashynov/tmr/internal/db"
	"github.com/balkashynov/tmr/internal/logging"
	"github.com/balkashynov/tmr/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	homeFlag    string
	dbFlag      string
	configFlag  string
	verboseFlag bool
)

// appClock is the time source for every command
var appClock clock.Clock = clock.RealClock{}

var rootCmd = &cobra.Command{
	Use:   "tmr",
	Short: "A CLI time tracker",
	Long: `tmr is a command-line time tracker. Start an activity, work on it, stop it,
and tmr keeps the timestamps. List, edit, copy and export what you tracked.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app bundles the collaborators a command run needs
type app struct {
	ctx     context.Context
	service *service.ActivityService
	config  *config.Provider
	logger  zerolog.Logger
	out     io.Writer
}

// resolveHome returns the tmr home directory from --home, TMR_HOME or ~/.tmr
func resolveHome() (string, error) {
	if homeFlag != "" {
		return homeFlag, nil
	}
	if env := os.Getenv("TMR_HOME"); env != "" {
		return env, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(userHome, ".tmr"), nil
}

// withApp wraps a command so it runs with an open database and loaded config.
// The database handle is released when the command returns.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		home, err := resolveHome()
		if err != nil {
			return err
		}

		logger, logCloser := logging.Init(home, verboseFlag)
		defer logCloser.Close()

		configPath := configFlag
		if configPath == "" {
			configPath = config.DefaultPath(home)
		}
		cfg, err := config.Load(configPath, logger)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dbPath := dbFlag
		if dbPath == "" {
			dbPath = db.DefaultPath(home)
		}
		conn, err := db.Open(dbPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(conn); err != nil {
				logger.Warn().Err(err).Msg("failed to close database")
			}
		}()

		logger.Debug().Str("command", cmd.Name()).Str("db", dbPath).Msg("command started")

		repo := db.NewActivityStore(conn, logger)
		a := &app{
			ctx:     cmd.Context(),
			service: service.NewActivityService(repo, cfg, appClock, logger),
			config:  cfg,
			logger:  logger,
			out:     cmd.OutOrStdout(),
		}
		if a.ctx == nil {
			a.ctx = context.Background()
		}
		return fn(cmd, args, a)
	}
}

// printf writes formatted output for the user
func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tmr %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeFlag, "home", "", "tmr home directory (default $TMR_HOME or ~/.tmr)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to the SQLite database (default <home>/tmr.db)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to the config file (default <home>/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(restartCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
