package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/tmr/internal/clock"
	tmrerrors "github.com/balkashynov/tmr/internal/errors"
	"github.com/balkashynov/tmr/internal/tui"
)

// tmrHarness runs commands against a throwaway home directory with a frozen clock
type tmrHarness struct {
	t     *testing.T
	home  string
	clock *clock.Fixed
}

func newHarness(t *testing.T) *tmrHarness {
	t.Helper()
	if tui.IsInteractive() {
		t.Skip("stdin is a terminal, commands would prompt")
	}

	clk := &clock.Fixed{At: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	previous := appClock
	appClock = clk
	t.Cleanup(func() { appClock = previous })

	return &tmrHarness{t: t, home: t.TempDir(), clock: clk}
}

// run executes tmr with args and returns everything written to stdout
func (h *tmrHarness) run(args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--home", h.home}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func (h *tmrHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

// resetFlags restores every flag to its default so runs do not leak into each other
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestStartStopStatus(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("stop")
	assert.Contains(t, out, "No active activity found.")

	out = h.mustRun("start", "--no-ui", "-t", "bug", "-d", "login crash")
	assert.Contains(t, out, "Started activity #1 (BUG): login crash")
	assert.Contains(t, out, "Started at: 10:00")

	h.clock.Advance(32 * time.Minute)
	out = h.mustRun("status")
	assert.Contains(t, out, "Currently tracking #1 (BUG): login crash")
	assert.Contains(t, out, "Elapsed time: 32m")

	// A fresh config rounds to 5 minutes
	out = h.mustRun("stop")
	assert.Contains(t, out, "Stopped activity #1 (BUG): login crash")
	assert.Contains(t, out, "Duration: 35 minutes (10:00 - 10:35)")

	out = h.mustRun("status")
	assert.Contains(t, out, "No active activity.")
}

func TestStartCompletesRunningActivity(t *testing.T) {
	h := newHarness(t)

	h.mustRun("start", "--no-ui", "-d", "first")
	h.clock.Advance(20 * time.Minute)
	h.mustRun("start", "--no-ui", "-d", "second")

	out := h.mustRun("ls")
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "2 activities")
}

func TestStartWithoutDescriptionFailsWithoutTerminal(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("start", "--no-ui")
	assert.ErrorIs(t, err, tmrerrors.ErrNotInteractive)
}

func TestStartConnect(t *testing.T) {
	h := newHarness(t)

	h.mustRun("add", "-d", "standup", "-s", "09:00", "-e", "09:15")
	out := h.mustRun("start", "--no-ui", "--connect", "-d", "review")
	assert.Contains(t, out, "starting at 09:16")
	assert.Contains(t, out, "Started at: 09:16")

	_, err := h.run("start", "--no-ui", "--connect", "-d", "again")
	assert.ErrorIs(t, err, tmrerrors.ErrActivityActive)
}

func TestStartConnectFallsBackToDayStart(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("start", "--no-ui", "--connect", "-d", "first of the day")
	assert.Contains(t, out, "Started at: 09:00")
}

func TestAdd(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "-t", "m", "-d", "standup", "-s", "09:00", "-e", "09:15")
	assert.Contains(t, out, "Added activity #1 (MEETING): standup")
	assert.Contains(t, out, "2024-01-15 09:00 - 09:15, 15 minutes")

	// Defaults come from the config file
	out = h.mustRun("add", "-d", "planning", "--date", "20240112")
	assert.Contains(t, out, "Added activity #2 (DEVELOP): planning")
	assert.Contains(t, out, "2024-01-12 09:00 - 10:00, 60 minutes")

	out = h.mustRun("add", "-d", "call", "-s", "13:00", "--duration", "1h30m")
	assert.Contains(t, out, "2024-01-15 13:00 - 14:30, 90 minutes")
}

func TestAddRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("add", "-s", "09:00")
	assert.ErrorIs(t, err, tmrerrors.ErrNotInteractive)

	_, err = h.run("add", "-d", "backwards", "-s", "10:00", "-e", "09:00")
	assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)

	_, err = h.run("add", "-d", "x", "-e", "10:00", "--duration", "15")
	assert.Error(t, err)
}

func TestEdit(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-t", "meeting", "-d", "standup", "-s", "09:00", "-e", "09:15")

	// Moving the start keeps the length
	out := h.mustRun("edit", "1", "-s", "11:00")
	assert.Contains(t, out, "Updated activity #1 (MEETING): standup")
	assert.Contains(t, out, "2024-01-15 11:00 - 11:15, 15 minutes")

	out = h.mustRun("edit", "1", "-e", "11:45", "-d", "retro", "-t", "general")
	assert.Contains(t, out, "Updated activity #1 (GENERAL): retro")
	assert.Contains(t, out, "11:00 - 11:45, 45 minutes")

	out = h.mustRun("edit", "1", "--duration", "20")
	assert.Contains(t, out, "11:00 - 11:20, 20 minutes")

	out = h.mustRun("edit", "42", "-d", "nothing")
	assert.Contains(t, out, "Activity with ID 42 not found.")
}

func TestEditRefusesRunningActivity(t *testing.T) {
	h := newHarness(t)
	h.mustRun("start", "--no-ui", "-d", "running")

	_, err := h.run("edit", "1", "-d", "changed")
	assert.ErrorIs(t, err, tmrerrors.ErrActivityActive)
}

func TestCopy(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-t", "support", "-d", "ticket", "-s", "09:00", "-e", "09:30")

	out := h.mustRun("cp", "1", "--date", "20240116")
	assert.Contains(t, out, "Copied activity #2 (SUPPORT): ticket")
	assert.Contains(t, out, "2024-01-16 09:00 - 09:30, 30 minutes")

	// The source is untouched
	out = h.mustRun("ls")
	assert.Contains(t, out, "#1")
	assert.NotContains(t, out, "#2")
	assert.Contains(t, out, "TOTAL: 30 minutes")
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-d", "mistake", "-s", "09:00", "-e", "09:05")

	out := h.mustRun("rm", "1")
	assert.Contains(t, out, "Activity 1 deleted: mistake")

	out = h.mustRun("delete", "1")
	assert.Contains(t, out, "Activity with ID 1 not found.")

	_, err := h.run("delete", "abc")
	assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)
}

func TestRestart(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-t", "bug", "-d", "flaky test", "-s", "08:00", "-e", "08:30")

	out := h.mustRun("restart", "9")
	assert.Contains(t, out, "Activity with ID 9 not found.")

	out = h.mustRun("restart", "1")
	assert.Contains(t, out, "Started activity #2 (BUG): flaky test at 10:00")

	h.clock.Advance(10 * time.Minute)
	out = h.mustRun("restart", "1", "--yes")
	assert.Contains(t, out, "Stopped activity #2: flaky test (10 minutes)")
	assert.Contains(t, out, "Started activity #3 (BUG): flaky test at 10:10")

	// Asking for confirmation needs a terminal
	_, err := h.run("restart", "1")
	assert.ErrorIs(t, err, tmrerrors.ErrNotInteractive)
}

func TestList(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "-t", "bug", "-d", "today bug", "-s", "09:00", "-e", "09:20")
	h.mustRun("add", "-t", "meeting", "-d", "yesterday sync", "--date", "20240114", "-s", "09:00", "-e", "10:00")

	out := h.mustRun("ls")
	assert.Contains(t, out, "today bug")
	assert.NotContains(t, out, "yesterday sync")

	out = h.mustRun("ls", "-y")
	assert.Contains(t, out, "yesterday sync")
	assert.Contains(t, out, "TOTAL: 60 minutes (1h 00m)")

	out = h.mustRun("ls", "--from", "20240114")
	assert.Contains(t, out, "today bug")
	assert.Contains(t, out, "yesterday sync")

	out = h.mustRun("ls", "--type", "meeting")
	assert.Contains(t, out, "MEETING activities")
	assert.NotContains(t, out, "today bug")

	out = h.mustRun("ls", "--date", "20230101")
	assert.Contains(t, out, "No activities found")

	_, err := h.run("ls", "--all", "-y")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("config", "set", "csv_delimiter", ";")
	h.mustRun("add", "-d", "write docs; part 1", "-s", "09:00", "-e", "09:45")
	h.mustRun("add", "-d", "other day", "--date", "20240110", "-s", "09:00", "-e", "09:45")

	dir := filepath.Join(h.home, "exports")
	out := h.mustRun("export", "-o", dir)
	assert.Contains(t, out, "Exported 1 activities to")

	files, err := filepath.Glob(filepath.Join(dir, "activities_20240115_100000_*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	content, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id;start_time;end_time;activity_type;status;description", lines[0])
	assert.Contains(t, lines[1], `"write docs; part 1"`)

	out = h.mustRun("export", "--from", "20240101", "-o", dir)
	assert.Contains(t, out, "Exported 2 activities to")

	_, err = h.run("export", "--to", "20240101")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("config", "get")
	assert.Contains(t, out, `rounding_minutes = "5"`)
	assert.Contains(t, out, `default_activity_type = "DEVELOP"`)

	out = h.mustRun("config", "set", "rounding_minutes", "15")
	assert.Contains(t, out, `rounding_minutes = "15"`)

	out = h.mustRun("config", "get", "rounding_minutes")
	assert.Equal(t, "15\n", out)

	_, err := h.run("config", "set", "rounding_minutes", "7")
	assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)

	_, err = h.run("config", "get", "colour")
	assert.ErrorIs(t, err, tmrerrors.ErrInvalidArgument)

	out = h.mustRun("config", "path")
	assert.Equal(t, filepath.Join(h.home, "config.yaml")+"\n", out)

	// The new rounding applies to stop
	h.mustRun("start", "--no-ui", "-d", "rounded")
	h.clock.Advance(3 * time.Minute)
	out = h.mustRun("stop")
	assert.Contains(t, out, "Duration: 15 minutes (10:00 - 10:15)")
}

func TestHelpAndVersion(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("help")
	assert.Contains(t, out, "tmr - CLI Time Tracker")
	assert.Contains(t, out, "OUT_OF_OFFICE")

	out = h.mustRun("version")
	assert.Contains(t, out, "tmr dev")
}
