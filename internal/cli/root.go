package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// Options carries the runtime configuration resolved from flags and
// DEADLINEBOT_* environment variables.
type Options struct {
	DBPath           string
	Owner            string
	ReminderInterval time.Duration
	ReminderDelay    time.Duration
}

// NewRootCmd creates the top-level "deadlinebot" command. The run
// callback receives the resolved Options; wiring lives in main.
func NewRootCmd(run func(ctx context.Context, opts Options) error) *cobra.Command {
	var opts Options

	root := &cobra.Command{
		Use:   "deadlinebot",
		Short: "Assignment deadline tracker with a chat interface",
		Long: "deadlinebot tracks assignments with deadlines and difficulty, scores their risk,\n" +
			"reminds about due work and answers study questions through a chat dialog.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	root.Flags().StringVar(&opts.DBPath, "db", envOr("DEADLINEBOT_DB", ""), "path to the sqlite database (default ~/.deadlinebot/deadlinebot.db)")
	root.Flags().StringVar(&opts.Owner, "owner", envOr("DEADLINEBOT_OWNER", "local"), "owner id all console messages are attributed to")
	root.Flags().DurationVar(&opts.ReminderInterval, "reminder-interval", envDurationOr("DEADLINEBOT_REMINDER_INTERVAL", 24*time.Hour), "time between reminder sweeps")
	root.Flags().DurationVar(&opts.ReminderDelay, "reminder-delay", envDurationOr("DEADLINEBOT_REMINDER_DELAY", 10*time.Second), "delay before the first reminder sweep")

	return root
}

// ResolveDBPath fills in the default database location when the flag
// and the environment are both empty.
func ResolveDBPath(opts Options) (string, error) {
	if opts.DBPath != "" {
		return opts.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".deadlinebot", "deadlinebot.db"), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
