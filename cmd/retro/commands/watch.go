package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dyluth/retro/internal/printer"
	"github.com/dyluth/retro/internal/timespec"
	"github.com/dyluth/retro/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchOutputFormat string
	watchUntil        string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor real-time session activity",
	Long: `Monitor every message published on the session channel.

Output Formats:
  default - Human-readable output with timestamps and emojis
  json    - Line-delimited JSON for programmatic processing

Examples:
  # Watch the session named in retro.yml
  retro watch

  # Export events as JSON
  retro watch --output=json > events.jsonl

  # Stop after the 45 minute retro slot
  retro watch --until 45m`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	watchCmd.Flags().StringVar(&watchUntil, "until", "", "Stop watching after a duration (45m) or at an RFC3339 time")
	rootCmd.AddCommand(watchCmd)
}

func parseOutputFormat(s string) (watch.OutputFormat, error) {
	switch s {
	case "default":
		return watch.OutputFormatDefault, nil
	case "json":
		return watch.OutputFormatJSON, nil
	default:
		return 0, printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", s),
			[]string{"Valid formats: default, json"},
		)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	outputFormat, err := parseOutputFormat(watchOutputFormat)
	if err != nil {
		return err
	}

	deadline, err := timespec.Deadline(watchUntil, time.Now())
	if err != nil {
		return printer.Error("invalid --until", err.Error(), nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !deadline.IsZero() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}

	s, err := loadSession(ctx, true)
	if err != nil {
		return err
	}
	defer s.Close()

	sub, err := s.client.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to session: %w", err)
	}
	defer sub.Close()

	if outputFormat == watch.OutputFormatDefault {
		printer.Step("Watching %s\n", s.client.Topic())
	}

	started := time.Now()
	count, err := watch.StreamActivity(ctx, sub, outputFormat, os.Stdout)
	if err != nil {
		return err
	}

	if outputFormat == watch.OutputFormatDefault {
		printer.Println(watch.Summary(count, started))
	}
	return nil
}
