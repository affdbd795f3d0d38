package cmd

import (
	"context"
	"crossword-clock/lib"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

type timerOptions struct {
	interval time.Duration
	limit    time.Duration
	startMs  float64
	verbose  bool
}

func newTimerCmd() *cobra.Command {
	opts := &timerOptions{}

	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a live puzzle clock",
		Long: `Print the elapsed puzzle time once per interval until interrupted or
until --limit has passed. On a terminal the clock is redrawn in place;
otherwise one line is printed per tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, opts)
		},
	}

	timerCmd.Flags().DurationVarP(&opts.interval, "interval", "i", 0, "Time between clock updates (default from config, 1s)")
	timerCmd.Flags().DurationVarP(&opts.limit, "limit", "l", 0, "Stop after this much time (default from config, 0 runs until interrupted)")
	timerCmd.Flags().Float64Var(&opts.startMs, "start-ms", 0, "Elapsed milliseconds to resume from")
	timerCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	return timerCmd
}

func runTimer(cmd *cobra.Command, opts *timerOptions) error {
	setupLogging(opts.verbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("interval") {
		if opts.interval, err = cfg.Timer.IntervalDuration(); err != nil {
			return err
		}
	}
	if !cmd.Flags().Changed("limit") {
		if opts.limit, err = cfg.Timer.LimitDuration(); err != nil {
			return err
		}
	}

	if _, err := lib.FormatElapsedStrict(opts.startMs); err != nil {
		return fmt.Errorf("invalid --start-ms: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Debug("Received signal, stopping timer", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	out := cmd.OutOrStdout()
	inPlace := isTerminal(out)

	stopwatch := &lib.Stopwatch{
		StartMs:  opts.startMs,
		Interval: opts.interval,
		Limit:    opts.limit,
	}

	var last string
	err = stopwatch.Run(ctx, func(elapsedMs float64, clock string) {
		last = clock
		if inPlace {
			// \033[K clears whatever was left of a longer previous clock
			fmt.Fprintf(out, "\r%s\033[K", clock)
			return
		}
		fmt.Fprintln(out, clock)
	})

	if inPlace {
		fmt.Fprintln(out)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("Timer stopped", "elapsed", last)
			return nil
		}
		return fmt.Errorf("timer failed: %w", err)
	}

	slog.Info("Time limit reached", "elapsed", last)
	return nil
}
