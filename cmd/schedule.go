package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/schedule"
)

var scheduleAt string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the batch once at the next occurrence of a time of day",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		h, m, s, err := schedule.ParseClock(scheduleAt)
		if err != nil {
			return err
		}
		at, err := schedule.NextOccurrence(time.Now(), h, m, s)
		if err != nil {
			return err
		}

		p := newPipeline(cfg)
		return runAt(ctx, schedule.New(), at, func(ctx context.Context) error {
			return runOnce(ctx, p, cmd.OutOrStdout())
		})
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleAt, "at", "", "time of day to run, HH:MM[:SS] local time")
	_ = scheduleCmd.MarkFlagRequired("at")
	rootCmd.AddCommand(scheduleCmd)
}

// runAt arms task for at and blocks until fn has run or ctx is done. A
// cancelled ctx disarms a pending run; a run already underway sees the
// cancellation through its own ctx.
func runAt(ctx context.Context, task *schedule.Task, at time.Time, fn func(context.Context) error) error {
	var runErr error
	task.Arm(at, func() {
		zap.L().Info("schedule: firing", zap.Time("at", at))
		runErr = fn(ctx)
	})
	zap.L().Info("schedule: armed",
		zap.Time("at", at),
		zap.Duration("in", time.Until(at).Round(time.Second)),
	)

	select {
	case <-task.Done():
		return runErr
	case <-ctx.Done():
		if task.Cancel() {
			zap.L().Info("schedule: cancelled before firing")
			return eris.Wrap(ctx.Err(), "schedule: interrupted")
		}
		<-task.Done()
		return runErr
	}
}
