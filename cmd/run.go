package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/carrier"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/config"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/fetcher"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/pipeline"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Track every shipment in the input workbook now",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runOnce(ctx, newPipeline(cfg), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// newPipeline wires the carrier clients and report writer from cfg. Both
// clients share one fetcher so the politeness limit covers all requests.
func newPipeline(c *config.Config) *pipeline.Pipeline {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:         c.Fetch.UserAgent,
		RequestsPerSecond: c.Fetch.RequestsPerSecond,
	})
	ips := carrier.NewIPSClient(f, c.IPSTrackingURL, carrier.WithTrackingTimeout(c.Fetch.TrackingTimeout()))
	zips := carrier.NewZipClient(f, c.ZipLookupURL, c.Fetch.ZipTimeout())
	return pipeline.New(c, ips, zips, report.NewWriter(c.ItemsDir))
}

// batchRunner is the part of the pipeline the commands drive.
type batchRunner interface {
	Run(ctx context.Context) (*pipeline.RunResult, error)
}

// runOnce runs one batch and prints its summary to out. An empty batch is
// not an error.
func runOnce(ctx context.Context, p batchRunner, out io.Writer) error {
	result, err := p.Run(ctx)
	if result != nil {
		fmt.Fprint(out, pipeline.FormatSummary(result))
	}
	if errors.Is(err, pipeline.ErrNoData) {
		return nil
	}
	return err
}
