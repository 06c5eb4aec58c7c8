package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/config"
)

var (
	cfg        *config.Config
	configPath string
)

// noConfig marks commands that run without loading configuration.
const noConfig = "no-config"

var rootCmd = &cobra.Command{
	Use:   "medship",
	Short: "Postal shipment tracking batch tool",
	Long:  "Reads tracking numbers from a spreadsheet, fetches the latest IPS event for each, writes a consolidated workbook and a report split by delivery stage.",
	// main prints errors itself so the exit code and trace stay in one place.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := cmd.Annotations[noConfig]; ok {
			return nil
		}

		c, err := config.Load(configPath)
		if err != nil {
			return eris.Wrap(err, "load config")
		}

		if err := config.InitLogger(c.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}

		if err := c.Validate(); err != nil {
			return eris.Wrap(err, "validate config")
		}
		if err := c.EnsureDirs(); err != nil {
			return eris.Wrap(err, "prepare output directories")
		}
		cfg = c

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: config.{json,yaml} in ./config or .)")
}

// exitCode maps a command error to the process exit status, printing it to w.
func exitCode(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "interrupted")
		return 130
	default:
		fmt.Fprintln(w, eris.ToString(err, true))
		return 1
	}
}

func main() {
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}
