package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
)

var classifyCmd = &cobra.Command{
	Use:         "classify <event type>",
	Short:       "Print the delivery stage of a carrier event description",
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{noConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		event := strings.Join(args, " ")
		c, ok := tracking.Classify(event)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%q: unclassified\n", event)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q: %s\n", event, c)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
