package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List scoring metrics and color policies",
	Args:  cobra.NoArgs,
	RunE:  runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Metrics:")
	for _, m := range img2ascii.Metrics() {
		kind := "distance"
		if m.Similarity() {
			kind = "similarity"
		}
		fmt.Fprintf(out, "  %-14s %s\n", m, kind)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Policies:")
	for _, p := range []img2ascii.PolicyKind{
		img2ascii.PolicyDefault,
		img2ascii.PolicyImageForeground,
		img2ascii.PolicyImageBackground,
	} {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
