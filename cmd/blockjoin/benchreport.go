package main

import (
	"github.com/spf13/cobra"

	"github.com/blockjoin/engine/internal/benchreport"
)

func newBenchReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench-report FILE...",
		Short: "Compare one or more `go test -bench` output files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return benchreport.Compare(cmd.OutOrStdout(), args...)
		},
	}
}
