package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/diagnostics"
	"github.com/blockjoin/engine/internal/join"
	"github.com/blockjoin/engine/internal/schema"
)

func newJoinCmd() *cobra.Command {
	var outerTable, innerTable, outerType, innerType, output, algorithm string
	var bufferSize, blockSize int

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join two block-format tables on PARTKEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outerTable == "" || innerTable == "" || outerType == "" || innerType == "" || output == "" {
				return errors.Newf("join: --outer-table, --inner-table, --outer-type, --inner-type, and --output are all required")
			}
			outer := schema.Kind(outerType)
			inner := schema.Kind(innerType)

			fmt.Fprintln(cmd.OutOrStdout(), "=== Block Join ===")
			fmt.Fprintf(cmd.OutOrStdout(), "Outer Table: %s (%s)\n", outerTable, outerType)
			fmt.Fprintf(cmd.OutOrStdout(), "Inner Table: %s (%s)\n", innerTable, innerType)
			fmt.Fprintf(cmd.OutOrStdout(), "Output File: %s\n", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Algorithm: %s\n", algorithm)
			fmt.Fprintf(cmd.OutOrStdout(), "Buffer Size: %d blocks\n", bufferSize)
			fmt.Fprintf(cmd.OutOrStdout(), "Block Size: %d bytes\n\n", blockSize)

			var execErr error
			var report func()
			switch algorithm {
			case "bnlj", "":
				j, err := join.NewBNLJ(outerTable, outer, innerTable, inner, output, bufferSize, blockSize)
				if err != nil {
					return err
				}
				execErr = j.Execute()
				report = func() { diagnostics.PrintStats(cmd.OutOrStdout(), "bnlj", j.Stats().Snapshot()) }
			case "hash":
				j, err := join.NewHashJoin(outerTable, outer, innerTable, inner, output, blockSize)
				if err != nil {
					return err
				}
				execErr = j.Execute()
				report = func() { diagnostics.PrintStats(cmd.OutOrStdout(), "hash", j.Stats().Snapshot()) }
			case "multithreaded":
				j, err := join.NewMultithreadedJoin(outerTable, outer, innerTable, inner, output, bufferSize, blockSize)
				if err != nil {
					return err
				}
				execErr = j.Execute()
				report = func() { diagnostics.PrintStats(cmd.OutOrStdout(), "multithreaded", j.Stats().Snapshot()) }
			case "prefetching":
				j, err := join.NewPrefetchingJoin(outerTable, outer, innerTable, inner, output, bufferSize, blockSize)
				if err != nil {
					return err
				}
				execErr = j.Execute()
				report = func() { diagnostics.PrintStats(cmd.OutOrStdout(), "prefetching", j.Stats().Snapshot()) }
			default:
				return errors.Newf("join: unknown --algorithm %q, want bnlj, hash, multithreaded, or prefetching", algorithm)
			}
			if execErr != nil {
				return execErr
			}

			fmt.Fprintln(cmd.OutOrStdout(), "\nJoin completed successfully!")
			report()
			return nil
		},
	}

	cmd.Flags().StringVar(&outerTable, "outer-table", "", "Outer table file (block format)")
	cmd.Flags().StringVar(&innerTable, "inner-table", "", "Inner table file (block format)")
	cmd.Flags().StringVar(&outerType, "outer-type", "", "Outer table type (PART or PARTSUPP)")
	cmd.Flags().StringVar(&innerType, "inner-type", "", "Inner table type (PART or PARTSUPP)")
	cmd.Flags().StringVar(&output, "output", "", "Output file path")
	cmd.Flags().StringVar(&algorithm, "algorithm", "bnlj", "Join algorithm: bnlj, hash, multithreaded, prefetching")
	cmd.Flags().IntVar(&bufferSize, "buffer-size", 10, "Number of buffer blocks (BNLJ-family algorithms only)")
	cmd.Flags().IntVar(&blockSize, "block-size", block.DefaultSize, "Block size in bytes")
	return cmd
}
