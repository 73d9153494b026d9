package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/blockjoin/engine/internal/block"
	"github.com/blockjoin/engine/internal/convert"
	"github.com/blockjoin/engine/internal/schema"
	"github.com/blockjoin/engine/internal/storage"
)

func newConvertCmd() *cobra.Command {
	var csvFile, blockFile, tableType string
	var blockSize int
	var skipRate float64

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a pipe-delimited CSV file to block format",
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvFile == "" || blockFile == "" || tableType == "" {
				return errors.Newf("convert: --csv-file, --block-file, and --table-type are all required")
			}
			kind := schema.Kind(tableType)
			if kind != schema.Part && kind != schema.PartSupp {
				return errors.Newf("convert: unknown --table-type %q, want PART or PARTSUPP", tableType)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Converting CSV to block format...")
			fmt.Fprintf(cmd.OutOrStdout(), "Input: %s\n", csvFile)
			fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", blockFile)
			fmt.Fprintf(cmd.OutOrStdout(), "Table Type: %s\n", tableType)
			fmt.Fprintf(cmd.OutOrStdout(), "Block Size: %d bytes\n\n", blockSize)

			limiter := storage.NewSkipLimiter(skipRate)
			n, err := convert.ToBlocks(csvFile, blockFile, kind, blockSize, limiter)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Conversion completed successfully! %d records written, %d lines skipped.\n", n, limiter.Skipped())
			return nil
		},
	}

	cmd.Flags().StringVar(&csvFile, "csv-file", "", "Input CSV file path")
	cmd.Flags().StringVar(&blockFile, "block-file", "", "Output block file path")
	cmd.Flags().StringVar(&tableType, "table-type", "", "Table type (PART or PARTSUPP)")
	cmd.Flags().IntVar(&blockSize, "block-size", block.DefaultSize, "Block size in bytes")
	cmd.Flags().Float64Var(&skipRate, "skip-log-rate", 5, "Max malformed-line diagnostics printed per second")
	return cmd
}
