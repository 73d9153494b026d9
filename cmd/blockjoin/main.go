// Command blockjoin converts TPC-H PART/PARTSUPP text files to the block
// file format and joins them, mirroring the original CLI's --convert-csv and
// --join modes as cobra subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blockjoin",
		Short: "Convert TPC-H PART/PARTSUPP text files and join them over a block file format",
	}
	root.AddCommand(newConvertCmd())
	root.AddCommand(newJoinCmd())
	root.AddCommand(newBenchReportCmd())
	return root
}
