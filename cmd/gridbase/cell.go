// Cell command for the gridbase CLI.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mesh-intelligence/gridbase/pkg/types"
	"github.com/spf13/cobra"
)

var cellNumber bool

var cellCmd = &cobra.Command{
	Use:   "cell",
	Short: "Edit cells",
}

var cellSetCmd = &cobra.Command{
	Use:   "set <table-id> <row-id> <column-id> <value>",
	Short: "Set a single cell value",
	Long: `Set writes one cell and recomputes the row's search text. An empty
value clears the cell. Use --number to store the value as a number.

Example:
  gridbase cell set 0198a1b2 row42 0198c3d4 "hello"
  gridbase cell set 0198a1b2 row42 0198e5f6 19.99 --number
  gridbase cell set 0198a1b2 row42 0198c3d4 ""`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value any = args[3]
		if cellNumber {
			n, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "cell set: %q is not a number\n", args[3])
				os.Exit(exitUserError)
			}
			value = n
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cell set:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		summary, err := backend.UpdateCell(cmd.Context(), types.CellUpdate{
			TableID:  args[0],
			RowID:    args[1],
			ColumnID: args[2],
			Value:    value,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "cell set:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(summary)
		}
		fmt.Println("Updated row", summary.RowID)
		return nil
	},
}

func init() {
	cellSetCmd.Flags().BoolVar(&cellNumber, "number", false, "store the value as a number")

	cellCmd.AddCommand(cellSetCmd)
}
