// Column commands for the gridbase CLI.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/gridbase/pkg/types"
	"github.com/spf13/cobra"
)

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Manage columns",
}

var columnCreateCmd = &cobra.Command{
	Use:   "create <table-id> <name> <type>",
	Short: "Append a typed column to a table",
	Long: `Create appends a column to a table. The column receives the next
order position.

Valid types: TEXT, NUMBER

Example:
  gridbase column create 0198a1b2 Title TEXT
  gridbase column create 0198a1b2 Amount NUMBER`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		columnType := strings.ToUpper(args[2])
		if !types.IsValidColumnType(columnType) {
			fmt.Fprintf(os.Stderr, "invalid type %q (valid: %s, %s)\n", args[2], types.ColumnText, types.ColumnNumber)
			os.Exit(exitUserError)
		}

		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "column create:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		col, err := backend.CreateColumn(cmd.Context(), args[0], args[1], columnType)
		if err != nil {
			fmt.Fprintln(os.Stderr, "column create:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(col)
		}
		fmt.Println("Created column", col.ColumnID)
		return nil
	},
}

var columnListCmd = &cobra.Command{
	Use:   "list <table-id>",
	Short: "List a table's columns in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "column list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		columns, err := backend.ListColumns(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "column list:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(columns)
		}
		printColumnTable(columns)
		return nil
	},
}

// printColumnTable prints columns in a human-readable table format.
func printColumnTable(columns []types.Column) {
	if len(columns) == 0 {
		fmt.Println("No columns found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tNAME\tTYPE")
	for _, col := range columns {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", col.Order, col.ColumnID, col.Name, col.Type)
	}
	w.Flush()

	fmt.Printf("Total: %d column(s)\n", len(columns))
}

func init() {
	columnCmd.AddCommand(columnCreateCmd)
	columnCmd.AddCommand(columnListCmd)
}
