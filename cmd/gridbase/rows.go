// Row commands for the gridbase CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mesh-intelligence/gridbase/pkg/types"
	"github.com/spf13/cobra"
)

var (
	rowsAddCount int64

	rowsQuerySearch  string
	rowsQueryFilters []string
	rowsQuerySort    string
	rowsQueryCursor  string
	rowsQueryLimit   int
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Add and query rows",
}

var rowsAddCmd = &cobra.Command{
	Use:   "add <table-id>",
	Short: "Bulk-generate empty rows",
	Long: `Add generates a contiguous block of empty rows in one transaction.

Example:
  gridbase rows add 0198a1b2 --count 1000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "rows add:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		result, err := backend.AddRows(cmd.Context(), args[0], rowsAddCount)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rows add:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(result)
		}
		fmt.Printf("Added %d row(s) starting at index %d\n", result.Count, result.StartRowIndex)
		return nil
	},
}

var rowsQueryCmd = &cobra.Command{
	Use:   "query <table-id>",
	Short: "Query one page of rows",
	Long: `Query serves one page of rows with optional search, filters, and sort.

Filters are column:op or column:op:value and are ANDed together.
Operators: is_empty, is_not_empty, contains, not_contains, equals, gt, lt.
Sort is column:asc or column:desc. Pass the nextCursor JSON printed by
the previous page to continue.

Example:
  gridbase rows query 0198a1b2 --limit 50
  gridbase rows query 0198a1b2 --search alice
  gridbase rows query 0198a1b2 --filter 0198c3d4:contains:inc --filter 0198e5f6:gt:100
  gridbase rows query 0198a1b2 --sort 0198e5f6:desc --cursor '{"sortValue":10,"rowIndex":3}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "rows query:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		tableID := args[0]
		q := types.RowQuery{
			TableID: tableID,
			Limit:   rowsQueryLimit,
			Search:  rowsQuerySearch,
		}

		for _, spec := range rowsQueryFilters {
			f, err := parseFilterSpec(spec)
			if err != nil {
				fmt.Fprintln(os.Stderr, "rows query:", err)
				os.Exit(exitUserError)
			}
			q.Filters = append(q.Filters, f)
		}

		if rowsQuerySort != "" {
			columns, err := backend.ListColumns(cmd.Context(), tableID)
			if err != nil {
				fmt.Fprintln(os.Stderr, "rows query:", err)
				os.Exit(exitUserError)
			}
			sort, err := parseSortSpec(rowsQuerySort, columns)
			if err != nil {
				fmt.Fprintln(os.Stderr, "rows query:", err)
				os.Exit(exitUserError)
			}
			q.Sort = sort
		}

		cursor, err := parseCursorSpec(rowsQueryCursor)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rows query:", err)
			os.Exit(exitUserError)
		}
		q.Cursor = cursor

		page, err := backend.QueryRows(cmd.Context(), q)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rows query:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(page)
		}
		printRowPage(page)
		return nil
	},
}

// printRowPage prints a query page in a human-readable table format.
func printRowPage(page *types.RowPage) {
	if len(page.Items) == 0 {
		fmt.Println("No rows found.")
		fmt.Printf("Total: %d row(s)\n", page.TotalCount)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tID\tCELLS")
	for _, row := range page.Items {
		cells, err := json.Marshal(row.Cells)
		if err != nil {
			cells = []byte("{}")
		}
		shortID := row.RowID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}
		cellsStr := string(cells)
		if len(cellsStr) > 60 {
			cellsStr = cellsStr[:57] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", row.RowIndex, shortID, cellsStr)
	}
	w.Flush()

	fmt.Printf("Total: %d row(s)\n", page.TotalCount)
	if page.NextCursor != nil {
		if data, err := json.Marshal(page.NextCursor); err == nil {
			fmt.Println("Next cursor:", string(data))
		}
	}
}

func init() {
	rowsAddCmd.Flags().Int64Var(&rowsAddCount, "count", 0, "number of rows to add (default 100000)")

	rowsQueryCmd.Flags().StringVar(&rowsQuerySearch, "search", "", "substring search across all cells")
	rowsQueryCmd.Flags().StringArrayVar(&rowsQueryFilters, "filter", nil, "filter as column:op[:value] (repeatable)")
	rowsQueryCmd.Flags().StringVar(&rowsQuerySort, "sort", "", "sort as column:asc|desc")
	rowsQueryCmd.Flags().StringVar(&rowsQueryCursor, "cursor", "", "cursor JSON from the previous page")
	rowsQueryCmd.Flags().IntVar(&rowsQueryLimit, "limit", 0, "page size (default 200, max 500)")

	rowsCmd.AddCommand(rowsAddCmd)
	rowsCmd.AddCommand(rowsQueryCmd)
}
