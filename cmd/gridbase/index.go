// Index command for the gridbase CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage column indexes",
}

var indexEnsureCmd = &cobra.Command{
	Use:   "ensure <table-id> <column-id>",
	Short: "Create a column's secondary indexes if missing",
	Long: `Ensure creates the sort and filter indexes for a column. The call is
idempotent; existing indexes are left untouched.

Example:
  gridbase index ensure 0198a1b2 0198e5f6`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "index ensure:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		if err := backend.EnsureColumnIndexes(cmd.Context(), args[0], args[1]); err != nil {
			fmt.Fprintln(os.Stderr, "index ensure:", err)
			os.Exit(exitUserError)
		}

		fmt.Println("Indexes ensured for column", args[1])
		return nil
	},
}

func init() {
	indexCmd.AddCommand(indexEnsureCmd)
}
