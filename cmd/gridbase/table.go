// Table commands for the gridbase CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage tables",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "table create:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.CreateTable(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "table create:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(table)
		}
		fmt.Println("Created table", table.TableID)
		return nil
	},
}

var tableGetCmd = &cobra.Command{
	Use:   "get <table-id>",
	Short: "Show a table's catalog record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fmt.Fprintln(os.Stderr, "table get:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		table, err := backend.GetTable(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "table get:", err)
			os.Exit(exitUserError)
		}

		if flagJSON {
			return printJSON(table)
		}
		fmt.Println("ID:      ", table.TableID)
		fmt.Println("Name:    ", table.Name)
		fmt.Println("Rows:    ", table.RowCount)
		fmt.Println("Created: ", table.CreatedAt)
		return nil
	},
}

func init() {
	tableCmd.AddCommand(tableCreateCmd)
	tableCmd.AddCommand(tableGetCmd)
}
