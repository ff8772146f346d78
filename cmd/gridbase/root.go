// Root command for the gridbase CLI.
package main

import (
	"github.com/mesh-intelligence/gridbase/internal/paths"
	"github.com/mesh-intelligence/gridbase/pkg/gridbase"
	"github.com/spf13/cobra"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "gridbase",
	Short:   "Gridbase is a local-first tabular data store",
	Version: gridbase.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.gridbase)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.gridbase-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(columnCmd)
	rootCmd.AddCommand(rowsCmd)
	rootCmd.AddCommand(cellCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(indexCmd)
}

// resolveDataDir returns the data directory path following the precedence:
// --data-dir flag > config.yaml data_dir > GRIDBASE_DATA_DIR env > default $(CWD)/.gridbase-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the precedence:
// --config-dir flag > GRIDBASE_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
