package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/techequipments/engine/internal/equipment"
	"github.com/techequipments/engine/internal/historian"
)

// Set by the build.
var version = "dev"

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	historianPath string
	catalogPath   string
	timeZone      string
}

var flags = &rootFlags{}

var rootCmd = &cobra.Command{
	Use:           "soectl",
	Short:         "Operate the equipment event historian.",
	Long:          `soectl loads historian samples from CSV, extracts the Sequence of Events of an equipment and prints event code tables.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.historianPath, "historian", envOr("HISTORIAN_PATH", "./data/historian.duckdb"), "DuckDB historian file")
	rootCmd.PersistentFlags().StringVar(&flags.catalogPath, "catalog", envOr("EQUIPMENT_CATALOG", "./data/equipment.yaml"), "Equipment catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flags.timeZone, "tz", envOr("ENGINE_TZ", "Local"), "Plant time zone")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(tagsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func location() (*time.Location, error) {
	switch flags.timeZone {
	case "", "Local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(flags.timeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone %q: %w", flags.timeZone, err)
		}
		return loc, nil
	}
}

func openHistorian() (*historian.DuckStore, error) {
	return historian.Open(flags.historianPath, historian.DefaultOptions())
}

func loadCatalog() (*equipment.Catalog, error) {
	return equipment.LoadFile(flags.catalogPath)
}
