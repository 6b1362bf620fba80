package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "webparts",
	Short: "EasyEDA to LibrePCB part converter",
	Long: `webparts converts EasyEDA (LCSC) component documents into LibrePCB
library elements: symbols, packages, components and devices.

Examples:
  webparts convert C25804.json                    # Convert one part
  webparts convert --out lib --jobs 8 *.json      # Convert a batch
  webparts info C25804.json                       # Inspect a document`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the logger subcommands share; --verbose lowers the
// level to debug.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a webparts.toml config file")
}
