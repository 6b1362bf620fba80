package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/webparts/pkg/easyeda"
)

var infoCmd = &cobra.Command{
	Use:   "info <document.json>...",
	Short: "Inspect EasyEDA documents without converting them",
	Long: `Parses each document and prints what a conversion would produce:
the component metadata, the symbol's pins and the footprint's pads.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	log := newLogger()

	var firstErr error
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err == nil {
			err = printInfo(log, path, data)
		}
		if err != nil {
			failColor.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", path, err)
			}
		}
	}
	return firstErr
}

func printInfo(log *slog.Logger, path string, data []byte) error {
	doc, err := easyeda.ParseDocument(data)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	bold.Fprintln(os.Stdout, path)
	if doc.Title != "" {
		fmt.Printf("  title:   %s\n", doc.Title)
	}
	if doc.LCSCID != "" {
		fmt.Printf("  lcsc:    %s\n", doc.LCSCID)
	}
	if doc.Description != "" {
		dim.Fprintf(os.Stdout, "  %s\n", doc.Description)
	}

	sym, pins, err := easyeda.NewSymbolParser(log).Parse(doc)
	if err != nil {
		return err
	}
	if sym != nil {
		fmt.Printf("  symbol:  %s (%s, %d pins)\n", sym.Name, sym.UUID, len(pins))
		for _, rec := range pins {
			dim.Fprintf(os.Stdout, "    pin %-4s %s\n", rec.Number, rec.Name)
		}
	}

	fp, err := easyeda.NewFootprintParser(log).Parse(doc)
	if err != nil {
		return err
	}
	if fp != nil {
		fmt.Printf("  package: %s (%s, %d pads, %d drawings)\n",
			fp.Name, fp.UUID, len(fp.Pads), len(fp.Graphics))
	}

	if sym == nil && fp == nil {
		warnColor.Fprintln(os.Stdout, "  document has neither a symbol nor a footprint")
	}
	return nil
}
