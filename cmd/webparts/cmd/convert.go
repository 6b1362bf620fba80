package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/OpenTraceLab/webparts/internal/config"
	"github.com/OpenTraceLab/webparts/pkg/align"
	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/easyeda"
	"github.com/OpenTraceLab/webparts/pkg/librepcb"
)

var (
	outDir     string
	jobs       int
	rasterSize string
	viewBox    string
	background bool
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed, color.Bold)
)

var convertCmd = &cobra.Command{
	Use:   "convert <document.json>...",
	Short: "Convert EasyEDA documents to LibrePCB elements",
	Long: `Converts one or more EasyEDA component documents into a LibrePCB
element tree:

  <out>/sym/<uuid>/symbol.lp       schematic symbols
  <out>/pkg/<uuid>/package.lp      footprints/packages
  <out>/cmp/<uuid>/component.lp    components
  <out>/dev/<uuid>/device.lp       devices

Documents convert in parallel; --jobs bounds the concurrency. With
--background, each package also gets background-image alignment settings
computed from the configured raster size and view box.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	convertCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "parallel conversions (default from config)")
	convertCmd.Flags().StringVar(&rasterSize, "raster", "", "raster size as WIDTHxHEIGHT, e.g. 800x600")
	convertCmd.Flags().StringVar(&viewBox, "viewbox", "", `raster view box as "minX minY width height"`)
	convertCmd.Flags().BoolVar(&background, "background", false, "emit background-image alignment settings")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Output.Directory = outDir
	}
	if jobs > 0 {
		cfg.Convert.Jobs = jobs
	}
	if rasterSize != "" {
		w, h, err := parseRasterSize(rasterSize)
		if err != nil {
			return err
		}
		cfg.Raster.Width, cfg.Raster.Height = w, h
	}
	if viewBox != "" {
		cfg.Raster.ViewBox = viewBox
	}

	log := newLogger()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(cfg.Convert.Jobs, len(args)))
	for _, path := range args {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := convertFile(log, cfg, path); err != nil {
				failColor.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
				return fmt.Errorf("%s: %w", path, err)
			}
			okColor.Fprintf(os.Stdout, "✓ %s\n", path)
			return nil
		})
	}
	return g.Wait()
}

func parseRasterSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("raster size %q must be WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("bad raster width %q: %w", ws, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("bad raster height %q: %w", hs, err)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("raster size %q is not positive", s)
	}
	return w, h, nil
}

// convertFile converts a single document into the element tree.
func convertFile(log *slog.Logger, cfg config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := easyeda.ParseDocument(data)
	if err != nil {
		return err
	}

	sym, _, err := easyeda.NewSymbolParser(log).Parse(doc)
	if err != nil {
		return err
	}
	fp, err := easyeda.NewFootprintParser(log).Parse(doc)
	if err != nil {
		return err
	}
	if sym == nil && fp == nil {
		return fmt.Errorf("document has neither a symbol nor a footprint")
	}
	applyMetadataOverrides(cfg.Metadata, sym, fp)

	out := cfg.Output.Directory
	if sym != nil {
		symDir := filepath.Join(out, "sym", sym.UUID.String())
		if err := librepcb.NewSymbolSerializer(log).WriteTo(sym, symDir); err != nil {
			return err
		}
		cmpUUID := librepcb.DeriveUUID(sym.UUID, "component")
		cmpDir := filepath.Join(out, "cmp", cmpUUID.String())
		if err := librepcb.NewComponentSerializer(log).WriteTo(sym, cmpDir); err != nil {
			return err
		}
	}
	if fp != nil {
		pkgDir := filepath.Join(out, "pkg", fp.UUID.String())
		if err := librepcb.NewPackageSerializer(log).WriteTo(fp, pkgDir); err != nil {
			return err
		}
		if background {
			if err := writeBackground(log, cfg, fp, pkgDir); err != nil {
				return err
			}
		}
	}
	if sym != nil && fp != nil {
		devUUID := librepcb.DeriveUUID(sym.UUID, "device")
		devDir := filepath.Join(out, "dev", devUUID.String())
		if err := librepcb.NewDeviceSerializer(log).WriteTo(sym, fp, devDir); err != nil {
			return err
		}
	}
	return nil
}

// writeBackground computes alignment references and stores the background
// settings beside the package. Too few pads is a degraded-but-valid case:
// the package stays usable without a background image.
func writeBackground(log *slog.Logger, cfg config.Config, fp *cdm.Footprint, pkgDir string) error {
	vb, err := align.ParseViewBox(cfg.Raster.ViewBox)
	if err != nil {
		return err
	}
	refs, err := align.BuildReferences(fp, vb, cfg.Raster.Width, cfg.Raster.Height)
	if err != nil {
		log.Warn("skipping background alignment", "footprint", fp.Name, "error", err)
		warnColor.Fprintf(os.Stderr, "! %s: no background alignment: %v\n", fp.Name, err)
		return nil
	}
	settings := librepcb.BackgroundSettings{Enabled: true, References: refs}
	return settings.WriteTo(pkgDir)
}

func applyMetadataOverrides(meta config.Metadata, sym *cdm.Symbol, fp *cdm.Footprint) {
	if sym != nil {
		if meta.Author != "" {
			sym.Author = meta.Author
		}
		if meta.Version != "" {
			sym.Version = meta.Version
		}
	}
	if fp != nil {
		if meta.Author != "" {
			fp.Author = meta.Author
		}
		if meta.Version != "" {
			fp.Version = meta.Version
		}
	}
}
