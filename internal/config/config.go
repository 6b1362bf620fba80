// Package config loads the converter's TOML configuration. Every field
// has a working default so a config file is optional; command-line flags
// override whatever the file provides.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full converter configuration.
type Config struct {
	Output   Output   `toml:"output"`
	Convert  Convert  `toml:"convert"`
	Raster   Raster   `toml:"raster"`
	Metadata Metadata `toml:"metadata"`
}

// Output controls where the element tree is written.
type Output struct {
	Directory string `toml:"directory"`
}

// Convert controls the conversion run itself.
type Convert struct {
	// Jobs bounds how many documents convert concurrently.
	Jobs int `toml:"jobs"`
}

// Raster describes the rendered preview image used for background-image
// alignment. Width/Height are pixels, ViewBox the source drawing's
// "minX minY width height" extent.
type Raster struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	ViewBox string `toml:"viewbox"`
}

// Metadata overrides the author/version stamped into generated elements.
type Metadata struct {
	Author  string `toml:"author"`
	Version string `toml:"version"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output:  Output{Directory: "out"},
		Convert: Convert{Jobs: 4},
		Raster:  Raster{Width: 800, Height: 600, ViewBox: "0 0 400 300"},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is empty; a named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file %s does not exist", path)
		}
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return cfg, fmt.Errorf("%s: unknown config keys: %v", path, undec)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Convert.Jobs < 1 {
		return fmt.Errorf("convert.jobs must be at least 1, got %d", c.Convert.Jobs)
	}
	if c.Raster.Width < 1 || c.Raster.Height < 1 {
		return fmt.Errorf("raster size %dx%d is not positive", c.Raster.Width, c.Raster.Height)
	}
	return nil
}
