package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webparts.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Directory != "out" || cfg.Convert.Jobs != 4 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Raster.Width != 800 || cfg.Raster.Height != 600 {
		t.Errorf("raster defaults = %+v", cfg.Raster)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[output]
directory = "lib"

[convert]
jobs = 2

[raster]
width = 400
height = 300
viewbox = "-10 0 400 300"

[metadata]
author = "someone"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Directory != "lib" || cfg.Convert.Jobs != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Raster.ViewBox != "-10 0 400 300" {
		t.Errorf("viewbox = %q", cfg.Raster.ViewBox)
	}
	if cfg.Metadata.Author != "someone" {
		t.Errorf("author = %q", cfg.Metadata.Author)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[output]
directory = "lib"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Convert.Jobs != 4 || cfg.Raster.Width != 800 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown key", content: "[output]\nfolder = \"x\"\n"},
		{name: "zero jobs", content: "[convert]\njobs = 0\n"},
		{name: "bad raster", content: "[raster]\nwidth = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
