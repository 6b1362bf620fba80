package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/webparts/pkg/easyeda"
)

const testPackageUUID = "3f8e1c2a-5b6d-4e7f-8a9b-0c1d2e3f4a5b"

// writeTestDocument writes a small but complete component document: a
// symbol with two pins and a footprint with three pads.
func writeTestDocument(t *testing.T) string {
	t.Helper()

	head, err := json.Marshal("7~1.7.5~400~300~package`R0805`name`LM358`pre`U?`")
	if err != nil {
		t.Fatalf("marshal head: %v", err)
	}
	doc := easyeda.Document{
		LCSCID:      "C7950",
		Title:       "LM358",
		Description: "dual op-amp",
		Tags:        []string{"amplifier"},
		DataStr: &easyeda.SymbolData{
			Head: head,
			Shape: []string{
				"P~show~1~1~670~30~0~gge23^^670~30^^M 670 30 h -20~#880000^^1~648~33~0~IN~~11pt^^1~655~29~0~1~~11pt^^0~653~30^^0~M 650 27 L 647 30 L 650 33",
				"P~show~4~2~400~100~180~gge24^^400~100^^M 400 100 h 20~#880000^^1~422~103~0~GND~~11pt^^1~415~99~0~2~~11pt^^0~423~100^^0~M 420 97 L 417 100 L 420 103",
				"R~440~100~2~2~260~540~#880000~1~0~none~gge5~0",
			},
		},
		PackageDetail: &easyeda.PackageDetail{
			Title: "R0805",
			DataStr: &easyeda.FootprintData{
				Head: easyeda.FootprintHead{
					X:     4000,
					Y:     3000,
					UUID:  testPackageUUID,
					UTime: 1600000000,
					CPara: map[string]string{"package": "R0805", "Contributor": "lcsc"},
				},
				BBox: easyeda.BBox{Width: 100, Height: 60},
				Layers: []string{
					"1~TopLayer~#FF0000~true~true~true~",
					"3~TopSilkLayer~#FFCC00~true~true~true~",
					"13~ComponentShapeLayer~#FF00FF~true~true~true~",
				},
				Shape: []string{
					"PAD~ELLIPSE~4010~3000~10~10~1~~1~0~~0~gge1~~~Y",
					"PAD~ELLIPSE~3990~3000~10~10~1~~2~0~~0~gge2~~~Y",
					"PAD~ELLIPSE~4000~3010~10~10~1~~3~0~~0~gge3~~~Y",
					"TRACK~1~13~~3980 2990 4020 2990 4020 3010 3980 3010 3980 2990~gge6",
				},
			},
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	path := filepath.Join(t.TempDir(), "C7950.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

// runCommand resets the flag state, runs the root command with args and
// returns captured stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		buf.ReadFrom(r)
		close(done)
	}()

	// Reset flags to prevent accumulation between tests.
	verbose = false
	configPath = ""
	outDir = ""
	jobs = 0
	rasterSize = ""
	viewBox = ""
	background = false

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	w.Close()
	os.Stdout = old
	<-done

	return buf.String(), err
}

func TestConvertE2E(t *testing.T) {
	docPath := writeTestDocument(t)
	out := filepath.Join(t.TempDir(), "lib")

	output, err := runCommand(t, "convert", "--out", out, docPath)
	if err != nil {
		t.Fatalf("convert: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, docPath) {
		t.Errorf("output does not report the converted file:\n%s", output)
	}

	if _, err := os.Stat(filepath.Join(out, "pkg", testPackageUUID, "package.lp")); err != nil {
		t.Errorf("missing package.lp: %v", err)
	}
	for _, sub := range []string{"sym", "cmp", "dev"} {
		entries, err := os.ReadDir(filepath.Join(out, sub))
		if err != nil {
			t.Fatalf("reading %s: %v", sub, err)
		}
		if len(entries) != 1 {
			t.Errorf("%s has %d elements, want 1", sub, len(entries))
		}
	}
}

func TestConvertE2EBackground(t *testing.T) {
	docPath := writeTestDocument(t)
	out := filepath.Join(t.TempDir(), "lib")

	output, err := runCommand(t, "convert", "--out", out, "--background",
		"--raster", "800x600", "--viewbox", "0 0 400 300", docPath)
	if err != nil {
		t.Fatalf("convert: %v\nOutput: %s", err, output)
	}

	settings := filepath.Join(out, "pkg", testPackageUUID, "settings.lp")
	data, err := os.ReadFile(settings)
	if err != nil {
		t.Fatalf("missing settings.lp: %v", err)
	}
	for _, want := range []string{"librepcb_background_image", "(enabled true)", "(reference "} {
		if !strings.Contains(string(data), want) {
			t.Errorf("settings.lp missing %q:\n%s", want, data)
		}
	}
}

func TestConvertE2EErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"convert", "/nonexistent/part.json"}},
		{name: "missing argument", args: []string{"convert"}},
		{name: "bad raster size", args: []string{"convert", "--raster", "800by600", "ignored.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if output, err := runCommand(t, tt.args...); err == nil {
				t.Errorf("expected an error\nOutput: %s", output)
			}
		})
	}
}

func TestInfoE2E(t *testing.T) {
	docPath := writeTestDocument(t)

	output, err := runCommand(t, "info", docPath)
	if err != nil {
		t.Fatalf("info: %v\nOutput: %s", err, output)
	}
	for _, want := range []string{"LM358", "C7950", "pin 1", "IN", "R0805", "3 pads"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}
