// Package easyeda parses EasyEDA component payloads (the JSON documents
// served for LCSC parts) into the canonical model in pkg/cdm.
//
// An EasyEDA document carries a schematic symbol section and/or a footprint
// section. Geometry arrives as "shape strings": one string per primitive,
// tilde-delimited, keyed by a leading type tag. Footprint coordinates are
// in vendor units of 1/10 mil (0.254 mm); symbol coordinates are tenths of
// a 2.54 mm schematic grid unit. The canonical output keeps the vendor's
// down-positive Y axis; serializers invert where their target needs it.
package easyeda

import (
	"encoding/json"
	"fmt"
)

// UnitScale converts footprint vendor units (1/10 mil) to millimeters.
const UnitScale = 0.254

// Document is the top-level payload for one component.
type Document struct {
	LCSCID      string   `json:"lcsc_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// DataStr is the symbol section; PackageDetail the footprint section.
	// Either may be absent: some records carry only one of the two.
	DataStr       *SymbolData    `json:"dataStr"`
	PackageDetail *PackageDetail `json:"packageDetail"`
}

// PackageDetail wraps the footprint section.
type PackageDetail struct {
	Title   string         `json:"title"`
	DataStr *FootprintData `json:"dataStr"`
}

// FootprintData is the footprint document: layer definitions, a bounding
// box and the shape strings.
type FootprintData struct {
	Head   FootprintHead `json:"head"`
	BBox   BBox          `json:"BBox"`
	Layers []string      `json:"layers"`
	Shape  []string      `json:"shape"`
}

// FootprintHead carries the document origin (in vendor units) and the
// free-form c_para metadata block.
type FootprintHead struct {
	X             float64           `json:"x"`
	Y             float64           `json:"y"`
	UUID          string            `json:"uuid"`
	UTime         int64             `json:"utime"`
	EditorVersion string            `json:"editorVersion"`
	CPara         map[string]string `json:"c_para"`
}

// BBox is the document's declared extent in vendor units.
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SymbolData is the symbol document. Head is either a tilde-delimited
// string or an object depending on the document revision, so it stays raw
// until the symbol parser decodes it.
type SymbolData struct {
	Head  json.RawMessage `json:"head"`
	Shape []string        `json:"shape"`
}

// ParseDocument decodes a raw EasyEDA payload.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding EasyEDA document: %w", err)
	}
	return &doc, nil
}

// parseAttributeRun decodes a backtick-delimited key/value run like
// "package`DIP08`nameDisplay`0`" into a map.
func parseAttributeRun(s string) map[string]string {
	attrs := make(map[string]string)
	if s == "" {
		return attrs
	}
	parts := splitBacktick(s)
	for i := 0; i+1 < len(parts); i += 2 {
		attrs[parts[i]] = parts[i+1]
	}
	return attrs
}

func splitBacktick(s string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
