// Package align maps millimeter footprint coordinates onto the pixels of
// a raster rendered from the vendor's vector drawing, and picks the pad
// corner pairs used as background-image alignment references.
package align

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/easyeda"
)

// ViewBox is the logical extent of the vendor's vector drawing, in vendor
// units.
type ViewBox struct {
	MinX   float64
	MinY   float64
	Width  float64
	Height float64
}

// ParseViewBox reads an SVG-style "minX minY width height" attribute.
func ParseViewBox(s string) (ViewBox, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return ViewBox{}, fmt.Errorf("view box %q needs 4 fields", s)
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, fmt.Errorf("bad view box field %q: %w", f, err)
		}
		vals[i] = v
	}
	vb := ViewBox{MinX: vals[0], MinY: vals[1], Width: vals[2], Height: vals[3]}
	if vb.Width <= 0 || vb.Height <= 0 {
		return ViewBox{}, fmt.Errorf("view box %q has a degenerate extent", s)
	}
	return vb, nil
}

// Mapper converts a millimeter coordinate into raster pixels.
type Mapper func(mmX, mmY float64) (pxX, pxY float64)

// NewMapper builds the millimeter-to-pixel function for a raster of
// pixelWidth x pixelHeight rendered from viewBox. The footprint's recorded
// source offset undoes the origin shift applied during parsing; the
// uniform scale preserves the raster's aspect fit.
func NewMapper(offset cdm.SourceOffset, viewBox ViewBox, pixelWidth, pixelHeight int) (Mapper, error) {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return nil, fmt.Errorf("raster size %dx%d is not positive", pixelWidth, pixelHeight)
	}
	if viewBox.Width <= 0 || viewBox.Height <= 0 {
		return nil, fmt.Errorf("view box extent %gx%g is not positive", viewBox.Width, viewBox.Height)
	}
	scaleX := float64(pixelWidth) / viewBox.Width
	scaleY := float64(pixelHeight) / viewBox.Height
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	return func(mmX, mmY float64) (float64, float64) {
		px := (mmX/easyeda.UnitScale + offset.X - viewBox.MinX) * scale
		py := (mmY/easyeda.UnitScale + offset.Y - viewBox.MinY) * scale
		return px, py
	}, nil
}
