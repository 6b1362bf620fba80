package cdm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SourceOffset preserves the vendor document's origin offset in original
// vendor units. The alignment engine needs the verbatim values; they must
// not be re-derived from the converted millimeter geometry.
type SourceOffset struct {
	X float64
	Y float64
}

// Footprint is the canonical landing-pattern model. It is built once by the
// vendor parser and read-only afterwards.
type Footprint struct {
	UUID uuid.UUID
	Name string

	Description string
	Keywords    []string
	Author      string
	Version     string
	CreatedAt   time.Time
	Deprecated  bool
	GeneratedBy string

	Pads     []Pad
	Graphics []GraphicElement
	Drills   []Drill
	Origin   Point
	Width    float64 // from the source bounding box, mm
	Height   float64
	Model3D  *Model3D

	SourceOffset SourceOffset

	CustomAttributes map[string]string
}

func (f *Footprint) String() string {
	return fmt.Sprintf("<Footprint %q %.2fmm x %.2fmm / %d pads / %d graphics / uuid=%s>",
		f.Name, f.Width, f.Height, len(f.Pads), len(f.Graphics), f.UUID)
}
