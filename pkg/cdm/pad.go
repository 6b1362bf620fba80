package cdm

import (
	"fmt"

	"github.com/google/uuid"
)

// PadShape enumerates pad outline shapes.
type PadShape string

const (
	PadShapeRectangle PadShape = "rectangle"
	PadShapeCircle    PadShape = "circle"
	PadShapeOval      PadShape = "oval"
	PadShapePolygon   PadShape = "polygon"
	PadShapeRoundRect PadShape = "roundrect"
)

// PadType enumerates how a pad connects to the board.
type PadType string

const (
	PadTypeSMD         PadType = "smd"
	PadTypeThroughHole PadType = "through_hole"
	PadTypeVia         PadType = "via"
	PadTypeConnect     PadType = "connect"
	PadTypeMechanical  PadType = "mechanical"
)

// DrillShape enumerates drill hole shapes.
type DrillShape string

const (
	DrillRound  DrillShape = "round"
	DrillOblong DrillShape = "oblong"
)

// DefaultCornerRadiusRatio is applied to rounded-rectangle pads that do not
// specify their own ratio.
const DefaultCornerRadiusRatio = 0.1

// Pad is a footprint pad. Construct through NewPad, which applies defaults
// and enforces the shape/drill invariants.
type Pad struct {
	Number   string // not necessarily numeric, e.g. "A1"
	UUID     uuid.UUID
	Type     PadType
	Shape    PadShape
	Position Point
	Width    float64
	Height   float64 // required for every shape except circle
	Rotation float64
	Layer    LayerRef

	DrillShape      DrillShape
	DrillDiameter   float64
	DrillSlotLength float64
	Plated          bool

	// Spanning layers for through-hole and via pads.
	StartLayer *LayerRef
	EndLayer   *LayerRef

	SolderMaskMargin *float64
	PasteMaskMargin  *float64

	CornerRadiusRatio float64
	Vertices          []Point // polygon shape only

	Attributes map[string]string
}

// NewPad validates p and returns it with defaults filled in.
func NewPad(p Pad) (Pad, error) {
	if p.Type == "" {
		p.Type = PadTypeSMD
	}
	switch p.Shape {
	case PadShapeRectangle, PadShapeOval, PadShapeRoundRect:
		if p.Height == 0 {
			return Pad{}, fmt.Errorf("pad %q: height required for %s pads", p.Number, p.Shape)
		}
	case PadShapePolygon:
		if len(p.Vertices) == 0 {
			return Pad{}, fmt.Errorf("pad %q: vertices required for polygon pads", p.Number)
		}
	case PadShapeCircle:
	default:
		return Pad{}, fmt.Errorf("pad %q: unknown shape %q", p.Number, p.Shape)
	}
	if p.Shape == PadShapeRoundRect && p.CornerRadiusRatio == 0 {
		p.CornerRadiusRatio = DefaultCornerRadiusRatio
	}

	tht := p.Type == PadTypeThroughHole || p.Type == PadTypeVia
	if tht {
		if p.DrillDiameter <= 0 {
			return Pad{}, fmt.Errorf("pad %q: drill diameter required for %s pads", p.Number, p.Type)
		}
		if p.DrillShape == "" {
			p.DrillShape = DrillRound
		}
		if p.DrillShape == DrillOblong && p.DrillSlotLength <= 0 {
			return Pad{}, fmt.Errorf("pad %q: slot length required for oblong drills", p.Number)
		}
	} else {
		if p.DrillShape != "" || p.DrillDiameter != 0 || p.DrillSlotLength != 0 {
			return Pad{}, fmt.Errorf("pad %q: drill fields only allowed on through-hole/via pads", p.Number)
		}
	}
	return p, nil
}

func (p Pad) String() string {
	s := fmt.Sprintf("pad %s %s %s", p.Number, p.Shape, p.Type)
	if p.DrillDiameter > 0 {
		s += fmt.Sprintf(" drill=%.3f", p.DrillDiameter)
	}
	return s
}

// Drill is a standalone hole, e.g. a non-plated mounting hole.
type Drill struct {
	Position   Point
	Shape      DrillShape
	Diameter   float64
	SlotLength float64 // oblong only
	Plated     bool
	Layer      LayerRef
}

// NewDrill validates d and returns it with defaults filled in.
func NewDrill(d Drill) (Drill, error) {
	if d.Shape == "" {
		d.Shape = DrillRound
	}
	if d.Diameter <= 0 {
		return Drill{}, fmt.Errorf("drill: diameter must be positive")
	}
	switch d.Shape {
	case DrillOblong:
		if d.SlotLength <= 0 {
			return Drill{}, fmt.Errorf("drill: slot length required for oblong holes")
		}
	case DrillRound:
		if d.SlotLength != 0 {
			return Drill{}, fmt.Errorf("drill: slot length not allowed for round holes")
		}
	default:
		return Drill{}, fmt.Errorf("drill: unknown shape %q", d.Shape)
	}
	return d, nil
}

// Model3D references an externally-fetched 3D asset by identity only.
type Model3D struct {
	UUID     uuid.UUID
	Offset   Point3D
	Rotation EulerRotation
	Scale    Point3D
}

// NewModel3D returns a model reference with unit scale.
func NewModel3D(id uuid.UUID) Model3D {
	return Model3D{UUID: id, Scale: Point3D{X: 1, Y: 1, Z: 1}}
}
