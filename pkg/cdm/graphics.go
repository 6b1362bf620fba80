package cdm

// TextAlignHorizontal is the horizontal anchor of a text element.
type TextAlignHorizontal string

const (
	AlignLeft   TextAlignHorizontal = "left"
	AlignCenter TextAlignHorizontal = "center"
	AlignRight  TextAlignHorizontal = "right"
)

// TextAlignVertical is the vertical anchor of a text element.
type TextAlignVertical string

const (
	AlignTop    TextAlignVertical = "top"
	AlignMiddle TextAlignVertical = "middle"
	AlignBottom TextAlignVertical = "bottom"
)

// GraphicElement is the closed set of drawable primitives. The marker method
// seals the interface so consumers can switch exhaustively over the variants;
// adding a primitive is a compile-time-visible change at every consumer.
type GraphicElement interface {
	ElementLayer() LayerRef
	isGraphicElement()
}

// Line is a single stroked segment.
type Line struct {
	Layer LayerRef
	Start Point
	End   Point
	Width float64
}

// Polyline is an open sequence of stroked segments.
type Polyline struct {
	Layer       LayerRef
	Points      []Point
	StrokeWidth float64 // 0 = hairline
}

// Arc is a circular arc defined by center, radius and start/end angles in
// degrees. A negative sweep (end < start) runs clockwise.
type Arc struct {
	Layer      LayerRef
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Width      float64
}

// Circle is a full circle, optionally filled.
type Circle struct {
	Layer       LayerRef
	Center      Point
	Radius      float64
	StrokeWidth float64
	Filled      bool
}

// Ellipse is an axis-aligned ellipse unless Rotation is set.
type Ellipse struct {
	Layer       LayerRef
	Center      Point
	RadiusX     float64
	RadiusY     float64
	StrokeWidth float64
	Filled      bool
	Rotation    float64
}

// Rectangle is positioned by its center point.
type Rectangle struct {
	Layer        LayerRef
	Position     Point
	Width        float64
	Height       float64
	Rotation     float64
	StrokeWidth  float64
	Filled       bool
	CornerRadius float64
}

// Polygon is a closed vertex loop.
type Polygon struct {
	Layer       LayerRef
	Vertices    []Point
	StrokeWidth float64
	Filled      bool
}

// Text is a stroked text element.
type Text struct {
	Layer           LayerRef
	Value           string
	TextType        string // "name", "value", "prefix" or empty
	Position        Point
	FontHeight      float64
	StrokeWidth     float64
	Rotation        float64
	Mirrored        bool
	Visible         bool
	HorizontalAlign TextAlignHorizontal
	VerticalAlign   TextAlignVertical
}

func (g Line) ElementLayer() LayerRef      { return g.Layer }
func (g Polyline) ElementLayer() LayerRef  { return g.Layer }
func (g Arc) ElementLayer() LayerRef       { return g.Layer }
func (g Circle) ElementLayer() LayerRef    { return g.Layer }
func (g Ellipse) ElementLayer() LayerRef   { return g.Layer }
func (g Rectangle) ElementLayer() LayerRef { return g.Layer }
func (g Polygon) ElementLayer() LayerRef   { return g.Layer }
func (g Text) ElementLayer() LayerRef      { return g.Layer }

func (Line) isGraphicElement()      {}
func (Polyline) isGraphicElement()  {}
func (Arc) isGraphicElement()       {}
func (Circle) isGraphicElement()    {}
func (Ellipse) isGraphicElement()   {}
func (Rectangle) isGraphicElement() {}
func (Polygon) isGraphicElement()   {}
func (Text) isGraphicElement()      {}
