package librepcb

import (
	"log/slog"
	"math"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/librepcb/sexp"
)

// GridSize is the schematic grid in millimeters. Pins and symbol outlines
// are kept on this grid.
const GridSize = 2.54

// SymbolSerializer renders a canonical symbol as a LibrePCB .sym element.
// Symbols need no Y inversion: the canonical symbol model and LibrePCB
// both use Y-up on the schematic side.
type SymbolSerializer struct {
	log *slog.Logger
}

func NewSymbolSerializer(log *slog.Logger) *SymbolSerializer {
	if log == nil {
		log = slog.Default()
	}
	return &SymbolSerializer{log: log}
}

// pinRotation maps a pin's pointing direction onto the rotation of a
// LibrePCB pin, whose zero angle points left toward the symbol body.
func pinRotation(d cdm.PinDirection) float64 {
	switch d {
	case cdm.PinRight:
		return 180.0
	case cdm.PinDown:
		return 270.0
	case cdm.PinLeft:
		return 0.0
	case cdm.PinUp:
		return 90.0
	default:
		return 0.0
	}
}

func gridIndex(mm float64) int {
	return int(math.Round(mm / GridSize))
}

// pinExtents returns the min/max grid indices covered by the pins.
func pinExtents(pins []cdm.Pin) (minX, maxX, minY, maxY int) {
	minX, minY = math.MaxInt32, math.MaxInt32
	maxX, maxY = math.MinInt32, math.MinInt32
	for _, p := range pins {
		x, y := gridIndex(p.Position.X), gridIndex(p.Position.Y)
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return
}

// Serialize renders the symbol element text. Output is deterministic: all
// generated sub-element identities are derived from the symbol UUID.
func (s *SymbolSerializer) Serialize(sym *cdm.Symbol) string {
	pins := consolidatePins(sym.Pins)
	if removed := len(sym.Pins) - len(pins); removed > 0 {
		s.log.Info("consolidated duplicate pins", "symbol", sym.Name, "removed", removed)
	}

	root := sexp.New("librepcb_symbol", sym.UUID)
	root.Add(metadataItems(symbolMeta(sym, sym.Name))...)

	for _, pin := range pins {
		length := pin.Length
		if length <= 0 {
			length = GridSize
		}
		root.Add(sexp.New("pin",
			pin.UUID,
			sexp.New("name", pin.Name),
			sexp.New("position", pin.Position.X, pin.Position.Y),
			sexp.New("rotation", pinRotation(pin.Direction)),
			sexp.New("length", length),
			sexp.New("name_position", GridSize*1.25, 0.0),
			sexp.New("name_rotation", 0.0),
			sexp.New("name_height", GridSize*0.7),
			sexp.New("name_align", sexp.Sym("left"), sexp.Sym("center")),
		))
	}

	s.addBody(root, sym, pins)
	s.addLabels(root, sym, pins)

	return root.Serialize()
}

// addBody emits the symbol body graphics. Outline polygons produced by the
// parser are used when present; otherwise a rectangular body is derived
// from the pin extents, inset one grid unit so pins stick out.
func (s *SymbolSerializer) addBody(root *sexp.Node, sym *cdm.Symbol, pins []cdm.Pin) {
	emitted := 0
	for i, g := range sym.Graphics {
		if s.addBodyElement(root, sym, i, g) {
			emitted++
		}
	}
	if emitted > 0 || len(pins) == 0 {
		return
	}

	minX, maxX, minY, maxY := pinExtents(pins)
	vertices := []cdm.Point{
		{X: float64(minX+1) * GridSize, Y: float64(maxY+1) * GridSize},
		{X: float64(maxX-1) * GridSize, Y: float64(maxY+1) * GridSize},
		{X: float64(maxX-1) * GridSize, Y: float64(minY-1) * GridSize},
		{X: float64(minX+1) * GridSize, Y: float64(minY-1) * GridSize},
		{X: float64(minX+1) * GridSize, Y: float64(maxY+1) * GridSize},
	}
	root.Add(symbolPolygon(DeriveUUID(sym.UUID, "outline"), 0.2, false, true, vertices))
}

// addBodyElement emits one graphic element; returns false for elements the
// symbol format does not carry (texts are handled by the label pass).
func (s *SymbolSerializer) addBodyElement(root *sexp.Node, sym *cdm.Symbol, i int, g cdm.GraphicElement) bool {
	id := DeriveUUID(sym.UUID, graphicRole(i))
	switch e := g.(type) {
	case cdm.Polygon:
		vertices := closeLoop(e.Vertices)
		root.Add(symbolPolygon(id, e.StrokeWidth, e.Filled, true, vertices))
	case cdm.Rectangle:
		root.Add(symbolPolygon(id, e.StrokeWidth, e.Filled, true, rectVertices(e)))
	case cdm.Polyline:
		root.Add(symbolPolygon(id, e.StrokeWidth, false, false, e.Points))
	case cdm.Line:
		root.Add(symbolPolygon(id, e.Width, false, false, []cdm.Point{e.Start, e.End}))
	case cdm.Circle:
		root.Add(sexp.New("circle", id,
			sexp.New("layer", sexp.Sym("sym_outlines")),
			sexp.New("width", e.StrokeWidth),
			sexp.New("fill", e.Filled),
			sexp.New("grab_area", true),
			sexp.New("diameter", e.Radius*2),
			sexp.New("position", e.Center.X, e.Center.Y),
		))
	case cdm.Ellipse:
		// LibrePCB symbols have no ellipse primitive; the mean radius
		// keeps the body recognizable.
		s.log.Warn("approximating ellipse as circle", "symbol", sym.Name)
		root.Add(sexp.New("circle", id,
			sexp.New("layer", sexp.Sym("sym_outlines")),
			sexp.New("width", e.StrokeWidth),
			sexp.New("fill", e.Filled),
			sexp.New("grab_area", true),
			sexp.New("diameter", e.RadiusX+e.RadiusY),
			sexp.New("position", e.Center.X, e.Center.Y),
		))
	case cdm.Text:
		return false
	default:
		s.log.Warn("skipping unsupported symbol graphic", "symbol", sym.Name)
		return false
	}
	return true
}

func symbolPolygon(id any, width float64, fill, grabArea bool, vertices []cdm.Point) *sexp.Node {
	n := sexp.New("polygon", id,
		sexp.New("layer", sexp.Sym("sym_outlines")),
		sexp.New("width", width),
		sexp.New("fill", fill),
		sexp.New("grab_area", grabArea),
	)
	for _, v := range vertices {
		n.Add(sexp.New("vertex",
			sexp.New("position", v.X, v.Y),
			sexp.New("angle", 0.0),
		))
	}
	return n
}

// addLabels places the {{NAME}}/{{VALUE}} text labels, preferring the
// parser's placement decision and falling back to the pin extents.
func (s *SymbolSerializer) addLabels(root *sexp.Node, sym *cdm.Symbol, pins []cdm.Pin) {
	if len(pins) == 0 && sym.Labels == (cdm.LabelPlacement{}) {
		return
	}

	height := GridSize * 0.7
	labels := sym.Labels
	if labels == (cdm.LabelPlacement{}) {
		minX, _, minY, maxY := pinExtents(pins)
		labels = cdm.LabelPlacement{
			NamePosition:    cdm.Point{X: float64(minX+2) * GridSize, Y: float64(maxY+1) * GridSize},
			ValuePosition:   cdm.Point{X: float64(minX+2) * GridSize, Y: float64(minY-1) * GridSize},
			HorizontalAlign: cdm.AlignLeft,
			NameVAlign:      cdm.AlignBottom,
			ValueVAlign:     cdm.AlignTop,
		}
	}

	root.Add(sexp.New("text",
		DeriveUUID(sym.UUID, "name_label"),
		sexp.New("layer", sexp.Sym("sym_names")),
		sexp.New("value", "{{NAME}}"),
		sexp.New("align", sexp.Sym(string(labels.HorizontalAlign)), sexp.Sym(string(labels.NameVAlign))),
		sexp.New("height", height),
		sexp.New("position", labels.NamePosition.X, labels.NamePosition.Y),
		sexp.New("rotation", 0.0),
	))
	root.Add(sexp.New("text",
		DeriveUUID(sym.UUID, "value_label"),
		sexp.New("layer", sexp.Sym("sym_values")),
		sexp.New("value", "{{VALUE}}"),
		sexp.New("align", sexp.Sym(string(labels.HorizontalAlign)), sexp.Sym(string(labels.ValueVAlign))),
		sexp.New("height", height),
		sexp.New("position", labels.ValuePosition.X, labels.ValuePosition.Y),
		sexp.New("rotation", 0.0),
	))
}

// WriteTo writes symbol.lp plus the .librepcb-sym marker into dir.
func (s *SymbolSerializer) WriteTo(sym *cdm.Symbol, dir string) error {
	return writeElement(dir, SymbolFilename, s.Serialize(sym), symbolMarker)
}
