package librepcb

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/librepcb/sexp"
)

// PackageSerializer renders a canonical footprint as a LibrePCB .pkg
// element: package metadata, package pad declarations and one "default"
// footprint. The canonical model keeps the vendor's down-positive Y;
// InvertY flips it into LibrePCB's up-positive board space.
type PackageSerializer struct {
	log     *slog.Logger
	InvertY bool
}

func NewPackageSerializer(log *slog.Logger) *PackageSerializer {
	if log == nil {
		log = slog.Default()
	}
	return &PackageSerializer{log: log, InvertY: true}
}

func (s *PackageSerializer) y(v float64) float64 {
	if s.InvertY {
		return -v
	}
	return v
}

// Serialize renders the package element text. Identities for generated
// sub-elements (the footprint, footprint pads, graphics) are derived from
// the package and pad UUIDs so repeated runs emit identical bytes.
func (s *PackageSerializer) Serialize(fp *cdm.Footprint) (string, error) {
	root := sexp.New("librepcb_package", fp.UUID)
	root.Add(metadataItems(elementMeta{
		Name:        fp.Name,
		Description: fp.Description,
		Keywords:    fp.Keywords,
		Author:      fp.Author,
		Version:     fp.Version,
		CreatedAt:   fp.CreatedAt,
		GeneratedBy: fp.GeneratedBy,
		Category:    uuid.MustParse(packageCategory),
	})...)
	root.Add(sexp.New("assembly_type", sexp.Sym("auto")))

	// Package pads: the name table the footprint pads and the device's
	// signal mapping both reference.
	for _, pad := range fp.Pads {
		root.Add(sexp.New("pad", pad.UUID, sexp.New("name", pad.Number)))
	}

	footprint := sexp.New("footprint",
		DeriveUUID(fp.UUID, "footprint"),
		sexp.New("name", "default"),
		sexp.New("description", ""),
	)
	s.add3DPlacement(footprint, fp)

	for _, pad := range fp.Pads {
		node, err := s.footprintPad(pad)
		if err != nil {
			return "", err
		}
		footprint.Add(node)
	}
	for i, g := range fp.Graphics {
		if err := s.addGraphic(footprint, fp, i, g); err != nil {
			return "", err
		}
	}
	for i, d := range fp.Drills {
		footprint.Add(s.hole(DeriveUUID(fp.UUID, fmt.Sprintf("hole-%d", i)), d.Position, d.Diameter, d.SlotLength))
	}

	root.Add(footprint)
	if fp.Model3D != nil {
		root.Add(sexp.New("3d_model", fp.Model3D.UUID, sexp.New("name", "EasyEDA")))
	}
	return root.Serialize(), nil
}

func (s *PackageSerializer) add3DPlacement(footprint *sexp.Node, fp *cdm.Footprint) {
	pos, rot := cdm.Point3D{}, cdm.EulerRotation{}
	if fp.Model3D != nil {
		pos, rot = fp.Model3D.Offset, fp.Model3D.Rotation
	}
	footprint.Add(
		sexp.New("3d_position", pos.X, pos.Y, pos.Z),
		sexp.New("3d_rotation", rot.X, rot.Y, rot.Z),
	)
	if fp.Model3D != nil {
		footprint.Add(sexp.New("3d_model", fp.Model3D.UUID))
	}
}

func (s *PackageSerializer) footprintPad(pad cdm.Pad) (*sexp.Node, error) {
	shape, radius, err := padShape(pad)
	if err != nil {
		return nil, err
	}
	height := pad.Height
	if pad.Shape == cdm.PadShapeCircle {
		height = pad.Width
	}

	hasHole := pad.DrillDiameter > 0

	node := sexp.New("pad",
		DeriveUUID(pad.UUID, "footprint-pad"),
		sexp.New("side", sexp.Sym(padSide(pad))),
		sexp.New("shape", sexp.Sym(shape)),
		sexp.LineBreak,
		sexp.New("position", pad.Position.X, s.y(pad.Position.Y)),
		sexp.New("rotation", pad.Rotation),
		sexp.New("size", pad.Width, height),
		sexp.New("radius", radius),
	)
	if pad.Shape == cdm.PadShapePolygon {
		for _, v := range closeLoop(pad.Vertices) {
			node.Add(sexp.New("vertex",
				sexp.New("position", v.X, s.y(v.Y)),
				sexp.New("angle", 0.0),
			))
		}
	}
	node.Add(sexp.LineBreak, maskConfig("stop_mask", pad.SolderMaskMargin))
	if hasHole {
		// A hole forces paste off regardless of the layer side table.
		node.Add(sexp.New("solder_paste", sexp.Sym("off")))
	} else {
		node.Add(maskConfig("solder_paste", pad.PasteMaskMargin))
	}
	node.Add(
		sexp.New("clearance", 0.0),
		sexp.New("function", sexp.Sym("standard")),
		sexp.New("package_pad", pad.UUID),
	)
	if hasHole {
		node.Add(s.padHole(pad))
	}
	return node, nil
}

// maskConfig renders a stop-mask or solder-paste config: automatic unless
// the layer table supplied an explicit expansion.
func maskConfig(tag string, margin *float64) *sexp.Node {
	if margin != nil {
		return sexp.New(tag, *margin)
	}
	return sexp.New(tag, sexp.Sym("auto"))
}

// padHole renders the drill of a through-hole pad. An oblong drill becomes
// a two-vertex slot path whose end-to-end extent matches the slot length.
func (s *PackageSerializer) padHole(pad cdm.Pad) *sexp.Node {
	node := sexp.New("hole",
		DeriveUUID(pad.UUID, "hole"),
		sexp.New("diameter", pad.DrillDiameter),
	)
	if pad.DrillShape == cdm.DrillOblong && pad.DrillSlotLength > pad.DrillDiameter {
		half := (pad.DrillSlotLength - pad.DrillDiameter) / 2
		for _, x := range []float64{-half, half} {
			node.Add(sexp.New("vertex",
				sexp.New("position", x, 0.0),
				sexp.New("angle", 0.0),
			))
		}
	} else {
		node.Add(sexp.New("vertex",
			sexp.New("position", 0.0, 0.0),
			sexp.New("angle", 0.0),
		))
	}
	return node
}

func (s *PackageSerializer) hole(id uuid.UUID, pos cdm.Point, diameter, slotLength float64) *sexp.Node {
	node := sexp.New("hole", id, sexp.New("diameter", diameter))
	if slotLength > diameter {
		half := (slotLength - diameter) / 2
		for _, dx := range []float64{-half, half} {
			node.Add(sexp.New("vertex",
				sexp.New("position", pos.X+dx, s.y(pos.Y)),
				sexp.New("angle", 0.0),
			))
		}
	} else {
		node.Add(sexp.New("vertex",
			sexp.New("position", pos.X, s.y(pos.Y)),
			sexp.New("angle", 0.0),
		))
	}
	node.Add(sexp.New("stop_mask", sexp.Sym("auto")))
	return node
}

func (s *PackageSerializer) addGraphic(footprint *sexp.Node, fp *cdm.Footprint, i int, g cdm.GraphicElement) error {
	id := DeriveUUID(fp.UUID, graphicRole(i))

	if text, ok := g.(cdm.Text); ok {
		node, err := s.strokeText(id, text)
		if err != nil {
			return err
		}
		footprint.Add(node)
		return nil
	}

	layer, err := BoardLayer(g.ElementLayer())
	if err != nil {
		return err
	}

	switch e := g.(type) {
	case cdm.Polygon:
		footprint.Add(s.boardPolygon(id, layer, e.StrokeWidth, e.Filled, closeLoop(e.Vertices)))
	case cdm.Polyline:
		footprint.Add(s.boardPolygon(id, layer, e.StrokeWidth, false, e.Points))
	case cdm.Line:
		footprint.Add(s.boardPolygon(id, layer, e.Width, false, []cdm.Point{e.Start, e.End}))
	case cdm.Rectangle:
		footprint.Add(s.boardPolygon(id, layer, e.StrokeWidth, e.Filled, rectVertices(e)))
	case cdm.Arc:
		footprint.Add(s.arcPolygon(id, layer, e))
	case cdm.Circle:
		footprint.Add(sexp.New("circle", id,
			sexp.New("layer", sexp.Sym(layer)),
			sexp.New("width", e.StrokeWidth),
			sexp.New("fill", e.Filled),
			sexp.New("grab_area", false),
			sexp.New("diameter", e.Radius*2),
			sexp.New("position", e.Center.X, s.y(e.Center.Y)),
		))
	case cdm.Ellipse:
		s.log.Warn("approximating ellipse as circle", "footprint", fp.Name)
		footprint.Add(sexp.New("circle", id,
			sexp.New("layer", sexp.Sym(layer)),
			sexp.New("width", e.StrokeWidth),
			sexp.New("fill", e.Filled),
			sexp.New("grab_area", false),
			sexp.New("diameter", e.RadiusX+e.RadiusY),
			sexp.New("position", e.Center.X, s.y(e.Center.Y)),
		))
	default:
		return fmt.Errorf("unsupported footprint graphic %T", g)
	}
	return nil
}

// arcPolygon renders an arc the way LibrePCB stores them: a two-vertex
// polygon with the sweep angle carried on the first vertex.
func (s *PackageSerializer) arcPolygon(id uuid.UUID, layer string, a cdm.Arc) *sexp.Node {
	startRad := a.StartAngle * math.Pi / 180
	endRad := a.EndAngle * math.Pi / 180
	start := cdm.Point{X: a.Center.X + a.Radius*math.Cos(startRad), Y: a.Center.Y + a.Radius*math.Sin(startRad)}
	end := cdm.Point{X: a.Center.X + a.Radius*math.Cos(endRad), Y: a.Center.Y + a.Radius*math.Sin(endRad)}
	sweep := a.EndAngle - a.StartAngle
	if s.InvertY {
		sweep = -sweep
	}
	return sexp.New("polygon", id,
		sexp.New("layer", sexp.Sym(layer)),
		sexp.New("width", a.Width),
		sexp.New("fill", false),
		sexp.New("grab_area", false),
		sexp.New("vertex",
			sexp.New("position", start.X, s.y(start.Y)),
			sexp.New("angle", sweep),
		),
		sexp.New("vertex",
			sexp.New("position", end.X, s.y(end.Y)),
			sexp.New("angle", 0.0),
		),
	)
}

func (s *PackageSerializer) boardPolygon(id uuid.UUID, layer string, width float64, fill bool, vertices []cdm.Point) *sexp.Node {
	n := sexp.New("polygon", id,
		sexp.New("layer", sexp.Sym(layer)),
		sexp.New("width", width),
		sexp.New("fill", fill),
		sexp.New("grab_area", false),
	)
	for _, v := range vertices {
		n.Add(sexp.New("vertex",
			sexp.New("position", v.X, s.y(v.Y)),
			sexp.New("angle", 0.0),
		))
	}
	return n
}

func (s *PackageSerializer) strokeText(id uuid.UUID, text cdm.Text) (*sexp.Node, error) {
	var layer string
	value := text.Value
	switch text.TextType {
	case "name":
		layer, value = "top_names", "{{NAME}}"
	case "value":
		layer, value = "top_values", "{{VALUE}}"
	default:
		var err error
		layer, err = BoardLayer(text.Layer)
		if err != nil {
			return nil, err
		}
	}

	height := text.FontHeight
	if height <= 0 {
		height = 1.0
	}
	strokeWidth := text.StrokeWidth
	if strokeWidth <= 0 {
		strokeWidth = 0.2
	}

	return sexp.New("stroke_text", id,
		sexp.New("layer", sexp.Sym(layer)),
		sexp.LineBreak,
		sexp.New("height", height),
		sexp.New("stroke_width", strokeWidth),
		sexp.New("letter_spacing", sexp.Sym("auto")),
		sexp.New("line_spacing", sexp.Sym("auto")),
		sexp.LineBreak,
		sexp.New("align", sexp.Sym(textAlignH(text.HorizontalAlign)), sexp.Sym(textAlignV(text.VerticalAlign))),
		sexp.New("position", text.Position.X, s.y(text.Position.Y)),
		sexp.New("rotation", text.Rotation),
		sexp.LineBreak,
		sexp.New("auto_rotate", true),
		sexp.New("mirror", text.Mirrored),
		sexp.New("value", value),
	), nil
}

func textAlignH(a cdm.TextAlignHorizontal) string {
	if a == "" {
		return "center"
	}
	return string(a)
}

func textAlignV(a cdm.TextAlignVertical) string {
	switch a {
	case cdm.AlignMiddle, "":
		return "center"
	default:
		return string(a)
	}
}

// WriteTo writes package.lp plus the .librepcb-pkg marker into dir.
func (s *PackageSerializer) WriteTo(fp *cdm.Footprint, dir string) error {
	content, err := s.Serialize(fp)
	if err != nil {
		return err
	}
	return writeElement(dir, PackageFilename, content, packageMarker)
}
