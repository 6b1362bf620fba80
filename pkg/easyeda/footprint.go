package easyeda

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

// shapeKind is the closed set of footprint shape tags. Geometry strings
// with any other tag mean the document does not follow the format the
// parser was written against, which is a hard error rather than a skip.
type shapeKind string

const (
	shapePad         shapeKind = "PAD"
	shapeTrack       shapeKind = "TRACK"
	shapeCircle      shapeKind = "CIRCLE"
	shapeArc         shapeKind = "ARC"
	shapeSolidRegion shapeKind = "SOLIDREGION"
	shapeText        shapeKind = "TEXT"
	shapeHole        shapeKind = "HOLE"
	shapeRect        shapeKind = "RECT"
	shapeSVGNode     shapeKind = "SVGNODE"
	shapeVia         shapeKind = "VIA"
)

var shapeKinds = map[string]shapeKind{
	"PAD": shapePad, "TRACK": shapeTrack, "CIRCLE": shapeCircle,
	"ARC": shapeArc, "SOLIDREGION": shapeSolidRegion, "TEXT": shapeText,
	"HOLE": shapeHole, "RECT": shapeRect, "SVGNODE": shapeSVGNode,
	"VIA": shapeVia,
}

func decodeShapeKind(tag string) (shapeKind, error) {
	k, ok := shapeKinds[tag]
	if !ok {
		return "", fmt.Errorf("unrecognized shape tag %q", tag)
	}
	return k, nil
}

// FootprintParser converts the footprint section of an EasyEDA document
// into a canonical Footprint. Coordinates come out in millimeters with the
// vendor's down-positive Y axis preserved.
type FootprintParser struct {
	log *slog.Logger
}

func NewFootprintParser(log *slog.Logger) *FootprintParser {
	if log == nil {
		log = slog.Default()
	}
	return &FootprintParser{log: log}
}

// footprintContext is the per-document parse state shared by the shape
// handlers: the layer table and the origin offset, both fixed before the
// shape loop starts.
type footprintContext struct {
	layers  *layerTable
	offsetX float64 // mm
	offsetY float64 // mm
	log     *slog.Logger
}

// x and y convert a vendor-unit coordinate to offset-adjusted millimeters.
func (c *footprintContext) x(v float64) float64 { return v*UnitScale - c.offsetX }
func (c *footprintContext) y(v float64) float64 { return v*UnitScale - c.offsetY }

func (c *footprintContext) point(xs, ys string) (cdm.Point, error) {
	xv, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return cdm.Point{}, fmt.Errorf("bad x coordinate %q: %w", xs, err)
	}
	yv, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return cdm.Point{}, fmt.Errorf("bad y coordinate %q: %w", ys, err)
	}
	return cdm.Point{X: c.x(xv), Y: c.y(yv)}, nil
}

// coords splits a space-separated "x1 y1 x2 y2 ..." run into points.
func (c *footprintContext) coords(s string) ([]cdm.Point, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil, fmt.Errorf("coordinate run %q is not an even list of numbers", s)
	}
	pts := make([]cdm.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		p, err := c.point(fields[i], fields[i+1])
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func (c *footprintContext) layer(id string) (cdm.LayerRef, error) {
	ref, ok := c.layers.resolve(id)
	if !ok {
		return cdm.LayerRef{}, fmt.Errorf("undefined layer id %q", id)
	}
	return ref, nil
}

// Parse converts doc's footprint section. It returns (nil, nil) when the
// document has no footprint, which is legitimate: some records carry only
// a symbol.
func (p *FootprintParser) Parse(doc *Document) (*cdm.Footprint, error) {
	if doc.PackageDetail == nil || doc.PackageDetail.DataStr == nil {
		return nil, nil
	}
	data := doc.PackageDetail.DataStr
	head := data.Head

	ctx := &footprintContext{
		layers:  parseLayerTable(data.Layers, p.log),
		offsetX: head.X * UnitScale,
		offsetY: head.Y * UnitScale,
		log:     p.log,
	}

	fp := &cdm.Footprint{
		UUID:         p.footprintUUID(doc, head),
		Name:         footprintName(doc, head),
		Description:  doc.Description,
		Keywords:     doc.Tags,
		Width:        data.BBox.Width * UnitScale,
		Height:       data.BBox.Height * UnitScale,
		SourceOffset: cdm.SourceOffset{X: head.X, Y: head.Y},
	}
	p.applyMetadata(fp, doc, head)

	for _, shape := range data.Shape {
		parts := strings.Split(shape, "~")
		kind, err := decodeShapeKind(parts[0])
		if err != nil {
			return nil, err
		}
		if err := p.parseShape(ctx, fp, kind, parts); err != nil {
			p.log.Warn("skipping malformed shape", "tag", parts[0], "error", err)
		}
	}

	if len(fp.Pads) > 0 {
		fp.Graphics = append(fp.Graphics, nameValueLabels(fp.Graphics)...)
	}
	return fp, nil
}

func (p *FootprintParser) parseShape(ctx *footprintContext, fp *cdm.Footprint, kind shapeKind, parts []string) error {
	switch kind {
	case shapePad:
		pad, err := parsePad(ctx, parts)
		if err != nil {
			return err
		}
		fp.Pads = append(fp.Pads, pad)
	case shapeTrack:
		el, err := parseTrack(ctx, parts)
		if err != nil {
			return err
		}
		fp.Graphics = append(fp.Graphics, el)
	case shapeCircle:
		el, err := parseCircle(ctx, parts)
		if err != nil {
			return err
		}
		fp.Graphics = append(fp.Graphics, el)
	case shapeArc:
		el, err := parseArc(ctx, parts)
		if err != nil {
			return err
		}
		fp.Graphics = append(fp.Graphics, el)
	case shapeSolidRegion:
		el, err := parseSolidRegion(ctx, parts)
		if err != nil {
			return err
		}
		fp.Graphics = append(fp.Graphics, el)
	case shapeText:
		el, err := parseText(ctx, parts)
		if err != nil {
			return err
		}
		fp.Graphics = append(fp.Graphics, el)
	case shapeHole:
		drill, err := parseHole(ctx, parts)
		if err != nil {
			return err
		}
		fp.Drills = append(fp.Drills, drill)
	case shapeRect:
		el, err := parseRect(ctx, parts)
		if err != nil {
			return err
		}
		fp.Graphics = append(fp.Graphics, el)
	case shapeSVGNode:
		model, err := parseSVGNode(ctx, parts)
		if err != nil {
			return err
		}
		if model != nil {
			fp.Model3D = model
		}
	case shapeVia:
		// Vias inside a footprint document carry no landing-pattern
		// information the target needs.
		ctx.log.Debug("ignoring VIA shape")
	}
	return nil
}

// parsePad decodes
// PAD~shape~x~y~w~h~layer~net~number~holeRadius~points~rotation~id~holeLength~holePoint~isPlated
func parsePad(ctx *footprintContext, parts []string) (cdm.Pad, error) {
	if len(parts) < 12 {
		return cdm.Pad{}, fmt.Errorf("PAD needs at least 12 fields, got %d", len(parts))
	}
	center, err := ctx.point(parts[2], parts[3])
	if err != nil {
		return cdm.Pad{}, err
	}
	width, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return cdm.Pad{}, fmt.Errorf("bad pad width %q: %w", parts[4], err)
	}
	height, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return cdm.Pad{}, fmt.Errorf("bad pad height %q: %w", parts[5], err)
	}
	layer, err := ctx.layer(parts[6])
	if err != nil {
		return cdm.Pad{}, err
	}
	number := parts[8]

	pad := cdm.Pad{
		Number:   number,
		Position: center,
		Width:    width * UnitScale,
		Height:   height * UnitScale,
		Layer:    layer,
	}
	if parts[11] != "" {
		if pad.Rotation, err = strconv.ParseFloat(parts[11], 64); err != nil {
			return cdm.Pad{}, fmt.Errorf("bad pad rotation %q: %w", parts[11], err)
		}
	}

	switch parts[1] {
	case "RECT":
		pad.Shape = cdm.PadShapeRectangle
	case "ELLIPSE":
		if width == height {
			pad.Shape = cdm.PadShapeCircle
		} else {
			pad.Shape = cdm.PadShapeOval
		}
	case "OVAL":
		pad.Shape = cdm.PadShapeOval
	case "POLYGON":
		pad.Shape = cdm.PadShapePolygon
		pts, err := ctx.coords(parts[10])
		if err != nil {
			return cdm.Pad{}, fmt.Errorf("polygon pad points: %w", err)
		}
		// Custom pad outlines are pad-relative.
		for _, pt := range pts {
			pad.Vertices = append(pad.Vertices, cdm.Point{X: pt.X - center.X, Y: pt.Y - center.Y})
		}
	default:
		return cdm.Pad{}, fmt.Errorf("unknown pad shape %q", parts[1])
	}

	holeRadius := 0.0
	if parts[9] != "" {
		if holeRadius, err = strconv.ParseFloat(parts[9], 64); err != nil {
			return cdm.Pad{}, fmt.Errorf("bad hole radius %q: %w", parts[9], err)
		}
	}

	if holeRadius > 0 {
		pad.Type = cdm.PadTypeThroughHole
		pad.DrillDiameter = holeRadius * 2 * UnitScale
		pad.DrillShape = cdm.DrillRound
		pad.Plated = platedFlag(parts)
		if len(parts) > 13 && parts[13] != "" {
			slot, err := strconv.ParseFloat(parts[13], 64)
			if err != nil {
				return cdm.Pad{}, fmt.Errorf("bad hole length %q: %w", parts[13], err)
			}
			if slot > 0 {
				pad.DrillShape = cdm.DrillOblong
				pad.DrillSlotLength = slot * UnitScale
			}
		}
		// No board stackup is available, so spanning defaults to the
		// full outer-to-outer extent.
		top := cdm.MustLayerRef(cdm.LayerTopCopper)
		bottom := cdm.MustLayerRef(cdm.LayerBottomCopper)
		pad.StartLayer = &top
		pad.EndLayer = &bottom
	} else if layer.Kind == cdm.LayerMultiLayer {
		pad.Type = cdm.PadTypeConnect
	} else {
		pad.Type = cdm.PadTypeSMD
	}

	pad.SolderMaskMargin = ctx.layers.solderMask
	pad.PasteMaskMargin = ctx.layers.pasteMask
	pad.UUID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("easyeda-pad:"+number+":"+parts[2]+","+parts[3]))
	return cdm.NewPad(pad)
}

// platedFlag reads the trailing isPlated field, defaulting to plated.
func platedFlag(parts []string) bool {
	if len(parts) <= 15 || parts[15] == "" {
		return true
	}
	v := parts[15]
	return !(strings.EqualFold(v, "N") || v == "false" || v == "0")
}

// parseTrack decodes TRACK~strokeWidth~layerId~net~points~id.
func parseTrack(ctx *footprintContext, parts []string) (cdm.GraphicElement, error) {
	if len(parts) < 5 {
		return nil, fmt.Errorf("TRACK needs at least 5 fields, got %d", len(parts))
	}
	width, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("bad track width %q: %w", parts[1], err)
	}
	layer, err := ctx.layer(parts[2])
	if err != nil {
		return nil, err
	}
	pts, err := ctx.coords(parts[4])
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("track needs at least 2 points, got %d", len(pts))
	}
	return cdm.Polyline{
		Layer:       layer,
		Points:      pts,
		StrokeWidth: width * UnitScale,
	}, nil
}

// parseCircle decodes CIRCLE~cx~cy~radius~strokeWidth~layerId.
func parseCircle(ctx *footprintContext, parts []string) (cdm.GraphicElement, error) {
	if len(parts) < 6 {
		return nil, fmt.Errorf("CIRCLE needs at least 6 fields, got %d", len(parts))
	}
	center, err := ctx.point(parts[1], parts[2])
	if err != nil {
		return nil, err
	}
	radius, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, fmt.Errorf("bad circle radius %q: %w", parts[3], err)
	}
	width, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, fmt.Errorf("bad circle stroke width %q: %w", parts[4], err)
	}
	layer, err := ctx.layer(parts[5])
	if err != nil {
		return nil, err
	}
	return cdm.Circle{
		Layer:       layer,
		Center:      center,
		Radius:      radius * UnitScale,
		StrokeWidth: width * UnitScale,
	}, nil
}

// parseArc decodes ARC~strokeWidth~layerId~net~path~id. The path is the
// "M x y A rx ry rot largeArc sweep x y" form.
func parseArc(ctx *footprintContext, parts []string) (cdm.GraphicElement, error) {
	if len(parts) < 5 {
		return nil, fmt.Errorf("ARC needs at least 5 fields, got %d", len(parts))
	}
	width, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("bad arc width %q: %w", parts[1], err)
	}
	layer, err := ctx.layer(parts[2])
	if err != nil {
		return nil, err
	}
	path, err := ParsePath(parts[4])
	if err != nil {
		return nil, err
	}
	spec, err := path.Arc()
	if err != nil {
		return nil, err
	}

	start := cdm.Point{X: ctx.x(spec.Start.X), Y: ctx.y(spec.Start.Y)}
	end := cdm.Point{X: ctx.x(spec.End.X), Y: ctx.y(spec.End.Y)}
	radius := spec.RadiusX * UnitScale
	center, sweep := solveArc(start, end, radius, spec.LargeArc, spec.Sweep)
	startAngle := math.Atan2(start.Y-center.Y, start.X-center.X) * 180 / math.Pi

	return cdm.Arc{
		Layer:      layer,
		Center:     center,
		Radius:     math.Hypot(start.X-center.X, start.Y-center.Y),
		StartAngle: startAngle,
		EndAngle:   startAngle + sweep,
		Width:      width * UnitScale,
	}, nil
}

// parseSolidRegion decodes SOLIDREGION~layerId~net~path~type~id. "solid"
// regions fill; regions on the package-outline layer stay unfilled because
// the target renders that layer as a contour.
func parseSolidRegion(ctx *footprintContext, parts []string) (cdm.GraphicElement, error) {
	if len(parts) < 5 {
		return nil, fmt.Errorf("SOLIDREGION needs at least 5 fields, got %d", len(parts))
	}
	layer, err := ctx.layer(parts[1])
	if err != nil {
		return nil, err
	}
	path, err := ParsePath(parts[3])
	if err != nil {
		return nil, err
	}
	raw, err := path.Points()
	if err != nil {
		return nil, err
	}
	if len(raw) < 3 {
		return nil, fmt.Errorf("region needs at least 3 vertices, got %d", len(raw))
	}
	vertices := make([]cdm.Point, len(raw))
	for i, pt := range raw {
		vertices[i] = cdm.Point{X: ctx.x(pt.X), Y: ctx.y(pt.Y)}
	}
	filled := parts[4] == "solid" && layer.Kind != cdm.LayerFabricationTop
	return cdm.Polygon{Layer: layer, Vertices: vertices, Filled: filled}, nil
}

// parseText decodes
// TEXT~type~x~y~strokeWidth~rotation~mirror~layerId~net~fontSize~display~text~path~id
func parseText(ctx *footprintContext, parts []string) (cdm.GraphicElement, error) {
	if len(parts) < 12 {
		return nil, fmt.Errorf("TEXT needs at least 12 fields, got %d", len(parts))
	}
	pos, err := ctx.point(parts[2], parts[3])
	if err != nil {
		return nil, err
	}
	width, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, fmt.Errorf("bad text stroke width %q: %w", parts[4], err)
	}
	rotation := 0.0
	if parts[5] != "" {
		if rotation, err = strconv.ParseFloat(parts[5], 64); err != nil {
			return nil, fmt.Errorf("bad text rotation %q: %w", parts[5], err)
		}
	}
	layer, err := ctx.layer(parts[7])
	if err != nil {
		return nil, err
	}
	fontSize, err := strconv.ParseFloat(parts[9], 64)
	if err != nil {
		return nil, fmt.Errorf("bad text font size %q: %w", parts[9], err)
	}

	textType := ""
	switch parts[1] {
	case "P":
		textType = "prefix"
	case "N":
		textType = "name"
	}
	return cdm.Text{
		Layer:           layer,
		Value:           parts[11],
		TextType:        textType,
		Position:        pos,
		FontHeight:      fontSize * UnitScale,
		StrokeWidth:     width * UnitScale,
		Rotation:        rotation,
		Mirrored:        parts[6] == "1",
		Visible:         true,
		HorizontalAlign: cdm.AlignCenter,
		VerticalAlign:   cdm.AlignMiddle,
	}, nil
}

// parseHole decodes HOLE~x~y~radius~id: a standalone non-plated hole.
func parseHole(ctx *footprintContext, parts []string) (cdm.Drill, error) {
	if len(parts) < 4 {
		return cdm.Drill{}, fmt.Errorf("HOLE needs at least 4 fields, got %d", len(parts))
	}
	center, err := ctx.point(parts[1], parts[2])
	if err != nil {
		return cdm.Drill{}, err
	}
	radius, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return cdm.Drill{}, fmt.Errorf("bad hole radius %q: %w", parts[3], err)
	}
	return cdm.NewDrill(cdm.Drill{
		Position: center,
		Shape:    cdm.DrillRound,
		Diameter: radius * 2 * UnitScale,
		Plated:   false,
		Layer:    cdm.MustLayerRef(cdm.LayerNonPlatedHoles),
	})
}

// parseRect decodes RECT~x~y~width~height~strokeWidth~id~layerId. The
// vendor anchors rectangles at the top-left corner; the canonical model
// uses the center.
func parseRect(ctx *footprintContext, parts []string) (cdm.GraphicElement, error) {
	if len(parts) < 8 {
		return nil, fmt.Errorf("RECT needs at least 8 fields, got %d", len(parts))
	}
	corner, err := ctx.point(parts[1], parts[2])
	if err != nil {
		return nil, err
	}
	width, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, fmt.Errorf("bad rect width %q: %w", parts[3], err)
	}
	height, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return nil, fmt.Errorf("bad rect height %q: %w", parts[4], err)
	}
	stroke, err := strconv.ParseFloat(parts[5], 64)
	if err != nil {
		return nil, fmt.Errorf("bad rect stroke width %q: %w", parts[5], err)
	}
	layer, err := ctx.layer(parts[7])
	if err != nil {
		return nil, err
	}
	w := width * UnitScale
	h := height * UnitScale
	return cdm.Rectangle{
		Layer:       layer,
		Position:    cdm.Point{X: corner.X + w/2, Y: corner.Y + h/2},
		Width:       w,
		Height:      h,
		StrokeWidth: stroke * UnitScale,
	}, nil
}

// svgNodeAttrs is the JSON blob embedded in an SVGNODE shape; only the 3D
// model reference matters here.
type svgNodeAttrs struct {
	Attrs struct {
		UUID     string `json:"uuid"`
		Origin   string `json:"c_origin"`
		Rotation string `json:"c_rotation"`
	} `json:"attrs"`
}

// parseSVGNode extracts an embedded 3D model reference. Nodes without a
// model uuid are decorative and yield nothing.
func parseSVGNode(ctx *footprintContext, parts []string) (*cdm.Model3D, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("SVGNODE needs a payload field")
	}
	var node svgNodeAttrs
	if err := json.Unmarshal([]byte(parts[1]), &node); err != nil {
		return nil, fmt.Errorf("decoding SVGNODE payload: %w", err)
	}
	if node.Attrs.UUID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(node.Attrs.UUID)
	if err != nil {
		return nil, fmt.Errorf("bad 3D model uuid %q: %w", node.Attrs.UUID, err)
	}

	model := cdm.NewModel3D(id)
	if origin := strings.Split(node.Attrs.Origin, ","); len(origin) >= 2 {
		ox, errX := strconv.ParseFloat(origin[0], 64)
		oy, errY := strconv.ParseFloat(origin[1], 64)
		if errX == nil && errY == nil {
			model.Offset = cdm.Point3D{X: ctx.x(ox), Y: ctx.y(oy), Z: 0}
		}
	}
	if rot := strings.Split(node.Attrs.Rotation, ","); len(rot) >= 3 {
		rx, errX := strconv.ParseFloat(rot[0], 64)
		ry, errY := strconv.ParseFloat(rot[1], 64)
		rz, errZ := strconv.ParseFloat(rot[2], 64)
		if errX == nil && errY == nil && errZ == nil {
			model.Rotation = cdm.EulerRotation{X: rx, Y: ry, Z: rz}
		}
	}
	m := model
	return &m, nil
}

// nameValueLabels builds the {{NAME}}/{{VALUE}} stroke texts above and
// below the package outline.
func nameValueLabels(graphics []cdm.GraphicElement) []cdm.GraphicElement {
	const offset = 1.2
	minY, maxY := 0.0, 0.0
	extend := func(pts []cdm.Point) {
		for _, pt := range pts {
			minY = math.Min(minY, pt.Y)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	for _, g := range graphics {
		if g.ElementLayer().Kind != cdm.LayerFabricationTop {
			continue
		}
		switch el := g.(type) {
		case cdm.Polygon:
			extend(el.Vertices)
		case cdm.Polyline:
			extend(el.Points)
		}
	}

	doc := cdm.MustLayerRef(cdm.LayerFabricationTop)
	// Smaller Y is visually up here; serializers flip the axis on output.
	name := cdm.Text{
		Layer:           doc,
		Value:           "{{NAME}}",
		TextType:        "name",
		Position:        cdm.Point{X: 0, Y: minY - offset},
		FontHeight:      1.0,
		StrokeWidth:     0.2,
		Visible:         true,
		HorizontalAlign: cdm.AlignCenter,
		VerticalAlign:   cdm.AlignBottom,
	}
	value := cdm.Text{
		Layer:           doc,
		Value:           "{{VALUE}}",
		TextType:        "value",
		Position:        cdm.Point{X: 0, Y: maxY + offset},
		FontHeight:      1.0,
		StrokeWidth:     0.2,
		Visible:         true,
		HorizontalAlign: cdm.AlignCenter,
		VerticalAlign:   cdm.AlignTop,
	}
	return []cdm.GraphicElement{name, value}
}

// footprintUUID resolves the footprint identity: the document's own uuid
// when present, otherwise a stable hash of the LCSC identifier so repeat
// conversions agree.
func (p *FootprintParser) footprintUUID(doc *Document, head FootprintHead) uuid.UUID {
	if head.UUID != "" {
		if id, err := uuid.Parse(head.UUID); err == nil {
			return id
		}
		p.log.Warn("unparseable footprint uuid, deriving one", "uuid", head.UUID)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("webparts:lcsc:"+doc.LCSCID+":footprint"))
}

func footprintName(doc *Document, head FootprintHead) string {
	if n := head.CPara["package"]; n != "" {
		return n
	}
	if doc.PackageDetail.Title != "" {
		return doc.PackageDetail.Title
	}
	return "UnknownFootprint"
}

// applyMetadata fills author/version/custom attributes from the document
// header, merged with the symbol header's attribute run when one exists.
func (p *FootprintParser) applyMetadata(fp *cdm.Footprint, doc *Document, head FootprintHead) {
	merged := make(map[string]string, len(head.CPara))
	for k, v := range head.CPara {
		merged[k] = v
	}
	for k, v := range symbolHeadAttributes(doc.DataStr) {
		merged[k] = v
	}

	fp.Author = merged["Contributor"]
	if head.UTime > 0 {
		fp.CreatedAt = time.Unix(head.UTime, 0).UTC()
	}
	if doc.LCSCID != "" {
		fp.GeneratedBy = "webparts:lcsc:" + doc.LCSCID
	} else {
		fp.GeneratedBy = "EasyEDA Editor " + head.EditorVersion
	}

	attrs := make(map[string]string)
	if v, ok := merged["Manufacturer"]; ok {
		attrs["Manufacturer"] = v
	}
	if v, ok := merged["Manufacturer Part"]; ok {
		attrs["Manufacturer Part"] = v
	}
	if v, ok := merged["link"]; ok {
		attrs["Datasheet Link"] = v
	}
	if v, ok := merged["Supplier Part"]; ok {
		attrs["LCSC Part"] = v
	}
	if len(attrs) > 0 {
		fp.CustomAttributes = attrs
	}
}

// symbolHeadAttributes extracts the c_para attribute map from a symbol
// header, which is either an object with a c_para field or a
// tilde-delimited string whose attribute run starts after the origin
// fields.
func symbolHeadAttributes(data *SymbolData) map[string]string {
	if data == nil || len(data.Head) == 0 {
		return nil
	}
	var asString string
	if err := json.Unmarshal(data.Head, &asString); err == nil {
		// "docType~version~originX~originY~<attribute run>"
		parts := strings.SplitN(asString, "~", 5)
		if len(parts) == 5 {
			return parseAttributeRun(parts[4])
		}
		return nil
	}
	var asObject struct {
		CPara map[string]string `json:"c_para"`
	}
	if err := json.Unmarshal(data.Head, &asObject); err == nil {
		return asObject.CPara
	}
	return nil
}
