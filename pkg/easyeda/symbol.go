package easyeda

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

// GridUnit is the schematic grid pitch in millimeters. Symbol coordinates
// snap to whole grid units during parsing.
const GridUnit = 2.54

// symbolUnitScale converts raw symbol coordinates to grid units.
const symbolUnitScale = 0.1

// Label placement thresholds in millimeters: bodies wider and taller than
// this get name/value labels inside the outline, smaller ones outside.
const (
	labelInsideMinWidth  = 4 * GridUnit
	labelInsideMinHeight = 6 * GridUnit
)

// PinRecord pairs a pin with its name and number in original parse order.
// Downstream pad/pin matching needs the full pre-deduplication list even
// though the emitted symbol consolidates pins sharing a name.
type PinRecord struct {
	Name   string
	Number string
	Pin    cdm.Pin
}

// SymbolParser converts the symbol section of an EasyEDA document into a
// canonical Symbol.
type SymbolParser struct {
	log *slog.Logger
}

func NewSymbolParser(log *slog.Logger) *SymbolParser {
	if log == nil {
		log = slog.Default()
	}
	return &SymbolParser{log: log}
}

var electricalTypes = map[int]cdm.ElectricalType{
	0: cdm.ElectricalUndefined,
	1: cdm.ElectricalInput,
	2: cdm.ElectricalOutput,
	3: cdm.ElectricalIO,
	4: cdm.ElectricalPower,
}

var pinDirections = map[int]cdm.PinDirection{
	0:   cdm.PinRight,
	90:  cdm.PinDown,
	180: cdm.PinLeft,
	270: cdm.PinUp,
}

// symbolHead is the decoded symbol document header.
type symbolHead struct {
	OriginX float64
	OriginY float64
	UUID    string
	Attrs   map[string]string
}

func decodeSymbolHead(raw json.RawMessage) (symbolHead, error) {
	var h symbolHead
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		// "docType~version~originX~originY~<attribute run>"
		parts := strings.SplitN(asString, "~", 5)
		if len(parts) < 4 {
			return h, fmt.Errorf("symbol head %q has too few fields", asString)
		}
		h.OriginX, _ = strconv.ParseFloat(parts[2], 64)
		h.OriginY, _ = strconv.ParseFloat(parts[3], 64)
		if len(parts) == 5 {
			h.Attrs = parseAttributeRun(parts[4])
		}
		return h, nil
	}
	var asObject struct {
		X     float64           `json:"x"`
		Y     float64           `json:"y"`
		UUID  string            `json:"uuid"`
		CPara map[string]string `json:"c_para"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return h, fmt.Errorf("decoding symbol head: %w", err)
	}
	h.OriginX = asObject.X
	h.OriginY = asObject.Y
	h.UUID = asObject.UUID
	h.Attrs = asObject.CPara
	return h, nil
}

// symbolContext carries the per-document offset, in grid units.
type symbolContext struct {
	offsetX float64
	offsetY float64
	uuid    uuid.UUID
	log     *slog.Logger
}

// grid converts a raw vendor coordinate into millimeters, floor-snapped to
// the schematic grid.
func (c *symbolContext) grid(v, offset float64) float64 {
	return math.Floor(v*symbolUnitScale-offset) * GridUnit
}

// free converts a raw vendor coordinate into millimeters without snapping,
// for label anchors that sit between grid lines.
func (c *symbolContext) free(v, offset float64) float64 {
	return (v*symbolUnitScale - offset) * GridUnit
}

func (c *symbolContext) gridPoint(xs, ys string) (cdm.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return cdm.Point{}, fmt.Errorf("bad x coordinate %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return cdm.Point{}, fmt.Errorf("bad y coordinate %q: %w", ys, err)
	}
	return cdm.Point{X: c.grid(x, c.offsetX), Y: c.grid(y, c.offsetY)}, nil
}

// Parse converts doc's symbol section. It returns the symbol plus the raw
// pin records in parse order, or (nil, nil, nil) when the document has no
// symbol section.
func (p *SymbolParser) Parse(doc *Document) (*cdm.Symbol, []PinRecord, error) {
	if doc.DataStr == nil || len(doc.DataStr.Shape) == 0 {
		return nil, nil, nil
	}
	head, err := decodeSymbolHead(doc.DataStr.Head)
	if err != nil {
		return nil, nil, err
	}

	sym := &cdm.Symbol{
		UUID:        p.symbolUUID(doc, head),
		Name:        symbolName(doc, head),
		Description: doc.Description,
		Keywords:    doc.Tags,
		Prefix:      head.Attrs["pre"],
		PackageName: head.Attrs["package"],
		Origin:      cdm.Point{X: head.OriginX, Y: head.OriginY},
	}
	if sym.Prefix == "" {
		sym.Prefix = "U?"
	}
	if model, ok := head.Attrs["Model"]; ok {
		sym.DefaultValue = model
	} else {
		sym.DefaultValue = head.Attrs["nameAlias"]
	}
	if len(head.Attrs) > 0 {
		sym.CustomAttributes = head.Attrs
	}
	if doc.LCSCID != "" {
		sym.GeneratedBy = "webparts:lcsc:" + doc.LCSCID
	}

	ctx := &symbolContext{
		offsetX: head.OriginX * symbolUnitScale,
		offsetY: head.OriginY * symbolUnitScale,
		uuid:    sym.UUID,
		log:     p.log,
	}

	var records []PinRecord
	for _, shape := range doc.DataStr.Shape {
		tag, _, _ := strings.Cut(shape, "~")
		switch tag {
		case "P":
			pin, err := parsePin(ctx, shape)
			if err != nil {
				p.log.Warn("skipping malformed pin", "error", err)
				continue
			}
			sym.Pins = append(sym.Pins, pin)
			records = append(records, PinRecord{Name: pin.Name, Number: pin.Number, Pin: pin})
		case "L", "R", "C", "E", "T", "PL", "PG":
			el, err := parseSymbolGraphic(ctx, tag, strings.Split(shape, "~"))
			if err != nil {
				p.log.Warn("skipping malformed symbol shape", "tag", tag, "error", err)
				continue
			}
			sym.Graphics = append(sym.Graphics, el)
		default:
			return nil, nil, fmt.Errorf("unrecognized symbol shape tag %q", tag)
		}
	}

	applyBounds(sym)
	sym.Labels = placeLabels(sym)
	return sym, records, nil
}

// parsePin decodes a pin record: seven double-caret segments holding the
// configuration run, the connection dot, the lead path, name, number and
// the dot/clock decorations.
func parsePin(ctx *symbolContext, raw string) (cdm.Pin, error) {
	segments := strings.Split(raw, "^^")
	if len(segments) < 7 {
		return cdm.Pin{}, fmt.Errorf("pin record has %d segments, need 7", len(segments))
	}
	config := strings.Split(segments[0], "~")
	if len(config) < 8 {
		return cdm.Pin{}, fmt.Errorf("pin configuration has %d fields, need 8", len(config))
	}

	pos, err := ctx.gridPoint(config[4], config[5])
	if err != nil {
		return cdm.Pin{}, err
	}

	electrical := cdm.ElectricalUndefined
	if config[2] != "" {
		n, err := strconv.Atoi(config[2])
		if err != nil {
			return cdm.Pin{}, fmt.Errorf("bad electrical type %q: %w", config[2], err)
		}
		if et, ok := electricalTypes[n]; ok {
			electrical = et
		}
	}

	rotation := 0
	if config[6] != "" {
		if rotation, err = strconv.Atoi(config[6]); err != nil {
			return cdm.Pin{}, fmt.Errorf("bad pin rotation %q: %w", config[6], err)
		}
	}
	direction, ok := pinDirections[((rotation%360)+360)%360]
	if !ok {
		direction = cdm.PinRight
	}

	name := strings.Split(segments[3], "~")
	number := strings.Split(segments[4], "~")

	pin := cdm.Pin{
		Position:       pos,
		Direction:      direction,
		Length:         pinLength(segments[2]),
		ElectricalType: electrical,
		NameVisible:    name[0] == "1",
		NumberVisible:  number[0] == "1",
		SpiceNumber:    config[3],
	}
	pin.Name = fieldOr(name, 4, "PIN_"+config[3])
	pin.Number = fieldOr(number, 4, config[3])
	if p, err := labelAnchor(ctx, name); err == nil {
		pin.NamePosition = p
	}
	if p, err := labelAnchor(ctx, number); err == nil {
		pin.NumberPosition = p
	}
	if len(segments) > 5 {
		pin.Inverted = strings.Split(segments[5], "~")[0] == "1"
	}
	if len(segments) > 6 {
		pin.Clock = strings.Split(segments[6], "~")[0] == "1"
	}

	pinID := config[7]
	if pinID == "" {
		pinID = pin.Number
	}
	pin.UUID = uuid.NewSHA1(ctx.uuid, []byte("pin:"+pinID))
	return pin, nil
}

// pinLength reads the lead length from the trailing numeric of the pin's
// path segment, e.g. "M 670 30 h -20" is 2 grid units long.
func pinLength(pathSegment string) float64 {
	pathStr, _, _ := strings.Cut(pathSegment, "~")
	path, err := ParsePath(pathStr)
	if err != nil || len(path.Segments) == 0 {
		return GridUnit
	}
	last := path.Segments[len(path.Segments)-1]
	if len(last.Args) == 0 {
		return GridUnit
	}
	return math.Abs(last.Args[len(last.Args)-1]) * symbolUnitScale * GridUnit
}

func fieldOr(parts []string, i int, fallback string) string {
	if len(parts) > i && parts[i] != "" {
		return parts[i]
	}
	return fallback
}

// labelAnchor reads the unsnapped x/y of a pin name/number segment.
func labelAnchor(ctx *symbolContext, parts []string) (*cdm.Point, error) {
	if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
		return nil, fmt.Errorf("no label anchor")
	}
	x, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, err
	}
	y, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, err
	}
	return &cdm.Point{X: ctx.free(x, ctx.offsetX), Y: ctx.free(y, ctx.offsetY)}, nil
}

// parseSymbolGraphic dispatches the non-pin shape tags. All symbol drawing
// lands on the documentation layer; the symbol assembler decides the final
// target layers.
func parseSymbolGraphic(ctx *symbolContext, tag string, parts []string) (cdm.GraphicElement, error) {
	doc := cdm.MustLayerRef(cdm.LayerDocumentation)
	switch tag {
	case "L":
		// L~x1~y1~x2~y2~strokeColor~strokeWidth~...
		if len(parts) < 7 {
			return nil, fmt.Errorf("L needs at least 7 fields, got %d", len(parts))
		}
		start, err := ctx.gridPoint(parts[1], parts[2])
		if err != nil {
			return nil, err
		}
		end, err := ctx.gridPoint(parts[3], parts[4])
		if err != nil {
			return nil, err
		}
		return cdm.Line{Layer: doc, Start: start, End: end, Width: floatOr(parts, 6)}, nil

	case "R":
		// R~x~y~rx~ry~width~height~strokeColor~strokeWidth~strokeStyle~fillColor~...
		if len(parts) < 11 {
			return nil, fmt.Errorf("R needs at least 11 fields, got %d", len(parts))
		}
		corner, err := ctx.gridPoint(parts[1], parts[2])
		if err != nil {
			return nil, err
		}
		w, err := strconv.ParseFloat(parts[5], 64)
		if err != nil {
			return nil, fmt.Errorf("bad rectangle width %q: %w", parts[5], err)
		}
		h, err := strconv.ParseFloat(parts[6], 64)
		if err != nil {
			return nil, fmt.Errorf("bad rectangle height %q: %w", parts[6], err)
		}
		wmm := math.Floor(w*symbolUnitScale) * GridUnit
		hmm := math.Floor(h*symbolUnitScale) * GridUnit
		return cdm.Rectangle{
			Layer:       doc,
			Position:    cdm.Point{X: corner.X + wmm/2, Y: corner.Y + hmm/2},
			Width:       wmm,
			Height:      hmm,
			StrokeWidth: floatOr(parts, 8),
			Filled:      parts[10] != "none" && parts[10] != "",
		}, nil

	case "C":
		// C~cx~cy~r~strokeColor~strokeWidth~strokeStyle~fillColor~...
		if len(parts) < 8 {
			return nil, fmt.Errorf("C needs at least 8 fields, got %d", len(parts))
		}
		center, err := ctx.gridPoint(parts[1], parts[2])
		if err != nil {
			return nil, err
		}
		r, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad circle radius %q: %w", parts[3], err)
		}
		return cdm.Circle{
			Layer:       doc,
			Center:      center,
			Radius:      r * symbolUnitScale * GridUnit,
			StrokeWidth: floatOr(parts, 5),
			Filled:      parts[7] != "none" && parts[7] != "",
		}, nil

	case "E":
		// E~cx~cy~rx~ry~strokeColor~strokeWidth~strokeStyle~fillColor~...
		if len(parts) < 9 {
			return nil, fmt.Errorf("E needs at least 9 fields, got %d", len(parts))
		}
		center, err := ctx.gridPoint(parts[1], parts[2])
		if err != nil {
			return nil, err
		}
		rx, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad ellipse x radius %q: %w", parts[3], err)
		}
		ry, err := strconv.ParseFloat(parts[4], 64)
		if err != nil {
			return nil, fmt.Errorf("bad ellipse y radius %q: %w", parts[4], err)
		}
		return cdm.Ellipse{
			Layer:       doc,
			Center:      center,
			RadiusX:     rx * symbolUnitScale * GridUnit,
			RadiusY:     ry * symbolUnitScale * GridUnit,
			StrokeWidth: floatOr(parts, 6),
			Filled:      len(parts) > 8 && parts[8] != "none" && parts[8] != "",
		}, nil

	case "T":
		// T~mark~x~y~rotation~color~fontFamily~fontSize~fontWeight~fontStyle~baseline~textType~string~visible~...
		if len(parts) < 13 {
			return nil, fmt.Errorf("T needs at least 13 fields, got %d", len(parts))
		}
		x, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil, fmt.Errorf("bad text x %q: %w", parts[2], err)
		}
		y, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return nil, fmt.Errorf("bad text y %q: %w", parts[3], err)
		}
		fontSize := 12.0
		if parts[7] != "" {
			if fontSize, err = strconv.ParseFloat(strings.TrimSuffix(parts[7], "pt"), 64); err != nil {
				return nil, fmt.Errorf("bad font size %q: %w", parts[7], err)
			}
		}
		textType := ""
		switch parts[1] {
		case "N":
			textType = "name"
		case "P":
			textType = "prefix"
		}
		return cdm.Text{
			Layer:      doc,
			Value:      parts[12],
			TextType:   textType,
			Position:   cdm.Point{X: ctx.free(x, ctx.offsetX), Y: ctx.free(y, ctx.offsetY)},
			FontHeight: fontSize * 0.353, // pt to mm
			Rotation:   floatOr(parts, 4),
			Visible:    len(parts) <= 13 || parts[13] == "1",
		}, nil

	case "PL", "PG":
		// PL~points~strokeColor~strokeWidth~... (PG closes the loop)
		if len(parts) < 4 {
			return nil, fmt.Errorf("%s needs at least 4 fields, got %d", tag, len(parts))
		}
		fields := strings.Fields(parts[1])
		if len(fields) < 4 || len(fields)%2 != 0 {
			return nil, fmt.Errorf("%s points %q is not an even coordinate list", tag, parts[1])
		}
		pts := make([]cdm.Point, 0, len(fields)/2)
		for i := 0; i < len(fields); i += 2 {
			pt, err := ctx.gridPoint(fields[i], fields[i+1])
			if err != nil {
				return nil, err
			}
			pts = append(pts, pt)
		}
		if tag == "PG" && pts[0] != pts[len(pts)-1] {
			pts = append(pts, pts[0])
		}
		return cdm.Polygon{Layer: doc, Vertices: pts, StrokeWidth: floatOr(parts, 3)}, nil
	}
	return nil, fmt.Errorf("unrecognized symbol shape tag %q", tag)
}

func floatOr(parts []string, i int) float64 {
	if len(parts) <= i || parts[i] == "" {
		return 0
	}
	v, err := strconv.ParseFloat(parts[i], 64)
	if err != nil {
		return 0
	}
	return v
}

// applyBounds computes the symbol extent from pins and body graphics.
func applyBounds(sym *cdm.Symbol) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	for _, pin := range sym.Pins {
		extend(pin.Position.X, pin.Position.Y)
	}
	for _, g := range sym.Graphics {
		switch el := g.(type) {
		case cdm.Rectangle:
			extend(el.Position.X-el.Width/2, el.Position.Y-el.Height/2)
			extend(el.Position.X+el.Width/2, el.Position.Y+el.Height/2)
		case cdm.Polygon:
			for _, pt := range el.Vertices {
				extend(pt.X, pt.Y)
			}
		case cdm.Circle:
			extend(el.Center.X-el.Radius, el.Center.Y-el.Radius)
			extend(el.Center.X+el.Radius, el.Center.Y+el.Radius)
		case cdm.Line:
			extend(el.Start.X, el.Start.Y)
			extend(el.End.X, el.End.Y)
		}
	}
	if !math.IsInf(minX, 1) {
		sym.Width = maxX - minX
		sym.Height = maxY - minY
	}
}

// placeLabels decides where the {{NAME}}/{{VALUE}} labels go. Bodies large
// enough get them inside the outline at one and two thirds of the height;
// smaller bodies get them stacked outside the top-left corner.
func placeLabels(sym *cdm.Symbol) cdm.LabelPlacement {
	bounds := bodyBounds(sym)
	minX, minY := bounds[0], bounds[1]
	maxX, maxY := bounds[2], bounds[3]
	w := maxX - minX
	h := maxY - minY

	if w > labelInsideMinWidth && h > labelInsideMinHeight {
		cx := minX + w/2
		return cdm.LabelPlacement{
			Inside:          true,
			NamePosition:    cdm.Point{X: cx, Y: minY + h/3},
			ValuePosition:   cdm.Point{X: cx, Y: minY + 2*h/3},
			HorizontalAlign: cdm.AlignCenter,
			NameVAlign:      cdm.AlignMiddle,
			ValueVAlign:     cdm.AlignMiddle,
		}
	}
	return cdm.LabelPlacement{
		NamePosition:    cdm.Point{X: minX, Y: minY - GridUnit},
		ValuePosition:   cdm.Point{X: minX, Y: maxY + GridUnit},
		HorizontalAlign: cdm.AlignLeft,
		NameVAlign:      cdm.AlignBottom,
		ValueVAlign:     cdm.AlignTop,
	}
}

// bodyBounds prefers the drawn body over the pin extent so labels hug the
// outline, not the pin tips.
func bodyBounds(sym *cdm.Symbol) [4]float64 {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, g := range sym.Graphics {
		switch el := g.(type) {
		case cdm.Rectangle:
			minX = math.Min(minX, el.Position.X-el.Width/2)
			maxX = math.Max(maxX, el.Position.X+el.Width/2)
			minY = math.Min(minY, el.Position.Y-el.Height/2)
			maxY = math.Max(maxY, el.Position.Y+el.Height/2)
		case cdm.Polygon:
			for _, pt := range el.Vertices {
				minX = math.Min(minX, pt.X)
				maxX = math.Max(maxX, pt.X)
				minY = math.Min(minY, pt.Y)
				maxY = math.Max(maxY, pt.Y)
			}
		}
	}
	if math.IsInf(minX, 1) {
		for _, pin := range sym.Pins {
			minX = math.Min(minX, pin.Position.X)
			maxX = math.Max(maxX, pin.Position.X)
			minY = math.Min(minY, pin.Position.Y)
			maxY = math.Max(maxY, pin.Position.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return [4]float64{0, 0, 0, 0}
	}
	return [4]float64{minX, minY, maxX, maxY}
}

func (p *SymbolParser) symbolUUID(doc *Document, head symbolHead) uuid.UUID {
	if head.UUID != "" {
		if id, err := uuid.Parse(head.UUID); err == nil {
			return id
		}
		p.log.Warn("unparseable symbol uuid, deriving one", "uuid", head.UUID)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("webparts:lcsc:"+doc.LCSCID+":symbol"))
}

func symbolName(doc *Document, head symbolHead) string {
	if n := head.Attrs["name"]; n != "" {
		return n
	}
	if doc.Title != "" {
		return doc.Title
	}
	return "Unknown Symbol"
}
