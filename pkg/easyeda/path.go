package easyeda

import (
	"fmt"
	"math"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

// EasyEDA region and arc geometry uses a small SVG-like path language:
// single-letter commands followed by numeric arguments, separated by
// whitespace or commas. Only the subset the editor actually emits is
// supported: M/m, L/l, H/h, V/v, Z/z and A/a.

var pathLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`},
	{Name: "Command", Pattern: `[A-Za-z]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type pathSegment struct {
	Command string    `parser:"@Command"`
	Args    []float64 `parser:"@Number*"`
}

// Path is a parsed path string, still in vendor units.
type Path struct {
	Segments []pathSegment `parser:"@@*"`
}

var pathParser = participle.MustBuild[Path](
	participle.Lexer(pathLexer),
	participle.Elide("Whitespace", "Comma"),
)

// ParsePath parses a path string.
func ParsePath(s string) (*Path, error) {
	p, err := pathParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", s, err)
	}
	return p, nil
}

// Points flattens the path into its vertices, still in vendor units.
// Arc segments contribute their endpoint only; callers that need the true
// arc use Arc instead. A Z command closes the loop by repeating the first
// vertex.
func (p *Path) Points() ([]cdm.Point, error) {
	var pts []cdm.Point
	var cur cdm.Point
	for _, seg := range p.Segments {
		rel := seg.Command >= "a" && seg.Command <= "z"
		switch seg.Command {
		case "M", "m", "L", "l":
			if len(seg.Args)%2 != 0 || len(seg.Args) == 0 {
				return nil, fmt.Errorf("path command %s needs coordinate pairs, got %d args",
					seg.Command, len(seg.Args))
			}
			for i := 0; i < len(seg.Args); i += 2 {
				next := cdm.Point{X: seg.Args[i], Y: seg.Args[i+1]}
				if rel {
					next.X += cur.X
					next.Y += cur.Y
				}
				cur = next
				pts = append(pts, cur)
			}
		case "H", "h":
			for _, v := range seg.Args {
				if rel {
					cur.X += v
				} else {
					cur.X = v
				}
				pts = append(pts, cur)
			}
		case "V", "v":
			for _, v := range seg.Args {
				if rel {
					cur.Y += v
				} else {
					cur.Y = v
				}
				pts = append(pts, cur)
			}
		case "A", "a":
			// Endpoint-only approximation for region outlines.
			if len(seg.Args)%7 != 0 || len(seg.Args) == 0 {
				return nil, fmt.Errorf("path command %s needs 7 args per arc, got %d",
					seg.Command, len(seg.Args))
			}
			for i := 0; i < len(seg.Args); i += 7 {
				next := cdm.Point{X: seg.Args[i+5], Y: seg.Args[i+6]}
				if rel {
					next.X += cur.X
					next.Y += cur.Y
				}
				cur = next
				pts = append(pts, cur)
			}
		case "Z", "z":
			if len(pts) > 0 {
				cur = pts[0]
				pts = append(pts, cur)
			}
		default:
			return nil, fmt.Errorf("unsupported path command %q", seg.Command)
		}
	}
	return pts, nil
}

// ArcSpec is a single elliptical-arc command with its start point resolved,
// in vendor units.
type ArcSpec struct {
	Start, End cdm.Point
	RadiusX    float64
	RadiusY    float64
	LargeArc   bool
	Sweep      bool
}

// Arc extracts the sole arc of a "M x y A ..." path, the form ARC
// primitives use.
func (p *Path) Arc() (ArcSpec, error) {
	var spec ArcSpec
	var cur cdm.Point
	haveStart := false
	for _, seg := range p.Segments {
		switch seg.Command {
		case "M":
			if len(seg.Args) < 2 {
				return spec, fmt.Errorf("arc path M needs a coordinate pair")
			}
			cur = cdm.Point{X: seg.Args[0], Y: seg.Args[1]}
			haveStart = true
		case "A", "a":
			if !haveStart {
				return spec, fmt.Errorf("arc path has no start point")
			}
			if len(seg.Args) < 7 {
				return spec, fmt.Errorf("arc command needs 7 args, got %d", len(seg.Args))
			}
			end := cdm.Point{X: seg.Args[5], Y: seg.Args[6]}
			if seg.Command == "a" {
				end.X += cur.X
				end.Y += cur.Y
			}
			return ArcSpec{
				Start:    cur,
				End:      end,
				RadiusX:  math.Abs(seg.Args[0]),
				RadiusY:  math.Abs(seg.Args[1]),
				LargeArc: seg.Args[3] != 0,
				Sweep:    seg.Args[4] != 0,
			}, nil
		default:
			return spec, fmt.Errorf("unexpected command %q in arc path", seg.Command)
		}
	}
	return spec, fmt.Errorf("arc path has no A command")
}

// solveArc converts an SVG-style endpoint arc into center form. Start and
// end are in canonical down-positive coordinates; the returned sweep is
// therefore positive when the sweep flag is set. When the chord is longer
// than the diameter or degenerate, the arc falls back to a half circle
// around the chord midpoint.
func solveArc(start, end cdm.Point, radius float64, largeArc, sweep bool) (center cdm.Point, sweepDeg float64) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	chord := math.Hypot(dx, dy)
	if chord == 0 || chord > 2*radius {
		center = cdm.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
		if sweep {
			return center, 180
		}
		return center, -180
	}

	mx := (start.X + end.X) / 2
	my := (start.Y + end.Y) / 2
	h := math.Sqrt(radius*radius - (chord/2)*(chord/2))
	px := -dy / chord
	py := dx / chord
	if largeArc == sweep {
		center = cdm.Point{X: mx - h*px, Y: my - h*py}
	} else {
		center = cdm.Point{X: mx + h*px, Y: my + h*py}
	}

	theta := 2 * math.Asin(chord/(2*radius))
	if largeArc {
		theta = 2*math.Pi - theta
	}
	sweepDeg = theta * 180 / math.Pi
	if !sweep {
		sweepDeg = -sweepDeg
	}
	return center, sweepDeg
}
