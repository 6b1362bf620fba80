package librepcb

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

// graphicRole names the derivation role for the i-th graphic element, so
// generated sub-element identities stay stable across runs.
func graphicRole(i int) string {
	return fmt.Sprintf("graphic-%d", i)
}

// closeLoop returns the vertex list with the first point appended when the
// loop is not already closed.
func closeLoop(pts []cdm.Point) []cdm.Point {
	if len(pts) < 2 || pts[0] == pts[len(pts)-1] {
		return pts
	}
	out := make([]cdm.Point, len(pts)+1)
	copy(out, pts)
	out[len(pts)] = pts[0]
	return out
}

// rectVertices expands a center-positioned rectangle into a closed corner
// loop, honoring its rotation.
func rectVertices(r cdm.Rectangle) []cdm.Point {
	hw, hh := r.Width/2, r.Height/2
	corners := []cdm.Point{
		{X: -hw, Y: hh},
		{X: hw, Y: hh},
		{X: hw, Y: -hh},
		{X: -hw, Y: -hh},
	}
	rad := r.Rotation * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	out := make([]cdm.Point, 0, 5)
	for _, c := range corners {
		out = append(out, cdm.Point{
			X: r.Position.X + c.X*cos - c.Y*sin,
			Y: r.Position.Y + c.X*sin + c.Y*cos,
		})
	}
	return append(out, out[0])
}
