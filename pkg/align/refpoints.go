package align

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/librepcb"
)

// padCorners returns the four corners of a pad's bounding box in
// millimeters. Rotation is ignored: the corners only serve as alignment
// references, and the score below rejects degenerate pairs anyway.
func padCorners(p cdm.Pad) [4]cdm.Point {
	halfW := p.Width / 2
	halfH := p.Height / 2
	if p.Shape == cdm.PadShapeCircle {
		halfH = halfW
	}
	return [4]cdm.Point{
		{X: p.Position.X - halfW, Y: p.Position.Y - halfH},
		{X: p.Position.X + halfW, Y: p.Position.Y - halfH},
		{X: p.Position.X - halfW, Y: p.Position.Y + halfH},
		{X: p.Position.X + halfW, Y: p.Position.Y + halfH},
	}
}

// SelectReferenceCorners picks the two pad corners used as alignment
// references. Candidates pair corners of different pads; the score
// distance * (1 + min(|dx|,|dy|) / max(|dx|,|dy|)) prefers pairs that
// are far apart in both axes over near-colinear ones.
func SelectReferenceCorners(pads []cdm.Pad) (cdm.Point, cdm.Point, error) {
	if len(pads) < 2 {
		return cdm.Point{}, cdm.Point{}, fmt.Errorf("need at least 2 pads for alignment, got %d", len(pads))
	}

	var best1, best2 cdm.Point
	bestScore := -1.0
	for i := 0; i < len(pads); i++ {
		for j := i + 1; j < len(pads); j++ {
			ci := padCorners(pads[i])
			cj := padCorners(pads[j])
			for _, a := range ci {
				for _, b := range cj {
					dx := math.Abs(b.X - a.X)
					dy := math.Abs(b.Y - a.Y)
					dist := math.Hypot(dx, dy)
					if dist == 0 {
						continue
					}
					balance := 0.0
					if max := math.Max(dx, dy); max > 0 {
						balance = math.Min(dx, dy) / max
					}
					score := dist * (1 + balance)
					if score > bestScore {
						bestScore = score
						best1, best2 = a, b
					}
				}
			}
		}
	}
	if bestScore < 0 {
		// All corners coincide; fall back to the first two pads'
		// top-left/bottom-right corners.
		best1 = padCorners(pads[0])[0]
		best2 = padCorners(pads[1])[3]
		if best1 == best2 {
			return cdm.Point{}, cdm.Point{}, fmt.Errorf("pads yield no usable reference points")
		}
	}
	return best1, best2, nil
}

// BuildReferences computes the background-image alignment references for
// a footprint rendered into a raster of the given pixel size. Source
// coordinates are raster pixels, targets are board millimeters with Y
// negated for the target's up-positive convention.
func BuildReferences(fp *cdm.Footprint, viewBox ViewBox, pixelWidth, pixelHeight int) ([]librepcb.AlignmentReference, error) {
	mapper, err := NewMapper(fp.SourceOffset, viewBox, pixelWidth, pixelHeight)
	if err != nil {
		return nil, err
	}
	p1, p2, err := SelectReferenceCorners(fp.Pads)
	if err != nil {
		return nil, err
	}

	refs := make([]librepcb.AlignmentReference, 0, 2)
	for _, p := range []cdm.Point{p1, p2} {
		srcX, srcY := mapper(p.X, p.Y)
		refs = append(refs, librepcb.AlignmentReference{
			SourceX: srcX,
			SourceY: srcY,
			TargetX: p.X,
			TargetY: -p.Y,
		})
	}
	return refs, nil
}
