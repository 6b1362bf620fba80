package easyeda

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

func TestParsePathPoints(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []cdm.Point
	}{
		{
			name: "absolute moves and lines",
			path: "M 10 20 L 30 20 L 30 40",
			want: []cdm.Point{{X: 10, Y: 20}, {X: 30, Y: 20}, {X: 30, Y: 40}},
		},
		{
			name: "relative horizontal and vertical",
			path: "M 0 0 h 10 v 5 h -4",
			want: []cdm.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 5}, {X: 6, Y: 5}},
		},
		{
			name: "close repeats first vertex",
			path: "M 1 1 L 5 1 L 5 5 Z",
			want: []cdm.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 5}, {X: 1, Y: 1}},
		},
		{
			name: "implicit lineto after moveto",
			path: "M 0 0 4 0 4 4",
			want: []cdm.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}},
		},
		{
			name: "arc contributes its endpoint",
			path: "M 0 0 A 5 5 0 0 1 10 0",
			want: []cdm.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.path)
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.path, err)
			}
			got, err := p.Points()
			if err != nil {
				t.Fatalf("Points: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d points, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParsePathRejectsUnknownCommand(t *testing.T) {
	p, err := ParsePath("M 0 0 Q 1 1 2 2")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if _, err := p.Points(); err == nil {
		t.Fatal("expected error for unsupported command Q")
	}
}

func TestPathArc(t *testing.T) {
	p, err := ParsePath("M 4000 3000 A 50 50 0 1 0 4100 3000")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	arc, err := p.Arc()
	if err != nil {
		t.Fatalf("Arc: %v", err)
	}
	if arc.Start != (cdm.Point{X: 4000, Y: 3000}) {
		t.Errorf("start = %v", arc.Start)
	}
	if arc.End != (cdm.Point{X: 4100, Y: 3000}) {
		t.Errorf("end = %v", arc.End)
	}
	if arc.RadiusX != 50 || !arc.LargeArc || arc.Sweep {
		t.Errorf("arc flags = %+v", arc)
	}
}

func TestPathArcRequiresACommand(t *testing.T) {
	p, err := ParsePath("M 0 0 L 10 10")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	if _, err := p.Arc(); err == nil {
		t.Fatal("expected error for path without an arc")
	}
}

func TestSolveArc(t *testing.T) {
	const eps = 1e-9
	tests := []struct {
		name       string
		start, end cdm.Point
		radius     float64
		largeArc   bool
		sweep      bool
		wantCenter cdm.Point
		wantSweep  float64
	}{
		{
			name:  "half circle sweeping",
			start: cdm.Point{X: 0, Y: 0}, end: cdm.Point{X: 2, Y: 0},
			radius: 1, sweep: true,
			wantCenter: cdm.Point{X: 1, Y: 0}, wantSweep: 180,
		},
		{
			name:  "half circle counter-sweeping",
			start: cdm.Point{X: 0, Y: 0}, end: cdm.Point{X: 2, Y: 0},
			radius: 1,
			wantCenter: cdm.Point{X: 1, Y: 0}, wantSweep: -180,
		},
		{
			name:  "quarter circle",
			start: cdm.Point{X: 1, Y: 0}, end: cdm.Point{X: 0, Y: 1},
			radius: 1, sweep: true,
			wantCenter: cdm.Point{X: 0, Y: 0}, wantSweep: 90,
		},
		{
			name:  "large arc complement",
			start: cdm.Point{X: 1, Y: 0}, end: cdm.Point{X: 0, Y: 1},
			radius: 1, largeArc: true,
			wantCenter: cdm.Point{X: 0, Y: 0}, wantSweep: -270,
		},
		{
			name:  "degenerate chord falls back to half circle",
			start: cdm.Point{X: 0, Y: 0}, end: cdm.Point{X: 10, Y: 0},
			radius: 1, sweep: true,
			wantCenter: cdm.Point{X: 5, Y: 0}, wantSweep: 180,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			center, sweep := solveArc(tt.start, tt.end, tt.radius, tt.largeArc, tt.sweep)
			if math.Abs(center.X-tt.wantCenter.X) > eps || math.Abs(center.Y-tt.wantCenter.Y) > eps {
				t.Errorf("center = %v, want %v", center, tt.wantCenter)
			}
			if math.Abs(sweep-tt.wantSweep) > eps {
				t.Errorf("sweep = %v, want %v", sweep, tt.wantSweep)
			}
		})
	}
}
