package cdm

import "testing"

func TestNewPadInvariants(t *testing.T) {
	tests := []struct {
		name    string
		pad     Pad
		wantErr bool
		check   func(t *testing.T, p Pad)
	}{
		{
			name: "smd rectangle",
			pad: Pad{
				Number: "1",
				Shape:  PadShapeRectangle,
				Width:  1.2,
				Height: 0.8,
				Layer:  MustLayerRef(LayerTopCopper),
			},
			check: func(t *testing.T, p Pad) {
				if p.Type != PadTypeSMD {
					t.Errorf("Type = %s, want smd default", p.Type)
				}
			},
		},
		{
			name: "rectangle without height",
			pad: Pad{
				Number: "2",
				Shape:  PadShapeRectangle,
				Width:  1.2,
				Layer:  MustLayerRef(LayerTopCopper),
			},
			wantErr: true,
		},
		{
			name: "circle without height",
			pad: Pad{
				Number: "3",
				Shape:  PadShapeCircle,
				Width:  1.0,
				Layer:  MustLayerRef(LayerTopCopper),
			},
		},
		{
			name: "polygon without vertices",
			pad: Pad{
				Number: "4",
				Shape:  PadShapePolygon,
				Width:  1.0,
				Height: 1.0,
				Layer:  MustLayerRef(LayerTopCopper),
			},
			wantErr: true,
		},
		{
			name: "roundrect defaults corner ratio",
			pad: Pad{
				Number: "5",
				Shape:  PadShapeRoundRect,
				Width:  1.0,
				Height: 0.5,
				Layer:  MustLayerRef(LayerTopCopper),
			},
			check: func(t *testing.T, p Pad) {
				if p.CornerRadiusRatio != DefaultCornerRadiusRatio {
					t.Errorf("CornerRadiusRatio = %v, want %v", p.CornerRadiusRatio, DefaultCornerRadiusRatio)
				}
			},
		},
		{
			name: "through-hole without drill diameter",
			pad: Pad{
				Number: "6",
				Type:   PadTypeThroughHole,
				Shape:  PadShapeCircle,
				Width:  1.6,
				Layer:  MustLayerRef(LayerMultiLayer),
			},
			wantErr: true,
		},
		{
			name: "through-hole defaults round drill",
			pad: Pad{
				Number:        "7",
				Type:          PadTypeThroughHole,
				Shape:         PadShapeCircle,
				Width:         1.6,
				DrillDiameter: 0.8,
				Layer:         MustLayerRef(LayerMultiLayer),
			},
			check: func(t *testing.T, p Pad) {
				if p.DrillShape != DrillRound {
					t.Errorf("DrillShape = %s, want round default", p.DrillShape)
				}
			},
		},
		{
			name: "oblong drill without slot length",
			pad: Pad{
				Number:        "8",
				Type:          PadTypeThroughHole,
				Shape:         PadShapeOval,
				Width:         2.0,
				Height:        1.2,
				DrillShape:    DrillOblong,
				DrillDiameter: 0.6,
				Layer:         MustLayerRef(LayerMultiLayer),
			},
			wantErr: true,
		},
		{
			name: "smd with drill fields",
			pad: Pad{
				Number:        "9",
				Shape:         PadShapeRectangle,
				Width:         1.0,
				Height:        0.5,
				DrillDiameter: 0.3,
				Layer:         MustLayerRef(LayerTopCopper),
			},
			wantErr: true,
		},
		{
			name: "unknown shape",
			pad: Pad{
				Number: "10",
				Shape:  "hexagon",
				Width:  1.0,
				Layer:  MustLayerRef(LayerTopCopper),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPad(tt.pad)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewPad(%s) expected error, got nil", tt.pad.Number)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPad(%s) unexpected error: %v", tt.pad.Number, err)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestNewDrill(t *testing.T) {
	tests := []struct {
		name    string
		drill   Drill
		wantErr bool
	}{
		{
			name:  "round hole",
			drill: Drill{Diameter: 1.0, Layer: MustLayerRef(LayerMultiLayer)},
		},
		{
			name:    "zero diameter",
			drill:   Drill{Layer: MustLayerRef(LayerMultiLayer)},
			wantErr: true,
		},
		{
			name:    "oblong without slot",
			drill:   Drill{Shape: DrillOblong, Diameter: 0.8, Layer: MustLayerRef(LayerMultiLayer)},
			wantErr: true,
		},
		{
			name:    "round with slot",
			drill:   Drill{Diameter: 0.8, SlotLength: 1.5, Layer: MustLayerRef(LayerMultiLayer)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDrill(tt.drill)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDrill() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
