package easyeda

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

func TestParseLayerTable(t *testing.T) {
	defs := []string{
		"1~TopLayer~#FF0000~true~true~true~",
		"2~BottomLayer~#0000FF~true~true~true~",
		"3~TopSilkLayer~#FFCC00~true~true~true~",
		"5~TopPasteMaskLayer~#808080~true~true~true~0.3",
		"7~TopPasterLayer~#800080~true~true~true~0.4",
		"11~Multi-Layer~#C0C0C0~true~true~true~",
		"13~ComponentShapeLayer~#FF00FF~true~true~true~",
		"21~Inner1~#800000~true~true~true~",
		"22~Inner2~#008000~true~true~true~",
		"30~Mechanical1~#F0F0F0~true~true~true~",
		"99~TotallyNovelLayer~#123456~true~true~true~",
	}
	var buf bytes.Buffer
	table := parseLayerTable(defs, slog.New(slog.NewTextHandler(&buf, nil)))

	tests := []struct {
		id   string
		want cdm.LayerRef
	}{
		{"1", cdm.LayerRef{Kind: cdm.LayerTopCopper}},
		{"2", cdm.LayerRef{Kind: cdm.LayerBottomCopper}},
		{"3", cdm.LayerRef{Kind: cdm.LayerTopSilkscreen}},
		{"5", cdm.LayerRef{Kind: cdm.LayerTopSolderMask}},
		{"7", cdm.LayerRef{Kind: cdm.LayerTopPasteMask}},
		{"11", cdm.LayerRef{Kind: cdm.LayerMultiLayer}},
		{"13", cdm.LayerRef{Kind: cdm.LayerFabricationTop}},
		{"21", cdm.LayerRef{Kind: cdm.LayerInnerCopper, Index: 1}},
		{"22", cdm.LayerRef{Kind: cdm.LayerInnerCopper, Index: 2}},
		{"30", cdm.LayerRef{Kind: cdm.LayerMechanical, Index: 1}},
		{"99", cdm.LayerRef{Kind: cdm.LayerDocumentation}},
	}
	for _, tt := range tests {
		got, ok := table.resolve(tt.id)
		if !ok {
			t.Errorf("layer %s not resolved", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("layer %s = %v, want %v", tt.id, got, tt.want)
		}
	}

	if _, ok := table.resolve("42"); ok {
		t.Error("undefined layer id resolved")
	}
	if !bytes.Contains(buf.Bytes(), []byte("unknown layer name")) {
		t.Error("expected a warning for the unknown layer name")
	}

	// The vendor's "paste mask" layer carries the stop-mask expansion and
	// the "paster" layer the paste expansion.
	if table.solderMask == nil || *table.solderMask != 0.3*UnitScale {
		t.Errorf("solder mask expansion = %v, want %v", table.solderMask, 0.3*UnitScale)
	}
	if table.pasteMask == nil || *table.pasteMask != 0.4*UnitScale {
		t.Errorf("paste mask expansion = %v, want %v", table.pasteMask, 0.4*UnitScale)
	}
}
