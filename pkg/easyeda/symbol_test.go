package easyeda

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

func symbolDoc(t *testing.T, head string, shapes ...string) *Document {
	t.Helper()
	raw, err := json.Marshal(head)
	if err != nil {
		t.Fatalf("marshal head: %v", err)
	}
	return &Document{
		LCSCID:      "C7950",
		Title:       "LM358",
		Description: "dual op-amp",
		Tags:        []string{"amplifier"},
		DataStr:     &SymbolData{Head: raw, Shape: shapes},
	}
}

const (
	pinIN   = "P~show~1~1~670~30~0~gge23^^670~30^^M 670 30 h -20~#880000^^1~648~33~0~IN~~11pt^^1~655~29~0~1~~11pt^^0~653~30^^0~M 650 27 L 647 30 L 650 33"
	pinGND  = "P~show~4~2~400~100~180~gge24^^400~100^^M 400 100 h 20~#880000^^1~422~103~0~GND~~11pt^^1~415~99~0~2~~11pt^^0~423~100^^0~M 420 97 L 417 100 L 420 103"
	pinGND2 = "P~show~4~3~400~200~180~gge25^^400~200^^M 400 200 h 20~#880000^^1~422~203~0~GND~~11pt^^1~415~199~0~3~~11pt^^0~423~200^^0~M 420 197 L 417 200 L 420 203"
	bodyR   = "R~440~100~2~2~260~540~#880000~1~0~none~gge5~0"
)

func TestSymbolParser(t *testing.T) {
	doc := symbolDoc(t, "7~1.7.5~400~300~package`DIP08`name`LM358`pre`U?`Model`LM358DR`",
		pinIN, pinGND, pinGND2, bodyR)
	parser := NewSymbolParser(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	sym, records, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sym == nil {
		t.Fatal("expected a symbol")
	}

	if sym.Name != "LM358" {
		t.Errorf("name = %q", sym.Name)
	}
	if sym.Prefix != "U?" || sym.PackageName != "DIP08" {
		t.Errorf("prefix/package = %q/%q", sym.Prefix, sym.PackageName)
	}
	if sym.DefaultValue != "LM358DR" {
		t.Errorf("default value = %q", sym.DefaultValue)
	}
	if sym.GeneratedBy != "webparts:lcsc:C7950" {
		t.Errorf("generated_by = %q", sym.GeneratedBy)
	}

	// Raw pin records keep both GND pins in parse order.
	if len(records) != 3 {
		t.Fatalf("got %d pin records, want 3", len(records))
	}
	wantNames := []string{"IN", "GND", "GND"}
	wantNumbers := []string{"1", "2", "3"}
	for i, rec := range records {
		if rec.Name != wantNames[i] || rec.Number != wantNumbers[i] {
			t.Errorf("record %d = %s/%s, want %s/%s",
				i, rec.Name, rec.Number, wantNames[i], wantNumbers[i])
		}
	}

	in := records[0].Pin
	// 670 raw is 67 tenth-grid units; minus the origin offset of 40 and
	// snapped, that is 27 grid units.
	if in.Position != (cdm.Point{X: 27 * GridUnit, Y: -27 * GridUnit}) {
		t.Errorf("pin IN position = %v", in.Position)
	}
	if in.Direction != cdm.PinRight {
		t.Errorf("pin IN direction = %v", in.Direction)
	}
	if math.Abs(in.Length-2*GridUnit) > 1e-9 {
		t.Errorf("pin IN length = %v", in.Length)
	}
	if in.ElectricalType != cdm.ElectricalInput {
		t.Errorf("pin IN electrical type = %v", in.ElectricalType)
	}
	if !in.NameVisible || in.NamePosition == nil {
		t.Error("pin IN name should be visible with an anchor")
	}

	gnd := records[1].Pin
	if gnd.Direction != cdm.PinLeft {
		t.Errorf("pin GND direction = %v", gnd.Direction)
	}
	if gnd.ElectricalType != cdm.ElectricalPower {
		t.Errorf("pin GND electrical type = %v", gnd.ElectricalType)
	}
	if gnd.UUID == records[2].Pin.UUID {
		t.Error("distinct pins must get distinct identities")
	}

	// Repeat parses derive identical pin identities.
	_, again, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again[0].Pin.UUID != records[0].Pin.UUID {
		t.Error("pin identity is not stable across parses")
	}

	// The 26x54 grid-unit body is large enough for inside labels.
	if !sym.Labels.Inside {
		t.Fatalf("labels = %+v, want inside placement", sym.Labels)
	}
	if sym.Labels.HorizontalAlign != cdm.AlignCenter {
		t.Errorf("label align = %v", sym.Labels.HorizontalAlign)
	}
	if sym.Labels.NamePosition.Y >= sym.Labels.ValuePosition.Y {
		t.Errorf("name label %v should sit above value label %v",
			sym.Labels.NamePosition, sym.Labels.ValuePosition)
	}
}

func TestSymbolParserOutsideLabels(t *testing.T) {
	// A 2x2 grid-unit body stays below the inside-placement thresholds.
	small := "R~420~290~2~2~20~20~#880000~1~0~none~gge5~0"
	doc := symbolDoc(t, "7~1.7.5~400~300~name`RES`", small)
	parser := NewSymbolParser(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	sym, _, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sym.Labels.Inside {
		t.Fatalf("labels = %+v, want outside placement", sym.Labels)
	}
	if sym.Labels.HorizontalAlign != cdm.AlignLeft {
		t.Errorf("label align = %v", sym.Labels.HorizontalAlign)
	}
	if sym.Labels.NameVAlign != cdm.AlignBottom || sym.Labels.ValueVAlign != cdm.AlignTop {
		t.Errorf("label vertical alignment = %v/%v", sym.Labels.NameVAlign, sym.Labels.ValueVAlign)
	}
}

func TestSymbolParserDictHead(t *testing.T) {
	doc := &Document{
		LCSCID: "C7950",
		Title:  "NE555",
		DataStr: &SymbolData{
			Head: json.RawMessage(`{"x":400,"y":300,"uuid":"512dc09f-9434-4046-8381-248b8b264b12","c_para":{"name":"NE555","pre":"IC?"}}`),
			Shape: []string{
				"P~show~0~1~420~300~0~gge1^^420~300^^M 420 300 h -20~#880000^^1~398~303~0~OUT~~11pt^^1~405~299~0~1~~11pt^^0~403~300^^0~",
			},
		},
	}
	parser := NewSymbolParser(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	sym, records, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sym.UUID.String() != "512dc09f-9434-4046-8381-248b8b264b12" {
		t.Errorf("uuid = %s", sym.UUID)
	}
	if sym.Name != "NE555" || sym.Prefix != "IC?" {
		t.Errorf("name/prefix = %q/%q", sym.Name, sym.Prefix)
	}
	if len(records) != 1 || records[0].Name != "OUT" {
		t.Fatalf("records = %v", records)
	}
}

func TestSymbolParserNoSymbol(t *testing.T) {
	parser := NewSymbolParser(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	sym, records, err := parser.Parse(&Document{LCSCID: "C1"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sym != nil || records != nil {
		t.Fatalf("expected no symbol, got %v", sym)
	}
}

func TestSymbolParserUnknownTag(t *testing.T) {
	doc := symbolDoc(t, "7~1.7.5~400~300~", "XX~1~2")
	parser := NewSymbolParser(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	if _, _, err := parser.Parse(doc); err == nil {
		t.Fatal("expected an error for the unknown shape tag")
	}
}

func TestSymbolParserSkipsMalformedPin(t *testing.T) {
	var buf bytes.Buffer
	doc := symbolDoc(t, "7~1.7.5~400~300~name`X`", "P~show~0~1", pinIN)
	parser := NewSymbolParser(slog.New(slog.NewTextHandler(&buf, nil)))

	sym, records, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sym.Pins) != 1 || len(records) != 1 {
		t.Fatalf("got %d pins, want the well-formed one only", len(sym.Pins))
	}
	if !bytes.Contains(buf.Bytes(), []byte("skipping malformed pin")) {
		t.Error("expected a warning for the malformed pin")
	}
}
