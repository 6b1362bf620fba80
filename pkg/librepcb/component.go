package librepcb

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/librepcb/sexp"
)

// ComponentSerializer renders a canonical symbol as a LibrePCB .cmp
// element: one signal per consolidated pin plus a single default variant
// whose gate binds each pin to its signal. Signal identities are derived
// from (pin UUID, pin name) so the device's pad mapping can reproduce them
// without sharing state.
type ComponentSerializer struct {
	log *slog.Logger
}

func NewComponentSerializer(log *slog.Logger) *ComponentSerializer {
	if log == nil {
		log = slog.Default()
	}
	return &ComponentSerializer{log: log}
}

// Serialize renders the component element text. componentUUID is usually
// DeriveUUID(symbol.UUID, "component"); passing uuid.Nil derives it here.
func (s *ComponentSerializer) Serialize(sym *cdm.Symbol, componentUUID uuid.UUID, componentName string) string {
	if componentUUID == uuid.Nil {
		componentUUID = DeriveUUID(sym.UUID, "component")
	}
	if componentName == "" {
		componentName = sym.Name
	}

	pins := consolidatePins(sym.Pins)
	if removed := len(sym.Pins) - len(pins); removed > 0 {
		s.log.Info("consolidated duplicate pins", "symbol", sym.Name, "removed", removed)
	}

	root := sexp.New("librepcb_component", componentUUID)
	root.Add(metadataItems(symbolMeta(sym, componentName))...)
	root.Add(
		sexp.New("schematic_only", false),
		sexp.New("default_value", "{{MPN or DEVICE}}"),
		sexp.New("prefix", sym.Prefix),
	)

	for _, pin := range pins {
		forcedNet := ""
		if pin.Name == "GND" {
			forcedNet = "GND"
		}
		root.Add(sexp.New("signal",
			DeriveUUID(pin.UUID, pin.Name),
			sexp.New("name", pin.Name),
			sexp.New("role", sexp.Sym("passive")),
			sexp.New("required", false),
			sexp.New("negated", false),
			sexp.New("clock", false),
			sexp.New("forced_net", forcedNet),
		))
	}

	gate := sexp.New("gate",
		DeriveUUID(componentUUID, "gate"),
		sexp.New("symbol", sym.UUID),
		sexp.New("position", 0.0, 0.0),
		sexp.New("rotation", 0.0),
		sexp.New("required", true),
		sexp.New("suffix", ""),
	)
	for _, pin := range pins {
		gate.Add(sexp.New("pin",
			pin.UUID,
			sexp.New("signal", DeriveUUID(pin.UUID, pin.Name)),
			sexp.New("text", sexp.Sym("signal")),
		))
	}
	root.Add(sexp.New("variant",
		DeriveUUID(componentUUID, "variant"),
		sexp.New("norm", ""),
		sexp.New("name", "default"),
		sexp.New("description", ""),
		gate,
	))

	return root.Serialize()
}

// WriteTo writes component.lp plus the .librepcb-cmp marker into dir.
func (s *ComponentSerializer) WriteTo(sym *cdm.Symbol, dir string) error {
	return writeElement(dir, ComponentFilename, s.Serialize(sym, uuid.Nil, ""), componentMarker)
}
