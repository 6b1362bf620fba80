package librepcb

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/librepcb/sexp"
)

// DeviceSerializer renders a LibrePCB .dev element tying a component to a
// package: every footprint pad gets a signal reference resolved by pad/pin
// number string.
//
// The matching deliberately uses the symbol's raw, pre-consolidation pin
// list: two physical pins sharing a name collapse to one signal in the
// component, but both their pad numbers must still resolve to that signal
// here. A pad whose number matches no pin is emitted as (signal none),
// which LibrePCB accepts as "not connected": degraded but valid output.
type DeviceSerializer struct {
	log *slog.Logger
}

func NewDeviceSerializer(log *slog.Logger) *DeviceSerializer {
	if log == nil {
		log = slog.Default()
	}
	return &DeviceSerializer{log: log}
}

// Serialize renders the device element text. Nil UUIDs are derived from
// the symbol UUID with the "device"/"component" roles.
func (s *DeviceSerializer) Serialize(sym *cdm.Symbol, fp *cdm.Footprint, deviceUUID, componentUUID uuid.UUID, deviceName string) string {
	if deviceUUID == uuid.Nil {
		deviceUUID = DeriveUUID(sym.UUID, "device")
	}
	if componentUUID == uuid.Nil {
		componentUUID = DeriveUUID(sym.UUID, "component")
	}
	if deviceName == "" {
		deviceName = sym.Name
	}

	root := sexp.New("librepcb_device", deviceUUID)
	root.Add(metadataItems(symbolMeta(sym, deviceName))...)
	root.Add(
		sexp.New("component", componentUUID),
		sexp.New("package", fp.UUID),
	)

	// Signals were emitted for the consolidated pins, so a pad matching
	// a duplicate-named pin must reference the surviving (first) pin's
	// derived signal identity, not the duplicate's own.
	survivors := make(map[string]cdm.Pin, len(sym.Pins))
	for _, pin := range consolidatePins(sym.Pins) {
		survivors[pin.Name] = pin
	}

	for _, pad := range fp.Pads {
		pin, ok := findPinByNumber(sym.Pins, pad.Number)
		if !ok {
			s.log.Warn("pad has no corresponding pin, emitting unconnected signal",
				"device", deviceName, "pad", pad.Number)
			root.Add(sexp.New("pad", pad.UUID, sexp.New("signal", sexp.Sym("none"))))
			continue
		}
		signal := survivors[pin.Name]
		root.Add(sexp.New("pad", pad.UUID, sexp.New("signal", DeriveUUID(signal.UUID, signal.Name))))
	}

	return root.Serialize()
}

// findPinByNumber returns the first pin whose number matches. Matching is
// by designator string, never by position or list order.
func findPinByNumber(pins []cdm.Pin, number string) (cdm.Pin, bool) {
	for _, pin := range pins {
		if pin.Number == number {
			return pin, true
		}
	}
	return cdm.Pin{}, false
}

// WriteTo writes device.lp plus the .librepcb-dev marker into dir.
func (s *DeviceSerializer) WriteTo(sym *cdm.Symbol, fp *cdm.Footprint, dir string) error {
	content := s.Serialize(sym, fp, uuid.Nil, uuid.Nil, "")
	return writeElement(dir, DeviceFilename, content, deviceMarker)
}
