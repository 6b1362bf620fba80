package easyeda

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

// layerTable resolves EasyEDA layer ids to canonical layer references and
// keeps the per-layer mask expansions declared in the layer definitions.
type layerTable struct {
	refs map[string]cdm.LayerRef

	// solderMask and pasteMask hold the declared expansions in
	// millimeters, nil when the document does not set one.
	solderMask *float64
	pasteMask  *float64
}

// fixedLayerKinds maps lowercased EasyEDA layer names to canonical kinds.
// Indexed kinds (inner copper, mechanical) are handled separately because
// they need a sequence number.
// Note the vendor's inverted mask naming: their "paste mask" layers hold
// the solder-stop openings and their "paster"/"solder" layers hold the
// solder paste.
var fixedLayerKinds = map[string]cdm.LayerKind{
	"toplayer":               cdm.LayerTopCopper,
	"bottomlayer":            cdm.LayerBottomCopper,
	"multi-layer":            cdm.LayerMultiLayer,
	"topsilklayer":           cdm.LayerTopSilkscreen,
	"bottomsilklayer":        cdm.LayerBottomSilkscreen,
	"toppastemasklayer":      cdm.LayerTopSolderMask,
	"bottompastemasklayer":   cdm.LayerBottomSolderMask,
	"toppasterlayer":         cdm.LayerTopPasteMask,
	"bottompasterlayer":      cdm.LayerBottomPasteMask,
	"topsolderlayer":         cdm.LayerTopPasteMask,
	"bottomsolderlayer":      cdm.LayerBottomPasteMask,
	"topsoldermasklayer":     cdm.LayerAssemblyTop,
	"bottomsoldermasklayer":  cdm.LayerAssemblyBottom,
	"topassembly":            cdm.LayerAssemblyTop,
	"bottomassembly":         cdm.LayerAssemblyBottom,
	"boardoutline":           cdm.LayerBoardOutline,
	"componentshapelayer":    cdm.LayerFabricationTop,
	"document":               cdm.LayerDocumentation,
	"all":                    cdm.LayerDocumentation,
	"componentmarkinglayer":  cdm.LayerDocumentation,
	"componentpolaritylayer": cdm.LayerDocumentation,
	"leadshapelayer":         cdm.LayerDocumentation,
	"ratlines":               cdm.LayerDocumentation,
	"drcerror":               cdm.LayerDocumentation,
	"3dmodel":                cdm.LayerDocumentation,
	"hole":                   cdm.LayerNonPlatedHoles,
}

// parseLayerTable decodes the layer definition strings of a footprint
// document. Each definition is "id~Name~color~visible~active~...": only the
// id, the name and (for mask layers) the trailing expansion matter here.
// Unknown layer names map to documentation with a warning so the geometry
// on them survives.
func parseLayerTable(defs []string, log *slog.Logger) *layerTable {
	t := &layerTable{refs: make(map[string]cdm.LayerRef)}
	innerSeen := 0
	mechSeen := 0
	for _, def := range defs {
		parts := strings.Split(def, "~")
		if len(parts) < 2 {
			log.Warn("skipping malformed layer definition", "definition", def)
			continue
		}
		id := parts[0]
		name := strings.ToLower(parts[1])

		var ref cdm.LayerRef
		switch {
		case strings.HasPrefix(name, "inner"):
			innerSeen++
			ref = cdm.LayerRef{Kind: cdm.LayerInnerCopper, Index: innerSeen}
		case strings.HasPrefix(name, "mechanical"):
			mechSeen++
			ref = cdm.LayerRef{Kind: cdm.LayerMechanical, Index: mechSeen}
		default:
			kind, ok := fixedLayerKinds[name]
			if !ok {
				log.Warn("unknown layer name, mapping to documentation",
					"id", id, "name", parts[1])
				kind = cdm.LayerDocumentation
			}
			ref = cdm.LayerRef{Kind: kind}
		}
		t.refs[id] = ref

		if exp, ok := layerExpansion(parts); ok {
			switch ref.Kind {
			case cdm.LayerTopSolderMask, cdm.LayerBottomSolderMask:
				t.solderMask = &exp
			case cdm.LayerTopPasteMask, cdm.LayerBottomPasteMask:
				t.pasteMask = &exp
			}
		}
	}
	return t
}

// layerExpansion reads the trailing expansion field of a mask layer
// definition, converted to millimeters.
func layerExpansion(parts []string) (float64, bool) {
	if len(parts) < 7 {
		return 0, false
	}
	last := parts[len(parts)-1]
	if last == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, false
	}
	return v * UnitScale, true
}

// resolve looks up a layer id. The second return is false when the id was
// never defined in the document.
func (t *layerTable) resolve(id string) (cdm.LayerRef, bool) {
	ref, ok := t.refs[id]
	return ref, ok
}
