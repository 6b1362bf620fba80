package librepcb

import (
	"fmt"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
)

// boardLayerNames maps every non-indexed canonical layer kind onto a
// LibrePCB board layer name. The table is deliberately total: a kind
// missing here is a programming error surfaced by BoardLayer, never a
// silent default.
var boardLayerNames = map[cdm.LayerKind]string{
	cdm.LayerTopCopper:         "top_cu",
	cdm.LayerBottomCopper:      "bot_cu",
	cdm.LayerMultiLayer:        "top_cu",
	cdm.LayerTopSolderMask:     "top_stop_mask",
	cdm.LayerBottomSolderMask:  "bot_stop_mask",
	cdm.LayerTopPasteMask:      "top_solder_paste",
	cdm.LayerBottomPasteMask:   "bot_solder_paste",
	cdm.LayerTopSilkscreen:     "top_legend",
	cdm.LayerBottomSilkscreen:  "bot_legend",
	cdm.LayerBoardOutline:      "brd_outlines",
	cdm.LayerCourtyardTop:      "top_courtyard",
	cdm.LayerCourtyardBottom:   "bot_courtyard",
	cdm.LayerFabricationTop:    "top_package_outlines",
	cdm.LayerFabricationBottom: "bot_package_outlines",
	cdm.LayerAssemblyTop:       "top_documentation",
	cdm.LayerAssemblyBottom:    "bot_documentation",
	cdm.LayerDocumentation:     "brd_documentation",
	cdm.LayerAdhesiveTop:       "top_glue",
	cdm.LayerAdhesiveBottom:    "bot_glue",
	cdm.LayerNonPlatedHoles:    "brd_cutouts",
}

// BoardLayer maps a canonical layer reference onto a LibrePCB board layer
// name. Unmapped references are an error, not a fallback.
func BoardLayer(ref cdm.LayerRef) (string, error) {
	switch ref.Kind {
	case cdm.LayerInnerCopper:
		return fmt.Sprintf("in%d_cu", ref.Index), nil
	case cdm.LayerMechanical:
		// LibrePCB has no numbered mechanical layers; they all land on
		// the shared documentation layer.
		return "brd_documentation", nil
	}
	name, ok := boardLayerNames[ref.Kind]
	if !ok {
		return "", fmt.Errorf("no LibrePCB layer for %q", ref)
	}
	return name, nil
}

// padSide is the (side ...) token of a footprint pad.
func padSide(p cdm.Pad) string {
	if p.Type == cdm.PadTypeThroughHole || p.Type == cdm.PadTypeVia {
		return "tht"
	}
	if p.Layer.Kind == cdm.LayerBottomCopper {
		return "bottom"
	}
	return "top"
}

// padShape maps a canonical pad shape onto LibrePCB's (shape, radius)
// pair. LibrePCB expresses circles and ovals as fully rounded rects.
func padShape(p cdm.Pad) (shape string, radius float64, err error) {
	switch p.Shape {
	case cdm.PadShapeRectangle:
		return "roundrect", 0.0, nil
	case cdm.PadShapeCircle, cdm.PadShapeOval:
		return "roundrect", 1.0, nil
	case cdm.PadShapeRoundRect:
		return "roundrect", p.CornerRadiusRatio, nil
	case cdm.PadShapePolygon:
		return "custom", 0.0, nil
	default:
		return "", 0, fmt.Errorf("no LibrePCB shape for pad shape %q", p.Shape)
	}
}
