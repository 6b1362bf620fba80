package cdm

import "fmt"

// LayerKind enumerates the layer kinds of the canonical model.
type LayerKind string

const (
	LayerTopCopper         LayerKind = "top_copper"
	LayerBottomCopper      LayerKind = "bottom_copper"
	LayerInnerCopper       LayerKind = "inner_copper" // indexed
	LayerTopSolderMask     LayerKind = "top_solder_mask"
	LayerBottomSolderMask  LayerKind = "bottom_solder_mask"
	LayerTopPasteMask      LayerKind = "top_paste_mask"
	LayerBottomPasteMask   LayerKind = "bottom_paste_mask"
	LayerTopSilkscreen     LayerKind = "top_silkscreen"
	LayerBottomSilkscreen  LayerKind = "bottom_silkscreen"
	LayerBoardOutline      LayerKind = "board_outline"
	LayerCourtyardTop      LayerKind = "courtyard_top"
	LayerCourtyardBottom   LayerKind = "courtyard_bottom"
	LayerFabricationTop    LayerKind = "fabrication_top"
	LayerFabricationBottom LayerKind = "fabrication_bottom"
	LayerAssemblyTop       LayerKind = "assembly_top"
	LayerAssemblyBottom    LayerKind = "assembly_bottom"
	LayerDocumentation     LayerKind = "documentation"
	LayerMechanical        LayerKind = "mechanical" // indexed
	LayerAdhesiveTop       LayerKind = "adhesive_top"
	LayerAdhesiveBottom    LayerKind = "adhesive_bottom"
	LayerNonPlatedHoles    LayerKind = "non_plated_holes"
	LayerMultiLayer        LayerKind = "multi_layer" // spans top through bottom copper
)

// Indexed reports whether the kind carries a mandatory 1-based index.
func (k LayerKind) Indexed() bool {
	return k == LayerInnerCopper || k == LayerMechanical
}

// LayerRef identifies a layer by kind plus, for the indexed kinds, a 1-based
// index. Index is zero for all other kinds.
type LayerRef struct {
	Kind  LayerKind
	Index int
}

// NewLayerRef validates the kind/index pairing: inner copper and mechanical
// layers require an index, every other kind must not have one.
func NewLayerRef(kind LayerKind, index int) (LayerRef, error) {
	if kind.Indexed() {
		if index < 1 {
			return LayerRef{}, fmt.Errorf("layer %q requires a 1-based index", kind)
		}
	} else if index != 0 {
		return LayerRef{}, fmt.Errorf("layer %q must not have an index", kind)
	}
	return LayerRef{Kind: kind, Index: index}, nil
}

// MustLayerRef builds an unindexed layer reference for a non-indexed kind.
// It panics on an indexed kind; use NewLayerRef for those.
func MustLayerRef(kind LayerKind) LayerRef {
	ref, err := NewLayerRef(kind, 0)
	if err != nil {
		panic(err)
	}
	return ref
}

func (r LayerRef) String() string {
	if r.Index > 0 {
		return fmt.Sprintf("%s_%d", r.Kind, r.Index)
	}
	return string(r.Kind)
}
