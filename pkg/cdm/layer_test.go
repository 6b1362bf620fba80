package cdm

import "testing"

func TestNewLayerRef(t *testing.T) {
	tests := []struct {
		name    string
		kind    LayerKind
		index   int
		wantErr bool
		wantStr string
	}{
		{
			name:    "top copper without index",
			kind:    LayerTopCopper,
			index:   0,
			wantStr: "top_copper",
		},
		{
			name:    "inner copper with index",
			kind:    LayerInnerCopper,
			index:   2,
			wantStr: "inner_copper_2",
		},
		{
			name:    "mechanical with index",
			kind:    LayerMechanical,
			index:   1,
			wantStr: "mechanical_1",
		},
		{
			name:    "inner copper missing index",
			kind:    LayerInnerCopper,
			index:   0,
			wantErr: true,
		},
		{
			name:    "mechanical missing index",
			kind:    LayerMechanical,
			index:   0,
			wantErr: true,
		},
		{
			name:    "top copper with forbidden index",
			kind:    LayerTopCopper,
			index:   1,
			wantErr: true,
		},
		{
			name:    "documentation with forbidden index",
			kind:    LayerDocumentation,
			index:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := NewLayerRef(tt.kind, tt.index)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewLayerRef(%s, %d) expected error, got nil", tt.kind, tt.index)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLayerRef(%s, %d) unexpected error: %v", tt.kind, tt.index, err)
			}
			if got := ref.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestMustLayerRefPanicsOnIndexedKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustLayerRef(LayerInnerCopper) did not panic")
		}
	}()
	MustLayerRef(LayerInnerCopper)
}
