package librepcb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AlignmentReference pairs a board-space point (mm, Y-up) with the pixel it
// lands on in a rendered preview image.
type AlignmentReference struct {
	SourceX float64
	SourceY float64
	TargetX float64
	TargetY float64
}

// BackgroundSettings is the content of a footprint's settings.lp, which
// tells LibrePCB how to overlay a rendered vendor image behind the board
// editor for visual verification.
type BackgroundSettings struct {
	Enabled    bool
	References []AlignmentReference
}

// Serialize renders the settings file. Unlike the element serializers this
// uses fixed 3-decimal formatting throughout, matching the background
// image format rather than the library element token rules.
func (b BackgroundSettings) Serialize() string {
	var refs strings.Builder
	for _, ref := range b.References {
		fmt.Fprintf(&refs,
			"  (reference (source %.3f %.3f) (target %.3f %.3f))\n",
			ref.SourceX, ref.SourceY, ref.TargetX, ref.TargetY)
	}
	enabled := "false"
	if b.Enabled {
		enabled = "true"
	}
	return fmt.Sprintf("(librepcb_background_image\n (enabled %s)\n (rotation 0.0)\n%s)\n",
		enabled, refs.String())
}

// WriteTo writes settings.lp into dir.
func (b BackgroundSettings) WriteTo(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}
	path := filepath.Join(dir, "settings.lp")
	if err := os.WriteFile(path, []byte(b.Serialize()), 0o644); err != nil {
		return fmt.Errorf("writing settings.lp: %w", err)
	}
	return nil
}
