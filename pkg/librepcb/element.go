package librepcb

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/webparts/pkg/cdm"
	"github.com/OpenTraceLab/webparts/pkg/librepcb/sexp"
)

// Element kinds and their on-disk file names. Every LibrePCB library
// element directory holds the artifact file plus a dot-file marker whose
// content is the file format version.
const (
	SymbolFilename    = "symbol.lp"
	PackageFilename   = "package.lp"
	ComponentFilename = "component.lp"
	DeviceFilename    = "device.lp"

	symbolMarker    = ".librepcb-sym"
	packageMarker   = ".librepcb-pkg"
	componentMarker = ".librepcb-cmp"
	deviceMarker    = ".librepcb-dev"

	markerContent = "1\n"
)

const (
	// DefaultVersion is used when the source metadata carries no version.
	DefaultVersion = "0.1"

	defaultAuthor      = "EasyEDA Converter"
	defaultGeneratedBy = "EasyEDA to LibrePCB Converter"

	// LibrePCB's well-known "Unsorted" category for schematic-side
	// elements, and the package category used for converted footprints.
	unsortedCategory = "e29f0cb3-ef6d-4203-b854-d75150cbae0b"
	packageCategory  = "1d2630f1-c375-49f0-a0dc-2446735d82f4"
)

// elementMeta is the metadata header block shared by every element kind.
// Field order in the output is fixed and compatibility-critical.
type elementMeta struct {
	Name        string
	Description string
	Keywords    []string
	Author      string
	Version     string
	CreatedAt   time.Time
	GeneratedBy string
	Category    uuid.UUID
}

func symbolMeta(s *cdm.Symbol, name string) elementMeta {
	return elementMeta{
		Name:        name,
		Description: s.Description,
		Keywords:    s.Keywords,
		Author:      s.Author,
		Version:     s.Version,
		CreatedAt:   s.CreatedAt,
		GeneratedBy: s.GeneratedBy,
		Category:    uuid.MustParse(unsortedCategory),
	}
}

// metadataItems renders the shared header after the element UUID.
func metadataItems(m elementMeta) []any {
	author := m.Author
	if author == "" {
		author = defaultAuthor
	}
	version := m.Version
	if version == "" {
		version = DefaultVersion
	}
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	generatedBy := m.GeneratedBy
	if generatedBy == "" {
		generatedBy = defaultGeneratedBy
	}
	return []any{
		sexp.New("name", m.Name),
		sexp.New("description", m.Description),
		sexp.New("keywords", strings.Join(m.Keywords, ", ")),
		sexp.New("author", author),
		sexp.New("version", version),
		sexp.New("created", created),
		sexp.New("deprecated", false),
		sexp.New("generated_by", generatedBy),
		sexp.New("category", m.Category),
	}
}

// GeneratedBy formats the generated_by provenance value used to find an
// already-converted element again, e.g. GeneratedBy("lcsc", "C25804").
func GeneratedBy(source, identifier string) string {
	return fmt.Sprintf("%s:%s", source, identifier)
}

// writeElement persists an artifact and its sidecar marker into dir,
// creating the directory if needed.
func writeElement(dir, filename, content, marker string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating element dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	markerPath := filepath.Join(dir, marker)
	if err := os.WriteFile(markerPath, []byte(markerContent), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", marker, err)
	}
	return nil
}

// consolidatePins collapses pins sharing a name down to the first
// occurrence. LibrePCB handles multiple physical pins with one function in
// the device editor, not the symbol, so the symbol and component keep one
// pin per name. Pad matching must NOT use the consolidated list (see
// DeviceSerializer).
func consolidatePins(pins []cdm.Pin) []cdm.Pin {
	seen := make(map[string]bool, len(pins))
	out := make([]cdm.Pin, 0, len(pins))
	for _, pin := range pins {
		if seen[pin.Name] {
			continue
		}
		seen[pin.Name] = true
		out = append(out, pin)
	}
	return out
}
