package cdm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ElectricalType classifies a pin's electrical function.
type ElectricalType string

const (
	ElectricalUndefined ElectricalType = "undefined"
	ElectricalInput     ElectricalType = "input"
	ElectricalOutput    ElectricalType = "output"
	ElectricalIO        ElectricalType = "io"
	ElectricalPower     ElectricalType = "power"
	ElectricalPassive   ElectricalType = "passive"
)

// PinDirection is the cardinal direction a pin points away from the body.
type PinDirection string

const (
	PinRight PinDirection = "right" // 0 deg
	PinDown  PinDirection = "down"  // 90 deg
	PinLeft  PinDirection = "left"  // 180 deg
	PinUp    PinDirection = "up"    // 270 deg
)

// Pin is a schematic symbol pin.
type Pin struct {
	UUID      uuid.UUID
	Name      string
	Number    string
	Position  Point
	Direction PinDirection
	Length    float64

	ElectricalType ElectricalType

	NameVisible    bool
	NumberVisible  bool
	NamePosition   *Point
	NumberPosition *Point

	Inverted bool // circle decoration at the base
	Clock    bool // triangle decoration at the base

	SpiceNumber string
}

func (p Pin) String() string {
	return fmt.Sprintf("pin %s=%q at (%.2f, %.2f) %s", p.Number, p.Name, p.Position.X, p.Position.Y, p.Direction)
}

// LabelPlacement positions the {{NAME}}/{{VALUE}} labels relative to the
// symbol body, as decided by the parser's placement heuristic.
type LabelPlacement struct {
	Inside          bool
	NamePosition    Point
	ValuePosition   Point
	HorizontalAlign TextAlignHorizontal
	NameVAlign      TextAlignVertical
	ValueVAlign     TextAlignVertical
}

// Symbol is the canonical schematic symbol model.
type Symbol struct {
	UUID uuid.UUID
	Name string

	Pins     []Pin
	Graphics []GraphicElement

	Origin Point
	Width  float64
	Height float64

	Prefix       string
	DefaultValue string
	PackageName  string

	Labels LabelPlacement

	Description string
	Keywords    []string
	Author      string
	Version     string
	CreatedAt   time.Time
	GeneratedBy string

	CustomAttributes map[string]string
}

func (s *Symbol) String() string {
	return fmt.Sprintf("<Symbol %q / %d pins / %d graphics / uuid=%s>", s.Name, len(s.Pins), len(s.Graphics), s.UUID)
}
