// Package librepcb assembles canonical footprints and symbols into LibrePCB
// library elements: symbol, package, component and device files plus their
// sidecar markers. Serialization goes through pkg/librepcb/sexp; this package
// owns the mapping from canonical vocabulary (layers, pad shapes, pin
// directions) onto LibrePCB's.
package librepcb

import (
	"crypto/sha256"

	"github.com/google/uuid"
)

// DeriveUUID deterministically derives a new v4/RFC-4122 UUID from a base
// UUID and a role string. Same inputs always give the same output, so the
// symbol/component/device cross-references can be regenerated at any time
// without a registry. The base does not need to be v4 itself.
//
// Roles in use: "component" and "device" against the symbol UUID, and the
// pin name against a pin UUID for per-signal identities.
func DeriveUUID(base uuid.UUID, role string) uuid.UUID {
	h := sha256.New()
	h.Write(base[:])
	h.Write([]byte(role))
	sum := h.Sum(nil)

	var derived uuid.UUID
	copy(derived[:], sum[:16])
	derived[6] = (derived[6] & 0x0F) | 0x40 // version 4
	derived[8] = (derived[8] & 0x3F) | 0x80 // RFC 4122 variant
	return derived
}
