package types

// ------------------------
// Capability addressing & kinds
// ------------------------

type Kind string

const (
	KindCharger Kind = "charger"
)

// CapabilityAddress identifies a public capability on the bus.
type CapabilityAddress struct {
	Domain string `json:"domain"` // e.g. "power"
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
}
