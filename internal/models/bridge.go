package models

// BridgeKind tells a waterfall bar's role.
type BridgeKind string

const (
	BridgeStart BridgeKind = "start"
	BridgeEnd   BridgeKind = "end"
	BridgeGain  BridgeKind = "gain"
	BridgeLoss  BridgeKind = "loss"
)

// BridgeStep is one bar of the target-to-actual oven waterfall.
// The bar spans [Base, Base+Value].
type BridgeStep struct {
	Name     string     `json:"name"`
	Category string     `json:"category,omitempty"` // availability | performance
	Delta    int        `json:"delta"`              // signed ovens; the total for start/end bars
	Base     int        `json:"base"`
	Value    int        `json:"value"`
	Kind     BridgeKind `json:"kind"`
}
