package intent

// FlowState tracks where a session stands in the circuit-to-layout
// design flow. The ordering matters: later states imply an active
// circuit, which gates transition and approval intents.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowCircuitIdentified
	FlowCircuitGenerated
	FlowPcbTransitionRequested
	FlowLayersRecommended
	FlowPcbLayoutCreated
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "Idle"
	case FlowCircuitIdentified:
		return "CircuitIdentified"
	case FlowCircuitGenerated:
		return "CircuitGenerated"
	case FlowPcbTransitionRequested:
		return "PcbTransitionRequested"
	case FlowLayersRecommended:
		return "LayersRecommended"
	case FlowPcbLayoutCreated:
		return "PcbLayoutCreated"
	default:
		return "Unknown"
	}
}

// CircuitActive reports whether a generated circuit exists in this
// state, the precondition for a PCB transition.
func (s FlowState) CircuitActive() bool {
	return s >= FlowCircuitGenerated
}
