package memory

import "time"

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single conversation exchange entry. IsCircuitRequest marks
// the assistant turn that generated a circuit, so later classification
// can see that a design is in flight.
type Turn struct {
	Role             Role      `json:"role"`
	Content          string    `json:"content"`
	IsCircuitRequest bool      `json:"is_circuit_request,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Category classifies a recorded design decision by its dominant topic.
type Category string

const (
	CategoryComponent Category = "Component"
	CategoryRouting   Category = "Routing"
	CategoryPlacement Category = "Placement"
	CategoryGeneral   Category = "General"
)

// Decision is a persisted design decision extracted from the dialogue.
type Decision struct {
	Summary   string    `json:"summary"`
	Category  Category  `json:"category"`
	Keywords  []string  `json:"keywords"`
	Timestamp time.Time `json:"timestamp"`
}

// Data is the on-disk representation of a session's memory.
type Data struct {
	Version   string     `json:"version"`
	Turns     []Turn     `json:"turns"`
	Decisions []Decision `json:"decisions"`
}

// Config bounds the store. Zero values fall back to the defaults.
type Config struct {
	MaxTurns     int
	MaxDecisions int
}

const (
	DefaultMaxTurns     = 20
	DefaultMaxDecisions = 50

	// Context projection limits: only the most recent slice of each kind
	// is rendered into the model prompt.
	contextTurns     = 6
	contextDecisions = 10

	// maxSummaryLen caps decision summaries so the context stays compact.
	maxSummaryLen = 100
)
