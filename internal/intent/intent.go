// Package intent classifies free-text chat messages into the actions
// the session can take: circuit generation, board operations, layout
// transitions, and layer approvals.
package intent

import (
	"strings"

	"github.com/smartcat-ai/kicat/internal/board"
	"github.com/smartcat-ai/kicat/internal/catalog"
)

// Kind is the resolved intent of one message.
type Kind int

const (
	KindNone Kind = iota
	KindCircuitRequest
	KindAdvancedOperation
	KindPcbTransition
	KindLayerApproval
)

func (k Kind) String() string {
	switch k {
	case KindCircuitRequest:
		return "CircuitRequest"
	case KindAdvancedOperation:
		return "AdvancedOperationRequest"
	case KindPcbTransition:
		return "PcbTransitionRequest"
	case KindLayerApproval:
		return "LayerApprovalRequest"
	default:
		return "None"
	}
}

// OpKind distinguishes the advanced board operations.
type OpKind int

const (
	OpAddLayers OpKind = iota
	OpModifySettings
)

// Operation carries the parsed parameters of an advanced operation.
// For OpAddLayers exactly one of LayerTarget (absolute count) or
// LayerDelta (layers to add) is set.
type Operation struct {
	Kind        OpKind
	LayerTarget int
	LayerDelta  int
	Settings    board.SettingsChange
}

// Intent is the classification result for one message.
type Intent struct {
	Kind      Kind
	Template  *catalog.Template
	Operation *Operation
}

// Phrase tables. Overlap between transition and approval phrases (a
// bare "yes") is resolved by flow-state gating, not by the phrase.
var (
	transitionPhrases = []string{
		"go to pcb", "pcb layout", "create pcb", "make pcb", "yes", "proceed",
	}
	approvalPhrases = []string{
		"yes", "proceed", "ok", "agree", "go ahead", "continue",
	}
)

// Classifier resolves messages against the template catalog and the
// current flow state.
type Classifier struct {
	catalog *catalog.Catalog
}

// NewClassifier creates a classifier over the given catalog.
func NewClassifier(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Classify resolves a message to an intent. Rules are checked in a
// fixed order and the first applicable one wins: circuit request,
// advanced operation, PCB transition, layer approval, then none.
func (c *Classifier) Classify(message string, state FlowState) Intent {
	lower := strings.ToLower(message)

	if t := c.catalog.Match(message); t != nil {
		return Intent{Kind: KindCircuitRequest, Template: t}
	}

	if op, ok := parseOperation(lower); ok {
		return Intent{Kind: KindAdvancedOperation, Operation: op}
	}

	if state == FlowCircuitGenerated && containsAny(lower, transitionPhrases) {
		return Intent{Kind: KindPcbTransition}
	}

	if state == FlowLayersRecommended && containsAny(lower, approvalPhrases) {
		return Intent{Kind: KindLayerApproval}
	}

	return Intent{Kind: KindNone}
}

// parseOperation detects layer-count and settings vocabulary and
// extracts the numeric parameters. A vocabulary hit without an
// extractable number degrades to no operation rather than erroring.
func parseOperation(lower string) (*Operation, bool) {
	if strings.Contains(lower, "add") &&
		(strings.Contains(lower, "layer") || strings.Contains(lower, "copper")) {
		if target, delta, ok := ParseLayerTarget(lower); ok {
			return &Operation{Kind: OpAddLayers, LayerTarget: target, LayerDelta: delta}, true
		}
	}

	settingsVocab := strings.Contains(lower, "track width") ||
		strings.Contains(lower, "via size") ||
		strings.Contains(lower, "clearance") ||
		strings.Contains(lower, "settings")
	if settingsVocab {
		change := ParseSettings(lower)
		if !change.IsEmpty() {
			return &Operation{Kind: OpModifySettings, Settings: change}, true
		}
	}

	return nil, false
}

func containsAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
