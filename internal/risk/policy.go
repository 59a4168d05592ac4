package risk

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Mode is the active consent policy for a session. Exactly one mode is
// active at a time.
type Mode string

const (
	ReadOnly        Mode = "read_only"
	AskPermission   Mode = "ask_permission"
	AutoApproveSafe Mode = "auto_approve_safe"
	AutoApproveAll  Mode = "auto_approve_all"
)

// ParseMode maps a config string to a Mode, defaulting to AskPermission.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ReadOnly, AskPermission, AutoApproveSafe, AutoApproveAll:
		return Mode(s)
	default:
		return AskPermission
	}
}

// Request is a transient permission request for one gated mutation.
// It is not persisted beyond the exchange that created it.
type Request struct {
	ID          string
	Mutation    MutationType
	Description string
	Risk        Tier
	Details     string
	Warnings    []string
}

// Decision is the outcome of resolving a Request.
type Decision struct {
	Approved       bool
	AutoResolved   bool   // true when the policy decided without a prompt
	RememberChoice bool   // user asked to remember for this mutation type
	Reason         string // set for auto-denials
}

// Prompter is the presentation-layer collaborator that asks the user to
// approve or deny a request. Implementations must block until the user
// answers.
type Prompter interface {
	RequestPermission(req Request) (approved, remember bool, err error)
}

// Gate resolves consent for board mutations according to the active mode.
// Remembered choices are session-scoped: an approved-and-remembered
// mutation type skips future prompts, a denied-and-remembered one
// auto-denies.
type Gate struct {
	mode       Mode
	prompter   Prompter
	remembered map[MutationType]bool // type -> approved
}

// NewGate creates a consent gate. prompter may be nil only for modes that
// never prompt (ReadOnly, AutoApproveAll).
func NewGate(mode Mode, prompter Prompter) *Gate {
	return &Gate{
		mode:       mode,
		prompter:   prompter,
		remembered: make(map[MutationType]bool),
	}
}

// Mode returns the active consent mode.
func (g *Gate) Mode() Mode {
	return g.mode
}

// NewRequest builds a permission request for a mutation, assessing its
// risk and attaching operation-specific warnings.
func NewRequest(mt MutationType, description, details string) Request {
	return Request{
		ID:          uuid.New().String(),
		Mutation:    mt,
		Description: description,
		Risk:        Assess(mt),
		Details:     details,
		Warnings:    Warnings(mt),
	}
}

// Resolve decides whether the requested mutation may proceed. A denied or
// pending request never reaches the mutation engine: Resolve only returns
// Approved=true after an explicit or policy-backed approval.
func (g *Gate) Resolve(req Request) (Decision, error) {
	switch g.mode {
	case ReadOnly:
		return Decision{Approved: false, AutoResolved: true, Reason: "Read-only mode enabled"}, nil
	case AutoApproveAll:
		return Decision{Approved: true, AutoResolved: true}, nil
	case AutoApproveSafe:
		if req.Risk == Safe {
			return Decision{Approved: true, AutoResolved: true}, nil
		}
	}

	if approved, ok := g.remembered[req.Mutation]; ok {
		return Decision{Approved: approved, AutoResolved: true, Reason: "Remembered earlier choice"}, nil
	}

	if g.prompter == nil {
		return Decision{Approved: false, AutoResolved: true, Reason: "No prompter available"}, nil
	}

	approved, remember, err := g.prompter.RequestPermission(req)
	if err != nil {
		return Decision{}, fmt.Errorf("permission prompt failed: %w", err)
	}

	if remember {
		g.remembered[req.Mutation] = approved
	}

	return Decision{Approved: approved, RememberChoice: remember}, nil
}

// RenderPrompt produces the user-facing permission prompt text for a
// request, including its warnings.
func RenderPrompt(req Request) string {
	var sb strings.Builder

	sb.WriteString("**Permission Request**\n\n")
	fmt.Fprintf(&sb, "**Proposed Change:** %s\n\n", req.Description)
	fmt.Fprintf(&sb, "**Risk Level:** %s\n\n", req.Risk.Description())

	details := req.Details
	if details == "" {
		details = "No additional details provided"
	}
	fmt.Fprintf(&sb, "**Details:** %s\n", details)

	if len(req.Warnings) > 0 {
		sb.WriteString("\n**Warnings:**\n")
		for _, w := range req.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", w)
		}
	}

	sb.WriteString("\nWould you like me to proceed with this modification?\n")
	return sb.String()
}
