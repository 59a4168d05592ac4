package session

import (
	"fmt"
	"strings"

	"github.com/smartcat-ai/kicat/internal/inspect"
)

const basePrompt = `You are KiCat, an AI assistant for PCB design. You help users design
circuits, plan board stackups, and adjust board settings. Answer
concretely with component values, track widths, and layer counts where
relevant. If the user asks for a board change you cannot verify is
safe, say so instead of guessing.`

// systemPrompt composes the provider system prompt: the base persona,
// the current board context, the active circuit, and the recent memory
// projection.
func (s *Session) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString(basePrompt)

	if s.accessor != nil {
		if report, err := inspect.Report(s.accessor); err == nil {
			sb.WriteString("\n\n## Current Board\n")
			sb.WriteString(report)
		}
	}

	if s.active != nil {
		sb.WriteString(fmt.Sprintf("\n\n## Active Circuit\n%s (%s), flow state: %s\n",
			s.active.Name, s.active.ID, s.flow))
	}

	if ctx := s.memory.BuildContext(); ctx != "" {
		sb.WriteString("\n\n")
		sb.WriteString(ctx)
	}

	return sb.String()
}

// Status renders the session state for the status command.
func (s *Session) Status() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Session: %s\n", s.id))
	sb.WriteString(fmt.Sprintf("Flow state: %s\n", s.flow))
	sb.WriteString(fmt.Sprintf("Consent mode: %s\n", s.gate.Mode()))
	if s.active != nil {
		sb.WriteString(fmt.Sprintf("Active circuit: %s\n", s.active.Name))
	}
	sb.WriteString(fmt.Sprintf("Operations this session: %d\n", len(s.engine.History())))

	if s.accessor != nil {
		if report, err := inspect.Report(s.accessor); err == nil {
			sb.WriteString("\n")
			sb.WriteString(report)
		}
	}
	return sb.String()
}

// Summary renders the audit digest for this session.
func (s *Session) Summary() (string, error) {
	return s.audit.SessionSummary(s.id)
}
