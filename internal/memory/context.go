package memory

import (
	"fmt"
	"strings"
)

// BuildContext renders the recent slice of memory as a Markdown block
// for the model prompt: the last few turns plus the most recent
// decisions, newest last. Returns "" when the store is empty.
func (s *Store) BuildContext() string {
	turns := tail(s.data.Turns, contextTurns)
	decisions := tail(s.data.Decisions, contextDecisions)
	if len(turns) == 0 && len(decisions) == 0 {
		return ""
	}

	var sb strings.Builder

	if len(decisions) > 0 {
		sb.WriteString("## Recent Design Decisions\n")
		for _, d := range decisions {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", d.Category, d.Summary))
		}
		sb.WriteString("\n")
	}

	if len(turns) > 0 {
		sb.WriteString("## Recent Conversation\n")
		for _, t := range turns {
			sb.WriteString(fmt.Sprintf("%s: %s\n", labelFor(t.Role), t.Content))
		}
	}

	return sb.String()
}

func labelFor(r Role) string {
	if r == RoleAssistant {
		return "Assistant"
	}
	return "User"
}

func tail[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
