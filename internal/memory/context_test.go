package memory

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildContext_Empty(t *testing.T) {
	s := NewStore("", Config{})
	if got := s.BuildContext(); got != "" {
		t.Errorf("empty store produced context %q", got)
	}
}

func TestBuildContext_RecentSliceOnly(t *testing.T) {
	s := NewStore("", Config{})
	for i := 1; i <= 10; i++ {
		s.AddTurn(RoleUser, fmt.Sprintf("turn %d", i))
	}

	ctx := s.BuildContext()
	if strings.Contains(ctx, "turn 4") {
		t.Error("context includes turns older than the projection window")
	}
	for i := 5; i <= 10; i++ {
		if !strings.Contains(ctx, fmt.Sprintf("turn %d", i)) {
			t.Errorf("context missing turn %d", i)
		}
	}
}

func TestBuildContext_DecisionWindow(t *testing.T) {
	s := NewStore("", Config{})
	for i := 1; i <= 15; i++ {
		s.RecordDecision(fmt.Sprintf("change resistor R%d value", i), "ok")
	}

	ctx := s.BuildContext()
	if strings.Contains(ctx, "R5 ") {
		t.Error("context includes decisions older than the projection window")
	}
	if !strings.Contains(ctx, "R15") || !strings.Contains(ctx, "R6") {
		t.Error("context missing decisions inside the projection window")
	}
	if !strings.Contains(ctx, "[Component]") {
		t.Error("decision lines should carry their category")
	}
}

func TestBuildContext_Sections(t *testing.T) {
	s := NewStore("", Config{})
	s.AddExchange("make a power supply", "Generated the power supply circuit", true)
	s.RecordDecision("add a buck converter footprint", "ok")

	ctx := s.BuildContext()
	di := strings.Index(ctx, "## Recent Design Decisions")
	ci := strings.Index(ctx, "## Recent Conversation")
	if di == -1 || ci == -1 {
		t.Fatalf("missing sections in context:\n%s", ctx)
	}
	if di > ci {
		t.Error("decisions should render before the conversation")
	}
	if !strings.Contains(ctx, "User: make a power supply") {
		t.Error("conversation lines should carry role labels")
	}
}
