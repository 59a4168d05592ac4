package session

import (
	"context"
	"strings"
	"testing"

	"github.com/smartcat-ai/kicat/internal/board"
	"github.com/smartcat-ai/kicat/internal/catalog"
	"github.com/smartcat-ai/kicat/internal/config"
	"github.com/smartcat-ai/kicat/internal/intent"
	"github.com/smartcat-ai/kicat/internal/provider"
	"github.com/smartcat-ai/kicat/internal/risk"
)

type fakeProvider struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
	calls      int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Send(_ context.Context, system, user string) (string, error) {
	p.calls++
	p.lastSystem = system
	p.lastUser = user
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *fakeProvider) Ping(context.Context) error { return p.err }

type fakePrompter struct {
	approve  bool
	remember bool
	calls    int
}

func (p *fakePrompter) RequestPermission(risk.Request) (bool, bool, error) {
	p.calls++
	return p.approve, p.remember, nil
}

func testConfig(mode string) *config.Config {
	return &config.Config{
		Permission: config.PermissionConfig{Mode: mode},
	}
}

func newTestSession(t *testing.T, mode string, prompter risk.Prompter, prov provider.Client) (*Session, *board.SimBoard) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}
	b := board.NewSimBoard("/work/demo.kicad_pcb")
	s := New(Options{
		Config:   testConfig(mode),
		Catalog:  cat,
		Provider: prov,
		Board:    b,
		Prompter: prompter,
	})
	return s, b
}

func TestCircuitGenerationFlow(t *testing.T) {
	s, _ := newTestSession(t, "ask_permission", nil, nil)

	reply, err := s.HandleMessage(context.Background(), "design me a usb4 flex cable")
	if err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}
	if s.Flow() != intent.FlowCircuitGenerated {
		t.Errorf("flow = %v, want CircuitGenerated", s.Flow())
	}
	if s.ActiveTemplate() == nil || s.ActiveTemplate().ID != "usb4_flex" {
		t.Errorf("active template = %+v", s.ActiveTemplate())
	}
	for _, want := range []string{"USB4", "complexity", "go to PCB"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}

	turns := s.Memory().Turns()
	if len(turns) != 2 {
		t.Fatalf("recorded %d turns, want 2", len(turns))
	}
	if !turns[1].IsCircuitRequest {
		t.Error("assistant turn of a circuit request should carry the flag")
	}
	if turns[0].IsCircuitRequest {
		t.Error("user turn should not carry the circuit-request flag")
	}
}

func TestNonCircuitExchangeNotFlagged(t *testing.T) {
	s, _ := newTestSession(t, "auto_approve_all", nil, nil)

	if _, err := s.HandleMessage(context.Background(), "add 2 copper layers"); err != nil {
		t.Fatal(err)
	}
	turns := s.Memory().Turns()
	if len(turns) != 2 || turns[1].IsCircuitRequest {
		t.Errorf("layer operation exchange should not be flagged as a circuit request")
	}
}

func TestMultilayerTransitionRequiresApproval(t *testing.T) {
	s, b := newTestSession(t, "auto_approve_all", nil, nil)
	ctx := context.Background()

	if _, err := s.HandleMessage(ctx, "make a usb4 flex cable"); err != nil {
		t.Fatal(err)
	}

	reply, err := s.HandleMessage(ctx, "go to pcb")
	if err != nil {
		t.Fatal(err)
	}
	if s.Flow() != intent.FlowLayersRecommended {
		t.Fatalf("flow = %v, want LayersRecommended", s.Flow())
	}
	if !strings.Contains(reply, "4 copper layers") {
		t.Errorf("recommendation missing layer count:\n%s", reply)
	}
	if b.CopperLayerCount() != 2 {
		t.Error("board mutated before approval")
	}

	reply, err = s.HandleMessage(ctx, "yes")
	if err != nil {
		t.Fatal(err)
	}
	if s.Flow() != intent.FlowPcbLayoutCreated {
		t.Errorf("flow = %v, want PcbLayoutCreated", s.Flow())
	}
	if b.CopperLayerCount() != 4 {
		t.Errorf("copper layers = %d, want 4 after approval", b.CopperLayerCount())
	}
	if !strings.Contains(reply, "Layout recommendations") {
		t.Errorf("reply missing layout guidance:\n%s", reply)
	}
}

func TestTwoLayerDesignSkipsApproval(t *testing.T) {
	s, b := newTestSession(t, "ask_permission", nil, nil)
	ctx := context.Background()

	if _, err := s.HandleMessage(ctx, "I need a power supply board"); err != nil {
		t.Fatal(err)
	}
	reply, err := s.HandleMessage(ctx, "go to pcb")
	if err != nil {
		t.Fatal(err)
	}
	if s.Flow() != intent.FlowPcbLayoutCreated {
		t.Errorf("flow = %v, want PcbLayoutCreated (2-layer skip)", s.Flow())
	}
	if b.CopperLayerCount() != 2 {
		t.Errorf("2-layer design should not touch the layer count")
	}
	if !strings.Contains(reply, "Layout recommendations") {
		t.Errorf("reply missing layout guidance:\n%s", reply)
	}
}

func TestAdvancedOperationApproved(t *testing.T) {
	prompter := &fakePrompter{approve: true}
	s, b := newTestSession(t, "ask_permission", prompter, nil)

	reply, err := s.HandleMessage(context.Background(), "add 2 copper layers")
	if err != nil {
		t.Fatal(err)
	}
	if prompter.calls != 1 {
		t.Errorf("prompter calls = %d, want 1", prompter.calls)
	}
	if b.CopperLayerCount() != 4 {
		t.Errorf("copper layers = %d, want 4", b.CopperLayerCount())
	}
	if !strings.Contains(reply, "Successfully added 2 copper layers") {
		t.Errorf("reply = %q", reply)
	}
}

func TestAdvancedOperationDenied(t *testing.T) {
	prompter := &fakePrompter{approve: false}
	s, b := newTestSession(t, "ask_permission", prompter, nil)

	reply, err := s.HandleMessage(context.Background(), "add 2 copper layers")
	if err != nil {
		t.Fatal(err)
	}
	if b.CopperLayerCount() != 2 {
		t.Error("denied mutation reached the board")
	}
	if !strings.Contains(reply, "will not make that change") {
		t.Errorf("reply = %q", reply)
	}
}

func TestReadOnlyModeAutoDenies(t *testing.T) {
	s, b := newTestSession(t, "read_only", nil, nil)

	reply, err := s.HandleMessage(context.Background(), "set the track width to 0.2mm")
	if err != nil {
		t.Fatal(err)
	}
	if b.TrackWidth() != 0.25 {
		t.Error("read-only mode mutated the board")
	}
	if !strings.Contains(reply, "Read-only") {
		t.Errorf("reply = %q", reply)
	}
}

func TestRememberedChoiceSkipsPrompt(t *testing.T) {
	prompter := &fakePrompter{approve: true, remember: true}
	s, b := newTestSession(t, "ask_permission", prompter, nil)
	ctx := context.Background()

	if _, err := s.HandleMessage(ctx, "add 2 copper layers"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.HandleMessage(ctx, "add layers to get to 6 layers"); err != nil {
		t.Fatal(err)
	}
	if prompter.calls != 1 {
		t.Errorf("prompter calls = %d, want 1 (second approval remembered)", prompter.calls)
	}
	if b.CopperLayerCount() != 6 {
		t.Errorf("copper layers = %d, want 6", b.CopperLayerCount())
	}
}

func TestPreconditionFailureIsPlainReply(t *testing.T) {
	s, b := newTestSession(t, "auto_approve_all", nil, nil)

	reply, err := s.HandleMessage(context.Background(), "add layers, 2 total")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Cannot change the layer count") {
		t.Errorf("reply = %q", reply)
	}
	if b.CopperLayerCount() != 2 {
		t.Error("failed precondition mutated the board")
	}
}

func TestModifySettingsAndUndo(t *testing.T) {
	s, b := newTestSession(t, "auto_approve_all", nil, nil)
	ctx := context.Background()

	reply, err := s.HandleMessage(ctx, "change the track width to 0.15mm")
	if err != nil {
		t.Fatal(err)
	}
	if b.TrackWidth() != 0.15 {
		t.Errorf("track width = %g, want 0.15", b.TrackWidth())
	}
	if !strings.Contains(reply, "Track width: 0.15mm") {
		t.Errorf("reply = %q", reply)
	}

	reply, err = s.HandleMessage(ctx, "undo")
	if err != nil {
		t.Fatal(err)
	}
	if b.TrackWidth() != 0.25 {
		t.Errorf("track width after undo = %g, want 0.25", b.TrackWidth())
	}
	if !strings.Contains(reply, "Undone") {
		t.Errorf("reply = %q", reply)
	}

	reply, err = s.HandleMessage(ctx, "undo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Nothing was undone") {
		t.Errorf("reply = %q", reply)
	}
}

func TestProviderErrorLeavesSessionUsable(t *testing.T) {
	prov := &fakeProvider{err: &provider.Error{Kind: provider.ErrAuth, Provider: "anthropic", Message: "invalid key"}}
	s, _ := newTestSession(t, "ask_permission", nil, prov)
	ctx := context.Background()

	_, err := s.HandleMessage(ctx, "what is a good decoupling strategy?")
	if err == nil {
		t.Fatal("expected provider error to surface")
	}
	if !provider.IsKind(err, provider.ErrAuth) {
		t.Errorf("error = %v, want ErrAuth", err)
	}

	// The session still works for local flows.
	if _, err := s.HandleMessage(ctx, "make an led strip controller"); err != nil {
		t.Fatalf("session unusable after provider error: %v", err)
	}
	if s.Flow() != intent.FlowCircuitGenerated {
		t.Errorf("flow = %v, want CircuitGenerated", s.Flow())
	}
}

func TestInformationalUsesComposedPrompt(t *testing.T) {
	prov := &fakeProvider{reply: "Use 100nF ceramics close to each supply pin."}
	s, _ := newTestSession(t, "ask_permission", nil, prov)
	ctx := context.Background()

	if _, err := s.HandleMessage(ctx, "make a power supply"); err != nil {
		t.Fatal(err)
	}
	reply, err := s.HandleMessage(ctx, "how should I place the decoupling caps?")
	if err != nil {
		t.Fatal(err)
	}
	if reply != prov.reply {
		t.Errorf("reply = %q", reply)
	}
	for _, want := range []string{"KiCat", "Current Board", "Active Circuit", "Recent Conversation"} {
		if !strings.Contains(prov.lastSystem, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

func TestNewCircuitResetsFlow(t *testing.T) {
	s, _ := newTestSession(t, "auto_approve_all", nil, nil)
	ctx := context.Background()

	if _, err := s.HandleMessage(ctx, "make a usb4 flex cable"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.HandleMessage(ctx, "go to pcb"); err != nil {
		t.Fatal(err)
	}
	if s.Flow() != intent.FlowLayersRecommended {
		t.Fatalf("flow = %v, want LayersRecommended", s.Flow())
	}

	if _, err := s.HandleMessage(ctx, "actually, make me an led strip controller instead"); err != nil {
		t.Fatal(err)
	}
	if s.Flow() != intent.FlowCircuitGenerated {
		t.Errorf("flow = %v, want the new circuit's flow", s.Flow())
	}
	if s.ActiveTemplate().ID != "led_controller" {
		t.Errorf("active template = %q, want led_controller", s.ActiveTemplate().ID)
	}
}

func TestStatus(t *testing.T) {
	s, _ := newTestSession(t, "ask_permission", nil, nil)
	status := s.Status()
	for _, want := range []string{"Flow state: Idle", "Consent mode: ask_permission", "Board:"} {
		if !strings.Contains(status, want) {
			t.Errorf("status missing %q:\n%s", want, status)
		}
	}
}
