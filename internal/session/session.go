// Package session drives one chat session: it classifies incoming
// messages, routes mutations through the consent gate and mutation
// engine, keeps the design flow state, and feeds the conversation
// memory back into provider requests.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smartcat-ai/kicat/internal/auditlog"
	"github.com/smartcat-ai/kicat/internal/board"
	"github.com/smartcat-ai/kicat/internal/catalog"
	"github.com/smartcat-ai/kicat/internal/config"
	"github.com/smartcat-ai/kicat/internal/intent"
	"github.com/smartcat-ai/kicat/internal/memory"
	"github.com/smartcat-ai/kicat/internal/provider"
	"github.com/smartcat-ai/kicat/internal/risk"
)

// Options carries the collaborators for one session. All state is
// created at session start and discarded at session end; nothing is
// shared between sessions.
type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Catalog  *catalog.Catalog
	Provider provider.Client
	Board    board.Accessor
	Prompter risk.Prompter
	Audit    *auditlog.Log
	WorkDir  string
}

// Session is the top-level driver for one conversation.
type Session struct {
	id         string
	logger     *zap.Logger
	catalog    *catalog.Catalog
	classifier *intent.Classifier
	gate       *risk.Gate
	engine     *board.Engine
	memory     *memory.Store
	provider   provider.Client
	audit      *auditlog.Log
	accessor   board.Accessor

	flow   intent.FlowState
	active *catalog.Template
}

// New assembles a session from its collaborators.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mode := risk.AskPermission
	memCfg := memory.Config{}
	if opts.Config != nil {
		mode = risk.ParseMode(opts.Config.Permission.Mode)
		memCfg = memory.Config{
			MaxTurns:     opts.Config.Memory.MaxTurns,
			MaxDecisions: opts.Config.Memory.MaxDecisions,
		}
	}

	return &Session{
		id:         uuid.New().String(),
		logger:     logger,
		catalog:    opts.Catalog,
		classifier: intent.NewClassifier(opts.Catalog),
		gate:       risk.NewGate(mode, opts.Prompter),
		engine:     board.NewEngine(opts.Board, logger),
		memory:     memory.NewStore(opts.WorkDir, memCfg),
		provider:   opts.Provider,
		audit:      opts.Audit,
		accessor:   opts.Board,
		flow:       intent.FlowIdle,
	}
}

// ID returns the session identifier used for audit records.
func (s *Session) ID() string { return s.id }

// Flow returns the current design flow state.
func (s *Session) Flow() intent.FlowState { return s.flow }

// ActiveTemplate returns the circuit template currently in flight, nil
// outside a design flow.
func (s *Session) ActiveTemplate() *catalog.Template { return s.active }

// Engine exposes the mutation engine for the status command.
func (s *Session) Engine() *board.Engine { return s.engine }

// Memory exposes the session's conversation store.
func (s *Session) Memory() *memory.Store { return s.memory }

// LoadMemory restores persisted memory from the work directory.
func (s *Session) LoadMemory() error { return s.memory.Load() }

// HandleMessage runs one message through the full pipeline and returns
// the composed reply. Provider failures are returned as errors; the
// session stays usable afterwards.
func (s *Session) HandleMessage(ctx context.Context, msg string) (string, error) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		return "", nil
	}
	lower := strings.ToLower(trimmed)

	if lower == "undo" || strings.HasPrefix(lower, "undo ") {
		return s.finish(trimmed, s.handleUndo(), false), nil
	}

	in := s.classifier.Classify(trimmed, s.flow)
	s.logger.Debug("classified message",
		zap.String("intent", in.Kind.String()),
		zap.String("flow", s.flow.String()))

	var reply string
	var err error
	switch in.Kind {
	case intent.KindCircuitRequest:
		reply = s.handleCircuit(in.Template)
	case intent.KindAdvancedOperation:
		reply, err = s.handleOperation(in.Operation)
	case intent.KindPcbTransition:
		reply = s.handleTransition()
	case intent.KindLayerApproval:
		reply, err = s.handleApproval()
	default:
		reply, err = s.handleInformational(ctx, trimmed)
	}
	if err != nil {
		return "", err
	}
	return s.finish(trimmed, reply, in.Kind == intent.KindCircuitRequest), nil
}

// finish records the exchange in memory and persists it.
func (s *Session) finish(userMsg, reply string, circuitRequest bool) string {
	s.memory.AddExchange(userMsg, reply, circuitRequest)
	s.memory.RecordDecision(userMsg, reply)
	if err := s.memory.Save(); err != nil {
		s.logger.Warn("failed to persist memory", zap.Error(err))
	}
	return reply
}

// handleCircuit starts a new design flow for the matched template,
// discarding any prior flow position.
func (s *Session) handleCircuit(t *catalog.Template) string {
	s.active = t
	s.flow = intent.FlowCircuitIdentified

	c := catalog.EstimateComplexity(t)

	var sb strings.Builder
	sb.WriteString(catalog.Describe(t))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Estimated layout complexity: %s (%d layers recommended)\n",
		c.Level, c.RecommendedLayers))
	for _, req := range c.SpecialRequirements {
		sb.WriteString(fmt.Sprintf("- %s\n", req))
	}
	sb.WriteString("\n")
	sb.WriteString(catalog.SchematicInstructions(t))
	sb.WriteString("\nSay \"go to PCB\" when you are ready to create the layout.")

	s.flow = intent.FlowCircuitGenerated
	s.logger.Info("circuit generated", zap.String("template", t.ID))
	return sb.String()
}

// handleTransition moves from a generated circuit toward a layout.
// Designs above two layers stop for explicit layer approval first.
func (s *Session) handleTransition() string {
	if s.active == nil {
		return "No circuit is active. Describe the circuit you want first."
	}
	s.flow = intent.FlowPcbTransitionRequested

	if s.active.EstimatedLayers > 2 {
		s.flow = intent.FlowLayersRecommended
		return s.renderLayerRecommendation()
	}
	return s.createLayout()
}

// renderLayerRecommendation proposes the template's layer count with
// stackup and manufacturing context, awaiting approval.
func (s *Session) renderLayerRecommendation() string {
	layers := s.active.EstimatedLayers
	stackup := board.SuggestStackup(layers)
	impact := board.ImpactForLayers(layers)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("This design works best on %d copper layers.\n\n", layers))
	sb.WriteString(fmt.Sprintf("%s:\n", stackup.Description))
	for _, l := range stackup.Layers {
		sb.WriteString(fmt.Sprintf("  - %s\n", l))
	}
	sb.WriteString(fmt.Sprintf("\nManufacturing impact: %s, lead time %s\n",
		impact.CostNote, impact.LeadTimeNote))
	sb.WriteString("\nShall I set the board up with this layer count?")
	return sb.String()
}

// handleApproval applies the recommended layer count through the
// consent gate, then creates the layout.
func (s *Session) handleApproval() (string, error) {
	if s.active == nil || s.flow != intent.FlowLayersRecommended {
		return "There is no pending layer recommendation to approve.", nil
	}

	target := s.active.EstimatedLayers
	reply, applied, err := s.gatedAddLayers(target,
		fmt.Sprintf("Set up %d copper layers for the %s design", target, s.active.Name))
	if err != nil {
		return "", err
	}
	if !applied {
		// Denied or failed: stay at LayersRecommended for another try.
		return reply, nil
	}

	return reply + "\n\n" + s.createLayout(), nil
}

// createLayout finishes the flow and renders the template's layout
// guidance.
func (s *Session) createLayout() string {
	s.flow = intent.FlowPcbLayoutCreated

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("PCB layout started for %s.\n\nLayout recommendations:\n", s.active.Name))
	for _, r := range catalog.LayoutRecommendations(s.active) {
		sb.WriteString(fmt.Sprintf("- %s\n", r))
	}
	return sb.String()
}

// handleOperation executes a parsed advanced operation behind the
// consent gate. Precondition failures take no partial action and are
// reported as a normal reply.
func (s *Session) handleOperation(op *intent.Operation) (string, error) {
	if ok, reason := s.engine.CanModify(); !ok {
		return reason, nil
	}

	switch op.Kind {
	case intent.OpAddLayers:
		target := op.LayerTarget
		if target == 0 {
			info, err := s.engine.LayerInfo()
			if err != nil {
				return "", err
			}
			target = info.CopperLayers + op.LayerDelta
		}
		if err := s.engine.CanAddCopperLayers(target); err != nil {
			return fmt.Sprintf("Cannot change the layer count: %v", err), nil
		}
		reply, _, err := s.gatedAddLayers(target,
			fmt.Sprintf("Increase the board to %d copper layers", target))
		return reply, err

	case intent.OpModifySettings:
		return s.gatedModifySettings(op.Settings)

	default:
		return "I did not recognize that board operation.", nil
	}
}

// gatedAddLayers runs the add-layers mutation through consent and the
// engine, recording the outcome. applied reports whether the board
// actually changed.
func (s *Session) gatedAddLayers(target int, description string) (reply string, applied bool, err error) {
	req := risk.NewRequest(risk.AddCopperLayers, description,
		fmt.Sprintf("Target copper layer count: %d", target))

	decision, err := s.gate.Resolve(req)
	if err != nil {
		return "", false, err
	}
	if !decision.Approved {
		s.recordAudit(req, decision, "denied before execution")
		return denialReply(decision), false, nil
	}

	msg, mErr := s.engine.AddCopperLayers(target)
	if mErr != nil {
		s.recordAudit(req, decision, mErr.Error())
		return fmt.Sprintf("The modification failed: %v", mErr), false, nil
	}
	s.recordAudit(req, decision, msg)
	return msg, true, nil
}

// gatedModifySettings runs a sparse settings change through consent
// and the engine.
func (s *Session) gatedModifySettings(change board.SettingsChange) (string, error) {
	req := risk.NewRequest(risk.ModifyBoardSettings,
		"Modify board design settings", describeChange(change))

	decision, err := s.gate.Resolve(req)
	if err != nil {
		return "", err
	}
	if !decision.Approved {
		s.recordAudit(req, decision, "denied before execution")
		return denialReply(decision), nil
	}

	msg, _, mErr := s.engine.ModifySettings(change)
	if mErr != nil {
		s.recordAudit(req, decision, mErr.Error())
		return fmt.Sprintf("The modification failed: %v", mErr), nil
	}
	s.recordAudit(req, decision, msg)
	return msg, nil
}

// handleUndo reverses the most recent reversible operation.
func (s *Session) handleUndo() string {
	msg, err := s.engine.UndoLast()
	if err != nil {
		return fmt.Sprintf("Nothing was undone: %v", err)
	}
	return msg
}

// handleInformational forwards the message to the AI provider with the
// composed system prompt.
func (s *Session) handleInformational(ctx context.Context, msg string) (string, error) {
	if s.provider == nil {
		return "I can generate circuits, adjust layers and settings, and answer questions once a provider is configured.", nil
	}
	reply, err := s.provider.Send(ctx, s.systemPrompt(), msg)
	if err != nil {
		s.logger.Warn("provider request failed", zap.Error(err))
		return "", err
	}
	return reply, nil
}

// recordAudit persists one gated mutation outcome.
func (s *Session) recordAudit(req risk.Request, d risk.Decision, message string) {
	entry := auditlog.Entry{
		ID:           req.ID,
		SessionID:    s.id,
		Mutation:     req.Mutation,
		Risk:         req.Risk.String(),
		Approved:     d.Approved,
		AutoResolved: d.AutoResolved,
		Message:      message,
	}
	if err := s.audit.Record(entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.Error(err))
	}
	s.logger.Info("mutation resolved",
		zap.String("mutation", string(req.Mutation)),
		zap.String("risk", req.Risk.String()),
		zap.Bool("approved", d.Approved))
}

func denialReply(d risk.Decision) string {
	if d.Reason != "" {
		return fmt.Sprintf("Modification not applied: %s.", d.Reason)
	}
	return "Understood, I will not make that change."
}

func describeChange(change board.SettingsChange) string {
	var parts []string
	appendPart := func(label string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s %gmm", label, *v))
		}
	}
	appendPart("track width", change.TrackWidth)
	appendPart("min track width", change.MinTrackWidth)
	appendPart("via size", change.ViaSize)
	appendPart("via drill", change.ViaDrill)
	appendPart("clearance", change.Clearance)
	return strings.Join(parts, ", ")
}
