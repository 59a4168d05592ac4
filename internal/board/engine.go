package board

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine applies and undoes mutations against a board accessor. It keeps
// a single settings snapshot (last backup wins) and an append-only
// operation history whose tail is the only reversible entry.
//
// The engine is single-writer: the orchestrator calls it from one
// goroutine, and mutations are synchronous and atomic from backup to
// commit.
type Engine struct {
	accessor Accessor
	logger   *zap.Logger

	backup  *Snapshot
	history []Operation
}

// NewEngine creates a mutation engine over the given accessor. accessor
// may be nil when no board is open; mutations then fail their
// precondition check.
func NewEngine(accessor Accessor, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{accessor: accessor, logger: logger}
}

// CanModify checks the mutation preconditions: an accessor is present and
// the design has a persisted identity.
func (e *Engine) CanModify() (bool, string) {
	if e.accessor == nil {
		return false, ErrNoBoard.Error()
	}
	if e.accessor.FileName() == "" {
		return false, ErrBoardNotSaved.Error()
	}
	return true, "Board ready for modifications"
}

// LayerInfo returns the current layer setup read from the accessor.
func (e *Engine) LayerInfo() (LayerInfo, error) {
	if e.accessor == nil {
		return LayerInfo{}, ErrNoBoard
	}
	return LayerInfo{
		CopperLayers: e.accessor.CopperLayerCount(),
		Enabled:      e.accessor.EnabledLayers(),
	}, nil
}

// History returns a copy of the operation history, oldest first.
func (e *Engine) History() []Operation {
	out := make([]Operation, len(e.history))
	copy(out, e.history)
	return out
}

// LastBackup returns the retained settings snapshot, nil before the first
// mutation.
func (e *Engine) LastBackup() *Snapshot {
	return e.backup
}

// CanAddCopperLayers checks whether the layer count can be raised to
// target without mutating anything.
func (e *Engine) CanAddCopperLayers(target int) error {
	if ok, reason := e.CanModify(); !ok {
		return fmt.Errorf("%s: %w", reason, ErrNoBoard)
	}
	current := e.accessor.CopperLayerCount()

	if target <= current {
		return fmt.Errorf("board already has %d copper layers (requested: %d): %w", current, target, ErrNotIncreasing)
	}
	if target > MaxCopperLayers {
		return fmt.Errorf("requested %d layers: %w", target, ErrLayerLimitExceeded)
	}
	if target%2 != 0 && target > 2 {
		return fmt.Errorf("requested %d layers: %w", target, ErrOddLayerCount)
	}
	return nil
}

// AddCopperLayers raises the copper layer count to target. It snapshots
// current settings, enables the missing inner layers in ascending order
// with sequential In<n>.Cu names, sets the new total, and records an
// AddLayersOp. Either the whole mutation applies after a successful
// backup, or nothing changes.
func (e *Engine) AddCopperLayers(target int) (string, error) {
	if err := e.CanAddCopperLayers(target); err != nil {
		return "", err
	}

	current := e.accessor.CopperLayerCount()
	toAdd := target - current

	if err := e.takeSnapshot(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSettingsBackupFailed, err)
	}

	enabled := make(map[int]bool)
	for _, l := range e.accessor.EnabledLayers() {
		enabled[l.ID] = true
	}

	var added []int
	for id := LayerIn1; id <= LayerIn30 && len(added) < toAdd; id++ {
		if enabled[id] {
			continue
		}
		if err := e.accessor.EnableLayer(id); err != nil {
			e.restoreSnapshot()
			return "", fmt.Errorf("failed to enable layer %d: %w", id, err)
		}
		name := fmt.Sprintf("In%d.Cu", id-LayerIn1+1)
		if err := e.accessor.SetLayerName(id, name); err != nil {
			e.restoreSnapshot()
			return "", fmt.Errorf("failed to name layer %d: %w", id, err)
		}
		added = append(added, id)
	}

	if err := e.accessor.SetCopperLayerCount(target); err != nil {
		e.restoreSnapshot()
		return "", fmt.Errorf("failed to set copper layer count: %w", err)
	}

	op := AddLayersOp{
		ID:          uuid.New().String(),
		FromCount:   current,
		ToCount:     target,
		AddedLayers: added,
		At:          time.Now(),
	}
	e.history = append(e.history, op)

	e.logger.Info("added copper layers",
		zap.Int("from", current),
		zap.Int("to", target),
		zap.Ints("layer_ids", added))

	return fmt.Sprintf("Successfully added %d copper layers (now %d total)", toAdd, target), nil
}

// ModifySettings applies a sparse settings change. Only provided fields
// are touched; an unsupported field on the current accessor becomes a
// no-op change note rather than a failure. A setter error after backup
// rolls the already-applied fields back before returning.
func (e *Engine) ModifySettings(change SettingsChange) (string, []string, error) {
	if ok, reason := e.CanModify(); !ok {
		return "", nil, fmt.Errorf("%s: %w", reason, ErrNoBoard)
	}
	if change.IsEmpty() {
		return "", nil, ErrNoSettingsProvided
	}

	if err := e.takeSnapshot(); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrSettingsBackupFailed, err)
	}

	var changes []string
	apply := func(set func(float64) error, value *float64, label string) error {
		if value == nil {
			return nil
		}
		if err := set(*value); err != nil {
			if err == ErrUnsupportedSetting {
				changes = append(changes, fmt.Sprintf("%s setting not available on this board", label))
				return nil
			}
			return err
		}
		changes = append(changes, fmt.Sprintf("%s: %gmm", label, *value))
		return nil
	}

	steps := []struct {
		set   func(float64) error
		value *float64
		label string
	}{
		{e.accessor.SetTrackWidth, change.TrackWidth, "Track width"},
		{e.accessor.SetMinTrackWidth, change.MinTrackWidth, "Min track width"},
		{e.accessor.SetViaSize, change.ViaSize, "Via size"},
		{e.accessor.SetViaDrill, change.ViaDrill, "Via drill"},
		{e.accessor.SetClearance, change.Clearance, "Clearance"},
	}

	for _, s := range steps {
		if err := apply(s.set, s.value, s.label); err != nil {
			e.restoreSnapshot()
			return "", nil, fmt.Errorf("failed to apply %s: %w", s.label, err)
		}
	}

	op := ModifySettingsOp{
		ID:       uuid.New().String(),
		Settings: change,
		Changes:  changes,
		At:       time.Now(),
	}
	e.history = append(e.history, op)

	e.logger.Info("modified board settings", zap.Strings("changes", changes))

	msg := "Settings modified: "
	for i, c := range changes {
		if i > 0 {
			msg += ", "
		}
		msg += c
	}
	return msg, changes, nil
}

// UndoLast reverses the most recent operation if its type is reversible.
// Reversal is a settings rewind from the retained snapshot: track width,
// via size, via drill, and copper layer count are restored exactly;
// inner layers enabled by an AddLayersOp are not re-disabled. A
// successful undo pops exactly one entry from the history.
func (e *Engine) UndoLast() (string, error) {
	if len(e.history) == 0 {
		return "", fmt.Errorf("no operations to undo: %w", ErrCannotUndo)
	}

	last := e.history[len(e.history)-1]

	switch last.(type) {
	case AddLayersOp, ModifySettingsOp:
		// reversible via snapshot rewind
	default:
		return "", fmt.Errorf("operation %q is not reversible: %w", last.Describe(), ErrCannotUndo)
	}

	if e.backup == nil {
		return "", fmt.Errorf("no settings backup available: %w", ErrCannotUndo)
	}

	if err := e.restoreSnapshot(); err != nil {
		return "", fmt.Errorf("failed to restore settings: %w", err)
	}

	e.history = e.history[:len(e.history)-1]

	e.logger.Info("undid last operation", zap.String("operation", last.Describe()))

	return fmt.Sprintf("Undone: %s (from %s)", last.Describe(), last.When().Format("2006-01-02 15:04:05")), nil
}

// takeSnapshot captures the current settings into the single backup slot,
// overwriting any previous snapshot.
func (e *Engine) takeSnapshot() error {
	snap, err := e.accessor.ReadSettings()
	if err != nil {
		return err
	}
	e.backup = &snap
	return nil
}

// restoreSnapshot rewinds the settings surface to the retained backup.
func (e *Engine) restoreSnapshot() error {
	if e.backup == nil {
		return ErrSettingsBackupFailed
	}
	if err := e.accessor.SetTrackWidth(e.backup.TrackWidth); err != nil {
		return err
	}
	if err := e.accessor.SetViaSize(e.backup.ViaSize); err != nil {
		return err
	}
	if err := e.accessor.SetViaDrill(e.backup.ViaDrill); err != nil {
		return err
	}
	if err := e.accessor.SetMinTrackWidth(e.backup.MinTrackWidth); err != nil {
		return err
	}
	return e.accessor.SetCopperLayerCount(e.backup.CopperLayerCount)
}
