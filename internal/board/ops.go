package board

import (
	"fmt"
	"strings"
	"time"
)

// Operation is a recorded, history-tracked mutation. Each concrete type
// carries enough data to describe and, where supported, reverse it.
type Operation interface {
	// When returns the time the operation was applied.
	When() time.Time
	// Describe returns a short human-readable summary.
	Describe() string
}

// AddLayersOp records a copper layer-count increase.
type AddLayersOp struct {
	ID          string
	FromCount   int
	ToCount     int
	AddedLayers []int // layer IDs enabled by this operation
	At          time.Time
}

func (op AddLayersOp) When() time.Time { return op.At }

func (op AddLayersOp) Describe() string {
	return fmt.Sprintf("added copper layers (%d -> %d)", op.FromCount, op.ToCount)
}

// ModifySettingsOp records a board settings change.
type ModifySettingsOp struct {
	ID       string
	Settings SettingsChange
	Changes  []string // per-key change descriptions, including no-op notes
	At       time.Time
}

func (op ModifySettingsOp) When() time.Time { return op.At }

func (op ModifySettingsOp) Describe() string {
	return "modified board settings: " + strings.Join(op.Changes, ", ")
}

// SettingsChange is a sparse settings update; nil fields are left
// untouched. All values are millimetres.
type SettingsChange struct {
	TrackWidth    *float64
	MinTrackWidth *float64
	ViaSize       *float64
	ViaDrill      *float64
	Clearance     *float64
}

// IsEmpty reports whether no field is set.
func (c SettingsChange) IsEmpty() bool {
	return c.TrackWidth == nil && c.MinTrackWidth == nil && c.ViaSize == nil &&
		c.ViaDrill == nil && c.Clearance == nil
}
