// Package board applies risk-gated mutations to an external board model
// with snapshot/restore semantics and a linear operation history.
package board

import "errors"

// Sentinel errors for mutation preconditions and undo.
var (
	ErrNoBoard              = errors.New("no active board")
	ErrBoardNotSaved        = errors.New("board must be saved before modifications")
	ErrNotIncreasing        = errors.New("target layer count does not increase the current count")
	ErrLayerLimitExceeded   = errors.New("maximum of 30 copper layers supported")
	ErrOddLayerCount        = errors.New("multilayer boards use an even number of layers for manufacturing")
	ErrSettingsBackupFailed = errors.New("failed to back up current settings")
	ErrCannotUndo           = errors.New("cannot undo last operation")
	ErrNoSettingsProvided   = errors.New("no settings provided")

	// ErrUnsupportedSetting is returned by accessors for write surfaces a
	// host does not expose (e.g. clearance on older hosts). The engine
	// degrades it to a no-op change note rather than failing the call.
	ErrUnsupportedSetting = errors.New("setting not supported by this board accessor")
)

// Copper layer ID layout, mirroring the host's layer numbering: front
// copper, thirty inner layers, back copper.
const (
	LayerFCu  = 0
	LayerIn1  = 1
	LayerIn30 = 30
	LayerBCu  = 31

	// MaxCopperLayers is the host limitation on total copper layers.
	MaxCopperLayers = 30
)

// Layer is one enabled board layer.
type Layer struct {
	ID   int
	Name string
}

// Accessor is the narrow capability interface to the host's mutable board
// model. The engine owns no board state directly, only snapshots and
// history for the mutations it has itself issued.
type Accessor interface {
	// FileName returns the board's persisted identity, empty for an
	// unsaved/ephemeral design.
	FileName() string

	CopperLayerCount() int
	SetCopperLayerCount(n int) error

	// EnabledLayers returns all enabled layers in ascending ID order.
	EnabledLayers() []Layer
	EnableLayer(id int) error
	SetLayerName(id int, name string) error

	// ReadSettings captures the current settings surface. An error here
	// blocks any mutation that needed the backup.
	ReadSettings() (Snapshot, error)

	// Write surface, all values in millimetres. SetClearance may return
	// ErrUnsupportedSetting on hosts that do not expose it.
	SetTrackWidth(mm float64) error
	SetMinTrackWidth(mm float64) error
	SetViaSize(mm float64) error
	SetViaDrill(mm float64) error
	SetClearance(mm float64) error
}

// Snapshot is a captured copy of board settings taken immediately before
// a mutation. Exactly one snapshot is retained by the engine; a second
// mutation overwrites the previous one.
type Snapshot struct {
	CopperLayerCount int
	TrackWidth       float64
	ViaSize          float64
	ViaDrill         float64
	MinTrackWidth    float64
	MinViaSize       float64
	MinViaDrill      float64
	EnabledLayerIDs  []int
}

// LayerInfo is the read-side summary of the current layer setup.
type LayerInfo struct {
	CopperLayers int
	Enabled      []Layer
}
