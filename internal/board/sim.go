package board

import (
	"errors"
	"sort"
)

// SimBoard is an in-process board accessor used when no host board is
// attached (demo sessions) and by tests. It starts as a saved 2-layer
// board with typical default settings.
type SimBoard struct {
	fileName     string
	copperCount  int
	enabled      map[int]string // layer ID -> name
	settings     Snapshot
	hasClearance bool
	clearance    float64

	// FailReadSettings makes ReadSettings fail, simulating a host that
	// cannot expose its settings surface.
	FailReadSettings bool

	// FailSetLayerName makes SetLayerName fail, simulating a host error
	// partway through a layer mutation.
	FailSetLayerName bool
}

// NewSimBoard creates a saved 2-layer simulated board.
func NewSimBoard(fileName string) *SimBoard {
	b := &SimBoard{
		fileName:    fileName,
		copperCount: 2,
		enabled: map[int]string{
			LayerFCu: "F.Cu",
			LayerBCu: "B.Cu",
		},
		hasClearance: true,
		clearance:    0.2,
	}
	b.settings = Snapshot{
		CopperLayerCount: 2,
		TrackWidth:       0.25,
		ViaSize:          0.8,
		ViaDrill:         0.4,
		MinTrackWidth:    0.2,
		MinViaSize:       0.4,
		MinViaDrill:      0.3,
	}
	return b
}

// NewUnsavedSimBoard creates a board without a persisted identity, which
// the engine refuses to mutate.
func NewUnsavedSimBoard() *SimBoard {
	b := NewSimBoard("")
	return b
}

// DisableClearance makes SetClearance report ErrUnsupportedSetting.
func (b *SimBoard) DisableClearance() {
	b.hasClearance = false
}

func (b *SimBoard) FileName() string      { return b.fileName }
func (b *SimBoard) CopperLayerCount() int { return b.copperCount }

func (b *SimBoard) SetCopperLayerCount(n int) error {
	b.copperCount = n
	return nil
}

func (b *SimBoard) EnabledLayers() []Layer {
	ids := make([]int, 0, len(b.enabled))
	for id := range b.enabled {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	layers := make([]Layer, len(ids))
	for i, id := range ids {
		layers[i] = Layer{ID: id, Name: b.enabled[id]}
	}
	return layers
}

func (b *SimBoard) EnableLayer(id int) error {
	if _, ok := b.enabled[id]; !ok {
		b.enabled[id] = ""
	}
	return nil
}

func (b *SimBoard) SetLayerName(id int, name string) error {
	if b.FailSetLayerName {
		return errors.New("layer naming rejected by host")
	}
	b.enabled[id] = name
	return nil
}

func (b *SimBoard) ReadSettings() (Snapshot, error) {
	if b.FailReadSettings {
		return Snapshot{}, ErrSettingsBackupFailed
	}
	snap := b.settings
	snap.CopperLayerCount = b.copperCount
	layers := b.EnabledLayers()
	snap.EnabledLayerIDs = make([]int, len(layers))
	for i, l := range layers {
		snap.EnabledLayerIDs[i] = l.ID
	}
	return snap, nil
}

func (b *SimBoard) SetTrackWidth(mm float64) error {
	b.settings.TrackWidth = mm
	return nil
}

func (b *SimBoard) SetMinTrackWidth(mm float64) error {
	b.settings.MinTrackWidth = mm
	return nil
}

func (b *SimBoard) SetViaSize(mm float64) error {
	b.settings.ViaSize = mm
	return nil
}

func (b *SimBoard) SetViaDrill(mm float64) error {
	b.settings.ViaDrill = mm
	return nil
}

func (b *SimBoard) SetClearance(mm float64) error {
	if !b.hasClearance {
		return ErrUnsupportedSetting
	}
	b.clearance = mm
	return nil
}

// TrackWidth reports the simulated current track width.
func (b *SimBoard) TrackWidth() float64 { return b.settings.TrackWidth }

// ViaSize reports the simulated current via size.
func (b *SimBoard) ViaSize() float64 { return b.settings.ViaSize }

// ViaDrill reports the simulated current via drill.
func (b *SimBoard) ViaDrill() float64 { return b.settings.ViaDrill }

// Clearance reports the simulated clearance value.
func (b *SimBoard) Clearance() float64 { return b.clearance }
