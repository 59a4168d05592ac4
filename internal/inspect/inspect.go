// Package inspect renders read-only reports about the current board
// without going through the mutation engine.
package inspect

import (
	"fmt"
	"strings"

	"github.com/smartcat-ai/kicat/internal/board"
)

// Report summarizes the board's layer setup and settings as plain text
// for the chat reply and the status command.
func Report(a board.Accessor) (string, error) {
	if a == nil {
		return "", board.ErrNoBoard
	}

	snap, err := a.ReadSettings()
	if err != nil {
		return "", fmt.Errorf("failed to read board settings: %w", err)
	}

	var sb strings.Builder
	name := a.FileName()
	if name == "" {
		name = "(unsaved)"
	}
	sb.WriteString(fmt.Sprintf("Board: %s\n", name))
	sb.WriteString(fmt.Sprintf("Copper layers: %d\n", a.CopperLayerCount()))

	layers := a.EnabledLayers()
	if len(layers) > 0 {
		names := make([]string, len(layers))
		for i, l := range layers {
			names[i] = l.Name
		}
		sb.WriteString(fmt.Sprintf("Enabled: %s\n", strings.Join(names, ", ")))
	}

	sb.WriteString("Settings:\n")
	sb.WriteString(fmt.Sprintf("  Track width: %gmm (min %gmm)\n", snap.TrackWidth, snap.MinTrackWidth))
	sb.WriteString(fmt.Sprintf("  Via size: %gmm, drill %gmm (min %gmm/%gmm)\n",
		snap.ViaSize, snap.ViaDrill, snap.MinViaSize, snap.MinViaDrill))

	return sb.String(), nil
}

// LayerReport describes the current stackup with the reference entry
// for its layer count.
func LayerReport(a board.Accessor) (string, error) {
	if a == nil {
		return "", board.ErrNoBoard
	}
	count := a.CopperLayerCount()
	s := board.SuggestStackup(count)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d copper layers)\n", s.Description, count))
	sb.WriteString(fmt.Sprintf("Typical applications: %s\n", s.Applications))
	sb.WriteString(fmt.Sprintf("Relative cost: %s\n", s.Cost))
	if s.Note != "" {
		sb.WriteString(s.Note + "\n")
	}
	return sb.String(), nil
}
