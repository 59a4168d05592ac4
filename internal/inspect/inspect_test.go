package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/smartcat-ai/kicat/internal/board"
)

func TestReport(t *testing.T) {
	b := board.NewSimBoard("/work/demo.kicad_pcb")

	report, err := Report(b)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	for _, want := range []string{"demo.kicad_pcb", "Copper layers: 2", "F.Cu", "Track width: 0.25mm"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReport_NoBoard(t *testing.T) {
	_, err := Report(nil)
	if !errors.Is(err, board.ErrNoBoard) {
		t.Errorf("error = %v, want ErrNoBoard", err)
	}
}

func TestReport_UnsavedBoard(t *testing.T) {
	report, err := Report(board.NewUnsavedSimBoard())
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !strings.Contains(report, "(unsaved)") {
		t.Errorf("report should flag unsaved boards:\n%s", report)
	}
}

func TestLayerReport(t *testing.T) {
	b := board.NewSimBoard("/work/demo.kicad_pcb")

	report, err := LayerReport(b)
	if err != nil {
		t.Fatalf("LayerReport failed: %v", err)
	}
	if !strings.Contains(report, "2 copper layers") {
		t.Errorf("report missing layer count:\n%s", report)
	}
	if !strings.Contains(report, "Relative cost: Low") {
		t.Errorf("report missing stackup data:\n%s", report)
	}
}
