package board

import "fmt"

// StackupSuggestion describes a recommended layer stackup for a given
// copper layer count.
type StackupSuggestion struct {
	Description      string
	Layers           []string
	TypicalThickness string
	Applications     string
	Cost             string
	Note             string
}

var stackupTable = map[int]StackupSuggestion{
	2: {
		Description:      "Standard 2-layer PCB",
		Layers:           []string{"Top Copper", "Bottom Copper"},
		TypicalThickness: "1.6mm",
		Applications:     "Simple circuits, low-speed digital, analog",
		Cost:             "Low",
	},
	4: {
		Description:      "Standard 4-layer PCB",
		Layers:           []string{"Top Copper", "Ground Plane", "Power Plane", "Bottom Copper"},
		TypicalThickness: "1.6mm",
		Applications:     "Mixed-signal, medium-speed digital, better EMI control",
		Cost:             "Medium",
	},
	6: {
		Description:      "6-layer PCB",
		Layers:           []string{"Top", "Ground", "Inner Signal 1", "Inner Signal 2", "Power", "Bottom"},
		TypicalThickness: "1.6mm",
		Applications:     "High-speed digital, complex mixed-signal",
		Cost:             "Medium-High",
	},
	8: {
		Description:      "8-layer PCB",
		Layers:           []string{"Top", "Ground", "Signal 1", "Signal 2", "Power 1", "Signal 3", "Power 2", "Bottom"},
		TypicalThickness: "1.6mm",
		Applications:     "High-speed digital, DDR memory interfaces, complex power distribution",
		Cost:             "High",
	},
}

// SuggestStackup returns the stackup reference entry for the given layer
// count, falling back to a generic custom suggestion.
func SuggestStackup(layers int) StackupSuggestion {
	if s, ok := stackupTable[layers]; ok {
		return s
	}

	names := make([]string, layers)
	for i := range names {
		names[i] = fmt.Sprintf("Layer %d", i+1)
	}
	return StackupSuggestion{
		Description:      fmt.Sprintf("Custom %d-layer PCB", layers),
		Layers:           names,
		TypicalThickness: "Custom",
		Applications:     "Complex, high-density designs",
		Cost:             "High",
		Note:             "Consult with the PCB manufacturer for an optimal stackup",
	}
}

// ManufacturingImpact summarizes the cost and lead-time effect of a layer
// count, used in layer recommendations.
type ManufacturingImpact struct {
	CostNote     string
	LeadTimeNote string
}

// ImpactForLayers returns typical manufacturing impact notes for a target
// layer count.
func ImpactForLayers(layers int) ManufacturingImpact {
	impact := ManufacturingImpact{LeadTimeNote: "+2-3 days"}
	switch {
	case layers <= 2:
		impact.CostNote = "Base cost"
		impact.LeadTimeNote = "5-7 days"
	case layers <= 4:
		impact.CostNote = "1.5-2x base cost"
	case layers <= 6:
		impact.CostNote = "2-3x base cost"
	case layers <= 8:
		impact.CostNote = "3-4x base cost"
	default:
		impact.CostNote = "4-6x base cost"
		impact.LeadTimeNote = "+5-8 days"
	}
	return impact
}
