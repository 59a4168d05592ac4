package catalog

import (
	"fmt"
	"strings"
)

// Describe renders a human-readable summary of the circuit a template
// generates: components, key nets, and estimated PCB requirements.
func Describe(t *Template) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**%s** Circuit Generation\n\n", t.Name)
	fmt.Fprintf(&sb, "**Description:** %s\n\n", t.Description)
	fmt.Fprintf(&sb, "**Components (%d):**\n", len(t.Components))
	for _, comp := range t.Components {
		fmt.Fprintf(&sb, "  - %s: %s (%s)\n", comp.Ref, comp.Value, comp.Description)
	}

	fmt.Fprintf(&sb, "\n**Key Connections (%d nets):**\n", len(t.Nets))
	for i, net := range t.Nets {
		if i == 5 {
			fmt.Fprintf(&sb, "  - ... and %d more connections\n", len(t.Nets)-5)
			break
		}
		pins := net.Pins
		suffix := ""
		if len(pins) > 3 {
			suffix = fmt.Sprintf(" + %d more", len(pins)-3)
			pins = pins[:3]
		}
		fmt.Fprintf(&sb, "  - %s: %s%s\n", net.Name, strings.Join(pins, ", "), suffix)
	}

	fmt.Fprintf(&sb, "\n**Estimated PCB Requirements:**\n")
	fmt.Fprintf(&sb, "  - Recommended layers: %d\n", t.EstimatedLayers)
	if t.EstimatedLayers > 2 {
		fmt.Fprintf(&sb, "  - Board complexity: High\n")
		fmt.Fprintf(&sb, "  - Reason: High-speed signals require controlled impedance\n")
	} else {
		fmt.Fprintf(&sb, "  - Board complexity: Medium\n")
	}

	return sb.String()
}

// SchematicInstructions renders step-by-step schematic capture
// instructions for a template.
func SchematicInstructions(t *Template) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "**Schematic Creation Instructions for %s:**\n\n", t.Name)
	sb.WriteString("**Step 1: Create New Schematic**\n")
	sb.WriteString("  - Open the project manager and create or open a project\n")
	sb.WriteString("  - Open the schematic editor\n\n")

	sb.WriteString("**Step 2: Add Components**\n")
	for _, comp := range t.Components {
		fmt.Fprintf(&sb, "  - Add %s: %s (footprint: %s)\n", comp.Ref, comp.Value, comp.Footprint)
	}

	sb.WriteString("\n**Step 3: Create Connections**\n")
	for _, net := range t.Nets {
		fmt.Fprintf(&sb, "  - Connect net '%s' to pins: %s\n", net.Name, strings.Join(net.Pins, ", "))
	}

	sb.WriteString("\n**Step 4: Electrical Rules Check (ERC)**\n")
	sb.WriteString("  - Run the electrical rules checker and fix any violations\n\n")
	sb.WriteString("**Step 5: Generate Netlist**\n")
	sb.WriteString("  - Generate the netlist file and save it for PCB import\n\n")
	sb.WriteString("**Ready for PCB Layout!**\n")

	return sb.String()
}

// templateRecommendations maps template IDs to circuit-specific layout
// guidance, checked before the general recommendations are appended.
var templateRecommendations = map[string][]string{
	"usb4_flex": {
		"Keep USB4 differential pairs short and matched (+/- 0.1mm)",
		"Use 90 ohm differential impedance for USB4 pairs",
		"Add ground guard traces around high-speed signals",
		"Maintain 3W spacing between differential pairs",
		"Avoid vias in high-speed signal paths when possible",
		"Place decoupling capacitors close to connector pins",
	},
	"usbc_lightning": {
		"Keep authentication IC close to the Lightning connector",
		"Use controlled impedance for data lines",
		"Add ESD protection on all connector pins",
		"Ensure a robust power delivery path",
	},
	"led_controller": {
		"Use thick traces for LED power connections",
		"Add thermal vias under MOSFETs",
		"Keep PWM signals short to reduce EMI",
		"Add TVS diodes for ESD protection",
	},
	"power_supply": {
		"Use wide traces and copper pour for power paths",
		"Add thermal relief for power components",
		"Minimize switching node area and trace length",
		"Place input/output capacitors close to the IC",
		"Use a ground plane for noise reduction",
	},
}

var generalRecommendations = []string{
	"Run DRC (Design Rule Check) frequently",
	"Place components before routing",
	"Route critical signals first",
	"Verify all connections against the netlist",
}

// LayoutRecommendations returns the layout guidance list for a template:
// circuit-specific entries first, then general ones.
func LayoutRecommendations(t *Template) []string {
	recs := append([]string{}, templateRecommendations[t.ID]...)
	return append(recs, generalRecommendations...)
}
