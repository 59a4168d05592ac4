package catalog

import "strings"

// ComplexityLevel is the estimated PCB layout difficulty tier.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "Low"
	ComplexityMedium ComplexityLevel = "Medium"
	ComplexityHigh   ComplexityLevel = "High"
)

// Complexity summarizes the layout requirements derived from a template.
type Complexity struct {
	RecommendedLayers   int
	Level               ComplexityLevel
	SpecialRequirements []string
	EstimatedSize       string
	ManufacturingNotes  []string
}

// Marker keyword sets scanned against component value/footprint strings.
var (
	highSpeedValues  = []string{"USB4", "THUNDERBOLT", "PCIE", "HDMI"}
	powerFootprints  = []string{"TO-", "DPAK", "D2PAK"}
	powerValues      = []string{"LDO", "BUCK", "BOOST", "VREG"}
	finePitchMarkers = []string{"QFN", "BGA", "0.4MM", "0.5MM"}
)

// EstimateComplexity derives the layout complexity tier and special
// requirements from a template. Pure and deterministic: it only scans the
// template's component value and footprint strings.
func EstimateComplexity(t *Template) Complexity {
	c := Complexity{
		RecommendedLayers: t.EstimatedLayers,
		Level:             ComplexityLow,
		EstimatedSize:     "Small",
	}

	var highSpeed, power, finePitch int

	for _, comp := range t.Components {
		value := strings.ToUpper(comp.Value)
		footprint := strings.ToUpper(comp.Footprint)

		if containsAny(value, highSpeedValues) {
			highSpeed++
			c.SpecialRequirements = append(c.SpecialRequirements,
				"Controlled impedance routing",
				"Length matching for differential pairs")
		}

		if containsAny(footprint, powerFootprints) || containsAny(value, powerValues) {
			power++
			c.SpecialRequirements = append(c.SpecialRequirements,
				"Thermal management",
				"Power plane design")
		}

		if containsAny(footprint, finePitchMarkers) {
			finePitch++
			c.SpecialRequirements = append(c.SpecialRequirements, "Fine-pitch component placement")
			c.ManufacturingNotes = append(c.ManufacturingNotes, "Advanced PCB fabrication required")
		}
	}

	switch {
	case highSpeed > 0 || t.EstimatedLayers > 4:
		c.Level = ComplexityHigh
		c.EstimatedSize = "Medium"
	case power > 2 || t.EstimatedLayers > 2:
		c.Level = ComplexityMedium
	}

	switch t.EstimatedLayers {
	case 4:
		c.ManufacturingNotes = append(c.ManufacturingNotes, "4-layer stackup: Sig-Gnd-Pwr-Sig recommended")
	case 6:
		c.ManufacturingNotes = append(c.ManufacturingNotes, "6-layer stackup: Sig-Gnd-Sig-Pwr-Sig-Gnd recommended")
	}

	if highSpeed > 0 {
		c.SpecialRequirements = append(c.SpecialRequirements, "50 ohm single-ended / 90 ohm differential impedance")
		c.ManufacturingNotes = append(c.ManufacturingNotes, "Impedance control required (+/- 10%)")
	}

	return c
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
