package catalog

import "strings"

// matchRule binds a keyword set to a template ID. Rules are tested in
// order; the first rule with any matching keyword wins. Keyword sets are
// disjoint across rules, so ordering only matters for readability.
type matchRule struct {
	templateID string
	keywords   []string
}

var matchRules = []matchRule{
	{"usb4_flex", []string{"usb4", "usb 4", "thunderbolt", "usb-c flex", "usb4 flex"}},
	{"usbc_lightning", []string{"lightning", "usbc lightning", "usb-c lightning"}},
	{"led_controller", []string{"led strip", "rgb led", "led controller", "pwm led"}},
	{"power_supply", []string{"power supply", "buck converter", "voltage regulator", "psu"}},
}

// Match identifies the most suitable circuit template for a free-text
// description. It is a pure function of the text: same input, same result.
// Returns nil when no keyword set matches.
func (c *Catalog) Match(description string) *Template {
	desc := strings.ToLower(description)

	for _, rule := range matchRules {
		for _, kw := range rule.keywords {
			if strings.Contains(desc, kw) {
				return c.templates[rule.templateID]
			}
		}
	}
	return nil
}
