package memory

import (
	"regexp"
	"strings"
	"time"
)

// refPattern matches schematic reference designators like R1, C12, U3.
var refPattern = regexp.MustCompile(`\b([RCLUDQJ]|SW|LED|IC)\d+\b`)

// decisionVerbs gate decision recording: an exchange is only a
// decision when the user or assistant text contains one of these.
var decisionVerbs = []string{
	"change", "modify", "move", "rotate", "delete", "add",
	"place", "route", "connect", "adjust", "update",
}

// Topic keyword tables, checked in precedence order: a decision that
// mentions both a component and routing is filed under Component.
var (
	componentKeywords = []string{
		"component", "resistor", "capacitor", "inductor", "diode",
		"transistor", "connector", "footprint", "value", "ic", "chip",
	}
	routingKeywords = []string{
		"route", "routing", "track", "trace", "via", "net",
		"differential", "impedance", "width",
	}
	placementKeywords = []string{
		"place", "placement", "position", "move", "rotate", "orient",
		"layout",
	}
)

// ExtractDecision derives a decision entry from one exchange. The
// exchange counts as a decision only when either side's text contains
// a decision verb; the category then comes from topic keywords across
// both texts. The second return is false for verb-free exchanges.
func ExtractDecision(userMsg, assistantMsg string) (Decision, bool) {
	combined := strings.ToLower(userMsg + " " + assistantMsg)

	var verbs []string
	for _, v := range decisionVerbs {
		if strings.Contains(combined, v) {
			verbs = append(verbs, v)
		}
	}
	if len(verbs) == 0 {
		return Decision{}, false
	}

	var keywords []string
	seen := make(map[string]bool)
	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	for _, ref := range refPattern.FindAllString(userMsg+" "+assistantMsg, -1) {
		add(ref)
	}

	category := CategoryGeneral
	matchAny := func(words []string) bool {
		hit := false
		for _, w := range words {
			if strings.Contains(combined, w) {
				add(w)
				hit = true
			}
		}
		return hit
	}

	// Precedence: component terms win over routing, routing over placement.
	if matchAny(componentKeywords) {
		category = CategoryComponent
	} else if matchAny(routingKeywords) {
		category = CategoryRouting
	} else if matchAny(placementKeywords) {
		category = CategoryPlacement
	}

	if len(keywords) == 0 {
		keywords = verbs
	}

	return Decision{
		Summary:   summarize(userMsg),
		Category:  category,
		Keywords:  keywords,
		Timestamp: time.Now(),
	}, true
}

// summarize collapses whitespace and truncates to the summary cap.
func summarize(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if len(s) > maxSummaryLen {
		s = s[:maxSummaryLen-3] + "..."
	}
	return s
}
