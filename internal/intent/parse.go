package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/smartcat-ai/kicat/internal/board"
)

var intPattern = regexp.MustCompile(`\b\d+\b`)

// Millimetre value patterns per setting, e.g. "track width to 0.2mm".
var (
	trackWidthPattern = regexp.MustCompile(`track\s*width\D*?(\d+(?:\.\d+)?)\s*mm`)
	viaSizePattern    = regexp.MustCompile(`via\s*size\D*?(\d+(?:\.\d+)?)\s*mm`)
	viaDrillPattern   = regexp.MustCompile(`via\s*drill\D*?(\d+(?:\.\d+)?)\s*mm`)
	clearancePattern  = regexp.MustCompile(`clearance\D*?(\d+(?:\.\d+)?)\s*mm`)
)

// ParseLayerTarget extracts the layer parameter from an add-layers
// phrase. "change to 4 layers" style messages carry an absolute target
// (the last number wins); "add 2 layers" style messages carry a delta
// (the first number wins). Returns ok=false when no number is present.
func ParseLayerTarget(lower string) (target, delta int, ok bool) {
	nums := intPattern.FindAllString(lower, -1)
	if len(nums) == 0 {
		return 0, 0, false
	}

	if strings.Contains(lower, " to ") || strings.Contains(lower, "total") {
		n, err := strconv.Atoi(nums[len(nums)-1])
		if err != nil {
			return 0, 0, false
		}
		return n, 0, true
	}

	n, err := strconv.Atoi(nums[0])
	if err != nil {
		return 0, 0, false
	}
	return 0, n, true
}

// ParseSettings extracts millimetre values for each recognized setting
// phrase. Phrases without a unit-suffixed number are ignored.
func ParseSettings(lower string) board.SettingsChange {
	var change board.SettingsChange
	change.TrackWidth = matchMM(trackWidthPattern, lower)
	change.ViaSize = matchMM(viaSizePattern, lower)
	change.ViaDrill = matchMM(viaDrillPattern, lower)
	change.Clearance = matchMM(clearancePattern, lower)
	return change
}

func matchMM(re *regexp.Regexp, lower string) *float64 {
	m := re.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
