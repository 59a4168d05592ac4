// Package risk classifies board mutations by consequence and decides
// whether they need explicit user consent.
package risk

// Tier is the ordered risk classification of a mutation.
// The order is total: Safe < Low < Medium < High < Critical.
type Tier int

const (
	Safe Tier = iota
	Low
	Medium
	High
	Critical
)

func (t Tier) String() string {
	switch t {
	case Safe:
		return "safe"
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

// Description returns the user-facing explanation of a tier.
func (t Tier) Description() string {
	switch t {
	case Safe:
		return "Safe (cosmetic changes only)"
	case Low:
		return "Low risk (minor modifications)"
	case Medium:
		return "Medium risk (component/routing changes)"
	case High:
		return "High risk (significant design changes)"
	case Critical:
		return "Critical (netlist/structural changes)"
	default:
		return "Unknown risk"
	}
}

// MutationType identifies a kind of board modification.
type MutationType string

const (
	AddCopperLayers      MutationType = "add_copper_layers"
	ChangeLayerCount     MutationType = "change_layer_count"
	ModifyStackup        MutationType = "modify_stackup"
	ModifyBoardSettings  MutationType = "modify_board_settings"
	ChangeTrackWidth     MutationType = "change_track_width"
	ChangeViaSize        MutationType = "change_via_size"
	MoveComponent        MutationType = "move_component"
	RotateComponent      MutationType = "rotate_component"
	DeleteComponent      MutationType = "delete_component"
	AddComponent         MutationType = "add_component"
	ChangeComponentValue MutationType = "change_component_value"
	RerouteNet           MutationType = "reroute_net"
	AddTrack             MutationType = "add_track"
	DeleteNet            MutationType = "delete_net"
	SplitNet             MutationType = "split_net"
	MergeNets            MutationType = "merge_nets"
	UpdateSilkscreen     MutationType = "update_silkscreen"
	ModifyText           MutationType = "modify_text"
	ChangeColor          MutationType = "change_color"
)

// tierTable is the authoritative mutation-type classification.
var tierTable = map[MutationType]Tier{
	AddCopperLayers:  Critical,
	ChangeLayerCount: Critical,
	ModifyStackup:    Critical,
	DeleteNet:        Critical,
	SplitNet:         Critical,
	MergeNets:        Critical,

	ModifyBoardSettings:  High,
	ChangeTrackWidth:     High,
	ChangeViaSize:        High,
	DeleteComponent:      High,
	AddComponent:         High,
	ChangeComponentValue: High,

	MoveComponent:   Medium,
	RotateComponent: Medium,
	RerouteNet:      Medium,
	AddTrack:        Medium,

	UpdateSilkscreen: Safe,
	ModifyText:       Safe,
	ChangeColor:      Safe,
}

// Assess returns the risk tier for a mutation type. Unrecognized types
// get the conservative Medium default, so Assess is total.
func Assess(mt MutationType) Tier {
	if tier, ok := tierTable[mt]; ok {
		return tier
	}
	return Medium
}

// warningTable holds mutation-specific warnings shown with consent prompts.
var warningTable = map[MutationType][]string{
	AddCopperLayers: {
		"Adding copper layers will affect manufacturing cost",
		"Existing routing may need to be updated",
		"Layer stackup should be verified with the PCB manufacturer",
		"This change cannot be easily undone",
	},
	ModifyBoardSettings: {
		"Changing track/via sizes may affect existing routing",
		"New settings must meet manufacturing constraints",
		"DRC violations may be introduced",
	},
	ModifyStackup: {
		"Stackup changes affect impedance calculations",
		"Manufacturing cost and timeline may be affected",
		"Signal integrity analysis should be repeated",
	},
}

// Warnings returns operation-specific warnings, or nil when the mutation
// type has none registered.
func Warnings(mt MutationType) []string {
	return warningTable[mt]
}
