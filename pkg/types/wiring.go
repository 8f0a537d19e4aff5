package types

import (
	"fmt"
	"sort"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
)

// HarnessGroup is one user-defined subset of a tracker's strings combined
// into a single trunk harness. Override fields are nil when the computed
// default applies.
type HarnessGroup struct {
	// StringIndices are the 0-based string indices combined by this harness.
	StringIndices []int `json:"stringIndices"`

	// CableAWG overrides the calculated trunk gauge when set.
	CableAWG *string `json:"cableAWG,omitempty"`
	// FuseRatingA overrides the calculated inline fuse rating when set.
	FuseRatingA *int `json:"fuseRatingA,omitempty"`
	// Fused marks the harness as carrying inline string fuses.
	Fused bool `json:"fused"`
}

// WiringConfig selects the wiring topology of a block and carries every
// user-authored customization: default gauges, harness breakdowns and
// dragged whip positions. It is owned by exactly one BlockConfig.
type WiringConfig struct {
	Type        WiringType  `json:"type"`
	RoutingMode RoutingMode `json:"routingMode"`

	// Default gauges per segment type; empty means size from current.
	StringCableAWG   string `json:"stringCableAWG,omitempty"`
	HarnessCableAWG  string `json:"harnessCableAWG,omitempty"`
	ExtenderCableAWG string `json:"extenderCableAWG,omitempty"`
	WhipCableAWG     string `json:"whipCableAWG,omitempty"`

	// HarnessGroupings maps a tracker string count to the harness breakdown
	// applied to every tracker with that many strings. Strings not claimed
	// by any group are collected into one implicit additional harness.
	HarnessGroupings map[int][]HarnessGroup `json:"harnessGroupings,omitempty"`

	// CustomWhipPoints overrides the computed whip point per tracker and
	// polarity (key from WhipKey). CustomHarnessWhipPoints does the same per
	// tracker, harness and polarity (key from HarnessWhipKey).
	CustomWhipPoints        map[string]geometry.Point `json:"customWhipPoints,omitempty"`
	CustomHarnessWhipPoints map[string]geometry.Point `json:"customHarnessWhipPoints,omitempty"`

	// SnapToFiveFeet snaps dragged points to 5 ft increments. NorthSouthOnly
	// restricts dragging to the north-south axis regardless of routing mode.
	// Constraints apply before snapping.
	SnapToFiveFeet bool `json:"snapToFiveFeet,omitempty"`
	NorthSouthOnly bool `json:"northSouthOnly,omitempty"`

	// CombinerBreakerA overrides the calculated combiner breaker rating.
	CombinerBreakerA *int `json:"combinerBreakerA,omitempty"`
}

// WhipKey keys CustomWhipPoints.
func WhipKey(tracker int, pol Polarity) string {
	return fmt.Sprintf("%d_%s", tracker, pol)
}

// HarnessWhipKey keys CustomHarnessWhipPoints.
func HarnessWhipKey(tracker, harness int, pol Polarity) string {
	return fmt.Sprintf("%d_%d_%s", tracker, harness, pol)
}

// Validate rejects malformed wiring configurations: unknown topology,
// out-of-range or doubly-claimed string indices in a grouping.
func (w *WiringConfig) Validate() error {
	switch w.Type {
	case WiringHomerun, WiringHarness:
	default:
		return fmt.Errorf("unknown wiring type: %q", string(w.Type))
	}
	switch w.RoutingMode {
	case "", RoutingRealistic, RoutingConceptual:
	default:
		return fmt.Errorf("unknown routing mode: %q", string(w.RoutingMode))
	}
	for count, groups := range w.HarnessGroupings {
		if count <= 0 {
			return fmt.Errorf("harness grouping keyed by non-positive string count %d", count)
		}
		claimed := make(map[int]bool)
		for gi, g := range groups {
			if len(g.StringIndices) == 0 {
				return fmt.Errorf("harness grouping for %d strings: group %d is empty", count, gi)
			}
			for _, si := range g.StringIndices {
				if si < 0 || si >= count {
					return fmt.Errorf("harness grouping for %d strings: index %d out of range", count, si)
				}
				if claimed[si] {
					return fmt.Errorf("harness grouping for %d strings: index %d claimed twice", count, si)
				}
				claimed[si] = true
			}
		}
	}
	return nil
}

// GroupsFor resolves the harness breakdown for a tracker with stringCount
// strings: the configured groups plus one implicit group of any unclaimed
// strings, or a single default group spanning all strings when no custom
// grouping exists. Homerun configs return one single-string group per string.
func (w *WiringConfig) GroupsFor(stringCount int) []HarnessGroup {
	if w.Type == WiringHomerun {
		groups := make([]HarnessGroup, stringCount)
		for i := range groups {
			groups[i] = HarnessGroup{StringIndices: []int{i}}
		}
		return groups
	}
	custom, ok := w.HarnessGroupings[stringCount]
	if !ok || len(custom) == 0 {
		all := make([]int, stringCount)
		for i := range all {
			all[i] = i
		}
		return []HarnessGroup{{StringIndices: all}}
	}
	groups := make([]HarnessGroup, 0, len(custom)+1)
	claimed := make(map[int]bool)
	for _, g := range custom {
		cp := g
		cp.StringIndices = append([]int(nil), g.StringIndices...)
		sort.Ints(cp.StringIndices)
		groups = append(groups, cp)
		for _, si := range g.StringIndices {
			claimed[si] = true
		}
	}
	var unclaimed []int
	for i := 0; i < stringCount; i++ {
		if !claimed[i] {
			unclaimed = append(unclaimed, i)
		}
	}
	if len(unclaimed) > 0 {
		groups = append(groups, HarnessGroup{StringIndices: unclaimed})
	}
	return groups
}
