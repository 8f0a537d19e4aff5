// Package tracker computes the per-string source-point geometry of a
// tracker: where each string's positive and negative terminals sit along
// the torque tube, after motor placement and polarity convention are
// applied. Results are offsets from the tracker origin (north end of the
// tube, Y increasing south).
package tracker

import (
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

// stringSpan is the along-tube extent of one logical string before the
// terminals are assigned.
type stringSpan struct {
	index   int
	top     float64 // north (smaller Y)
	bottom  float64 // south (larger Y)
	modules int
}

// ComputeStringPositions builds the ordered string list for one template.
// deviceY is the device's Y offset relative to the tracker origin; it is
// only consulted by the toward-device polarity conventions. The result is a
// fresh slice on every call, so repeated recomputation cannot accumulate
// state: identical inputs yield identical output, and callers replace any
// previously derived list wholesale.
func ComputeStringPositions(tpl *types.TrackerTemplate, conv types.PolarityConvention,
	mode types.StringWiring, deviceY float64) []types.StringPosition {
	if tpl == nil {
		return nil
	}

	spans := layoutSpans(tpl)
	out := make([]types.StringPosition, 0, len(spans))
	for _, s := range spans {
		posY, negY := terminals(s, mode)
		if flipPolarity(s, conv, deviceY) {
			posY, negY = negY, posY
		}
		out = append(out, types.StringPosition{
			Index:       s.index,
			Positive:    geometry.Point{X: 0, Y: posY},
			Negative:    geometry.Point{X: 0, Y: negY},
			ModuleCount: s.modules,
		})
	}
	return out
}

// layoutSpans stacks the strings along the tube, inserting the motor gap
// where the template calls for it.
func layoutSpans(tpl *types.TrackerTemplate) []stringSpan {
	spans := make([]stringSpan, 0, tpl.StringsPerTracker)
	stringLen := tpl.StringLengthM()
	y := 0.0
	for i := 0; i < tpl.StringsPerTracker; i++ {
		if tpl.MotorPlacement == types.MotorMiddleOfString && i == tpl.MotorStringIndex {
			// The designated string wraps around the motor: a north run, the
			// gap, then a south run. Its span covers the whole assembly.
			north := tpl.RunLengthM(tpl.MotorSplitNorth)
			south := tpl.RunLengthM(tpl.MotorSplitSouth)
			spans = append(spans, stringSpan{
				index:   i,
				top:     y,
				bottom:  y + north + tpl.MotorGapM + south,
				modules: tpl.ModulesPerString,
			})
			y = spans[len(spans)-1].bottom
		} else {
			spans = append(spans, stringSpan{
				index:   i,
				top:     y,
				bottom:  y + stringLen,
				modules: tpl.ModulesPerString,
			})
			y += stringLen
		}
		// between_strings: the gap follows the last string north of the
		// motor. When every string sits north of the motor no gap is emitted.
		if tpl.MotorPlacement == types.MotorBetweenStrings &&
			i+1 == tpl.MotorPosition && tpl.MotorPosition < tpl.StringsPerTracker {
			y += tpl.MotorGapM
		}
	}
	return spans
}

// terminals places the positive terminal at the string's geometric top and
// the negative at the bottom (daisy-chain) or alongside the positive
// (leapfrog), before any polarity convention is applied.
func terminals(s stringSpan, mode types.StringWiring) (posY, negY float64) {
	if mode == types.StringWiringLeapfrog {
		return s.top, s.top
	}
	return s.top, s.bottom
}

// flipPolarity decides whether the string's terminal Y coordinates swap
// under the given convention. The toward-device conventions compare the
// string's vertical midpoint to the device Y; an exactly centered string
// counts as north of the device.
func flipPolarity(s stringSpan, conv types.PolarityConvention, deviceY float64) bool {
	switch conv {
	case types.PolarityNegativeNorth:
		return true
	case types.PolarityNegativeTowardDevice:
		return !deviceSouthOf(s, deviceY)
	case types.PolarityPositiveTowardDevice:
		return deviceSouthOf(s, deviceY)
	default:
		// negative_south is the default and matches the base layout.
		return false
	}
}

// deviceSouthOf reports whether the device sits south of the string's
// midpoint. The tie goes to "device south" so the boundary case behaves
// like positive-toward-device under the default daisy-chain layout.
func deviceSouthOf(s stringSpan, deviceY float64) bool {
	mid := (s.top + s.bottom) / 2
	return mid <= deviceY
}
