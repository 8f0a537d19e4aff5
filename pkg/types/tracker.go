package types

import (
	"fmt"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
)

// validModulesHigh are the supported stacking factors.
var validModulesHigh = map[int]bool{1: true, 2: true, 4: true}

// TrackerTemplate describes one tracker configuration: which module it
// carries, how strings stack along the torque tube, and where the drive
// motor interrupts the stack. Templates live in a library keyed by Name and
// are referenced, not owned, by tracker placements.
type TrackerTemplate struct {
	Name   string     `json:"name"`
	Module ModuleSpec `json:"module"`

	Orientation       Orientation `json:"orientation"`
	ModulesPerString  int         `json:"modulesPerString"`
	StringsPerTracker int         `json:"stringsPerTracker"`

	// ModuleSpacingM is the along-tube gap between adjacent modules.
	ModuleSpacingM float64 `json:"moduleSpacingM"`
	// MotorGapM is the along-tube gap reserved for the drive motor.
	MotorGapM float64 `json:"motorGapM"`

	MotorPlacement MotorPlacement `json:"motorPlacement"`
	// MotorPosition is the 1-based number of strings north of the motor when
	// MotorPlacement is between_strings. 0 puts the motor at the north end;
	// StringsPerTracker puts every string north of it (no gap emitted).
	MotorPosition int `json:"motorPosition"`
	// MotorStringIndex designates the split string for middle_of_string.
	MotorStringIndex int `json:"motorStringIndex"`
	// MotorSplitNorth and MotorSplitSouth are the module counts of the two
	// runs of the split string; they must sum to ModulesPerString.
	MotorSplitNorth int `json:"motorSplitNorth"`
	MotorSplitSouth int `json:"motorSplitSouth"`

	// ModulesHigh is the stacking factor across the tube (1, 2 or 4).
	ModulesHigh int `json:"modulesHigh"`
}

// Validate rejects templates whose geometry cannot be computed.
func (t TrackerTemplate) Validate() error {
	if err := t.Module.Validate(); err != nil {
		return fmt.Errorf("template %s: %w", t.Name, err)
	}
	if !t.Orientation.valid() {
		return fmt.Errorf("template %s: unknown orientation %q", t.Name, t.Orientation)
	}
	if t.ModulesPerString <= 0 {
		return fmt.Errorf("template %s: modules per string must be positive, got %d", t.Name, t.ModulesPerString)
	}
	if t.StringsPerTracker <= 0 {
		return fmt.Errorf("template %s: strings per tracker must be positive, got %d", t.Name, t.StringsPerTracker)
	}
	if t.ModuleSpacingM < 0 || t.MotorGapM < 0 {
		return fmt.Errorf("template %s: spacing and motor gap cannot be negative", t.Name)
	}
	if !validModulesHigh[t.ModulesHigh] {
		return fmt.Errorf("template %s: modules high must be 1, 2 or 4, got %d", t.Name, t.ModulesHigh)
	}
	switch t.MotorPlacement {
	case MotorBetweenStrings:
		if t.MotorPosition < 0 || t.MotorPosition > t.StringsPerTracker {
			return fmt.Errorf("template %s: motor position %d outside [0, %d]",
				t.Name, t.MotorPosition, t.StringsPerTracker)
		}
	case MotorMiddleOfString:
		if t.MotorStringIndex < 0 || t.MotorStringIndex >= t.StringsPerTracker {
			return fmt.Errorf("template %s: motor string index %d outside [0, %d)",
				t.Name, t.MotorStringIndex, t.StringsPerTracker)
		}
		if t.MotorSplitNorth < 0 || t.MotorSplitSouth < 0 ||
			t.MotorSplitNorth+t.MotorSplitSouth != t.ModulesPerString {
			return fmt.Errorf("template %s: motor split %d+%d must equal modules per string %d",
				t.Name, t.MotorSplitNorth, t.MotorSplitSouth, t.ModulesPerString)
		}
	default:
		return fmt.Errorf("template %s: unknown motor placement %q", t.Name, t.MotorPlacement)
	}
	return nil
}

// ModulePitchM is the along-tube distance consumed by one module including
// spacing. Portrait mounts the module width along the tube; landscape mounts
// the length.
func (t TrackerTemplate) ModulePitchM() float64 {
	along := t.Module.WidthMM
	if t.Orientation == OrientationLandscape {
		along = t.Module.LengthMM
	}
	return along/1000 + t.ModuleSpacingM
}

// RunLengthM is the along-tube length of a contiguous run of n modules,
// accounting for the stacking factor.
func (t TrackerTemplate) RunLengthM(n int) float64 {
	if t.ModulesHigh <= 0 {
		return 0
	}
	return float64(n) / float64(t.ModulesHigh) * t.ModulePitchM()
}

// StringLengthM is the along-tube length of one full unsplit string.
func (t TrackerTemplate) StringLengthM() float64 {
	return t.RunLengthM(t.ModulesPerString)
}

// TubeLengthM is the full along-tube extent of the tracker including the
// motor gap when one is emitted.
func (t TrackerTemplate) TubeLengthM() float64 {
	length := float64(t.StringsPerTracker) * t.StringLengthM()
	switch t.MotorPlacement {
	case MotorBetweenStrings:
		if t.MotorPosition > 0 && t.MotorPosition < t.StringsPerTracker {
			length += t.MotorGapM
		}
	case MotorMiddleOfString:
		length += t.MotorGapM
	}
	return length
}

// WidthM is the across-tube extent of the tracker.
func (t TrackerTemplate) WidthM() float64 {
	across := t.Module.LengthMM
	if t.Orientation == OrientationLandscape {
		across = t.Module.WidthMM
	}
	return across / 1000 * float64(t.ModulesHigh)
}

// StringPosition is the derived source-point geometry of one logical string.
// Terminal coordinates are offsets from the tracker origin (the north end of
// the torque tube). StringPosition is never authored directly; it is rebuilt
// from the template, polarity convention and wiring mode.
type StringPosition struct {
	Index       int            `json:"index"`
	Positive    geometry.Point `json:"positive"`
	Negative    geometry.Point `json:"negative"`
	ModuleCount int            `json:"moduleCount"`
}

// TrackerPosition places one tracker on the block canvas. X is the torque
// tube centerline; Y is the north end of the tube in block coordinates.
type TrackerPosition struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`

	TemplateName string           `json:"templateName"`
	Template     *TrackerTemplate `json:"-"`

	// Strings is derived geometry; it is fully replaced on every recompute.
	Strings []StringPosition `json:"-"`
}

// Origin is the tracker's placement point in block coordinates.
func (t *TrackerPosition) Origin() geometry.Point {
	return geometry.Point{X: t.X, Y: t.Y}
}

// Bounds is the tracker footprint in block coordinates. Zero when the
// template reference is unresolved.
func (t *TrackerPosition) Bounds() geometry.Rect {
	if t.Template == nil {
		return geometry.Rect{X: t.X, Y: t.Y}
	}
	w := t.Template.WidthM()
	return geometry.Rect{
		X:      t.X - w/2,
		Y:      t.Y,
		Width:  w,
		Height: t.Template.TubeLengthM(),
	}
}

// NorthY and SouthY are the tracker's Y extents in block coordinates.
func (t *TrackerPosition) NorthY() float64 { return t.Y }

func (t *TrackerPosition) SouthY() float64 {
	if t.Template == nil {
		return t.Y
	}
	return t.Y + t.Template.TubeLengthM()
}

// AbsolutePositive and AbsoluteNegative translate a string's terminal
// offsets into block coordinates.
func (t *TrackerPosition) AbsolutePositive(s StringPosition) geometry.Point {
	return t.Origin().Add(s.Positive)
}

func (t *TrackerPosition) AbsoluteNegative(s StringPosition) geometry.Point {
	return t.Origin().Add(s.Negative)
}

// AbsoluteTerminal returns the requested terminal in block coordinates.
func (t *TrackerPosition) AbsoluteTerminal(s StringPosition, pol Polarity) geometry.Point {
	if pol == PolarityNegative {
		return t.AbsoluteNegative(s)
	}
	return t.AbsolutePositive(s)
}
