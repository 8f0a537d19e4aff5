package types

import "fmt"

// Orientation is the mounting orientation of a module on the torque tube.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// MotorPlacement selects how the tracker drive motor interrupts the string layout.
type MotorPlacement string

const (
	// MotorBetweenStrings places the motor gap between two whole strings.
	MotorBetweenStrings MotorPlacement = "between_strings"
	// MotorMiddleOfString splits one designated string into a north and a
	// south run around the motor.
	MotorMiddleOfString MotorPlacement = "middle_of_string"
)

// WiringType is the block-level wiring topology.
type WiringType string

const (
	// WiringHomerun runs every string's own cable directly to the device.
	WiringHomerun WiringType = "homerun"
	// WiringHarness combines string terminals into trunk harnesses per tracker.
	WiringHarness WiringType = "harness"
)

// PolarityConvention controls which end of each string carries the negative
// terminal after the base geometry is computed.
type PolarityConvention string

const (
	// PolarityNegativeSouth is the default: negative terminals at the south
	// (larger Y) end of every string.
	PolarityNegativeSouth PolarityConvention = "negative_south"
	PolarityNegativeNorth PolarityConvention = "negative_north"
	// PolarityNegativeTowardDevice orients each string so its negative
	// terminal faces the device; PolarityPositiveTowardDevice is the mirror.
	// Both use the string's vertical midpoint against the device Y, counting
	// an exactly-centered string as north of the device.
	PolarityNegativeTowardDevice PolarityConvention = "negative_toward_device"
	PolarityPositiveTowardDevice PolarityConvention = "positive_toward_device"
)

// StringWiring is how the modules within one string are chained.
type StringWiring string

const (
	// StringWiringDaisyChain places the two terminals at opposite ends of the string.
	StringWiringDaisyChain StringWiring = "daisy_chain"
	// StringWiringLeapfrog places both terminals at the same end of the string.
	StringWiringLeapfrog StringWiring = "leapfrog"
)

// RoutingMode controls whether user-dragged whip points stay on the tracker
// centerline (realistic) or may move freely (conceptual).
type RoutingMode string

const (
	RoutingRealistic  RoutingMode = "realistic"
	RoutingConceptual RoutingMode = "conceptual"
)

// Polarity identifies one leg of a DC circuit.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// Polarities lists both legs in the order routes are emitted.
var Polarities = []Polarity{PolarityPositive, PolarityNegative}

func (o Orientation) valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

func (m MotorPlacement) valid() bool {
	return m == MotorBetweenStrings || m == MotorMiddleOfString
}

func (c PolarityConvention) Validate() error {
	switch c {
	case PolarityNegativeSouth, PolarityNegativeNorth,
		PolarityNegativeTowardDevice, PolarityPositiveTowardDevice:
		return nil
	}
	return fmt.Errorf("unknown polarity convention: %q", string(c))
}

func (w StringWiring) Validate() error {
	switch w {
	case StringWiringDaisyChain, StringWiringLeapfrog:
		return nil
	}
	return fmt.Errorf("unknown string wiring mode: %q", string(w))
}
