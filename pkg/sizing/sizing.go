// Package sizing holds the NEC-derived ampacity, fuse and breaker tables and
// the pure selection functions built on them. Every function here is
// deterministic and side-effect free.
package sizing

const (
	// NECContinuousFactor is the 125% continuous-duty multiplier applied to
	// operating current before conductor and overcurrent selection.
	NECContinuousFactor = 1.25
	// CombinerFuseFactor is the compounded 156% (125% x 125%) multiplier
	// applied to Isc for combiner fuse sizing.
	CombinerFuseFactor = 1.56
)

// AmpacityEntry is one row of the 90°C conductor table.
type AmpacityEntry struct {
	AWG       string
	AmpacityA float64
}

// cableAmpacity90C is the 90°C-rated PV wire table, ascending by ampacity.
var cableAmpacity90C = []AmpacityEntry{
	{"10", 40},
	{"8", 55},
	{"6", 75},
	{"4", 95},
	{"2", 130},
	{"1/0", 170},
	{"2/0", 195},
	{"4/0", 260},
}

// fuseRatingsA are the standard inline/touch-safe fuse ratings, ascending.
var fuseRatingsA = []int{5, 10, 15, 20, 25, 30, 32, 35, 40, 45, 50, 60, 70, 80, 90,
	100, 110, 125, 150, 175, 200, 225, 250, 300, 350, 400}

// breakerRatingsA are the standard combiner-box breaker frames, ascending.
var breakerRatingsA = []int{100, 125, 150, 175, 200, 225, 250,
	300, 350, 400, 450, 500, 600, 700, 800}

// AmpacityTable returns a copy of the conductor table for display layers.
func AmpacityTable() []AmpacityEntry {
	return append([]AmpacityEntry(nil), cableAmpacity90C...)
}

// Ampacity returns the 90°C ampacity of a listed conductor size.
func Ampacity(awg string) (float64, bool) {
	for _, e := range cableAmpacity90C {
		if e.AWG == awg {
			return e.AmpacityA, true
		}
	}
	return 0, false
}

// SelectCableAWG returns the smallest listed conductor whose 90°C ampacity
// meets requiredA. When even the largest conductor falls short it is still
// returned, with ok false, so the caller can flag the condition instead of
// aborting.
func SelectCableAWG(requiredA float64) (string, bool) {
	for _, e := range cableAmpacity90C {
		if e.AmpacityA >= requiredA {
			return e.AWG, true
		}
	}
	return cableAmpacity90C[len(cableAmpacity90C)-1].AWG, false
}

// SelectFuse returns the smallest standard fuse rating at or above
// requiredA, clamping to the largest rating (ok false) when none suffices.
func SelectFuse(requiredA float64) (int, bool) {
	return selectRating(fuseRatingsA, requiredA)
}

// SelectBreaker returns the smallest standard breaker frame at or above
// requiredA, clamping to the largest frame (ok false) when none suffices.
func SelectBreaker(requiredA float64) (int, bool) {
	return selectRating(breakerRatingsA, requiredA)
}

func selectRating(table []int, requiredA float64) (int, bool) {
	for _, r := range table {
		if float64(r) >= requiredA {
			return r, true
		}
	}
	return table[len(table)-1], false
}

// OperatingCurrentA is the current carried by a segment fed by the given
// number of strings.
func OperatingCurrentA(impA float64, strings int) float64 {
	return impA * float64(strings)
}

// RequiredAmpacityA applies the continuous-duty factor to a segment's
// operating current. A non-positive factor falls back to the NEC default.
func RequiredAmpacityA(impA float64, strings int, factor float64) float64 {
	if factor <= 0 {
		factor = NECContinuousFactor
	}
	return OperatingCurrentA(impA, strings) * factor
}

// CombinerFuseCurrentA is the NEC-adjusted current used to size combiner
// fusing for a harness of the given string count.
func CombinerFuseCurrentA(iscA float64, strings int) float64 {
	return iscA * float64(strings) * CombinerFuseFactor
}

// CableUndersized reports whether a conductor cannot legally carry the
// segment's operating current once the continuous-duty factor is applied.
// Unknown conductor sizes are reported undersized. This drives a warning,
// not a failure; undersized configurations stay in the model.
func CableUndersized(operatingA, factor float64, awg string) bool {
	if factor <= 0 {
		factor = NECContinuousFactor
	}
	amp, ok := Ampacity(awg)
	if !ok {
		return true
	}
	return operatingA*factor > amp
}
