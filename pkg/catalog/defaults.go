package catalog

import (
	"fmt"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

var (
	defaultHarnessCounts   = []int{2, 3, 4, 5, 6}
	defaultHarnessSpacings = []int{33, 49, 66, 98, 115}
	defaultTrunkAWGs       = []string{"10", "8", "6", "4"}
	defaultCableAWGs       = []string{"10", "8", "6", "4", "2"}
	defaultCableLengths    = []int{10, 15, 20, 25, 30, 40, 50, 60, 80, 100, 120, 150, 200}
	defaultFuseRatings     = []int{15, 20, 25, 30, 32, 35, 40, 45, 50}
	defaultCombinerInputs  = []int{8, 12, 16, 24, 32}
	defaultCombinerFrames  = []int{100, 125, 150, 200, 250, 400, 600}
)

// Default builds the built-in part library. Part numbers are synthetic but
// stable so pricing files written against one release keep matching the
// next.
func Default() *Library {
	l := &Library{Pricing: map[string]map[string]float64{}}

	for _, n := range defaultHarnessCounts {
		for _, spacing := range defaultHarnessSpacings {
			for _, awg := range defaultTrunkAWGs {
				for _, pol := range types.Polarities {
					p := HarnessPart{
						PartNumber:  fmt.Sprintf("HRN-%dS-%s-%dFT-%sAWG", n, polCode(pol), spacing, awg),
						StringCount: n,
						Polarity:    pol,
						SpacingFt:   spacing,
						TrunkAWG:    awg,
						DropAWG:     "10",
					}
					l.Harnesses = append(l.Harnesses, p)
					l.price(p.PartNumber, 18.0*float64(n)+0.9*float64(spacing)+awgAdder(awg))
				}
			}
		}
	}

	for _, kind := range []CableKind{CableWhip, CableExtender} {
		for _, awg := range defaultCableAWGs {
			for _, pol := range types.Polarities {
				for _, ft := range defaultCableLengths {
					p := CablePart{
						PartNumber: fmt.Sprintf("%s-%sAWG-%s-%dFT", kindCode(kind), awg, polCode(pol), ft),
						Kind:       kind,
						AWG:        awg,
						Polarity:   pol,
						LengthFt:   ft,
					}
					l.Cables = append(l.Cables, p)
					l.price(p.PartNumber, 6.5+float64(ft)*(0.55+awgAdder(awg)/40))
				}
			}
		}
	}

	for _, r := range defaultFuseRatings {
		p := FusePart{PartNumber: fmt.Sprintf("FUSE-%dA", r), RatingA: r}
		l.Fuses = append(l.Fuses, p)
		l.price(p.PartNumber, 11.0+0.15*float64(r))
	}

	// bulk PV wire is priced per foot but has no matchable part record
	for _, awg := range defaultCableAWGs {
		l.price("PV-WIRE-"+awg+"AWG", 0.42+awgAdder(awg)/30)
	}

	for _, in := range defaultCombinerInputs {
		holder := 30
		if in >= 24 {
			holder = 60
		}
		for _, frame := range defaultCombinerFrames {
			p := CombinerPart{
				PartNumber:  fmt.Sprintf("CMB-%dIN-%dA", in, frame),
				MaxInputs:   in,
				BreakerA:    frame,
				FuseHolderA: holder,
			}
			l.Combiners = append(l.Combiners, p)
			l.price(p.PartNumber, 900+40*float64(in)+1.2*float64(frame))

			w := p
			w.PartNumber += "-W"
			w.IntegratedWhips = true
			l.Combiners = append(l.Combiners, w)
			l.price(w.PartNumber, 900+52*float64(in)+1.2*float64(frame))
		}
	}

	return l
}

func (l *Library) price(partNumber string, base float64) {
	l.Pricing[partNumber] = map[string]float64{
		BaseTier: round2(base),
		"high":   round2(base * 1.18),
	}
}

func polCode(p types.Polarity) string {
	if p == types.PolarityPositive {
		return "P"
	}
	return "N"
}

func kindCode(k CableKind) string {
	if k == CableWhip {
		return "WHIP"
	}
	return "EXT"
}

func awgAdder(awg string) float64 {
	switch awg {
	case "10":
		return 0
	case "8":
		return 6
	case "6":
		return 14
	case "4":
		return 24
	case "2":
		return 38
	default:
		return 50
	}
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
