// Package catalog holds the static part-number and pricing libraries the
// BOM generator matches computed requirements against. A Library is a
// read-only snapshot: computations receive it by value of reference and
// never mutate it; reloading produces a fresh Library.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

// ErrNoMatch is returned when no catalog part satisfies a computed
// requirement. Callers surface it as an explicit NO MATCH line item rather
// than dropping the requirement.
var ErrNoMatch = errors.New("no matching catalog part")

// HarnessPart is a factory harness assembly keyed by string count,
// polarity, drop spacing and trunk gauge.
type HarnessPart struct {
	PartNumber  string         `json:"partNumber"`
	StringCount int            `json:"stringCount"`
	Polarity    types.Polarity `json:"polarity"`
	SpacingFt   int            `json:"spacingFt"`
	TrunkAWG    string         `json:"trunkAWG"`
	DropAWG     string         `json:"dropAWG,omitempty"`
	Fused       bool           `json:"fused,omitempty"`
	FuseRatingA int            `json:"fuseRatingA,omitempty"`
}

// CableKind distinguishes the two factory-terminated cable products.
type CableKind string

const (
	CableWhip     CableKind = "whip"
	CableExtender CableKind = "extender"
)

// CablePart is a factory whip or extender of a fixed length.
type CablePart struct {
	PartNumber string         `json:"partNumber"`
	Kind       CableKind      `json:"kind"`
	AWG        string         `json:"awg"`
	Polarity   types.Polarity `json:"polarity"`
	LengthFt   int            `json:"lengthFt"`
}

// FusePart is an inline touch-safe fuse.
type FusePart struct {
	PartNumber string `json:"partNumber"`
	RatingA    int    `json:"ratingA"`
}

// CombinerPart is a combiner box. FuseHolderA is the largest input fuse its
// holders accept.
type CombinerPart struct {
	PartNumber      string `json:"partNumber"`
	MaxInputs       int    `json:"maxInputs"`
	BreakerA        int    `json:"breakerA"`
	FuseHolderA     int    `json:"fuseHolderA"`
	IntegratedWhips bool   `json:"integratedWhips,omitempty"`
}

// Library is the full set of catalogs plus pricing. Pricing maps part
// number to copper-price-tier unit prices.
type Library struct {
	Harnesses []HarnessPart                 `json:"harnesses"`
	Cables    []CablePart                   `json:"cables"`
	Fuses     []FusePart                    `json:"fuses"`
	Combiners []CombinerPart                `json:"combiners"`
	Pricing   map[string]map[string]float64 `json:"pricing"`
}

// spacingToleranceFt is how far a harness part's drop spacing may deviate
// from the computed string spacing and still fit in the field.
const spacingToleranceFt = 2

// MatchHarness finds the harness assembly for a computed signature.
func (l *Library) MatchHarness(stringCount int, pol types.Polarity, spacingFt int, trunkAWG string) (HarnessPart, error) {
	for _, p := range l.Harnesses {
		if p.StringCount == stringCount && p.Polarity == pol && p.TrunkAWG == trunkAWG &&
			abs(p.SpacingFt-spacingFt) <= spacingToleranceFt {
			return p, nil
		}
	}
	return HarnessPart{}, fmt.Errorf("harness %d-string %s %dft %s AWG: %w",
		stringCount, pol, spacingFt, trunkAWG, ErrNoMatch)
}

// MatchCable finds the shortest factory cable of the given kind, gauge and
// polarity that is at least lengthFt long.
func (l *Library) MatchCable(kind CableKind, awg string, pol types.Polarity, lengthFt int) (CablePart, error) {
	best := CablePart{}
	found := false
	for _, p := range l.Cables {
		if p.Kind != kind || p.AWG != awg || p.Polarity != pol || p.LengthFt < lengthFt {
			continue
		}
		if !found || p.LengthFt < best.LengthFt {
			best = p
			found = true
		}
	}
	if !found {
		return CablePart{}, fmt.Errorf("%s %s AWG %s %dft: %w", kind, awg, pol, lengthFt, ErrNoMatch)
	}
	return best, nil
}

// MatchFuse finds the fuse part for an exact rating.
func (l *Library) MatchFuse(ratingA int) (FusePart, error) {
	for _, p := range l.Fuses {
		if p.RatingA == ratingA {
			return p, nil
		}
	}
	return FusePart{}, fmt.Errorf("fuse %dA: %w", ratingA, ErrNoMatch)
}

// MatchCombiner finds the smallest combiner box that accommodates the
// required input count, breaker frame and fuse rating. Among boxes with
// the same input count, one with integrated whips wins.
func (l *Library) MatchCombiner(inputs, breakerA, maxFuseA int) (CombinerPart, error) {
	candidates := make([]CombinerPart, 0, len(l.Combiners))
	for _, p := range l.Combiners {
		if p.MaxInputs >= inputs && p.BreakerA >= breakerA && p.FuseHolderA >= maxFuseA {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return CombinerPart{}, fmt.Errorf("combiner %d inputs %dA breaker: %w", inputs, breakerA, ErrNoMatch)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].MaxInputs != candidates[j].MaxInputs {
			return candidates[i].MaxInputs < candidates[j].MaxInputs
		}
		if candidates[i].IntegratedWhips != candidates[j].IntegratedWhips {
			return candidates[i].IntegratedWhips
		}
		return candidates[i].BreakerA < candidates[j].BreakerA
	})
	return candidates[0], nil
}

// Price returns the unit price for a part at the given copper tier,
// falling back to the base tier when the part has no tier-specific price.
func (l *Library) Price(partNumber, tier string) (float64, bool) {
	tiers, ok := l.Pricing[partNumber]
	if !ok {
		return 0, false
	}
	if p, ok := tiers[tier]; ok {
		return p, true
	}
	if p, ok := tiers[BaseTier]; ok {
		return p, true
	}
	return 0, false
}

// BaseTier is the copper tier every part is priced at.
const BaseTier = "base"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
