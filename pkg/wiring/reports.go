package wiring

import (
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/sizing"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

// HarnessConnection is the derived electrical report for one (tracker,
// harness) pair: combined string count, NEC-adjusted current, and the
// calculated versus user-overridden fuse and conductor selections. These
// are recomputed on demand from the block and wiring config, never
// persisted independently.
type HarnessConnection struct {
	Tracker     int     `json:"tracker"`
	Harness     int     `json:"harness"`
	StringCount int     `json:"stringCount"`
	ModuleIscA  float64 `json:"moduleIscA"`

	// NECCurrentA is Isc x strings x the compounded combiner factor.
	NECCurrentA float64 `json:"necCurrentA"`

	CalculatedFuseA int  `json:"calculatedFuseA"`
	FuseA           int  `json:"fuseA"`
	FuseOverridden  bool `json:"fuseOverridden,omitempty"`
	Fused           bool `json:"fused"`

	CalculatedAWG string `json:"calculatedAWG"`
	CableAWG      string `json:"cableAWG"`
	AWGOverridden bool   `json:"awgOverridden,omitempty"`
	FuseOversized bool   `json:"fuseOversized,omitempty"`
}

func newHarnessConnection(ti, gi int, g types.HarnessGroup, tpl *types.TrackerTemplate,
	wcfg *types.WiringConfig, opts Options) HarnessConnection {
	n := len(g.StringIndices)
	isc := tpl.Module.IscA
	nec := sizing.CombinerFuseCurrentA(isc, n)
	fuse, fuseOK := sizing.SelectFuse(nec)
	calcAWG, _ := sizing.SelectCableAWG(sizing.RequiredAmpacityA(tpl.Module.ImpA, n, opts.factor()))

	hc := HarnessConnection{
		Tracker:         ti,
		Harness:         gi,
		StringCount:     n,
		ModuleIscA:      isc,
		NECCurrentA:     nec,
		CalculatedFuseA: fuse,
		FuseA:           fuse,
		Fused:           g.Fused || n > 1,
		CalculatedAWG:   calcAWG,
		CableAWG:        harnessAWG(g, wcfg, sizing.RequiredAmpacityA(tpl.Module.ImpA, n, opts.factor())),
		FuseOversized:   !fuseOK,
	}
	if g.FuseRatingA != nil {
		hc.FuseA = *g.FuseRatingA
		hc.FuseOverridden = true
	}
	hc.AWGOverridden = hc.CableAWG != hc.CalculatedAWG
	return hc
}

// CombinerBoxConfig aggregates a block's harness connections into the
// device-level input picture: total NEC-adjusted current and the calculated
// versus overridden breaker frame. Derived, recompute-on-read.
type CombinerBoxConfig struct {
	BlockID     string              `json:"blockID"`
	Connections []HarnessConnection `json:"connections"`

	TotalCurrentA      float64 `json:"totalCurrentA"`
	CalculatedBreakerA int     `json:"calculatedBreakerA"`
	BreakerA           int     `json:"breakerA"`
	BreakerOverridden  bool    `json:"breakerOverridden,omitempty"`
	BreakerOversized   bool    `json:"breakerOversized,omitempty"`

	// MaxFuseA is the largest input fuse rating, used for combiner matching.
	MaxFuseA int `json:"maxFuseA"`
}

func buildCombinerReport(blockID string, wcfg *types.WiringConfig, conns []HarnessConnection) *CombinerBoxConfig {
	if len(conns) == 0 {
		return nil
	}
	cb := &CombinerBoxConfig{
		BlockID:     blockID,
		Connections: conns,
	}
	for _, c := range conns {
		cb.TotalCurrentA += c.NECCurrentA
		if c.FuseA > cb.MaxFuseA {
			cb.MaxFuseA = c.FuseA
		}
	}
	breaker, ok := sizing.SelectBreaker(cb.TotalCurrentA)
	cb.CalculatedBreakerA = breaker
	cb.BreakerA = breaker
	cb.BreakerOversized = !ok
	if wcfg.CombinerBreakerA != nil {
		cb.BreakerA = *wcfg.CombinerBreakerA
		cb.BreakerOverridden = true
	}
	return cb
}
