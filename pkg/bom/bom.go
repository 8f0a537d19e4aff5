// Package bom rolls computed block routings up into a priced bill of
// materials: cable lengths by segment and gauge, assembly counts matched
// against the part catalog, and per-part pricing at a chosen copper tier.
package bom

import (
	"fmt"
	"math"
	"sort"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/catalog"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/wiring"
)

const (
	// WasteFactor pads every computed cable length for slack and trim.
	WasteFactor = 1.05

	// Factory cables are only sold in 5 ft steps with a 10 ft floor.
	ProcurementIncrementFt = 5.0
	ProcurementMinimumFt   = 10.0

	// NoMatchPartNumber flags a requirement no catalog part satisfies.
	NoMatchPartNumber = "NO MATCH"
)

// Categories in the order line items are reported.
const (
	CategoryHarness  = "harness"
	CategoryExtender = "extender"
	CategoryWhip     = "whip"
	CategoryWire     = "wire"
	CategoryFuse     = "fuse"
	CategoryCombiner = "combiner"
)

var categoryOrder = map[string]int{
	CategoryHarness:  0,
	CategoryExtender: 1,
	CategoryWhip:     2,
	CategoryWire:     3,
	CategoryFuse:     4,
	CategoryCombiner: 5,
}

// ProcurementLengthFt converts a computed run to the orderable factory
// length: waste applied, rounded up to the procurement increment, never
// below the minimum.
func ProcurementLengthFt(rawM float64) int {
	ft := geometry.MetersToFeet(rawM) * WasteFactor
	ft = geometry.CeilToIncrement(ft, ProcurementIncrementFt)
	if ft < ProcurementMinimumFt {
		ft = ProcurementMinimumFt
	}
	return int(math.Round(ft))
}

// CableTotal is the aggregate run length for one (segment, gauge) pair.
type CableTotal struct {
	Segment          wiring.SegmentType `json:"segment"`
	CableAWG         string             `json:"cableAWG"`
	LengthM          float64            `json:"lengthM"`
	LengthWithWasteM float64            `json:"lengthWithWasteM"`
}

// LineItem is one BOM row. Quantity is a count for assemblies and feet for
// bulk wire; Unit names which.
type LineItem struct {
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	PartNumber    string  `json:"partNumber"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	UnitPrice     float64 `json:"unitPrice"`
	ExtendedPrice float64 `json:"extendedPrice"`
	Matched       bool    `json:"matched"`
}

// Summary is the rolled-up BOM across all computed blocks.
type Summary struct {
	Blocks      []string     `json:"blocks"`
	CopperTier  string       `json:"copperTier"`
	CableTotals []CableTotal `json:"cableTotals"`
	Items       []LineItem   `json:"items"`
	TotalPrice  float64      `json:"totalPrice"`
	Warnings    []string     `json:"warnings,omitempty"`
}

type generator struct {
	lib  *catalog.Library
	tier string

	cables map[cableKey]float64
	items  map[itemKey]*LineItem
	order  []itemKey

	summary *Summary
}

type cableKey struct {
	segment wiring.SegmentType
	awg     string
}

type itemKey struct {
	category string
	part     string
	desc     string
}

// Generate builds the BOM for a set of blocks and their computed routings,
// priced at the given copper tier. Routings are matched to blocks by ID;
// a routing without a block (or the reverse) produces a warning, not an
// error.
func Generate(blocks []*types.BlockConfig, routings []*wiring.BlockRouting, lib *catalog.Library, tier string) *Summary {
	if tier == "" {
		tier = catalog.BaseTier
	}
	g := &generator{
		lib:     lib,
		tier:    tier,
		cables:  map[cableKey]float64{},
		items:   map[itemKey]*LineItem{},
		summary: &Summary{CopperTier: tier},
	}

	byID := make(map[string]*types.BlockConfig, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}

	for _, br := range routings {
		block, ok := byID[br.BlockID]
		if !ok {
			g.warnf("routing for unknown block %q skipped", br.BlockID)
			continue
		}
		g.summary.Blocks = append(g.summary.Blocks, br.BlockID)
		g.addBlock(block, br)
	}

	g.finish()
	return g.summary
}

func (g *generator) addBlock(block *types.BlockConfig, br *wiring.BlockRouting) {
	for _, r := range br.Routes {
		g.cables[cableKey{r.Segment, r.CableAWG}] += r.LengthM()

		switch r.Segment {
		case wiring.SegmentHarness:
			if r.StringCount >= 2 {
				g.addHarness(block, r)
			}
		case wiring.SegmentWhip:
			g.addCable(catalog.CableWhip, r)
		case wiring.SegmentExtender:
			g.addCable(catalog.CableExtender, r)
		}
	}

	for _, hc := range br.Harnesses {
		if hc.Fused {
			g.addFuses(hc)
		}
	}

	if br.Combiner != nil {
		g.addCombiner(br.Combiner)
	}
}

func (g *generator) addHarness(block *types.BlockConfig, r wiring.Route) {
	tpl := block.Trackers[r.Tracker].Template
	if tpl == nil {
		g.warnf("block %s tracker %d has no resolved template", block.ID, r.Tracker)
		return
	}
	spacingFt := int(math.Round(geometry.MetersToFeet(tpl.StringLengthM())))
	desc := fmt.Sprintf("%d-string %s harness, %d ft drops, %s AWG trunk",
		r.StringCount, r.Polarity, spacingFt, r.CableAWG)

	p, err := g.lib.MatchHarness(r.StringCount, r.Polarity, spacingFt, r.CableAWG)
	if err != nil {
		g.addNoMatch(CategoryHarness, desc, 1, "ea")
		return
	}
	g.addItem(CategoryHarness, p.PartNumber, desc, 1, "ea")
}

func (g *generator) addCable(kind catalog.CableKind, r wiring.Route) {
	lengthFt := ProcurementLengthFt(r.LengthM())
	desc := fmt.Sprintf("%s %s AWG %s, %d ft", kind, r.CableAWG, r.Polarity, lengthFt)

	p, err := g.lib.MatchCable(kind, r.CableAWG, r.Polarity, lengthFt)
	if err != nil {
		g.addNoMatch(string(kind), desc, 1, "ea")
		return
	}
	g.addItem(string(kind), p.PartNumber, desc, 1, "ea")
}

func (g *generator) addFuses(hc wiring.HarnessConnection) {
	desc := fmt.Sprintf("%dA inline fuse", hc.FuseA)
	p, err := g.lib.MatchFuse(hc.FuseA)
	if err != nil {
		g.addNoMatch(CategoryFuse, desc, float64(hc.StringCount), "ea")
		return
	}
	g.addItem(CategoryFuse, p.PartNumber, desc, float64(hc.StringCount), "ea")
}

func (g *generator) addCombiner(cb *wiring.CombinerBoxConfig) {
	inputs := len(cb.Connections)
	desc := fmt.Sprintf("combiner, %d inputs, %dA breaker", inputs, cb.BreakerA)
	p, err := g.lib.MatchCombiner(inputs, cb.BreakerA, cb.MaxFuseA)
	if err != nil {
		g.addNoMatch(CategoryCombiner, desc, 1, "ea")
		return
	}
	g.addItem(CategoryCombiner, p.PartNumber, desc, 1, "ea")
}

// finish turns the accumulated cable map into totals plus bulk-wire line
// items, prices everything, and sorts the output deterministically.
func (g *generator) finish() {
	keys := make([]cableKey, 0, len(g.cables))
	for k := range g.cables {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].segment != keys[j].segment {
			return keys[i].segment < keys[j].segment
		}
		return keys[i].awg < keys[j].awg
	})
	for _, k := range keys {
		raw := g.cables[k]
		g.summary.CableTotals = append(g.summary.CableTotals, CableTotal{
			Segment:          k.segment,
			CableAWG:         k.awg,
			LengthM:          raw,
			LengthWithWasteM: raw * WasteFactor,
		})
		// string runs are field-cut from bulk wire; the other segments are
		// procured as factory assemblies counted above
		if k.segment == wiring.SegmentString && raw > 0 {
			ft := math.Ceil(geometry.MetersToFeet(raw) * WasteFactor)
			desc := fmt.Sprintf("PV wire, %s AWG", k.awg)
			g.addItem(CategoryWire, "PV-WIRE-"+k.awg+"AWG", desc, ft, "ft")
		}
	}

	for _, k := range g.order {
		item := g.items[k]
		if item.Matched {
			price, ok := g.lib.Price(item.PartNumber, g.tier)
			if !ok {
				g.warnf("no %s price for %s", g.tier, item.PartNumber)
			}
			item.UnitPrice = price
			item.ExtendedPrice = round2(price * item.Quantity)
		}
		g.summary.Items = append(g.summary.Items, *item)
		g.summary.TotalPrice += item.ExtendedPrice
	}
	g.summary.TotalPrice = round2(g.summary.TotalPrice)

	sort.SliceStable(g.summary.Items, func(i, j int) bool {
		a, b := g.summary.Items[i], g.summary.Items[j]
		if categoryOrder[a.Category] != categoryOrder[b.Category] {
			return categoryOrder[a.Category] < categoryOrder[b.Category]
		}
		return a.PartNumber < b.PartNumber
	})
}

func (g *generator) addItem(category, part, desc string, qty float64, unit string) {
	k := itemKey{category, part, desc}
	if item, ok := g.items[k]; ok {
		item.Quantity += qty
		return
	}
	g.items[k] = &LineItem{
		Category:    category,
		Description: desc,
		PartNumber:  part,
		Quantity:    qty,
		Unit:        unit,
		Matched:     true,
	}
	g.order = append(g.order, k)
}

func (g *generator) addNoMatch(category, desc string, qty float64, unit string) {
	k := itemKey{category, NoMatchPartNumber, desc}
	if item, ok := g.items[k]; ok {
		item.Quantity += qty
		return
	}
	g.items[k] = &LineItem{
		Category:    category,
		Description: desc,
		PartNumber:  NoMatchPartNumber,
		Quantity:    qty,
		Unit:        unit,
	}
	g.order = append(g.order, k)
	g.warnf("no catalog match: %s", desc)
}

func (g *generator) warnf(format string, args ...interface{}) {
	g.summary.Warnings = append(g.summary.Warnings, fmt.Sprintf(format, args...))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
