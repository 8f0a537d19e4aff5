// Package wiring turns a block's tracker placements into DC collection
// points, cable routes and derived combiner reports. Everything here is a
// pure recompute-from-scratch transformation: callers pass the wiring mode
// and polarity convention explicitly, and every call rebuilds the derived
// geometry wholesale so repeated recomputation cannot drift.
package wiring

import (
	"math"
	"sort"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/sizing"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/tracker"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

const (
	// DeviceWidthM is the combiner/inverter enclosure width. The positive
	// terminal sits at mid-height on the west edge, the negative on the east.
	DeviceWidthM = 0.9144

	// stackAlignToleranceM is how far apart two tracker centerlines may sit
	// and still count as the same stacked column for shadowing.
	stackAlignToleranceM = 1.0
)

// SegmentType classifies a cable route for sizing and BOM aggregation.
type SegmentType string

const (
	SegmentString   SegmentType = "string"
	SegmentHarness  SegmentType = "harness"
	SegmentExtender SegmentType = "extender"
	SegmentWhip     SegmentType = "whip"
)

// Options are the project-wide selections a routing computation needs.
// They are passed explicitly rather than read off any shared project state.
type Options struct {
	Polarity     types.PolarityConvention
	StringWiring types.StringWiring
	// NECFactor is the continuous-duty multiplier; zero means the NEC
	// default of 1.25.
	NECFactor float64
}

func (o Options) factor() float64 {
	if o.NECFactor > 0 {
		return o.NECFactor
	}
	return sizing.NECContinuousFactor
}

// CollectionPoint is one string terminal in block coordinates.
type CollectionPoint struct {
	Tracker  int            `json:"tracker"`
	String   int            `json:"string"`
	Polarity types.Polarity `json:"polarity"`
	Point    geometry.Point `json:"point"`
	CurrentA float64        `json:"currentA"`
}

// Route is one cable run. Points trace the route in wiring order; for
// rectilinear segments consecutive points differ in a single axis.
type Route struct {
	Tracker     int              `json:"tracker"`
	Harness     int              `json:"harness"`
	Polarity    types.Polarity   `json:"polarity"`
	Segment     SegmentType      `json:"segment"`
	CableAWG    string           `json:"cableAWG"`
	StringCount int              `json:"stringCount"`
	CurrentA    float64          `json:"currentA"`
	Undersized  bool             `json:"undersized,omitempty"`
	Points      []geometry.Point `json:"points"`
}

// LengthM is the route's cable length.
func (r Route) LengthM() float64 {
	return geometry.PolylineLength(r.Points)
}

// BlockRouting is the full derived wiring picture for one block.
type BlockRouting struct {
	BlockID          string              `json:"blockID"`
	CollectionPoints []CollectionPoint   `json:"collectionPoints"`
	Routes           []Route             `json:"routes"`
	Harnesses        []HarnessConnection `json:"harnesses"`
	Combiner         *CombinerBoxConfig  `json:"combiner,omitempty"`
}

// DeviceTerminal returns the device-side connection point for one polarity.
func DeviceTerminal(dev geometry.Point, pol types.Polarity) geometry.Point {
	if pol == types.PolarityPositive {
		return geometry.Point{X: dev.X - DeviceWidthM/2, Y: dev.Y}
	}
	return geometry.Point{X: dev.X + DeviceWidthM/2, Y: dev.Y}
}

// ComputeBlockRouting rebuilds the wiring geometry and derived reports for
// one block. Trackers without a resolved template are skipped. When the
// device is unplaced, collection points are still produced (for rendering)
// but no routes or combiner reports are.
func ComputeBlockRouting(block *types.BlockConfig, opts Options) *BlockRouting {
	br := &BlockRouting{BlockID: block.ID}
	wcfg := block.Wiring
	if wcfg == nil {
		wcfg = &types.WiringConfig{Type: types.WiringHomerun}
	}

	for ti := range block.Trackers {
		tr := &block.Trackers[ti]
		if tr.Template == nil {
			continue
		}
		devLocalY := 0.0
		if block.Device != nil {
			devLocalY = block.Device.Y - tr.Y
		}
		tr.Strings = tracker.ComputeStringPositions(tr.Template, opts.Polarity, opts.StringWiring, devLocalY)

		imp := tr.Template.Module.ImpA
		for _, s := range tr.Strings {
			for _, pol := range types.Polarities {
				br.CollectionPoints = append(br.CollectionPoints, CollectionPoint{
					Tracker:  ti,
					String:   s.Index,
					Polarity: pol,
					Point:    tr.AbsoluteTerminal(s, pol),
					CurrentA: imp,
				})
			}
		}
	}

	if block.Device == nil {
		return br
	}
	dev := *block.Device

	for ti := range block.Trackers {
		tr := &block.Trackers[ti]
		if tr.Template == nil {
			continue
		}
		if wcfg.Type == types.WiringHomerun {
			routeHomerunTracker(br, wcfg, tr, ti, dev, opts)
		} else {
			routeHarnessTracker(br, block, wcfg, tr, ti, dev, opts)
		}
	}

	br.Combiner = buildCombinerReport(block.ID, wcfg, br.Harnesses)
	return br
}

// routeHomerunTracker emits one direct string-to-device route per string and
// polarity.
func routeHomerunTracker(br *BlockRouting, wcfg *types.WiringConfig,
	tr *types.TrackerPosition, ti int, dev geometry.Point, opts Options) {
	tpl := tr.Template
	imp := tpl.Module.ImpA
	required := sizing.RequiredAmpacityA(imp, 1, opts.factor())

	for _, s := range tr.Strings {
		for _, pol := range types.Polarities {
			src := tr.AbsoluteTerminal(s, pol)
			awg := wcfg.StringCableAWG
			if awg == "" {
				awg, _ = sizing.SelectCableAWG(required)
			}
			br.Routes = append(br.Routes, Route{
				Tracker:     ti,
				Harness:     s.Index,
				Polarity:    pol,
				Segment:     SegmentString,
				CableAWG:    awg,
				StringCount: 1,
				CurrentA:    imp,
				Undersized:  sizing.CableUndersized(imp, opts.factor(), awg),
				Points:      geometry.RectilinearRoute(src, DeviceTerminal(dev, pol)),
			})
		}
		br.Harnesses = append(br.Harnesses, newHarnessConnection(
			ti, s.Index, types.HarnessGroup{StringIndices: []int{s.Index}}, tpl, wcfg, opts))
	}
}

// groupGeometry is the per-polarity working state of one harness group.
type groupGeometry struct {
	index int
	group types.HarnessGroup
	trunk []geometry.Point // nil for a single-string harness
	ext   geometry.Point   // outgoing (extender or direct) point
}

// routeHarnessTracker emits trunk, extender and whip routes for every
// harness group on one tracker.
func routeHarnessTracker(br *BlockRouting, block *types.BlockConfig, wcfg *types.WiringConfig,
	tr *types.TrackerPosition, ti int, dev geometry.Point, opts Options) {
	tpl := tr.Template
	imp := tpl.Module.ImpA
	groups := wcfg.GroupsFor(len(tr.Strings))
	multi := len(groups) > 1
	deviceBetween := dev.Y > tr.NorthY() && dev.Y < tr.SouthY()
	totalStrings := 0
	for _, g := range groups {
		totalStrings += len(g.StringIndices)
	}

	for _, pol := range types.Polarities {
		geoms := make([]groupGeometry, 0, len(groups))
		for gi, g := range groups {
			geoms = append(geoms, buildGroupGeometry(gi, g, tr, dev.Y, pol))
		}

		if multi && !deviceBetween {
			equalizeExtenderY(geoms, dev.Y)
		}

		if multi && deviceBetween {
			// Each harness terminates independently at the device's Y level;
			// no shared end-snapped whip point.
			for i := range geoms {
				gg := &geoms[i]
				whip := applyPointOverride(
					geometry.Point{X: tr.X, Y: dev.Y},
					customPoint(wcfg.CustomHarnessWhipPoints, types.HarnessWhipKey(ti, gg.index, pol)),
					wcfg)
				emitGroupRoutes(br, wcfg, tpl, ti, pol, gg, whip, opts)
				emitWhipRoute(br, wcfg, ti, gg.index, pol, whip, dev,
					len(gg.group.StringIndices), imp, opts)
			}
		} else {
			// One shared whip at the tracker end nearer the device, pushed
			// past any shadowing stacked tracker. Harnesses whose outgoing
			// point does not land on the whip arrive by extender.
			whip := applyPointOverride(
				geometry.Point{X: tr.X, Y: sharedWhipY(block, tr, ti, dev)},
				customPoint(wcfg.CustomWhipPoints, types.WhipKey(ti, pol)),
				wcfg)
			for i := range geoms {
				emitGroupRoutes(br, wcfg, tpl, ti, pol, &geoms[i], whip, opts)
			}
			emitWhipRoute(br, wcfg, ti, 0, pol, whip, dev, totalStrings, imp, opts)
		}
	}

	for gi, g := range groups {
		br.Harnesses = append(br.Harnesses, newHarnessConnection(ti, gi, g, tpl, wcfg, opts))
	}
}

// buildGroupGeometry collects the group's terminals for one polarity and
// orients the trunk from the far end toward the device-facing end, so
// current accumulates monotonically as the trunk approaches its outgoing
// point.
func buildGroupGeometry(gi int, g types.HarnessGroup, tr *types.TrackerPosition,
	deviceY float64, pol types.Polarity) groupGeometry {
	pts := make([]geometry.Point, 0, len(g.StringIndices))
	for _, si := range g.StringIndices {
		for _, s := range tr.Strings {
			if s.Index == si {
				pts = append(pts, tr.AbsoluteTerminal(s, pol))
				break
			}
		}
	}
	sortPointsByY(pts)

	gg := groupGeometry{index: gi, group: g}
	if len(pts) == 1 {
		// A single-string harness has no trunk; its collection point is its
		// outgoing point.
		gg.ext = pts[0]
		return gg
	}
	north, south := pts[0], pts[len(pts)-1]
	if math.Abs(south.Y-deviceY) <= math.Abs(north.Y-deviceY) {
		gg.trunk = pts
		gg.ext = south
	} else {
		gg.trunk = reversePoints(pts)
		gg.ext = north
	}
	return gg
}

// equalizeExtenderY lines up the outgoing points of a two-harness tracker so
// both meet the shared whip at the same Y, avoiding a diagonal extender run.
// The harness farther from the device grows: when the device sits south of
// the two points' midpoint the north harness is extended to the south one's
// Y, and vice versa.
func equalizeExtenderY(geoms []groupGeometry, deviceY float64) {
	if len(geoms) != 2 || geoms[0].ext.Y == geoms[1].ext.Y {
		return
	}
	north, south := 0, 1
	if geoms[north].ext.Y > geoms[south].ext.Y {
		north, south = south, north
	}
	mid := (geoms[0].ext.Y + geoms[1].ext.Y) / 2
	grow, targetY := south, geoms[north].ext.Y
	if deviceY > mid {
		grow, targetY = north, geoms[south].ext.Y
	}
	gg := &geoms[grow]
	extended := geometry.Point{X: gg.ext.X, Y: targetY}
	if gg.trunk == nil {
		gg.trunk = []geometry.Point{gg.ext, extended}
	} else {
		gg.trunk = append(gg.trunk, extended)
	}
	gg.ext = extended
}

// emitGroupRoutes appends the trunk route and, when the group's outgoing
// point does not coincide with the whip, the extender route.
func emitGroupRoutes(br *BlockRouting, wcfg *types.WiringConfig, tpl *types.TrackerTemplate,
	ti int, pol types.Polarity, gg *groupGeometry, whip geometry.Point, opts Options) {
	n := len(gg.group.StringIndices)
	imp := tpl.Module.ImpA
	operating := sizing.OperatingCurrentA(imp, n)
	required := sizing.RequiredAmpacityA(imp, n, opts.factor())

	if gg.trunk != nil {
		awg := harnessAWG(gg.group, wcfg, required)
		br.Routes = append(br.Routes, Route{
			Tracker:     ti,
			Harness:     gg.index,
			Polarity:    pol,
			Segment:     SegmentHarness,
			CableAWG:    awg,
			StringCount: n,
			CurrentA:    operating,
			Undersized:  sizing.CableUndersized(operating, opts.factor(), awg),
			Points:      append([]geometry.Point(nil), gg.trunk...),
		})
	}

	if gg.ext == whip {
		// The harness already terminates at the whip; no extender run.
		return
	}
	awg := wcfg.ExtenderCableAWG
	if awg == "" {
		awg, _ = sizing.SelectCableAWG(required)
	}
	br.Routes = append(br.Routes, Route{
		Tracker:     ti,
		Harness:     gg.index,
		Polarity:    pol,
		Segment:     SegmentExtender,
		CableAWG:    awg,
		StringCount: n,
		CurrentA:    operating,
		Undersized:  sizing.CableUndersized(operating, opts.factor(), awg),
		Points:      geometry.RectilinearRoute(gg.ext, whip),
	})
}

// emitWhipRoute appends the whip-to-device run, horizontal then vertical.
func emitWhipRoute(br *BlockRouting, wcfg *types.WiringConfig, ti, harness int,
	pol types.Polarity, whip geometry.Point, dev geometry.Point, strings int, imp float64, opts Options) {
	operating := sizing.OperatingCurrentA(imp, strings)
	awg := wcfg.WhipCableAWG
	if awg == "" {
		awg, _ = sizing.SelectCableAWG(sizing.RequiredAmpacityA(imp, strings, opts.factor()))
	}
	br.Routes = append(br.Routes, Route{
		Tracker:     ti,
		Harness:     harness,
		Polarity:    pol,
		Segment:     SegmentWhip,
		CableAWG:    awg,
		StringCount: strings,
		CurrentA:    operating,
		Undersized:  sizing.CableUndersized(operating, opts.factor(), awg),
		Points:      geometry.RectilinearRoute(whip, DeviceTerminal(dev, pol)),
	})
}

// sharedWhipY returns the Y of the tracker's shared whip point: the tracker
// end nearer the device, pushed past any stacked tracker sitting between
// that end and the device. A shadowed tracker therefore reaches its whip by
// extender, since the whip lands beyond the shadowing tracker.
func sharedWhipY(block *types.BlockConfig, tr *types.TrackerPosition, ti int, dev geometry.Point) float64 {
	nearY := tr.NorthY()
	if math.Abs(dev.Y-tr.SouthY()) < math.Abs(dev.Y-tr.NorthY()) {
		nearY = tr.SouthY()
	}
	deviceSouth := dev.Y >= nearY
	for changed := true; changed; {
		changed = false
		for tj := range block.Trackers {
			o := &block.Trackers[tj]
			if tj == ti || o.Template == nil {
				continue
			}
			if math.Abs(o.X-tr.X) > stackAlignToleranceM {
				continue
			}
			lo, hi := nearY, dev.Y
			if lo > hi {
				lo, hi = hi, lo
			}
			if o.SouthY() <= lo || o.NorthY() >= hi {
				continue
			}
			if deviceSouth && o.SouthY() > nearY {
				nearY = o.SouthY()
				changed = true
			} else if !deviceSouth && o.NorthY() < nearY {
				nearY = o.NorthY()
				changed = true
			}
		}
	}
	return nearY
}

// applyPointOverride replaces a computed point with a user-dragged one,
// applying positional constraints before the optional 5 ft snap. Outside
// conceptual mode (and always under the strict north-south constraint) the
// X coordinate stays pinned to the computed centerline.
func applyPointOverride(computed geometry.Point, custom *geometry.Point, wcfg *types.WiringConfig) geometry.Point {
	if custom == nil {
		return computed
	}
	p := *custom
	free := wcfg.RoutingMode == types.RoutingConceptual && !wcfg.NorthSouthOnly
	if !free {
		p.X = computed.X
	}
	if wcfg.SnapToFiveFeet {
		step := geometry.FeetToMeters(5)
		p.Y = geometry.SnapToIncrement(p.Y, step)
		if free {
			p.X = geometry.SnapToIncrement(p.X, step)
		}
	}
	return p
}

func customPoint(m map[string]geometry.Point, key string) *geometry.Point {
	if m == nil {
		return nil
	}
	if p, ok := m[key]; ok {
		return &p
	}
	return nil
}

func harnessAWG(g types.HarnessGroup, wcfg *types.WiringConfig, requiredA float64) string {
	if g.CableAWG != nil && *g.CableAWG != "" {
		return *g.CableAWG
	}
	if wcfg.HarnessCableAWG != "" {
		return wcfg.HarnessCableAWG
	}
	awg, _ := sizing.SelectCableAWG(requiredA)
	return awg
}

func sortPointsByY(pts []geometry.Point) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].Y < pts[j].Y })
}

func reversePoints(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
