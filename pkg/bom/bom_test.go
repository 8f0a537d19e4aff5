package bom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/catalog"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/wiring"
)

func testTemplate() *types.TrackerTemplate {
	return &types.TrackerTemplate{
		Name: "bt-2x10",
		Module: types.ModuleSpec{
			Model:    "WT-500",
			IscA:     10.5,
			ImpA:     10.0,
			LengthMM: 2000,
			WidthMM:  1000,
		},
		Orientation:       types.OrientationPortrait,
		ModulesPerString:  10,
		StringsPerTracker: 2,
		MotorGapM:         1.0,
		MotorPlacement:    types.MotorBetweenStrings,
		MotorPosition:     1,
		ModulesHigh:       1,
	}
}

func testBlock(wcfg *types.WiringConfig) *types.BlockConfig {
	tpl := testTemplate()
	return &types.BlockConfig{
		ID:      "B1",
		WidthM:  50,
		HeightM: 50,
		Trackers: []types.TrackerPosition{
			{X: 10, Y: 5, TemplateName: tpl.Name, Template: tpl},
		},
		Device: &geometry.Point{X: 10, Y: 40},
		Wiring: wcfg,
	}
}

func testOpts() wiring.Options {
	return wiring.Options{
		Polarity:     types.PolarityNegativeSouth,
		StringWiring: types.StringWiringDaisyChain,
	}
}

func itemsOf(s *Summary, category string) []LineItem {
	var out []LineItem
	for _, it := range s.Items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out
}

func TestProcurementLengthFt(t *testing.T) {
	t.Run("rounds up to increment", func(t *testing.T) {
		// 20 ft of run becomes 21 ft with waste, procured as 25 ft
		assert.Equal(t, 25, ProcurementLengthFt(geometry.FeetToMeters(20)))
	})

	t.Run("exact multiple stays", func(t *testing.T) {
		assert.Equal(t, 105, ProcurementLengthFt(geometry.FeetToMeters(100)))
	})

	t.Run("minimum floor", func(t *testing.T) {
		assert.Equal(t, 10, ProcurementLengthFt(geometry.FeetToMeters(3)))
	})
}

func TestGenerateCableTotals(t *testing.T) {
	block := testBlock(&types.WiringConfig{Type: types.WiringHomerun})
	routing := &wiring.BlockRouting{
		BlockID: "B1",
		Routes: []wiring.Route{{
			Segment:     wiring.SegmentString,
			CableAWG:    "10",
			Polarity:    types.PolarityPositive,
			StringCount: 1,
			Points:      []geometry.Point{{X: 0, Y: 0}, {X: 100, Y: 0}},
		}},
	}

	s := Generate([]*types.BlockConfig{block}, []*wiring.BlockRouting{routing}, catalog.Default(), "")

	require.Len(t, s.CableTotals, 1)
	ct := s.CableTotals[0]
	assert.Equal(t, wiring.SegmentString, ct.Segment)
	assert.Equal(t, "10", ct.CableAWG)
	assert.InDelta(t, 100.0, ct.LengthM, 1e-9)
	assert.InDelta(t, 105.0, ct.LengthWithWasteM, 1e-9)

	wire := itemsOf(s, CategoryWire)
	require.Len(t, wire, 1)
	assert.Equal(t, "PV-WIRE-10AWG", wire[0].PartNumber)
	assert.Equal(t, "ft", wire[0].Unit)
	// 328.084 ft with 5% waste, rounded up to whole feet
	assert.Equal(t, 345.0, wire[0].Quantity)
	assert.True(t, wire[0].Matched)
	assert.Greater(t, wire[0].ExtendedPrice, 0.0)
}

func TestGenerateHarnessBlock(t *testing.T) {
	block := testBlock(&types.WiringConfig{Type: types.WiringHarness})
	routing := wiring.ComputeBlockRouting(block, testOpts())
	require.NotNil(t, routing.Combiner)

	s := Generate([]*types.BlockConfig{block}, []*wiring.BlockRouting{routing}, catalog.Default(), "")

	assert.Empty(t, s.Warnings)
	assert.Equal(t, []string{"B1"}, s.Blocks)

	t.Run("harness assemblies", func(t *testing.T) {
		items := itemsOf(s, CategoryHarness)
		// one per polarity
		require.Len(t, items, 2)
		for _, it := range items {
			assert.Equal(t, 1.0, it.Quantity)
			assert.True(t, it.Matched)
			// 10 m string length gives 33 ft drop spacing
			assert.Contains(t, it.PartNumber, "-33FT-")
			assert.Contains(t, it.PartNumber, "HRN-2S-")
		}
	})

	t.Run("extenders and whips", func(t *testing.T) {
		exts := itemsOf(s, CategoryExtender)
		require.Len(t, exts, 2)
		for _, it := range exts {
			// 10 m run procures as 35 ft; shortest stocked length is 40
			assert.Contains(t, it.PartNumber, "-40FT")
		}

		whips := itemsOf(s, CategoryWhip)
		require.Len(t, whips, 2)
		for _, it := range whips {
			assert.Contains(t, it.PartNumber, "-50FT")
		}
	})

	t.Run("fuses per string", func(t *testing.T) {
		items := itemsOf(s, CategoryFuse)
		require.Len(t, items, 1)
		assert.Equal(t, "FUSE-35A", items[0].PartNumber)
		assert.Equal(t, 2.0, items[0].Quantity)
	})

	t.Run("combiner sized by fuse holder", func(t *testing.T) {
		items := itemsOf(s, CategoryCombiner)
		require.Len(t, items, 1)
		// 35A fuses need the 60A-holder boxes
		assert.Equal(t, "CMB-24IN-100A-W", items[0].PartNumber)
	})

	t.Run("priced total", func(t *testing.T) {
		assert.Greater(t, s.TotalPrice, 0.0)
		var sum float64
		for _, it := range s.Items {
			sum += it.ExtendedPrice
		}
		assert.InDelta(t, sum, s.TotalPrice, 0.01)
	})
}

func TestGenerateNoMatch(t *testing.T) {
	block := testBlock(&types.WiringConfig{Type: types.WiringHarness})
	routing := wiring.ComputeBlockRouting(block, testOpts())

	empty := &catalog.Library{}
	s := Generate([]*types.BlockConfig{block}, []*wiring.BlockRouting{routing}, empty, "")

	require.NotEmpty(t, s.Items)
	for _, it := range s.Items {
		if it.Category == CategoryWire {
			continue
		}
		assert.Equal(t, NoMatchPartNumber, it.PartNumber, it.Description)
		assert.False(t, it.Matched)
		assert.Zero(t, it.ExtendedPrice)
	}
	assert.NotEmpty(t, s.Warnings)
}

func TestGenerateUnknownBlock(t *testing.T) {
	routing := &wiring.BlockRouting{BlockID: "ghost"}
	s := Generate(nil, []*wiring.BlockRouting{routing}, catalog.Default(), "")
	assert.Empty(t, s.Blocks)
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "ghost")
}
