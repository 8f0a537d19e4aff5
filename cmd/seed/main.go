package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/levenlabs/go-lflag"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/catalog"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/log"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/project"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
)

func main() {
	dir := lflag.String("dir", "seed", "Directory to write the catalog and sample project into")
	lflag.Configure()

	ctx := context.Background()

	log.Ctx(ctx).InfoContext(ctx, "writing catalog files", "dir", *dir)
	if err := catalog.Default().WriteDir(filepath.Join(*dir, "catalog")); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to write catalog", "error", err)
		os.Exit(1)
	}

	p := sampleProject()
	if err := p.Resolve(); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "sample project failed to resolve", "error", err)
		os.Exit(1)
	}
	path := filepath.Join(*dir, "project.json")
	log.Ctx(ctx).InfoContext(ctx, "writing sample project", "path", path)
	if err := p.Save(path); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to write project", "error", err)
		os.Exit(1)
	}

	log.Ctx(ctx).InfoContext(ctx, "done")
}

// sampleProject is a small single-block site: four 2-string trackers in two
// stacked columns feeding a combiner south of the array.
func sampleProject() *project.Project {
	p := &project.Project{
		Name: "sample-site",
		Modules: []types.ModuleSpec{{
			Manufacturer: "Longhorn",
			Model:        "LH-550",
			IscA:         14.0,
			ImpA:         13.1,
			VocV:         49.9,
			VmpV:         41.9,
			LengthMM:     2278,
			WidthMM:      1134,
			DepthMM:      35,
		}},
		Templates: []types.TrackerTemplate{{
			Name:              "lh-2x26",
			Module:            types.ModuleSpec{Model: "LH-550"},
			Orientation:       types.OrientationPortrait,
			ModulesPerString:  26,
			StringsPerTracker: 2,
			ModuleSpacingM:    0.025,
			MotorGapM:         1.2,
			MotorPlacement:    types.MotorBetweenStrings,
			MotorPosition:     1,
			ModulesHigh:       1,
		}},
		Settings: project.Settings{
			PolarityConvention: types.PolarityNegativeSouth,
			StringWiring:       types.StringWiringDaisyChain,
		},
	}

	block := &types.BlockConfig{
		ID:          "B1",
		WidthM:      80,
		HeightM:     160,
		RowSpacingM: 12,
		NSSpacingM:  2,
		Inverter: &types.InverterSpec{
			Manufacturer:   "Sunmax",
			Model:          "SM-4000",
			StringCapacity: 24,
			MPPTChannels:   12,
		},
		Device: &geometry.Point{X: 26, Y: 150},
		Wiring: &types.WiringConfig{Type: types.WiringHarness},
	}
	for col := 0; col < 2; col++ {
		for row := 0; row < 2; row++ {
			block.Trackers = append(block.Trackers, types.TrackerPosition{
				X:            20 + float64(col)*12,
				Y:            5 + float64(row)*64,
				TemplateName: "lh-2x26",
			})
		}
	}
	p.Blocks = []*types.BlockConfig{block}
	return p
}
