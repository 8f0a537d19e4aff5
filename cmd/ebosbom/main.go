package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/bom"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/catalog"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/log"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/project"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/wiring"

	"github.com/levenlabs/go-lflag"
	"github.com/levenlabs/go-llog"
)

// report is the top-level JSON document written to stdout.
type report struct {
	Project  string                 `json:"project"`
	Summary  *bom.Summary           `json:"summary"`
	Routings []*wiring.BlockRouting `json:"routings,omitempty"`
}

func main() {
	// init packages
	lib := catalog.Configured()

	projectPath := lflag.RequiredString("project", "Path to the project JSON file")
	format := lflag.String("format", "json", "Output format: json or csv")
	tier := lflag.String("copper-tier", "", "Copper pricing tier (overrides the project setting)")
	includeRoutings := lflag.Bool("routings", false, "Include per-block routing geometry in JSON output")

	// parse flags
	lflag.Configure()

	var level slog.Level
	// lflag automatically sets llog's level, but we need to set the slog level
	switch llog.GetLevel() {
	case llog.DebugLevel:
		level = slog.LevelDebug
	case llog.InfoLevel:
		level = slog.LevelInfo
	case llog.WarnLevel:
		level = slog.LevelWarn
	case llog.ErrorLevel:
		level = slog.LevelError
	default:
		panic(fmt.Errorf("unknown log level: %s", llog.GetLevel().String()))
	}

	// logs go to stderr; stdout carries the report
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	p, err := project.Load(*projectPath)
	if err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "failed to load project", "error", err)
		os.Exit(1)
	}
	if err := p.Validate(); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "project validation failed", "error", err)
		os.Exit(1)
	}
	if *tier != "" {
		p.Settings.CopperTier = *tier
	}

	routings := p.ComputeRoutings()
	summary := bom.Generate(p.Blocks, routings, lib, p.Settings.CopperTier)
	for _, w := range summary.Warnings {
		log.Ctx(ctx).WarnContext(ctx, "bom warning", "warning", w)
	}

	switch *format {
	case "json":
		r := report{Project: p.Name, Summary: summary}
		if *includeRoutings {
			r.Routings = routings
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to write report", "error", err)
			os.Exit(1)
		}
	case "csv":
		if err := writeCSV(os.Stdout, summary); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to write report", "error", err)
			os.Exit(1)
		}
	default:
		log.Ctx(ctx).ErrorContext(ctx, "unknown format", "format", *format)
		os.Exit(1)
	}

	log.Ctx(ctx).InfoContext(ctx, "bom generated",
		"blocks", len(summary.Blocks),
		"items", len(summary.Items),
		"total", summary.TotalPrice)
}

func writeCSV(w io.Writer, s *bom.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"category", "part_number", "description", "quantity", "unit", "unit_price", "extended_price"}); err != nil {
		return err
	}
	for _, it := range s.Items {
		rec := []string{
			it.Category,
			it.PartNumber,
			it.Description,
			strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			it.Unit,
			strconv.FormatFloat(it.UnitPrice, 'f', 2, 64),
			strconv.FormatFloat(it.ExtendedPrice, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"total", "", "", "", "", "", strconv.FormatFloat(s.TotalPrice, 'f', 2, 64)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
