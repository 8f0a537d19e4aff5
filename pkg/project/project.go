// Package project ties the design model together: a named set of module
// specs, tracker templates and blocks plus project-wide settings, with JSON
// persistence and the top-level compute entry points.
package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/bom"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/catalog"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/types"
	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/wiring"
)

// Settings are the project-wide selections. They are copied into explicit
// wiring.Options at compute time; nothing downstream reads them through a
// back-reference.
type Settings struct {
	PolarityConvention types.PolarityConvention `json:"polarityConvention,omitempty"`
	StringWiring       types.StringWiring       `json:"stringWiring,omitempty"`
	// NECFactor overrides the 1.25 continuous-duty multiplier when positive.
	NECFactor  float64 `json:"necFactor,omitempty"`
	CopperTier string  `json:"copperTier,omitempty"`
}

// Project is the persisted design document.
type Project struct {
	Name      string                  `json:"name"`
	Modules   []types.ModuleSpec      `json:"modules,omitempty"`
	Templates []types.TrackerTemplate `json:"templates,omitempty"`
	Blocks    []*types.BlockConfig    `json:"blocks,omitempty"`
	Settings  Settings                `json:"settings"`
}

// Load reads and resolves a project file.
func Load(path string) (*Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}
	p := &Project{}
	if err := json.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}
	if err := p.Resolve(); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the project file. Resolved pointers are not persisted; Load
// rebuilds them.
func (p *Project) Save(path string) error {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	return nil
}

// Resolve wires names to structs: fills template module specs from the
// project module library and attaches template pointers to every tracker
// position. Blocks referencing an unknown template fail here rather than
// silently computing nothing.
func (p *Project) Resolve() error {
	modules := map[string]types.ModuleSpec{}
	for _, m := range p.Modules {
		if _, ok := modules[m.Model]; ok {
			return fmt.Errorf("duplicate module model %q", m.Model)
		}
		modules[m.Model] = m
	}

	templates := map[string]*types.TrackerTemplate{}
	for i := range p.Templates {
		tpl := &p.Templates[i]
		if _, ok := templates[tpl.Name]; ok {
			return fmt.Errorf("duplicate template %q", tpl.Name)
		}
		// a template may name a library module instead of embedding the spec
		if tpl.Module.IscA == 0 && tpl.Module.Model != "" {
			m, ok := modules[tpl.Module.Model]
			if !ok {
				return fmt.Errorf("template %q references unknown module %q", tpl.Name, tpl.Module.Model)
			}
			tpl.Module = m
		}
		templates[tpl.Name] = tpl
	}

	for _, b := range p.Blocks {
		for i := range b.Trackers {
			tr := &b.Trackers[i]
			name := tr.TemplateName
			if name == "" && b.TemplateName != "" {
				name = b.TemplateName
			}
			if name == "" {
				return fmt.Errorf("block %s tracker %d has no template", b.ID, i)
			}
			tpl, ok := templates[name]
			if !ok {
				return fmt.Errorf("block %s tracker %d references unknown template %q", b.ID, i, name)
			}
			tr.TemplateName = name
			tr.Template = tpl
		}
	}
	return nil
}

// Validate checks the resolved project. Resolve must have run.
func (p *Project) Validate() error {
	for _, m := range p.Modules {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("module %q: %w", m.Model, err)
		}
	}
	for i := range p.Templates {
		if err := p.Templates[i].Validate(); err != nil {
			return fmt.Errorf("template %q: %w", p.Templates[i].Name, err)
		}
	}
	seen := map[string]bool{}
	for _, b := range p.Blocks {
		if seen[b.ID] {
			return fmt.Errorf("duplicate block %q", b.ID)
		}
		seen[b.ID] = true
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %q: %w", b.ID, err)
		}
	}
	return nil
}

// WiringOptions builds the explicit per-computation options from settings.
func (p *Project) WiringOptions() wiring.Options {
	return wiring.Options{
		Polarity:     p.Settings.PolarityConvention,
		StringWiring: p.Settings.StringWiring,
		NECFactor:    p.Settings.NECFactor,
	}
}

// ComputeRoutings runs the routing computation for every block.
func (p *Project) ComputeRoutings() []*wiring.BlockRouting {
	opts := p.WiringOptions()
	out := make([]*wiring.BlockRouting, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		out = append(out, wiring.ComputeBlockRouting(b, opts))
	}
	return out
}

// BOM computes routings for every block and rolls them up into a priced
// bill of materials against the given catalog.
func (p *Project) BOM(lib *catalog.Library) *bom.Summary {
	return bom.Generate(p.Blocks, p.ComputeRoutings(), lib, p.Settings.CopperTier)
}
