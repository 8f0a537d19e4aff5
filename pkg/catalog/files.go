package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File names LoadDir and WriteDir use within a catalog directory. A missing
// file leaves that section at its built-in default.
const (
	harnessesFile = "harnesses.json"
	cablesFile    = "cables.json"
	fusesFile     = "fuses.json"
	combinersFile = "combiners.json"
	pricingFile   = "pricing.json"
)

// LoadDir reads catalog JSON files from dir, starting from the built-in
// defaults and replacing each section a file is present for.
func LoadDir(dir string) (*Library, error) {
	l := Default()
	if err := loadSection(dir, harnessesFile, &l.Harnesses); err != nil {
		return nil, err
	}
	if err := loadSection(dir, cablesFile, &l.Cables); err != nil {
		return nil, err
	}
	if err := loadSection(dir, fusesFile, &l.Fuses); err != nil {
		return nil, err
	}
	if err := loadSection(dir, combinersFile, &l.Combiners); err != nil {
		return nil, err
	}
	if err := loadSection(dir, pricingFile, &l.Pricing); err != nil {
		return nil, err
	}
	return l, nil
}

func loadSection(dir, name string, dst interface{}) error {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

// WriteDir writes the library out as the JSON files LoadDir reads. Used to
// seed a catalog directory for hand editing.
func (l *Library) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	sections := []struct {
		name string
		v    interface{}
	}{
		{harnessesFile, l.Harnesses},
		{cablesFile, l.Cables},
		{fusesFile, l.Fuses},
		{combinersFile, l.Combiners},
		{pricingFile, l.Pricing},
	}
	for _, s := range sections {
		b, err := json.MarshalIndent(s.v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", s.name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, s.name), append(b, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
	}
	return nil
}
