package types

import "fmt"

// ModuleSpec is the immutable electrical and physical datasheet for one PV
// module model. Instances come from the module library and are treated as
// read-only snapshots by every computation.
type ModuleSpec struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`

	// STC electrical characteristics.
	IscA float64 `json:"iscA"`
	ImpA float64 `json:"impA"`
	VocV float64 `json:"vocV"`
	VmpV float64 `json:"vmpV"`

	// Physical dimensions in millimeters. Length is the long edge.
	LengthMM float64 `json:"lengthMM"`
	WidthMM  float64 `json:"widthMM"`
	DepthMM  float64 `json:"depthMM"`

	DefaultOrientation Orientation `json:"defaultOrientation"`
}

// Validate rejects module specs that cannot drive a sizing computation.
func (m ModuleSpec) Validate() error {
	if m.IscA <= 0 {
		return fmt.Errorf("module %s: Isc must be positive, got %v", m.Model, m.IscA)
	}
	if m.ImpA <= 0 {
		return fmt.Errorf("module %s: Imp must be positive, got %v", m.Model, m.ImpA)
	}
	if m.ImpA > m.IscA {
		return fmt.Errorf("module %s: Imp (%v) cannot exceed Isc (%v)", m.Model, m.ImpA, m.IscA)
	}
	if m.LengthMM <= 0 || m.WidthMM <= 0 {
		return fmt.Errorf("module %s: dimensions must be positive", m.Model)
	}
	if m.DefaultOrientation != "" && !m.DefaultOrientation.valid() {
		return fmt.Errorf("module %s: unknown orientation %q", m.Model, m.DefaultOrientation)
	}
	return nil
}

// InverterSpec describes the downstream device a block feeds. Only the DC
// input capacity matters to wiring and BOM computation.
type InverterSpec struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`

	// StringCapacity is the total number of DC string inputs.
	StringCapacity int `json:"stringCapacity"`
	// MPPTChannels is informational only.
	MPPTChannels int `json:"mpptChannels,omitempty"`
}

// Validate rejects inverters with no usable inputs.
func (i InverterSpec) Validate() error {
	if i.StringCapacity <= 0 {
		return fmt.Errorf("inverter %s: string capacity must be positive, got %d", i.Model, i.StringCapacity)
	}
	return nil
}
