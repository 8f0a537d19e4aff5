package types

import (
	"fmt"

	"github.com/thdoering/Ampacity-eBOS-BOM-Generator-sub000/pkg/geometry"
)

// BlockConfig is one rectangular arrangement of trackers feeding a single
// downstream device (inverter or combiner box). All coordinates are
// block-local meters.
type BlockConfig struct {
	ID string `json:"id"`

	WidthM  float64 `json:"widthM"`
	HeightM float64 `json:"heightM"`

	// RowSpacingM is the east-west spacing between tracker rows; NSSpacingM
	// the north-south spacing between stacked trackers. GCR is module area
	// over land area.
	RowSpacingM float64 `json:"rowSpacingM"`
	NSSpacingM  float64 `json:"nsSpacingM"`
	GCR         float64 `json:"gcr"`

	// TemplateName is the default template applied to newly placed trackers.
	TemplateName string `json:"templateName"`

	Inverter *InverterSpec `json:"inverter,omitempty"`

	// Device is the combiner/inverter placement; nil until the user places
	// it, which suppresses whip and route computation for the block.
	Device              *geometry.Point `json:"device,omitempty"`
	DeviceInputSpacingM float64         `json:"deviceInputSpacingM,omitempty"`

	Trackers []TrackerPosition `json:"trackers"`

	Wiring *WiringConfig `json:"wiring,omitempty"`
}

// Bounds is the block footprint with its origin at (0, 0).
func (b *BlockConfig) Bounds() geometry.Rect {
	return geometry.Rect{Width: b.WidthM, Height: b.HeightM}
}

// TotalStrings counts strings across all placed trackers with a resolved
// template.
func (b *BlockConfig) TotalStrings() int {
	total := 0
	for i := range b.Trackers {
		if tpl := b.Trackers[i].Template; tpl != nil {
			total += tpl.StringsPerTracker
		}
	}
	return total
}

// Validate rejects blocks that violate structural invariants: non-positive
// dimensions, trackers outside the block bounds, string count above the
// inverter's input capacity, or a malformed wiring config. Trackers without
// a resolved template are tolerated (not yet configured, skipped by
// geometry), but their placement point must still be inside the block.
func (b *BlockConfig) Validate() error {
	if b.WidthM <= 0 || b.HeightM <= 0 {
		return fmt.Errorf("block %s: dimensions must be positive", b.ID)
	}
	if b.GCR < 0 || b.GCR > 1 {
		return fmt.Errorf("block %s: GCR must be within [0, 1], got %v", b.ID, b.GCR)
	}
	bounds := b.Bounds()
	for i := range b.Trackers {
		tr := &b.Trackers[i]
		if tr.Template != nil {
			if err := tr.Template.Validate(); err != nil {
				return fmt.Errorf("block %s tracker %d: %w", b.ID, i, err)
			}
			if !bounds.ContainsRect(tr.Bounds()) {
				return fmt.Errorf("block %s: tracker %d extends outside block bounds", b.ID, i)
			}
		} else if !bounds.Contains(tr.Origin()) {
			return fmt.Errorf("block %s: tracker %d placed outside block bounds", b.ID, i)
		}
	}
	if b.Device != nil && !bounds.Contains(*b.Device) {
		return fmt.Errorf("block %s: device placed outside block bounds", b.ID)
	}
	if b.Inverter != nil {
		if err := b.Inverter.Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
		if total := b.TotalStrings(); total > b.Inverter.StringCapacity {
			return fmt.Errorf("block %s: %d strings exceed inverter capacity of %d",
				b.ID, total, b.Inverter.StringCapacity)
		}
	}
	if b.Wiring != nil {
		if err := b.Wiring.Validate(); err != nil {
			return fmt.Errorf("block %s: %w", b.ID, err)
		}
	}
	return nil
}
