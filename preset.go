package ambience

import (
	"fmt"
	"math"
)

// Preset describes a listening space. Presets are plain values; a Catalog
// validates them when they are registered.
type Preset struct {
	// ID is the lookup key: lowercase ASCII letters, digits and '_'.
	ID string `yaml:"id"`

	// DisplayName is the human-readable name.
	DisplayName string `yaml:"name"`

	// LowPassCutoffHz is the low-pass cutoff in Hz, in [20, 20000].
	LowPassCutoffHz float64 `yaml:"lowpass_cutoff_hz"`

	// ReverbDecaySeconds is the RT60 of the synthetic room, in (0, 10].
	ReverbDecaySeconds float64 `yaml:"reverb_decay_seconds"`

	// GainReductionDB is the overall level change in dB, in [-60, 0].
	GainReductionDB float64 `yaml:"gain_db"`

	// StereoWidth scales the side channel, in [0, 4]. 1 leaves the image as is.
	StereoWidth float64 `yaml:"stereo_width"`

	// ExtraMuffling enables the presence-band cut.
	ExtraMuffling bool `yaml:"extra_muffling"`
}

// Validate checks that every parameter is within its documented range.
func (p *Preset) Validate() error {
	if !validPresetID(p.ID) {
		return fmt.Errorf("%w: id %q must be non-empty lowercase letters, digits or '_'", ErrInvalidPreset, p.ID)
	}

	if !inRange(p.LowPassCutoffHz, minCutoffHz, maxCutoffHz) {
		return fmt.Errorf("%w: %s: low-pass cutoff %g Hz out of range [%g, %g]",
			ErrInvalidPreset, p.ID, p.LowPassCutoffHz, minCutoffHz, maxCutoffHz)
	}

	if math.IsNaN(p.ReverbDecaySeconds) || p.ReverbDecaySeconds <= 0 || p.ReverbDecaySeconds > maxDecaySeconds {
		return fmt.Errorf("%w: %s: reverb decay %g s out of range (0, %g]",
			ErrInvalidPreset, p.ID, p.ReverbDecaySeconds, maxDecaySeconds)
	}

	if !inRange(p.GainReductionDB, minGainDB, maxGainDB) {
		return fmt.Errorf("%w: %s: gain %g dB out of range [%g, %g]",
			ErrInvalidPreset, p.ID, p.GainReductionDB, minGainDB, maxGainDB)
	}

	if !inRange(p.StereoWidth, minStereoWidth, maxStereoWidth) {
		return fmt.Errorf("%w: %s: stereo width %g out of range [%g, %g]",
			ErrInvalidPreset, p.ID, p.StereoWidth, minStereoWidth, maxStereoWidth)
	}

	return nil
}

func validPresetID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}

// inRange reports lo <= v <= hi; NaN is never in range.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// builtinPresets are the parameters of the default catalog.
var builtinPresets = []Preset{
	{
		ID:                 PresetSmallRoom,
		DisplayName:        "Small Room",
		LowPassCutoffHz:    5000,
		ReverbDecaySeconds: 0.5,
		GainReductionDB:    -6,
		StereoWidth:        1.2,
		ExtraMuffling:      false,
	},
	{
		ID:                 PresetConcertHall,
		DisplayName:        "Concert Hall",
		LowPassCutoffHz:    3500,
		ReverbDecaySeconds: 2.5,
		GainReductionDB:    -10,
		StereoWidth:        1.5,
		ExtraMuffling:      false,
	},
	{
		ID:                 PresetNextRoom,
		DisplayName:        "Next Room",
		LowPassCutoffHz:    2500,
		ReverbDecaySeconds: 1.2,
		GainReductionDB:    -12,
		StereoWidth:        1.1,
		ExtraMuffling:      true,
	},
}

// defaultCatalog is built once; the built-ins are known to be valid.
var defaultCatalog = mustCatalog(builtinPresets...)

// Catalog is an immutable, ordered set of validated presets.
type Catalog struct {
	order []string
	byID  map[string]Preset
}

// NewCatalog validates presets and returns a catalog holding them in the given
// order. Duplicate IDs are rejected with ErrInvalidPreset.
func NewCatalog(presets ...Preset) (*Catalog, error) {
	c := &Catalog{
		order: make([]string, 0, len(presets)),
		byID:  make(map[string]Preset, len(presets)),
	}
	if err := c.add(presets); err != nil {
		return nil, err
	}
	return c, nil
}

func mustCatalog(presets ...Preset) *Catalog {
	c, err := NewCatalog(presets...)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog returns the catalog of built-in presets.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func (c *Catalog) add(presets []Preset) error {
	for i := range presets {
		p := presets[i]
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := c.byID[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidPreset, p.ID)
		}
		c.order = append(c.order, p.ID)
		c.byID[p.ID] = p
	}
	return nil
}

// With returns a new catalog holding c's presets followed by presets.
// c itself is not modified.
func (c *Catalog) With(presets ...Preset) (*Catalog, error) {
	next := &Catalog{
		order: make([]string, len(c.order), len(c.order)+len(presets)),
		byID:  make(map[string]Preset, len(c.byID)+len(presets)),
	}
	copy(next.order, c.order)
	for id, p := range c.byID {
		next.byID[id] = p
	}
	if err := next.add(presets); err != nil {
		return nil, err
	}
	return next, nil
}

// Lookup returns the preset with the given id.
func (c *Catalog) Lookup(id string) (Preset, error) {
	p, ok := c.byID[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return p, nil
}

// IDs returns preset ids in registration order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Presets returns copies of all presets in registration order.
func (c *Catalog) Presets() []Preset {
	out := make([]Preset, len(c.order))
	for i, id := range c.order {
		out[i] = c.byID[id]
	}
	return out
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.order)
}
