package ambience

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// presetFile is the on-disk layout:
//
//	presets:
//	  - id: bathroom
//	    name: Bathroom
//	    lowpass_cutoff_hz: 8000
//	    reverb_decay_seconds: 0.8
//	    gain_db: -3
//	    stereo_width: 1.0
//	    extra_muffling: false
type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// ReadPresets decodes and validates presets from YAML. Unknown keys are
// rejected. Duplicate ids within the document are reported as ErrInvalidPreset.
func ReadPresets(r io.Reader) ([]Preset, error) {
	var f presetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: decoding preset file: %w", ErrInvalidPreset, err)
	}

	// Validate as a standalone catalog so duplicates are caught here.
	if _, err := NewCatalog(f.Presets...); err != nil {
		return nil, err
	}
	return f.Presets, nil
}

// LoadPresetFile reads presets from the YAML file at path.
func LoadPresetFile(path string) ([]Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset file: %w", err)
	}
	defer func() { _ = f.Close() }()

	presets, err := ReadPresets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return presets, nil
}
