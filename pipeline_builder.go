package ambience

import (
	"fmt"

	"github.com/tphakala/go-audio-ambience/internal/engine"
	"github.com/tphakala/go-audio-ambience/internal/pipeline"
)

// StageInfo describes one stage of a preset's processing chain.
type StageInfo struct {
	Type    pipeline.StageType
	Name    string
	Enabled bool
}

// buildStages constructs the fixed stage chain for a preset:
// low-pass, gain, reverb, muffling (when enabled) and widening.
func buildStages(preset Preset) ([]pipeline.Stage, error) {
	lowPass, err := engine.NewLowPass(preset.LowPassCutoffHz)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPreset, preset.ID, err)
	}

	gain, err := engine.NewGain(preset.GainReductionDB)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPreset, preset.ID, err)
	}

	reverb, err := engine.NewReverb(preset.ReverbDecaySeconds)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPreset, preset.ID, err)
	}

	widen, err := engine.NewWiden(preset.StereoWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPreset, preset.ID, err)
	}

	stages := []pipeline.Stage{lowPass, gain, reverb}
	if preset.ExtraMuffling {
		stages = append(stages, engine.NewMuffle(true))
	}
	return append(stages, widen), nil
}

// buildPipeline wraps the preset's stages in a runnable pipeline.
func buildPipeline(preset Preset, parallel bool, observer pipeline.Observer) (*pipeline.Pipeline, error) {
	stages, err := buildStages(preset)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{pipeline.WithParallel(parallel)}
	if observer != nil {
		opts = append(opts, pipeline.WithObserver(observer))
	}
	return pipeline.New(stages, opts...), nil
}

// DescribeStages returns the full stage chain for a preset, marking stages the
// preset leaves disabled.
func DescribeStages(preset Preset) []StageInfo {
	return []StageInfo{
		{Type: pipeline.StageLowPass, Name: pipeline.StageLowPass.String(), Enabled: true},
		{Type: pipeline.StageGain, Name: pipeline.StageGain.String(), Enabled: true},
		{Type: pipeline.StageReverb, Name: pipeline.StageReverb.String(), Enabled: true},
		{Type: pipeline.StageMuffle, Name: pipeline.StageMuffle.String(), Enabled: preset.ExtraMuffling},
		{Type: pipeline.StageWiden, Name: pipeline.StageWiden.String(), Enabled: true},
	}
}
