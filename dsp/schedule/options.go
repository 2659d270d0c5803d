package schedule

import "github.com/avalancheee11/valanche-loop/dsp/core"

const (
	defaultTextureDensity = 0.7
	defaultPitchSpread    = 0.05
	defaultGainJitter     = 0.1
	defaultPanSpread      = 0.0
	defaultSeed           = 1

	maxPitchSpread = 0.2
	maxGainJitter  = 0.5
)

// TextureConfig holds the stochastic scheduling parameters.
type TextureConfig struct {
	// Density in [0, 1] controls grain cloud thickness.
	Density float64
	// PitchSpread in [0, 0.2] bounds the random pitch ratio deviation.
	PitchSpread float64
	// GainJitter in [0, 0.5] bounds the random gain deviation around 1.
	GainJitter float64
	// PanSpread in [0, 1] bounds the random pan position.
	PanSpread float64
	// Seed drives the grain selection RNG; identical seeds reproduce
	// identical schedules.
	Seed int64
}

// TextureOption mutates a TextureConfig.
type TextureOption func(*TextureConfig)

// DefaultTextureConfig returns the defaults used by TextureLoop.
func DefaultTextureConfig() TextureConfig {
	return TextureConfig{
		Density:     defaultTextureDensity,
		PitchSpread: defaultPitchSpread,
		GainJitter:  defaultGainJitter,
		PanSpread:   defaultPanSpread,
		Seed:        defaultSeed,
	}
}

// WithDensity sets grain cloud density in [0, 1]. Out-of-range values are clamped.
func WithDensity(density float64) TextureOption {
	return func(cfg *TextureConfig) {
		if core.IsFinite(density) {
			cfg.Density = core.Clamp(density, 0, 1)
		}
	}
}

// WithPitchSpread sets the pitch deviation bound in [0, 0.2]. Out-of-range values are clamped.
func WithPitchSpread(spread float64) TextureOption {
	return func(cfg *TextureConfig) {
		if core.IsFinite(spread) {
			cfg.PitchSpread = core.Clamp(spread, 0, maxPitchSpread)
		}
	}
}

// WithGainJitter sets the gain deviation bound in [0, 0.5]. Out-of-range values are clamped.
func WithGainJitter(jitter float64) TextureOption {
	return func(cfg *TextureConfig) {
		if core.IsFinite(jitter) {
			cfg.GainJitter = core.Clamp(jitter, 0, maxGainJitter)
		}
	}
}

// WithPanSpread sets the random pan bound in [0, 1]. Out-of-range values are clamped.
func WithPanSpread(spread float64) TextureOption {
	return func(cfg *TextureConfig) {
		if core.IsFinite(spread) {
			cfg.PanSpread = core.Clamp(spread, 0, 1)
		}
	}
}

// WithSeed sets the RNG seed for deterministic scheduling.
func WithSeed(seed int64) TextureOption {
	return func(cfg *TextureConfig) {
		cfg.Seed = seed
	}
}

// ApplyTextureOptions applies zero or more options to the default config.
func ApplyTextureOptions(opts ...TextureOption) TextureConfig {
	cfg := DefaultTextureConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
