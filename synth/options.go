package synth

import "github.com/avalancheee11/valanche-loop/dsp/core"

const (
	// MinOutputDurationSec and MaxOutputDurationSec bound the requested
	// loop duration. Out-of-range finite values are clamped.
	MinOutputDurationSec = 5.0
	MaxOutputDurationSec = 60.0

	defaultOutputDurationSec = 10.0
	defaultOverlapPct        = 50.0
	defaultCrossfadeSec      = 0.1
	maxCrossfadeSec          = 2.0

	// Grain duration defaults per mode; texture clouds use shorter
	// grains than the deterministic loop.
	defaultGrainSizeMs = 100.0
	textureGrainSizeMs = 50.0
)

// Config holds the synthesis parameters.
type Config struct {
	// GrainSizeMs is the grain duration in milliseconds. Zero selects
	// the mode default (100 ms for GranularLoop, 50 ms for TextureLoop);
	// nonzero values are clamped to [20, 500] during extraction.
	GrainSizeMs float64
	// OverlapPct is the grain pool overlap percentage, clamped to [0, 90].
	OverlapPct float64
	// OutputDurationSec is the requested loop duration in seconds,
	// clamped to [5, 60].
	OutputDurationSec float64
	// TextureDensity in [0, 1] controls TextureLoop grain cloud
	// thickness.
	TextureDensity float64
	// PitchSpread in [0, 0.2] bounds TextureLoop pitch variation.
	PitchSpread float64
	// Seed drives TextureLoop randomness; identical seeds reproduce
	// identical output.
	Seed int64
	// CrossfadeSec is the loop-point crossfade applied in GranularLoop
	// mode, clamped to [0, 2] and to half the output length. Zero
	// disables the crossfade.
	CrossfadeSec float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults used by New.
func DefaultConfig() Config {
	return Config{
		GrainSizeMs:       0,
		OverlapPct:        defaultOverlapPct,
		OutputDurationSec: defaultOutputDurationSec,
		TextureDensity:    0.7,
		PitchSpread:       0.05,
		Seed:              1,
		CrossfadeSec:      defaultCrossfadeSec,
	}
}

// WithGrainSize sets the grain duration in milliseconds.
func WithGrainSize(ms float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(ms) && ms > 0 {
			cfg.GrainSizeMs = ms
		}
	}
}

// WithOverlap sets the grain pool overlap percentage.
func WithOverlap(pct float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(pct) {
			cfg.OverlapPct = pct
		}
	}
}

// WithDuration sets the requested output duration in seconds.
// Non-finite and non-positive values are kept and rejected by
// Synthesize so the caller sees the error.
func WithDuration(seconds float64) Option {
	return func(cfg *Config) {
		cfg.OutputDurationSec = seconds
	}
}

// WithTextureDensity sets the TextureLoop grain density in [0, 1].
func WithTextureDensity(density float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(density) {
			cfg.TextureDensity = core.Clamp(density, 0, 1)
		}
	}
}

// WithPitchSpread sets the TextureLoop pitch variation bound.
func WithPitchSpread(spread float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(spread) {
			cfg.PitchSpread = core.Clamp(spread, 0, 0.2)
		}
	}
}

// WithSeed sets the TextureLoop random seed.
func WithSeed(seed int64) Option {
	return func(cfg *Config) {
		cfg.Seed = seed
	}
}

// WithCrossfade sets the loop-point crossfade duration in seconds.
func WithCrossfade(seconds float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(seconds) && seconds >= 0 {
			cfg.CrossfadeSec = core.Clamp(seconds, 0, maxCrossfadeSec)
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
