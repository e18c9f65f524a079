package transcribe

import (
	"context"
	"fmt"
	"time"
)

// one timed span of recognized speech
type Segment struct {
	Start float64 // seconds
	End   float64 // seconds
	Text  string
}

// transcription result for one audio file
type Result struct {
	Segments            []Segment
	Language            string
	LanguageProbability float64
	Duration            time.Duration
}

// interface for audio transcription engines
type Engine interface {
	Transcribe(ctx context.Context, audioPath string, opts Options) (*Result, error)

	// human-readable description of the compute device in use
	Device() string

	Close() error
}

// whisper model size
type ModelSize string

const (
	ModelTiny    ModelSize = "tiny"
	ModelBase    ModelSize = "base"
	ModelSmall   ModelSize = "small"
	ModelMedium  ModelSize = "medium"
	ModelLargeV3 ModelSize = "large-v3"
)

func (m ModelSize) Valid() bool {
	switch m {
	case ModelTiny, ModelBase, ModelSmall, ModelMedium, ModelLargeV3:
		return true
	}
	return false
}

// compute device preference
type DevicePreference string

const (
	DeviceAuto DevicePreference = "auto"
	DeviceCUDA DevicePreference = "cuda"
	DeviceCPU  DevicePreference = "cpu"
)

func (d DevicePreference) Valid() bool {
	switch d {
	case DeviceAuto, DeviceCUDA, DeviceCPU:
		return true
	}
	return false
}

// decoding options
type Options struct {
	ModelSize           ModelSize
	Device              DevicePreference
	Language            string // language hint, e.g. "th"
	BeamSize            int
	BestOf              int
	Temperature         float64
	ConditionOnPrevious bool
	VADFilter           bool
	MinSilenceMs        int // VAD minimum silence duration
}

// production defaults tuned for Thai audio
func DefaultOptions() Options {
	return Options{
		ModelSize:           ModelLargeV3,
		Device:              DeviceAuto,
		Language:            "th",
		BeamSize:            5,
		BestOf:              3,
		Temperature:         0.2,
		ConditionOnPrevious: false,
		VADFilter:           true,
		MinSilenceMs:        800,
	}
}

func (o Options) Validate() error {
	if !o.ModelSize.Valid() {
		return fmt.Errorf("invalid model size %q", o.ModelSize)
	}
	if !o.Device.Valid() {
		return fmt.Errorf("invalid device %q", o.Device)
	}
	if o.BeamSize < 1 {
		return fmt.Errorf("beam size must be >= 1, got %d", o.BeamSize)
	}
	if o.BestOf < 1 {
		return fmt.Errorf("best-of must be >= 1, got %d", o.BestOf)
	}
	if o.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0, got %g", o.Temperature)
	}
	return nil
}

// transcription engine provider
type Provider string

const (
	ProviderFasterWhisper Provider = "faster-whisper"
	ProviderOpenAI        Provider = "openai"
	ProviderGemini        Provider = "gemini"
)

// engine construction settings that are not decoding options
type EngineConfig struct {
	Python string // interpreter for the local worker
	APIKey string // key for remote providers
	Model  string // remote model name override
}

// creates an engine based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	cfg EngineConfig,
	opts Options,
) (Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch provider {
	case ProviderFasterWhisper:
		return NewFasterWhisperEngine(ctx, cfg.Python, opts)
	case ProviderOpenAI:
		return NewOpenAIEngine(cfg.APIKey, cfg.Model)
	case ProviderGemini:
		return NewGeminiEngine(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
