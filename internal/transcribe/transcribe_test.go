package transcribe

import "testing"

func TestOptionsValidate(t *testing.T) {
	valid := DefaultOptions()

	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults are valid", func(o *Options) {}, false},
		{"tiny model", func(o *Options) { o.ModelSize = ModelTiny }, false},
		{"zero temperature", func(o *Options) { o.Temperature = 0 }, false},
		{"explicit cpu device", func(o *Options) { o.Device = DeviceCPU }, false},
		{"unknown model size", func(o *Options) { o.ModelSize = "huge" }, true},
		{"empty model size", func(o *Options) { o.ModelSize = "" }, true},
		{"unknown device", func(o *Options) { o.Device = "tpu" }, true},
		{"zero beam size", func(o *Options) { o.BeamSize = 0 }, true},
		{"negative best-of", func(o *Options) { o.BestOf = -1 }, true},
		{"negative temperature", func(o *Options) { o.Temperature = -0.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.ModelSize != ModelLargeV3 {
		t.Errorf("default model = %s, want large-v3", opts.ModelSize)
	}
	if opts.Language != "th" {
		t.Errorf("default language = %s, want th", opts.Language)
	}
	if opts.BeamSize != 5 || opts.BestOf != 3 {
		t.Errorf("default search breadth = beam %d / best-of %d, want 5/3", opts.BeamSize, opts.BestOf)
	}
	if !opts.VADFilter {
		t.Error("VAD filtering should default on")
	}
	if opts.ConditionOnPrevious {
		t.Error("previous-text conditioning should default off")
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	_, err := Factory(t.Context(), Provider("carrier-pigeon"), EngineConfig{}, DefaultOptions())
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.BeamSize = 0
	_, err := Factory(t.Context(), ProviderOpenAI, EngineConfig{APIKey: "k"}, opts)
	if err == nil {
		t.Error("expected error for invalid options")
	}
}
