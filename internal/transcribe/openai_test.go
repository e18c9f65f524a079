package transcribe

import (
	"testing"
	"time"
)

func TestParseVerboseJSONResponse(t *testing.T) {
	tests := []struct {
		name      string
		rawJSON   string
		wantCount int
		wantLang  string
		wantErr   bool
	}{
		{
			name: "valid verbose_json with segments",
			rawJSON: `{
				"text": "Hello world. How are you today?",
				"segments": [
					{"start": 0.0, "end": 1.5, "text": "Hello world."},
					{"start": 1.5, "end": 3.0, "text": "How are you today?"}
				],
				"language": "en",
				"duration": 3.0
			}`,
			wantCount: 2,
			wantLang:  "en",
		},
		{
			name: "no segments but has text",
			rawJSON: `{
				"text": "This is a transcription without segments.",
				"segments": [],
				"language": "th",
				"duration": 2.5
			}`,
			wantCount: 1,
			wantLang:  "th",
		},
		{
			name: "null segments",
			rawJSON: `{
				"text": "Transcription text only.",
				"segments": null,
				"language": "en",
				"duration": 1.0
			}`,
			wantCount: 1,
			wantLang:  "en",
		},
		{
			name: "empty text segments filtered out",
			rawJSON: `{
				"text": "Hello world",
				"segments": [
					{"start": 0.0, "end": 0.5, "text": ""},
					{"start": 0.5, "end": 1.5, "text": "Hello world"},
					{"start": 1.5, "end": 2.0, "text": "   "}
				],
				"language": "en",
				"duration": 2.0
			}`,
			wantCount: 1,
			wantLang:  "en",
		},
		{
			name:    "empty response",
			rawJSON: "",
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			rawJSON: `{"text": "incomplete`,
			wantErr: true,
		},
		{
			name: "no segments and no text",
			rawJSON: `{
				"text": "",
				"segments": [],
				"language": "en",
				"duration": 0
			}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVerboseJSONResponse(tt.rawJSON)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(result.Segments) != tt.wantCount {
				t.Errorf("segments = %d, want %d", len(result.Segments), tt.wantCount)
			}
			if result.Language != tt.wantLang {
				t.Errorf("language = %q, want %q", result.Language, tt.wantLang)
			}
		})
	}
}

func TestParseVerboseJSONResponseDuration(t *testing.T) {
	result, err := parseVerboseJSONResponse(`{
		"text": "x y",
		"segments": [{"start": 0, "end": 8.47, "text": "x y"}],
		"language": "en",
		"duration": 8.47
	}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	wantSecs := 8.47
	want := time.Duration(wantSecs * float64(time.Second))
	if result.Duration != want {
		t.Errorf("duration = %v, want %v", result.Duration, want)
	}
}

func TestNewOpenAIEngineRequiresKey(t *testing.T) {
	if _, err := NewOpenAIEngine("", ""); err == nil {
		t.Error("expected error when API key is missing")
	}
}
