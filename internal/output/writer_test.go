package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/purin-kan/thai-audio-transcription/internal/transcribe"
)

func TestFormatTimestamped(t *testing.T) {
	tests := []struct {
		name     string
		segments []transcribe.Segment
		want     string
	}{
		{
			name: "two decimal places and literal format",
			segments: []transcribe.Segment{
				{Start: 0.0, End: 2.5, Text: "สวัสดี"},
			},
			want: "[0.00s → 2.50s] สวัสดี\n",
		},
		{
			name: "one line per segment in input order",
			segments: []transcribe.Segment{
				{Start: 0, End: 1.234, Text: "first"},
				{Start: 1.234, End: 3.999, Text: "second"},
			},
			want: "[0.00s → 1.23s] first\n[1.23s → 4.00s] second\n",
		},
		{
			name: "out-of-order segments rendered as received",
			segments: []transcribe.Segment{
				{Start: 5.0, End: 6.0, Text: "later"},
				{Start: 1.0, End: 2.0, Text: "earlier"},
			},
			want: "[5.00s → 6.00s] later\n[1.00s → 2.00s] earlier\n",
		},
		{
			name:     "no segments",
			segments: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimestamped(tt.segments)
			if got != tt.want {
				t.Errorf("FormatTimestamped() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPlain(t *testing.T) {
	tests := []struct {
		name     string
		segments []transcribe.Segment
		want     string
	}{
		{
			name: "single space join",
			segments: []transcribe.Segment{
				{Start: 0, End: 1, Text: "สวัสดี"},
				{Start: 1, End: 2, Text: "ครับ"},
			},
			want: "สวัสดี ครับ",
		},
		{
			name: "whitespace-only segments skipped",
			segments: []transcribe.Segment{
				{Start: 0, End: 1, Text: "hello"},
				{Start: 1, End: 2, Text: "   "},
				{Start: 2, End: 3, Text: "world"},
			},
			want: "hello world",
		},
		{
			name:     "empty",
			segments: nil,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatPlain(tt.segments)
			if got != tt.want {
				t.Errorf("FormatPlain() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteOutputs(t *testing.T) {
	result := &transcribe.Result{
		Language:            "th",
		LanguageProbability: 0.98,
		Duration:            5 * time.Second,
		Segments: []transcribe.Segment{
			{Start: 0, End: 2.5, Text: "สวัสดี"},
			{Start: 2.5, End: 5, Text: "ครับ"},
		},
	}

	outputDir := filepath.Join(t.TempDir(), "output")

	paths, err := WriteOutputs(result, "greeting", outputDir)
	if err != nil {
		t.Fatalf("WriteOutputs failed: %v", err)
	}

	wantTimestamped := filepath.Join(outputDir, "greeting_timestamped.txt")
	if paths.Timestamped != wantTimestamped {
		t.Errorf("timestamped path = %q, want %q", paths.Timestamped, wantTimestamped)
	}
	wantPlain := filepath.Join(outputDir, "greeting_plain.txt")
	if paths.Plain != wantPlain {
		t.Errorf("plain path = %q, want %q", paths.Plain, wantPlain)
	}

	timestamped, err := os.ReadFile(paths.Timestamped)
	if err != nil {
		t.Fatalf("failed to read timestamped file: %v", err)
	}
	if string(timestamped) != "[0.00s → 2.50s] สวัสดี\n[2.50s → 5.00s] ครับ\n" {
		t.Errorf("unexpected timestamped content: %q", timestamped)
	}

	plain, err := os.ReadFile(paths.Plain)
	if err != nil {
		t.Fatalf("failed to read plain file: %v", err)
	}
	if string(plain) != "สวัสดี ครับ\n" {
		t.Errorf("unexpected plain content: %q", plain)
	}
}

func TestWriteOutputsOverwrites(t *testing.T) {
	result := &transcribe.Result{
		Segments: []transcribe.Segment{
			{Start: 0, End: 1, Text: "same content"},
		},
	}
	outputDir := t.TempDir()

	first, err := WriteOutputs(result, "rerun", outputDir)
	if err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	firstContent, _ := os.ReadFile(first.Timestamped)

	second, err := WriteOutputs(result, "rerun", outputDir)
	if err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if second != first {
		t.Errorf("rerun produced different paths: %+v vs %+v", second, first)
	}

	secondContent, _ := os.ReadFile(second.Timestamped)
	if string(secondContent) != string(firstContent) {
		t.Errorf("rerun changed content: %q vs %q", secondContent, firstContent)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("failed to list output dir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 files after rerun, got %d", len(entries))
	}
}
