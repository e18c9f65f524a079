package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/purin-kan/thai-audio-transcription/internal/transcribe"
)

// file paths produced for one transcription
type Paths struct {
	Timestamped string
	Plain       string
}

// FormatTimestamped renders one line per segment in the order received:
//
//	[<start>s → <end>s] <text>
//
// with start/end printed to two decimal places. Out-of-order or
// overlapping segments are rendered as-is.
func FormatTimestamped(segments []transcribe.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(fmt.Sprintf("[%.2fs → %.2fs] %s\n", seg.Start, seg.End, seg.Text))
	}
	return sb.String()
}

// FormatPlain joins all segment texts with single spaces, no timestamps.
func FormatPlain(segments []transcribe.Segment) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, " ")
}

// WriteOutputs writes the timestamped and plain renderings of result to
// <baseName>_timestamped.txt and <baseName>_plain.txt under outputDir,
// overwriting existing files. The timestamped file is written first; a
// failure on the second write leaves the first in place.
func WriteOutputs(
	result *transcribe.Result,
	baseName, outputDir string,
) (Paths, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return Paths{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := Paths{
		Timestamped: filepath.Join(outputDir, baseName+"_timestamped.txt"),
		Plain:       filepath.Join(outputDir, baseName+"_plain.txt"),
	}

	timestamped := FormatTimestamped(result.Segments)
	if err := os.WriteFile(paths.Timestamped, []byte(timestamped), 0644); err != nil {
		return Paths{}, fmt.Errorf("failed to write timestamped transcript: %w", err)
	}

	plain := FormatPlain(result.Segments) + "\n"
	if err := os.WriteFile(paths.Plain, []byte(plain), 0644); err != nil {
		return Paths{Timestamped: paths.Timestamped}, fmt.Errorf("failed to write plain transcript: %w", err)
	}

	return paths, nil
}
