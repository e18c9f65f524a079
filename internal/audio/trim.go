package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/purin-kan/thai-audio-transcription/internal/ffmpeg"
)

// interface for cutting an audio file down to a bounded duration
type Trimmer interface {
	Trim(
		ctx context.Context,
		inputPath string,
		maxDuration time.Duration,
	) (string, error)
}

// Trimmer backed by ffmpeg. Output files land in OutputDir with a
// _trimmed suffix; the input is never modified.
type FFmpegTrimmer struct {
	OutputDir string
}

func NewFFmpegTrimmer(outputDir string) *FFmpegTrimmer {
	if outputDir == "" {
		outputDir = "trimmed"
	}
	return &FFmpegTrimmer{OutputDir: outputDir}
}

// Trim keeps the first maxDuration of inputPath and writes the result to a
// new file. Stream copy is tried first; if the container rejects it, the
// audio is re-encoded instead.
func (t *FFmpegTrimmer) Trim(
	ctx context.Context,
	inputPath string,
	maxDuration time.Duration,
) (string, error) {
	if maxDuration <= 0 {
		return "", fmt.Errorf("trim duration must be positive, got %v", maxDuration)
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	if !IsAudioFile(inputPath) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(inputPath))
	}

	if err := os.MkdirAll(t.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create trimmed directory: %w", err)
	}

	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	outputPath := filepath.Join(t.OutputDir, stem+"_trimmed"+ext)

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return "", err
	}

	seconds := maxDuration.Seconds()

	// fast path: copy the compressed bitstream without re-encoding
	copyErr := ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"t": seconds,
			"c": "copy",
			"y": "",
		}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if copyErr == nil {
		return outputPath, nil
	}

	// some containers cannot be stream-copied; re-encode instead
	err = ffmpeg.Input(inputPath).
		Output(outputPath, ffmpeg.KwArgs{
			"t": seconds,
			"y": "",
		}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return "", fmt.Errorf("trim failed: %w", err)
	}

	return outputPath, nil
}
