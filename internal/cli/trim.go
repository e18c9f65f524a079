package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/purin-kan/thai-audio-transcription/internal/audio"
	"github.com/purin-kan/thai-audio-transcription/internal/config"
)

var trimCmd = &cobra.Command{
	Use:   "trim [audio_file]",
	Short: "Trim an audio file to a bounded duration",
	Long: `Cut an audio file down to its first N seconds without touching the
original. Stream copy is used when the container allows it, so trimming is
usually instant.

Examples:
  thaiscribe trim long_interview.m4a
  thaiscribe trim lecture.mp3 --duration 300`,
	Args: cobra.ExactArgs(1),
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)

	trimCmd.Flags().
		Float64P("duration", "d", 180, "Seconds to keep from the start")
}

func runTrim(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	durationSec, _ := cmd.Flags().GetFloat64("duration")
	cfg := config.Load()

	trimmer := audio.NewFFmpegTrimmer(cfg.TrimmedDir)

	logger.Infow("Trimming audio",
		"input", filepath.Base(inputPath),
		"duration", fmt.Sprintf("%gs", durationSec),
	)

	outputPath, err := trimmer.Trim(
		context.Background(),
		inputPath,
		time.Duration(durationSec*float64(time.Second)),
	)
	if err != nil {
		return fmt.Errorf("trim failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Trimmed audio saved to: %s\n", absOutput)

	return nil
}
