package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/purin-kan/thai-audio-transcription/internal/audio"
	"github.com/purin-kan/thai-audio-transcription/internal/batch"
	"github.com/purin-kan/thai-audio-transcription/internal/config"
	"github.com/purin-kan/thai-audio-transcription/internal/report"
	"github.com/purin-kan/thai-audio-transcription/internal/transcribe"
)

var runCmd = &cobra.Command{
	Use:   "run [audio_file_or_directory...]",
	Short: "Transcribe one or more audio files",
	Long: `Transcribe audio files to timestamped and plain-text transcripts.

Accepts explicit file paths or a single directory, which is scanned
recursively for supported audio files (mp3, wav, m4a, flac, ogg, wma).
The model is loaded once and reused for every file; one file's failure
never aborts the batch.

Examples:
  thaiscribe run recording.m4a
  thaiscribe run interviews/ --model medium
  thaiscribe run a.mp3 b.wav --trim 180
  thaiscribe run podcast.mp3 --engine openai --api-key YOUR_KEY`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().
		String("engine", "faster-whisper", "Transcription engine (faster-whisper, openai, gemini)")
	runCmd.Flags().
		StringP("model", "m", "", "Model size for the local engine (tiny, base, small, medium, large-v3) or remote model name")
	runCmd.Flags().
		String("device", "auto", "Compute device for the local engine (auto, cuda, cpu)")
	runCmd.Flags().
		StringP("api-key", "k", "", "API key for remote engines (or OPENAI_API_KEY / GEMINI_API_KEY env vars)")
	runCmd.Flags().
		Float64P("trim", "t", 0, "Trim each input to this many seconds before transcribing (0 = no trimming)")
	runCmd.Flags().
		Int("beam-size", 0, "Beam search width (default 5)")
	runCmd.Flags().
		Int("best-of", 0, "Number of decoding candidates (default 3)")
	runCmd.Flags().
		Float64("temperature", -1, "Sampling temperature; 0 is near-deterministic (default 0.2)")
	runCmd.Flags().
		Bool("vad", true, "Filter silence with voice activity detection")
	runCmd.Flags().
		Bool("condition", false, "Condition decoding on previous text")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Load()

	inputs, err := resolveRunInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no audio files found")
	}

	engineStr, _ := cmd.Flags().GetString("engine")
	model, _ := cmd.Flags().GetString("model")
	device, _ := cmd.Flags().GetString("device")
	apiKey, _ := cmd.Flags().GetString("api-key")
	trimSec, _ := cmd.Flags().GetFloat64("trim")
	beamSize, _ := cmd.Flags().GetInt("beam-size")
	bestOf, _ := cmd.Flags().GetInt("best-of")
	temperature, _ := cmd.Flags().GetFloat64("temperature")
	vad, _ := cmd.Flags().GetBool("vad")
	condition, _ := cmd.Flags().GetBool("condition")
	outputDir, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	opts := transcribe.DefaultOptions()
	opts.Device = transcribe.DevicePreference(device)
	opts.VADFilter = vad
	opts.ConditionOnPrevious = condition
	if language != "" {
		opts.Language = language
	}
	if beamSize > 0 {
		opts.BeamSize = beamSize
	}
	if bestOf > 0 {
		opts.BestOf = bestOf
	}
	if temperature >= 0 {
		opts.Temperature = temperature
	}

	provider := transcribe.Provider(engineStr)
	engineCfg := transcribe.EngineConfig{Python: cfg.Python}
	switch provider {
	case transcribe.ProviderFasterWhisper:
		if model != "" {
			opts.ModelSize = transcribe.ModelSize(model)
		}
	case transcribe.ProviderOpenAI:
		engineCfg.Model = model
		engineCfg.APIKey = firstNonEmpty(apiKey, cfg.OpenAIAPIKey)
	case transcribe.ProviderGemini:
		engineCfg.Model = model
		engineCfg.APIKey = firstNonEmpty(apiKey, cfg.GeminiAPIKey)
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	logger.Infow("Loading transcription engine",
		"engine", engineStr,
		"model", modelLabel(provider, engineCfg, opts),
	)

	engine, err := transcribe.Factory(ctx, provider, engineCfg, opts)
	if err != nil {
		return fmt.Errorf("failed to load transcription engine: %w", err)
	}
	defer engine.Close()

	logger.Infow("Engine ready", "device", engine.Device())

	runner := &batch.Runner{
		Engine:    engine,
		Trimmer:   audio.NewFFmpegTrimmer(cfg.TrimmedDir),
		Opts:      opts,
		OutputDir: outputDir,
		TrimLimit: time.Duration(trimSec * float64(time.Second)),
		Logger:    logger,
	}

	outcomes := runner.Run(ctx, inputs)
	printSummary(outcomes, modelLabel(provider, engineCfg, opts), engine.Device(), outputDir)

	return nil
}

// a single directory argument switches to directory mode; anything else is
// treated as an explicit file list, used verbatim
func resolveRunInputs(args []string) ([]string, error) {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return batch.ResolveInputs(args[0])
		}
	}
	return args, nil
}

func modelLabel(
	provider transcribe.Provider,
	cfg transcribe.EngineConfig,
	opts transcribe.Options,
) string {
	if provider == transcribe.ProviderFasterWhisper {
		return string(opts.ModelSize)
	}
	if cfg.Model != "" {
		return cfg.Model
	}
	return string(provider) + " default"
}

func printSummary(outcomes []batch.Outcome, model, device, outputDir string) {
	summary := batch.Summarize(outcomes)

	fmt.Println()
	fmt.Println("Batch complete")
	fmt.Printf("  Model: %s\n", model)
	fmt.Printf("  Device: %s\n", device)
	fmt.Printf("  Succeeded: %d/%d\n", summary.Succeeded, summary.Total)

	if summary.Failed > 0 {
		fmt.Printf("  Failed: %d\n", summary.Failed)
		for _, o := range outcomes {
			if o.Status == batch.StatusFailed {
				fmt.Printf("    - %s: %s\n", filepath.Base(o.Input), o.Reason())
			}
		}
	}

	found, err := report.CheckDir(outputDir)
	if err == nil {
		fmt.Println()
		fmt.Print(report.Render(found))
	}

	fmt.Printf("\nOutput folder: %s\n", outputDir)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
