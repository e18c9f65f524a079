package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/purin-kan/thai-audio-transcription/internal/audio"
	"github.com/purin-kan/thai-audio-transcription/internal/logging"
	"github.com/purin-kan/thai-audio-transcription/internal/output"
	"github.com/purin-kan/thai-audio-transcription/internal/transcribe"
)

// per-file processing status
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// record of one file's run through the pipeline
type Outcome struct {
	Input       string
	Status      Status
	TrimmedPath string
	Outputs     output.Paths
	Language    string
	Err         error
}

func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// success/failure tally for a finished batch
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Status == StatusDone {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

// ResolveInputs enumerates supported audio files under dir, recursively,
// in sorted order. Non-audio files are skipped by extension,
// case-insensitively.
func ResolveInputs(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", audio.ErrInputNotFound, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var inputs []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && audio.IsAudioFile(path) {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(inputs)
	return inputs, nil
}

// Runner drives the per-file pipeline: optional trim, transcribe, write.
// It holds the one loaded engine for the whole batch; engine construction
// (and therefore model loading) happens before any file is touched.
type Runner struct {
	Engine    transcribe.Engine
	Trimmer   audio.Trimmer
	Opts      transcribe.Options
	OutputDir string

	// when positive, each input is trimmed to this bound first
	TrimLimit time.Duration

	Logger *logging.Logger
}

// Run processes every input sequentially and returns one Outcome per
// input, in input order. A file's failure is recorded and the batch moves
// on; nothing short of engine construction failure aborts a batch.
func (r *Runner) Run(ctx context.Context, inputs []string) []Outcome {
	log := r.Logger
	if log == nil {
		log = logging.Nop()
	}

	outcomes := make([]Outcome, 0, len(inputs))
	for i, input := range inputs {
		log.Infow("Processing file",
			"index", fmt.Sprintf("%d/%d", i+1, len(inputs)),
			"input", filepath.Base(input),
		)
		outcomes = append(outcomes, r.processOne(ctx, log, input))
	}
	return outcomes
}

func (r *Runner) processOne(
	ctx context.Context,
	log *logging.Logger,
	input string,
) Outcome {
	outcome := Outcome{Input: input, Status: StatusFailed}

	audioPath := input
	if r.TrimLimit > 0 && r.Trimmer != nil {
		trimmed, err := r.Trimmer.Trim(ctx, input, r.TrimLimit)
		if err != nil {
			// trimming is best-effort; fall back to the full file
			log.Warnw("Trim failed, using original file",
				"input", filepath.Base(input),
				"error", err,
			)
		} else {
			audioPath = trimmed
			outcome.TrimmedPath = trimmed
		}
	}

	result, err := r.Engine.Transcribe(ctx, audioPath, r.Opts)
	if err != nil {
		outcome.Err = err
		log.Errorw("Transcription failed",
			"input", filepath.Base(input),
			"error", err,
		)
		return outcome
	}

	log.Infow("Transcription complete",
		"input", filepath.Base(input),
		"language", result.Language,
		"probability", fmt.Sprintf("%.2f", result.LanguageProbability),
		"duration", result.Duration.String(),
		"segments", len(result.Segments),
	)

	paths, err := output.WriteOutputs(result, baseName(input), r.OutputDir)
	if err != nil {
		outcome.Err = err
		outcome.Outputs = paths
		log.Errorw("Failed to write transcripts",
			"input", filepath.Base(input),
			"error", err,
		)
		return outcome
	}

	outcome.Status = StatusDone
	outcome.Outputs = paths
	outcome.Language = result.Language
	return outcome
}

// output base name derives from the original input, not the trimmed copy
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
