package transcribe

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/purin-kan/thai-audio-transcription/internal/audio"
)

//go:embed assets/faster_whisper.py
var workerScript []byte

// Engine backed by a local faster-whisper model. A single Python worker
// process is started per engine instance; the model is loaded once at
// construction and reused for every Transcribe call. Requests and
// responses are single JSON lines on the worker's stdin/stdout.
type FasterWhisperEngine struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *bufio.Reader
	stderr     *lockedBuffer
	scriptPath string

	device      string
	computeType string

	mu     sync.Mutex
	closed bool
}

// exec copies worker stderr from a separate goroutine while stderrTail
// reads it on error paths, so the buffer needs a lock
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type workerRequest struct {
	Audio               string  `json:"audio"`
	Language            string  `json:"language,omitempty"`
	BeamSize            int     `json:"beam_size"`
	BestOf              int     `json:"best_of"`
	Temperature         float64 `json:"temperature"`
	ConditionOnPrevious bool    `json:"condition_on_previous_text"`
	VADFilter           bool    `json:"vad_filter"`
	MinSilenceMs        int     `json:"min_silence_duration_ms"`
}

type workerSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type workerResponse struct {
	Ready               bool            `json:"ready"`
	Error               string          `json:"error"`
	Device              string          `json:"device"`
	ComputeType         string          `json:"compute_type"`
	Language            string          `json:"language"`
	LanguageProbability float64         `json:"language_probability"`
	Duration            float64         `json:"duration"`
	Segments            []workerSegment `json:"segments"`
}

// NewFasterWhisperEngine starts the worker and loads the model selected by
// opts.ModelSize on opts.Device (auto tries CUDA/float16 first and falls
// back to CPU/int8). A load failure here is fatal for the whole run.
func NewFasterWhisperEngine(
	ctx context.Context,
	python string,
	opts Options,
) (*FasterWhisperEngine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if python == "" {
		python = "python3"
	}

	scriptFile, err := os.CreateTemp("", "thaiscribe-worker-*.py")
	if err != nil {
		return nil, fmt.Errorf("write worker script: %w", err)
	}
	scriptPath := scriptFile.Name()
	if _, err := scriptFile.Write(workerScript); err != nil {
		_ = scriptFile.Close()
		_ = os.Remove(scriptPath)
		return nil, fmt.Errorf("write worker script: %w", err)
	}
	if err := scriptFile.Close(); err != nil {
		_ = os.Remove(scriptPath)
		return nil, fmt.Errorf("write worker script: %w", err)
	}

	cmd := exec.CommandContext(ctx, python, scriptPath,
		"--model", string(opts.ModelSize),
		"--device", string(opts.Device),
	)
	cmd.Env = os.Environ()

	stdin, err := cmd.StdinPipe()
	if err != nil {
		_ = os.Remove(scriptPath)
		return nil, fmt.Errorf("worker stdin: %w", err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		_ = os.Remove(scriptPath)
		return nil, fmt.Errorf("worker stdout: %w", err)
	}
	stderr := &lockedBuffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		_ = os.Remove(scriptPath)
		return nil, fmt.Errorf("start transcription worker: %w", err)
	}

	e := &FasterWhisperEngine{
		cmd:        cmd,
		stdin:      stdin,
		stdout:     bufio.NewReader(stdoutPipe),
		stderr:     stderr,
		scriptPath: scriptPath,
	}

	// handshake: the worker reports the device it ended up on once the
	// model has loaded
	ready, err := e.readResponse()
	if err != nil {
		e.kill()
		return nil, fmt.Errorf("model load failed: %w%s", err, e.stderrTail())
	}
	if !ready.Ready {
		e.kill()
		if ready.Error != "" {
			return nil, fmt.Errorf("model load failed: %s", ready.Error)
		}
		return nil, fmt.Errorf("model load failed: unexpected worker handshake")
	}

	e.device = ready.Device
	e.computeType = ready.ComputeType
	return e, nil
}

func (e *FasterWhisperEngine) Device() string {
	if e.computeType != "" {
		return fmt.Sprintf("%s/%s", e.device, e.computeType)
	}
	return e.device
}

// transcribes a single audio file using the already-loaded model
func (e *FasterWhisperEngine) Transcribe(
	ctx context.Context,
	audioPath string,
	opts Options,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", audio.ErrInputNotFound, audioPath)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, fmt.Errorf("engine is closed")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req := workerRequest{
		Audio:               audioPath,
		Language:            opts.Language,
		BeamSize:            opts.BeamSize,
		BestOf:              opts.BestOf,
		Temperature:         opts.Temperature,
		ConditionOnPrevious: opts.ConditionOnPrevious,
		VADFilter:           opts.VADFilter,
		MinSilenceMs:        opts.MinSilenceMs,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode worker request: %w", err)
	}
	if _, err := e.stdin.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("transcription worker unavailable: %w%s", err, e.stderrTail())
	}

	resp, err := e.readResponse()
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w%s", err, e.stderrTail())
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("transcription failed: %s", resp.Error)
	}

	return resultFromWorker(resp), nil
}

func resultFromWorker(resp *workerResponse) *Result {
	result := &Result{
		Language:            resp.Language,
		LanguageProbability: resp.LanguageProbability,
		Duration:            time.Duration(resp.Duration * float64(time.Second)),
	}
	for _, seg := range resp.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  text,
		})
	}
	return result
}

func (e *FasterWhisperEngine) readResponse() (*workerResponse, error) {
	line, err := e.stdout.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read worker response: %w", err)
	}
	var resp workerResponse
	if err := json.Unmarshal(bytes.TrimSpace(line), &resp); err != nil {
		return nil, fmt.Errorf("parse worker response: %w", err)
	}
	return &resp, nil
}

func (e *FasterWhisperEngine) stderrTail() string {
	s := strings.TrimSpace(e.stderr.String())
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return "\nworker stderr: " + strings.Join(lines, "\n")
}

func (e *FasterWhisperEngine) kill() {
	_ = e.stdin.Close()
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	_ = e.cmd.Wait()
	_ = os.Remove(e.scriptPath)
}

// Close shuts the worker down. The worker exits when its stdin closes.
func (e *FasterWhisperEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	_ = e.stdin.Close()
	err := e.cmd.Wait()
	_ = os.Remove(e.scriptPath)
	return err
}
