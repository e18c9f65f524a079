package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/purin-kan/thai-audio-transcription/internal/audio"
)

// Engine backed by the OpenAI Audio API. Useful when no local GPU is
// available; decoding knobs beyond language and temperature are handled
// server-side and ignored.
type OpenAIEngine struct {
	client openai.Client
	model  string
}

// segment from the verbose_json response
type whisperSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// verbose_json response structure
type whisperVerboseResponse struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
}

func NewOpenAIEngine(apiKey, model string) (*OpenAIEngine, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAIEngine{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (e *OpenAIEngine) Device() string {
	return "api"
}

// transcribes single audio file
func (e *OpenAIEngine) Transcribe(
	ctx context.Context,
	audioPath string,
	opts Options,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", audio.ErrInputNotFound, audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(e.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"segment"},
		Temperature:            openai.Float(opts.Temperature),
	}
	if opts.Language != "" {
		params.Language = openai.String(opts.Language)
	}

	resp, err := e.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	result, err := parseVerboseJSONResponse(resp.RawJSON())
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription response: %w", err)
	}
	if result.Language == "" {
		result.Language = opts.Language
	}
	return result, nil
}

func parseVerboseJSONResponse(rawJSON string) (*Result, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response")
	}

	var verboseResp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	result := &Result{
		Language: verboseResp.Language,
		Duration: time.Duration(verboseResp.Duration * float64(time.Second)),
		// the API does not report detection confidence
		LanguageProbability: 0,
	}

	if len(verboseResp.Segments) == 0 {
		text := strings.TrimSpace(verboseResp.Text)
		if text == "" {
			return nil, fmt.Errorf("no segments or text in response")
		}
		result.Segments = []Segment{{
			Start: 0,
			End:   verboseResp.Duration,
			Text:  text,
		}}
		return result, nil
	}

	for _, seg := range verboseResp.Segments {
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

	return result, nil
}

func (e *OpenAIEngine) Close() error {
	return nil
}
