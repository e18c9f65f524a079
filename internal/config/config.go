package config

import (
	"os"

	"github.com/joho/godotenv"
)

// runtime configuration resolved from the environment
type Config struct {
	FFmpegPath  string // override for the ffmpeg binary
	FFprobePath string // override for the ffprobe binary
	Python      string // interpreter used to run the transcription worker

	OpenAIAPIKey string
	GeminiAPIKey string

	OutputDir  string
	TrimmedDir string
}

// Load reads configuration from a .env file (when present) and the process
// environment. Missing keys fall back to defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		FFmpegPath:   os.Getenv("THAISCRIBE_FFMPEG_PATH"),
		FFprobePath:  os.Getenv("THAISCRIBE_FFPROBE_PATH"),
		Python:       getenvDefault("THAISCRIBE_PYTHON", "python3"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OutputDir:    getenvDefault("THAISCRIBE_OUTPUT_DIR", "output"),
		TrimmedDir:   getenvDefault("THAISCRIBE_TRIMMED_DIR", "trimmed"),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
