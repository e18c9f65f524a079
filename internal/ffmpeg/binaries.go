package ffmpeg

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

// ErrNotFound means neither the environment overrides nor PATH yielded
// usable ffmpeg/ffprobe binaries.
var ErrNotFound = errors.New(
	"ffmpeg and ffprobe are required: install them (https://ffmpeg.org/download.html)" +
		" or set THAISCRIBE_FFMPEG_PATH and THAISCRIBE_FFPROBE_PATH",
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves the ffmpeg and ffprobe binaries once per process:
// environment overrides first, then PATH.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (BinaryPaths, error) {
	ffmpegPath := os.Getenv("THAISCRIBE_FFMPEG_PATH")
	ffprobePath := os.Getenv("THAISCRIBE_FFPROBE_PATH")

	if ffmpegPath == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			ffmpegPath = found
		}
	}
	if ffprobePath == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobePath = found
		}
	}

	if ffmpegPath == "" || ffprobePath == "" {
		return BinaryPaths{}, ErrNotFound
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}
