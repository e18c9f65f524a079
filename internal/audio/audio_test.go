package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestIsAudioFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"song.mp3", true},
		{"record.wav", true},
		{"voice.m4a", true},
		{"music.flac", true},
		{"clip.ogg", true},
		{"old.wma", true},

		// case-insensitive
		{"LOUD.MP3", true},
		{"mixed.WaV", true},

		// not audio
		{"notes.txt", false},
		{"video.mp4", false},
		{"video.mkv", false},
		{"archive.zip", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsAudioFile(tt.path); got != tt.want {
				t.Errorf("IsAudioFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestTrimValidation(t *testing.T) {
	trimmer := NewFFmpegTrimmer(t.TempDir())
	ctx := context.Background()

	t.Run("non-positive duration", func(t *testing.T) {
		if _, err := trimmer.Trim(ctx, "in.mp3", 0); err == nil {
			t.Error("expected error for zero duration")
		}
		if _, err := trimmer.Trim(ctx, "in.mp3", -time.Second); err == nil {
			t.Error("expected error for negative duration")
		}
	})

	t.Run("missing input", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.mp3")
		_, err := trimmer.Trim(ctx, missing, time.Minute)
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("error = %v, want ErrInputNotFound", err)
		}
	})
}

func TestNewFFmpegTrimmerDefaultDir(t *testing.T) {
	if dir := NewFFmpegTrimmer("").OutputDir; dir != "trimmed" {
		t.Errorf("default output dir = %q, want trimmed", dir)
	}
}
