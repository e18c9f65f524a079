package main

import (
	"os"

	"github.com/purin-kan/thai-audio-transcription/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
