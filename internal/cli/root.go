package cli

import (
	"github.com/purin-kan/thai-audio-transcription/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "thaiscribe",
	Short: "Batch speech-to-text transcription for Thai audio",
	Long: `Thaiscribe transcribes audio recordings to text using a Whisper
speech-recognition model.

Each input produces two transcripts: a timestamped rendering with one
line per recognized segment, and a plain-text rendering. Files, explicit
lists, and whole directories are supported.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("output", "o", "", "Output directory for transcripts")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language hint (e.g., th, en)")
}
