package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/purin-kan/thai-audio-transcription/internal/config"
	"github.com/purin-kan/thai-audio-transcription/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [output_dir]",
	Short: "Check transcripts for duplicated lines",
	Long: `Scan timestamped transcripts for repeated lines, which usually
indicate the decoder looped on a segment. Lines shorter than ten
characters are ignored.

Examples:
  thaiscribe check
  thaiscribe check output/interviews`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	outputDir := config.Load().OutputDir
	if len(args) == 1 {
		outputDir = args[0]
	}

	found, err := report.CheckDir(outputDir)
	if err != nil {
		return err
	}

	fmt.Print(report.Render(found))
	return nil
}
