package report

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// lines shorter than this are too generic to count as duplicates
const minDuplicateLength = 10

var timestampPrefix = regexp.MustCompile(`^\[\d+\.\d{2}s → \d+\.\d{2}s\]\s*`)

// one repeated line within a transcript
type Duplicate struct {
	Text  string
	Count int
}

// stripTimestamp returns the text portion of a timestamped transcript
// line, or the whole line when it carries no timestamp prefix.
func stripTimestamp(line string) string {
	line = strings.TrimSpace(line)
	return timestampPrefix.ReplaceAllString(line, "")
}

// CheckFile scans one timestamped transcript for repeated lines.
// Repetition in the output usually means the decoder got stuck and looped.
func CheckFile(path string) ([]Duplicate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	counts := make(map[string]int)
	var order []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := stripTimestamp(scanner.Text())
		if text == "" || utf8.RuneCountInString(text) < minDuplicateLength {
			continue
		}
		if counts[text] == 0 {
			order = append(order, text)
		}
		counts[text]++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var duplicates []Duplicate
	for _, text := range order {
		if counts[text] > 1 {
			duplicates = append(duplicates, Duplicate{Text: text, Count: counts[text]})
		}
	}
	return duplicates, nil
}

// CheckDir scans every *_timestamped.txt under outputDir, recursively, and
// returns the files that contain repeated lines, keyed by path relative to
// outputDir.
func CheckDir(outputDir string) (map[string][]Duplicate, error) {
	if _, err := os.Stat(outputDir); err != nil {
		return nil, fmt.Errorf("output directory not found: %s", outputDir)
	}

	found := make(map[string][]Duplicate)
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), "_timestamped.txt") {
			return nil
		}
		duplicates, err := CheckFile(path)
		if err != nil {
			return err
		}
		if len(duplicates) > 0 {
			rel, relErr := filepath.Rel(outputDir, path)
			if relErr != nil {
				rel = path
			}
			found[rel] = duplicates
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Render produces the human-readable duplicate report.
func Render(found map[string][]Duplicate) string {
	if len(found) == 0 {
		return "No duplicate lines found in any transcription files.\n"
	}

	files := make([]string, 0, len(found))
	for file := range found {
		files = append(files, file)
	}
	sort.Strings(files)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Files with duplicate lines: %d\n", len(files))
	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), "_timestamped.txt")
		fmt.Fprintf(&sb, "  - %s (%d repeated line(s))\n", name, len(found[file]))
	}
	return sb.String()
}
