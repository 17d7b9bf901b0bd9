// Package writer serializes a finished recording to a CSV file in the
// output directory.
package writer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HarwaniDev/activity-tracker/internal/activity"
	"github.com/HarwaniDev/activity-tracker/internal/errors"
	"github.com/HarwaniDev/activity-tracker/internal/logger"
)

// Header is the first line of every output file.
const Header = "timestamp,mouse_x,mouse_y,keys_pressed"

// Config controls output placement.
type Config struct {
	// OutputDir overrides the platform Downloads directory when non-empty.
	OutputDir string
	Clock     func() time.Time
}

// Writer serializes activity records to CSV files.
type Writer struct {
	outputDir string
	clock     func() time.Time
}

// Result reports a successful write.
type Result struct {
	Path string
	Rows int
}

// New constructs a writer. The output directory is resolved per write so a
// missing Downloads directory is a reported error, not a startup failure.
func New(cfg Config) *Writer {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Writer{
		outputDir: cfg.OutputDir,
		clock:     clock,
	}
}

// Write serializes records to `<sanitized task>_<unix seconds>.csv`.
// Empty input is the EmptyRecording error; directory and file failures carry
// their own codes so the surface can report them distinctly.
func (w *Writer) Write(task string, records []activity.Record) (Result, error) {
	if len(records) == 0 {
		return Result{}, errors.New(errors.ErrEmptyRecording)
	}

	dir := w.outputDir
	if dir == "" {
		var err error
		dir, err = DownloadsDir()
		if err != nil {
			return Result{}, err
		}
	}

	filename := fmt.Sprintf("%s_%d.csv", SanitizeTaskName(task), w.clock().Unix())
	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return Result{}, errors.Wrap(errors.ErrFileCreateFailed, err)
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	fmt.Fprintln(bw, Header)
	for _, record := range records {
		fmt.Fprintf(bw, "%d,%d,%d,\"%s\"\n",
			record.Timestamp, record.MouseX, record.MouseY, record.KeysField())
	}

	if err := bw.Flush(); err != nil {
		return Result{}, errors.Wrap(errors.ErrFileCreateFailed, err)
	}
	if err := file.Close(); err != nil {
		return Result{}, errors.Wrap(errors.ErrFileCreateFailed, err)
	}

	logger.Info().Str("path", path).Int("rows", len(records)).Msg("recording saved")

	return Result{Path: path, Rows: len(records)}, nil
}

// SanitizeTaskName makes a task name filesystem-friendly: spaces become
// underscores and path separators are stripped.
func SanitizeTaskName(task string) string {
	sanitized := strings.ReplaceAll(strings.TrimSpace(task), " ", "_")
	sanitized = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return -1
		default:
			return r
		}
	}, sanitized)

	return sanitized
}

// DownloadsDir resolves the platform default downloads location.
func DownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrDirectoryUnresolved, err)
	}

	dir := filepath.Join(home, "Downloads")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", errors.New(errors.ErrDirectoryUnresolved)
	}

	return dir, nil
}
