// Package analysis reports file metadata together with text statistics.
package analysis

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lexcodex/featurekit/framework"
)

var (
	// ErrInvalidEncoding marks content that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")
	// ErrIsDirectory marks a directory passed where a file was expected.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileStatistics is a point-in-time snapshot of one file.
type FileStatistics struct {
	Path           string    `json:"path" yaml:"path"`
	Filename       string    `json:"filename" yaml:"filename"`
	Extension      string    `json:"extension" yaml:"extension"`
	SizeBytes      int64     `json:"size" yaml:"size"`
	LineCount      int       `json:"lines" yaml:"lines"`
	CharacterCount int       `json:"characters" yaml:"characters"`
	WordCount      int       `json:"words" yaml:"words"`
	ModifiedAt     time.Time `json:"modified" yaml:"modified"`
}

// Modified renders ModifiedAt in ISO-8601.
func (s FileStatistics) Modified() string {
	return framework.FormatTime(s.ModifiedAt)
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithBasePath resolves relative paths against base.
func WithBasePath(base string) Option {
	return func(a *Analyzer) { a.basePath = base }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithTelemetry attaches a telemetry sink.
func WithTelemetry(t framework.Telemetry) Option {
	return func(a *Analyzer) { a.telemetry = t }
}

// Analyzer reads files and produces FileStatistics.
type Analyzer struct {
	basePath  string
	logger    *slog.Logger
	telemetry framework.Telemetry
}

// New builds an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Analyze returns statistics for path. A missing path yields (zero, false)
// without a diagnostic; any other failure is logged and also yields false.
func (a *Analyzer) Analyze(path string) (FileStatistics, bool) {
	return a.analyze(a.resolve(path))
}

func (a *Analyzer) analyze(path string) (FileStatistics, bool) {
	stats, err := a.inspect(path)
	switch {
	case err == nil:
		return stats, true
	case errors.Is(err, framework.ErrNotFound):
		a.logger.Debug("analysis target missing", slog.String("path", path))
		return FileStatistics{}, false
	default:
		a.logger.Warn("error analyzing file", slog.String("path", path), slog.Any("err", err))
		return FileStatistics{}, false
	}
}

// Inspect is the error-returning form of Analyze. Missing files wrap
// framework.ErrNotFound, everything else framework.ErrIOFailure.
func (a *Analyzer) Inspect(path string) (FileStatistics, error) {
	return a.inspect(a.resolve(path))
}

func (a *Analyzer) inspect(resolved string) (FileStatistics, error) {
	stats, err := readStats(resolved)
	switch {
	case err == nil:
		framework.Emit(a.telemetry, framework.Event{
			Type:    framework.EventFileAnalyzed,
			Subject: resolved,
			Metadata: map[string]interface{}{
				"size":  stats.SizeBytes,
				"lines": stats.LineCount,
				"words": stats.WordCount,
			},
		})
	case errors.Is(err, framework.ErrNotFound):
		framework.Emit(a.telemetry, framework.Event{Type: framework.EventFileMissing, Subject: resolved})
	default:
		framework.Emit(a.telemetry, framework.Event{Type: framework.EventFileFailed, Subject: resolved, Message: err.Error()})
	}
	return stats, err
}

func readStats(path string) (FileStatistics, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileStatistics{}, framework.NewPathError("open", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return FileStatistics{}, framework.NewPathError("stat", path, err)
	}
	if info.IsDir() {
		return FileStatistics{}, &framework.PathError{Op: "read", Path: path, Kind: framework.ErrIOFailure, Err: ErrIsDirectory}
	}
	data, err := io.ReadAll(f)
	if err != nil {
		// The file existed when opened, so a vanishing file is an I/O
		// failure rather than absence.
		return FileStatistics{}, &framework.PathError{Op: "read", Path: path, Kind: framework.ErrIOFailure, Err: err}
	}
	if !utf8.Valid(data) {
		return FileStatistics{}, &framework.PathError{Op: "decode", Path: path, Kind: framework.ErrIOFailure, Err: ErrInvalidEncoding}
	}

	counts := Count(string(data))
	return FileStatistics{
		Path:           path,
		Filename:       filepath.Base(path),
		Extension:      extension(path),
		SizeBytes:      info.Size(),
		LineCount:      counts.Lines,
		CharacterCount: counts.Characters,
		WordCount:      counts.Words,
		ModifiedAt:     info.ModTime(),
	}, nil
}

// Walk analyzes every regular file under root selected by pattern (see
// CompilePattern). Files that fail analysis are logged and skipped.
func (a *Analyzer) Walk(root, pattern string) ([]FileStatistics, error) {
	matcher, err := CompilePattern(pattern)
	if err != nil {
		return nil, framework.InvalidArgument("pattern %q: %v", pattern, err)
	}
	dir := a.resolve(root)
	var results []FileStatistics
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			a.logger.Warn("skipping unreadable entry", slog.String("path", path), slog.Any("err", err))
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".git") {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil || rel == "." {
			rel = d.Name()
		}
		if !matcher.Match(filepath.ToSlash(rel)) {
			return nil
		}
		if stats, ok := a.analyze(path); ok {
			results = append(results, stats)
		}
		return nil
	})
	if err != nil {
		return nil, framework.NewPathError("walk", dir, err)
	}
	return results, nil
}

// extension is the suffix from the last dot of the base name. Leading dots
// do not start an extension, so ".bashrc" has none.
func extension(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i:]
	}
	return ""
}

func (a *Analyzer) resolve(path string) string {
	if a.basePath == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.basePath, path)
}

// Totals aggregates several FileStatistics.
type Totals struct {
	Files      int   `json:"files" yaml:"files"`
	SizeBytes  int64 `json:"size" yaml:"size"`
	Lines      int   `json:"lines" yaml:"lines"`
	Words      int   `json:"words" yaml:"words"`
	Characters int   `json:"characters" yaml:"characters"`
}

// Summarize sums the counts of stats.
func Summarize(stats []FileStatistics) Totals {
	var t Totals
	for _, s := range stats {
		t.Files++
		t.SizeBytes += s.SizeBytes
		t.Lines += s.LineCount
		t.Words += s.WordCount
		t.Characters += s.CharacterCount
	}
	return t
}
