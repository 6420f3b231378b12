package files

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"custexport/internal/infrastructure"
)

// Line sink errors
var (
	// ErrPathInvalid is returned for target names that are empty, absolute
	// or escape the output directory
	ErrPathInvalid = errors.New("path invalid")

	// ErrClosed is returned when writing to a closed LineFileWriter
	ErrClosed = errors.New("line writer closed")
)

// LineFileOptions configures LineFileWriter
type LineFileOptions struct {
	// Truncate empties each file the first time it is opened instead of
	// appending to existing content
	Truncate bool
}

// FileSummary describes one file written by a LineFileWriter
type FileSummary struct {
	Name  string
	Path  string
	Lines int
}

// LineFileWriter appends lines of text to files under a base directory.
// Each file is opened once and kept open until Close. Names that clean to
// the same path ("a.csv", "./a.csv") share one file.
type LineFileWriter struct {
	dir    string
	opts   LineFileOptions
	logger *slog.Logger

	mu      sync.Mutex
	streams map[string]*lineStream
	order   []string
	closed  bool
}

// lineStream is an open output file
type lineStream struct {
	path   string
	file   *os.File
	writer *bufio.Writer
	lines  int
}

// NewLineFileWriter creates a line writer rooted at dir
func NewLineFileWriter(dir string, opts LineFileOptions) *LineFileWriter {
	return &LineFileWriter{
		dir:     dir,
		opts:    opts,
		logger:  infrastructure.WithComponent(infrastructure.GetLogger(), "files"),
		streams: make(map[string]*lineStream),
	}
}

// WriteLine appends line and a newline to the named file
func (w *LineFileWriter) WriteLine(fileName, line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	stream, err := w.stream(fileName)
	if err != nil {
		return err
	}

	if _, err := stream.writer.WriteString(line); err != nil {
		return fmt.Errorf("failed to write line to %s: %w", fileName, err)
	}
	if err := stream.writer.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write line to %s: %w", fileName, err)
	}
	stream.lines++

	return nil
}

// Files returns the files written so far, in the order they were first written
func (w *LineFileWriter) Files() []FileSummary {
	w.mu.Lock()
	defer w.mu.Unlock()

	summaries := make([]FileSummary, 0, len(w.order))
	for _, name := range w.order {
		stream := w.streams[name]
		summaries = append(summaries, FileSummary{
			Name:  name,
			Path:  stream.path,
			Lines: stream.lines,
		})
	}
	return summaries
}

// Flush writes buffered lines of every open file to disk
func (w *LineFileWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	for _, name := range w.order {
		if err := w.streams[name].writer.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close flushes and closes every open file. Further writes return ErrClosed.
func (w *LineFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, name := range w.order {
		stream := w.streams[name]
		if err := stream.writer.Flush(); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush %s: %w", name, err))
		}
		if err := stream.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", name, err))
		}
	}

	w.logger.Debug("Closed line writer",
		slog.String("dir", w.dir),
		slog.Int("file_count", len(w.order)))

	return errors.Join(errs...)
}

// stream returns the open stream for fileName, opening it on first use
func (w *LineFileWriter) stream(fileName string) (*lineStream, error) {
	fullPath, err := w.resolvePath(fileName)
	if err != nil {
		return nil, err
	}

	name := filepath.Clean(fileName)
	if stream, ok := w.streams[name]; ok {
		return stream, nil
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if w.opts.Truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	w.logger.Debug("Opened output file",
		slog.String("file_name", name),
		slog.String("full_path", fullPath),
		slog.Bool("truncate", w.opts.Truncate))

	stream := &lineStream{
		path:   fullPath,
		file:   file,
		writer: bufio.NewWriter(file),
	}
	w.streams[name] = stream
	w.order = append(w.order, name)

	return stream, nil
}

// resolvePath maps a target name to a path inside the base directory
func (w *LineFileWriter) resolvePath(fileName string) (string, error) {
	if !filepath.IsLocal(fileName) {
		return "", fmt.Errorf("%w: %q", ErrPathInvalid, fileName)
	}
	return filepath.Join(w.dir, fileName), nil
}
