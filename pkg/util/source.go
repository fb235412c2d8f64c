package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// MappedFile is a read-only view of a source file.
type MappedFile struct {
	// Path is the path the file was opened with.
	Path string

	// Data is the mapped region. Nil for empty files.
	Data mmap.MMap

	// file is nil when the contents were read into memory instead of mapped.
	file *os.File
}

// Bytes returns the file contents.
func (mf *MappedFile) Bytes() []byte {
	return mf.Data
}

// SourceReader memory-maps source files for the duration of one lookup.
//
// Files stay mapped until Close. A reader is not reused across lookups, so
// edits made between two requests are always seen.
//
// Safe for concurrent use.
type SourceReader struct {
	logger *slog.Logger

	mu    sync.Mutex
	files []*MappedFile
	stats SourceReaderStats
}

// SourceReaderStats counts what a reader did.
type SourceReaderStats struct {
	FilesOpened  int
	BytesMapped  int64
	MmapFailures int
}

// NewSourceReader creates a reader. A nil logger uses slog.Default().
func NewSourceReader(logger *slog.Logger) *SourceReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceReader{logger: logger}
}

// Open maps path read-only, falling back to os.ReadFile when mmap fails.
func (r *SourceReader) Open(path string) (*MappedFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	// Zero bytes cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		mf := &MappedFile{Path: path}
		r.track(mf, 0, false)
		return mf, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		r.logger.Warn("mmap failed, using fallback",
			"file", path,
			"size", stat.Size(),
			"error", err)
		file.Close()

		buf, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap failed and fallback failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		mf := &MappedFile{Path: path, Data: mmap.MMap(buf)}
		r.track(mf, int64(len(buf)), true)
		return mf, nil
	}

	mf := &MappedFile{Path: path, Data: data, file: file}
	r.track(mf, stat.Size(), false)
	return mf, nil
}

func (r *SourceReader) track(mf *MappedFile, size int64, fallback bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.files = append(r.files, mf)
	r.stats.FilesOpened++
	if fallback {
		r.stats.MmapFailures++
		return
	}
	r.stats.BytesMapped += size
}

// Stats returns what the reader has opened so far.
func (r *SourceReader) Stats() SourceReaderStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Close unmaps every file opened through the reader. Slices returned by
// MappedFile.Bytes must not be used afterwards.
func (r *SourceReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, mf := range r.files {
		if mf.file == nil {
			continue
		}
		if err := mf.Data.Unmap(); err != nil {
			errs = append(errs, fmt.Errorf("unmap %q: %w", mf.Path, err))
		}
		if err := mf.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", mf.Path, err))
		}
	}
	r.files = nil

	r.logger.Debug("source reader closed",
		"files_opened", r.stats.FilesOpened,
		"bytes_mapped", r.stats.BytesMapped,
		"mmap_failures", r.stats.MmapFailures)

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
