package mastery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// File is a Tracker persisted as a JSON list of verbs. Every new verb
// rewrites the file through a temporary file and a rename. It is safe for
// concurrent use within one process.
type File struct {
	Memory
	path   string
	logger zerolog.Logger
}

// FileOption configures a File tracker.
type FileOption func(*File)

// WithLogger sets the logger used to report write failures.
func WithLogger(logger zerolog.Logger) FileOption {
	return func(f *File) {
		f.logger = logger
	}
}

// Open loads the tracker stored at path. A missing file starts empty.
func Open(path string, opts ...FileOption) (*File, error) {
	f := &File{
		Memory: Memory{seen: make(map[string]struct{})},
		path:   path,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mastery file: %w", err)
	}

	var verbs []string
	if len(data) > 0 {
		if err := json.Unmarshal(data, &verbs); err != nil {
			return nil, fmt.Errorf("failed to decode mastery file %s: %w", path, err)
		}
	}
	for _, v := range verbs {
		f.add(v)
	}

	f.logger.Debug().Str("path", path).Int("verbs", len(f.verbs)).Msg("loaded mastery progress")
	return f, nil
}

// Path returns the file the tracker persists to.
func (f *File) Path() string {
	return f.path
}

// Record adds verb and persists the list when it changed. Write failures
// are logged; the verb stays recorded in memory.
func (f *File) Record(verb string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.add(verb) {
		return
	}
	if err := f.save(); err != nil {
		f.logger.Warn().Err(err).Str("path", f.path).Msg("failed to persist mastery progress")
	}
}

// Reset forgets every verb and writes an empty list.
func (f *File) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verbs = nil
	f.seen = make(map[string]struct{})
	return f.save()
}

// save writes the current list. The caller holds mu.
func (f *File) save() error {
	verbs := f.verbs
	if verbs == nil {
		verbs = []string{}
	}
	data, err := json.MarshalIndent(verbs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mastery progress: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create mastery directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mastery-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write mastery progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace mastery file: %w", err)
	}

	f.logger.Trace().Str("path", f.path).Int("verbs", len(f.verbs)).Msg("saved mastery progress")
	return nil
}
