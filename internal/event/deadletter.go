package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/osse101/EcoHunt_Go/internal/logger"
)

// DeadLetterSchemaVersion is the current version of the dead-letter line format
const DeadLetterSchemaVersion = "1.1"

// DeadLetterEntry is one event that could not be delivered
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	ProcessID     string    `json:"process_id,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSON-lines file. The
// file is created on the first write so a clean run leaves nothing behind.
type DeadLetterWriter struct {
	path string

	mu   sync.Mutex
	file *os.File
}

// NewDeadLetterWriter prepares a writer for path and creates its directory
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), DeadLetterDirPermissions); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgDeadLetterOpen, err)
	}
	return &DeadLetterWriter{path: path}, nil
}

// Path returns the file the writer appends to
func (w *DeadLetterWriter) Path() string {
	return w.path
}

// Write appends evt with its delivery history
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		Event:         evt,
		Attempts:      attempts,
	}
	if id, ok := evt.GetMetadataValue(MetadataProcessID).(string); ok {
		entry.ProcessID = id
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgDeadLetterOpen, err)
		}
		w.file = f
	}
	_, err = w.file.Write(append(line, '\n'))
	return err
}

// Close closes the file if it was ever opened
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

// ReadDeadLetters parses a dead-letter file. Lines that are not valid
// entries are logged and skipped. A missing file yields no entries.
func ReadDeadLetters(ctx context.Context, path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), DeadLetterMaxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil || entry.Event.Type == "" {
			logger.FromContext(ctx).Warn(LogMsgDeadLetterLineSkipped, "path", path, "line", lineNo, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}
