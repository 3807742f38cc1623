package calendar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists a calendar as a flat JSON document on disk. Writes go
// through a temp file in the same directory followed by a rename, so a
// failed save leaves the previous document unchanged. Suitable for
// single-writer, low-volume booking; concurrent exclusion is layered on by
// BookingService.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the document at path. The file need
// not exist yet; a missing file loads as an empty calendar.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads all events in file order. An unreadable or unparseable document
// fails with ErrCorruptStorage.
func (s *FileStore) Load(_ context.Context) (Calendar, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Calendar{}, nil
		}
		return Calendar{}, fmt.Errorf("read calendar %s: %w", s.path, err)
	}

	cal, err := UnmarshalCalendar(raw)
	if err != nil {
		return Calendar{}, fmt.Errorf("%w: %s", err, s.path)
	}
	return cal, nil
}

// Save atomically replaces the document with the full event set.
func (s *FileStore) Save(_ context.Context, cal Calendar) error {
	raw, err := MarshalCalendar(cal)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".calendar-*.json")
	if err != nil {
		return fmt.Errorf("create temp calendar file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write calendar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close calendar file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace calendar %s: %w", s.path, err)
	}
	return nil
}
