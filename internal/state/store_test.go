package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "known_job_count.txt"))
}

func TestReadPreviousMissingFileIsUnknown(t *testing.T) {
	s := newTestStore(t)

	got, err := s.ReadPrevious()
	if err != nil {
		t.Fatalf("ReadPrevious() error = %v", err)
	}
	if got.Known {
		t.Fatalf("expected unknown count, got %v", got)
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	for _, count := range []int{0, 1, 150, 162, 1_000_000} {
		if err := s.WriteCurrent(count); err != nil {
			t.Fatalf("WriteCurrent(%d) error = %v", count, err)
		}
		got, err := s.ReadPrevious()
		if err != nil {
			t.Fatalf("ReadPrevious() error = %v", err)
		}
		if !got.Known || got.Value != count {
			t.Fatalf("round trip of %d returned %+v", count, got)
		}
	}
}

func TestWriteCurrentStoresPlainDecimal(t *testing.T) {
	s := newTestStore(t)
	if err := s.WriteCurrent(162); err != nil {
		t.Fatalf("WriteCurrent() error = %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "162" {
		t.Fatalf("state file = %q, want %q", data, "162")
	}
}

func TestWriteCurrentCreatesParentDir(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "state", "nested", "count.txt"))
	if err := s.WriteCurrent(5); err != nil {
		t.Fatalf("WriteCurrent() error = %v", err)
	}
	got, err := s.ReadPrevious()
	if err != nil || got.Value != 5 {
		t.Fatalf("ReadPrevious() = %+v, %v", got, err)
	}
}

func TestWriteCurrentRejectsNegative(t *testing.T) {
	s := newTestStore(t)
	err := s.WriteCurrent(-1)
	if !errors.Is(err, ErrNegativeCount) {
		t.Fatalf("WriteCurrent(-1) error = %v, want ErrNegativeCount", err)
	}
	if _, statErr := os.Stat(s.Path()); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("state file should not exist after rejected write")
	}
}

func TestReadPreviousTolerantWhitespace(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte(" 150\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := s.ReadPrevious()
	if err != nil {
		t.Fatalf("ReadPrevious() error = %v", err)
	}
	if got.Value != 150 || !got.Known {
		t.Fatalf("ReadPrevious() = %+v, want 150", got)
	}

	if err := os.WriteFile(s.Path(), []byte("\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err = s.ReadPrevious()
	if err != nil || got.Known {
		t.Fatalf("empty file should read as unknown, got %+v, %v", got, err)
	}
}

func TestReadPreviousCorrupt(t *testing.T) {
	for _, content := range []string{"abc", "-5", "+5", "1.5", "12 jobs"} {
		s := newTestStore(t)
		if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		_, err := s.ReadPrevious()
		var stateErr *StateError
		if !errors.As(err, &stateErr) {
			t.Fatalf("content %q: expected *StateError, got %v", content, err)
		}
		if !errors.Is(err, ErrCorrupt) {
			t.Fatalf("content %q: expected ErrCorrupt, got %v", content, err)
		}
		if stateErr.Op != "read" || stateErr.Path != s.Path() {
			t.Fatalf("content %q: unexpected StateError %+v", content, stateErr)
		}
	}
}

func TestReadPreviousUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a file.
	s := NewFileStore(dir)
	_, err := s.ReadPrevious()
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected *StateError reading a directory, got %v", err)
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	if err := s.WriteCurrent(3); err != nil {
		t.Fatalf("WriteCurrent() error = %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	got, err := s.ReadPrevious()
	if err != nil || got.Known {
		t.Fatalf("after Reset() got %+v, %v", got, err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() on missing file error = %v", err)
	}
}
