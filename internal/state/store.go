package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jimezsa/careerwatch/internal/models"
)

var (
	ErrCorrupt       = errors.New("state file does not hold a non-negative integer")
	ErrNegativeCount = errors.New("count must not be negative")
)

// StateError wraps a failure to read or write the state file.
type StateError struct {
	Op   string
	Path string
	Err  error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// FileStore keeps the previous job count as decimal text in a single file.
// There is no locking: overlapping runs may lose an update.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// ReadPrevious returns the stored count. A missing or empty file yields an
// unknown count and no error.
func (s *FileStore) ReadPrevious() (models.Count, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Count{}, nil
		}
		return models.Count{}, &StateError{Op: "read", Path: s.path, Err: err}
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return models.Count{}, nil
	}
	value, err := parseCount(text)
	if err != nil {
		return models.Count{}, &StateError{Op: "read", Path: s.path, Err: err}
	}
	return models.KnownCount(value), nil
}

// WriteCurrent overwrites the state file with count, creating it and its
// parent directory when absent.
func (s *FileStore) WriteCurrent(count int) error {
	if count < 0 {
		return &StateError{Op: "write", Path: s.path, Err: ErrNegativeCount}
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StateError{Op: "write", Path: s.path, Err: err}
		}
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(count)), 0o644); err != nil {
		return &StateError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Reset deletes the state file so the next run starts from an unknown count.
func (s *FileStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StateError{Op: "reset", Path: s.path, Err: err}
	}
	return nil
}

func parseCount(text string) (int, error) {
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrCorrupt, text)
		}
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, text)
	}
	return value, nil
}
