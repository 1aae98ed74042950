package history

import (
	"context"

	"github.com/jimezsa/careerwatch/internal/models"
)

type Store interface {
	Record(ctx context.Context, obs models.Observation) error
	Recent(ctx context.Context, limit int) ([]models.Observation, error)
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = NopStore{}
)

// Open returns a SQLite store for path, or a NopStore when path is empty.
func Open(ctx context.Context, path string) (Store, error) {
	if path == "" {
		return NopStore{}, nil
	}
	return NewSQLiteStore(ctx, path)
}
