package history

import (
	"context"

	"github.com/jimezsa/careerwatch/internal/models"
)

// NopStore is used when no history database is configured.
type NopStore struct{}

func (NopStore) Record(context.Context, models.Observation) error { return nil }

func (NopStore) Recent(context.Context, int) ([]models.Observation, error) { return nil, nil }

func (NopStore) Close() error { return nil }
