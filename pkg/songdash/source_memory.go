package songdash

import (
	"context"

	"github.com/himanishpuri/SongDash/pkg/models"
)

// memorySource filters and ranks the loaded table directly.
type memorySource struct {
	table *models.Table
}

func NewMemorySource(t *models.Table) Source {
	return &memorySource{table: t}
}

func (m *memorySource) Filter(ctx context.Context, sel models.Selection) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Filter(m.table, sel), nil
}

func (m *memorySource) Top(ctx context.Context, sel models.Selection, feature models.Feature, n int) (*models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Rank(Filter(m.table, sel), feature, n), nil
}

func (m *memorySource) Close() error { return nil }
