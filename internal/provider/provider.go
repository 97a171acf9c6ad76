package provider

import (
	"context"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

// Provider is a nutrition data source. Search returns best-match-first
// candidates, at most limit, empty when nothing matched. Implementations
// report transport and parse failures as errors; the tracker treats any
// search error the same as an empty result set.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]model.NutritionInfo, error)
	GetByID(ctx context.Context, id string) (*model.NutritionInfo, error)
}
