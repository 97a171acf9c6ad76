package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

// Chain tries each inner provider in order and returns the first
// non-empty search result. A failing provider is skipped, not fatal.
type Chain struct {
	Providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{Providers: providers}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.Providers))
	for _, p := range c.Providers {
		names = append(names, p.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

func (c *Chain) Search(ctx context.Context, query string, limit int) ([]model.NutritionInfo, error) {
	for _, p := range c.Providers {
		results, err := p.Search(ctx, query, limit)
		if err != nil {
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}
	return nil, nil
}

// GetByID asks each provider in order; IDs are provider-scoped, so a
// provider that does not recognize the ID simply yields to the next.
func (c *Chain) GetByID(ctx context.Context, id string) (*model.NutritionInfo, error) {
	var lastErr error
	for _, p := range c.Providers {
		info, err := p.GetByID(ctx, id)
		if err != nil {
			lastErr = err
			continue
		}
		if info != nil {
			return info, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no provider found id %q", id)
}
