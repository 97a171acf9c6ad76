package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

// Local serves nutrition data from a JSON file holding a flat list of
// NutritionInfo records. Useful for foods the external databases miss
// (home recipes, regional dishes) and as the offline tail of a chain.
type Local struct {
	path  string
	foods []model.NutritionInfo
}

func NewLocal(path string) (*Local, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local food file: %w", err)
	}
	var foods []model.NutritionInfo
	if err := json.Unmarshal(data, &foods); err != nil {
		return nil, fmt.Errorf("decode local food file: %w", err)
	}
	for i := range foods {
		if foods[i].Source == "" {
			foods[i].Source = "local"
		}
		if foods[i].SourceID == "" {
			foods[i].SourceID = fmt.Sprintf("local:%d", i)
		}
	}
	return &Local{path: path, foods: foods}, nil
}

func (l *Local) Name() string { return "local" }

// Search matches case-insensitively, exact name matches ranking ahead
// of substring matches, file order preserved within each rank.
func (l *Local) Search(_ context.Context, query string, limit int) ([]model.NutritionInfo, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil, nil
	}
	var exact, partial []model.NutritionInfo
	for _, f := range l.foods {
		name := strings.ToLower(f.Name)
		switch {
		case name == q:
			exact = append(exact, f)
		case strings.Contains(name, q):
			partial = append(partial, f)
		}
	}
	results := append(exact, partial...)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (l *Local) GetByID(_ context.Context, id string) (*model.NutritionInfo, error) {
	for _, f := range l.foods {
		if f.SourceID == id {
			info := f
			return &info, nil
		}
	}
	return nil, fmt.Errorf("local food %q not found", id)
}
