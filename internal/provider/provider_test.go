package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

type stubProvider struct {
	name    string
	results []model.NutritionInfo
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, query string, limit int) ([]model.NutritionInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubProvider) GetByID(_ context.Context, id string) (*model.NutritionInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.results {
		if r.SourceID == id {
			info := r
			return &info, nil
		}
	}
	return nil, fmt.Errorf("%s: id %q not found", s.name, id)
}

func TestChainReturnsFirstNonEmptyResult(t *testing.T) {
	t.Parallel()

	empty := &stubProvider{name: "empty"}
	failing := &stubProvider{name: "failing", err: fmt.Errorf("timeout")}
	hit := &stubProvider{name: "hit", results: []model.NutritionInfo{{Name: "Dal", Source: "local"}}}
	unreached := &stubProvider{name: "unreached", results: []model.NutritionInfo{{Name: "Other"}}}

	chain := NewChain(empty, failing, hit, unreached)
	results, err := chain.Search(context.Background(), "dal", 5)
	if err != nil {
		t.Fatalf("chain search: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Dal" {
		t.Fatalf("expected hit provider result, got %+v", results)
	}
	if unreached.calls != 0 {
		t.Fatalf("chain must stop at the first non-empty provider")
	}
}

func TestChainAllEmpty(t *testing.T) {
	t.Parallel()

	chain := NewChain(&stubProvider{name: "a"}, &stubProvider{name: "b", err: fmt.Errorf("down")})
	results, err := chain.Search(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("chain search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %+v", results)
	}
}

func writeLocalFoods(t *testing.T, foods []model.NutritionInfo) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "foods.json")
	data, err := json.Marshal(foods)
	if err != nil {
		t.Fatalf("marshal foods: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write foods: %v", err)
	}
	return path
}

func TestLocalSearchRanksExactBeforeSubstring(t *testing.T) {
	t.Parallel()

	path := writeLocalFoods(t, []model.NutritionInfo{
		{Name: "Dal Makhani", Calories: 140},
		{Name: "Dal", Calories: 116},
		{Name: "Chicken Curry", Calories: 150},
	})
	local, err := NewLocal(path)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}

	results, err := local.Search(context.Background(), "dal", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	if results[0].Name != "Dal" || results[1].Name != "Dal Makhani" {
		t.Fatalf("expected exact match first, got %+v", results)
	}
	if results[0].Source != "local" || results[0].SourceID == "" {
		t.Fatalf("expected local source tags filled in, got %+v", results[0])
	}
}

func TestLocalGetByID(t *testing.T) {
	t.Parallel()

	path := writeLocalFoods(t, []model.NutritionInfo{{Name: "Dal", Calories: 116}})
	local, err := NewLocal(path)
	if err != nil {
		t.Fatalf("new local: %v", err)
	}
	info, err := local.GetByID(context.Background(), "local:0")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if info.Name != "Dal" {
		t.Fatalf("unexpected food: %+v", info)
	}
	if _, err := local.GetByID(context.Background(), "local:99"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}
