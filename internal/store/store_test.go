package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

func newTestStore(t *testing.T, loc *time.Location) *Store {
	t.Helper()
	s, err := New(t.TempDir(), loc)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestAppendAndReadFood(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, time.UTC)
	ts := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)
	entry := model.FoodEntry{
		Timestamp: ts,
		Name:      "oats",
		Quantity:  50,
		Unit:      "g",
		Calories:  194.5,
		ProteinG:  8.4,
		Source:    "manual",
	}
	if err := s.AppendFood(entry); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := s.FoodLog("2026-03-10")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Name != "oats" || got.Calories != 194.5 || !got.Timestamp.Equal(ts) {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	other, err := s.FoodLog("2026-03-11")
	if err != nil {
		t.Fatalf("read other day: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("day buckets must be independent, got %d entries", len(other))
	}
}

func TestDayBucketingUsesReferenceTimezone(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	s := newTestStore(t, la)

	// 02:00 UTC on Mar 11 is still Mar 10 in Los Angeles.
	ts := time.Date(2026, 3, 11, 2, 0, 0, 0, time.UTC)
	if day := s.DayOf(ts); day != "2026-03-10" {
		t.Fatalf("expected bucket 2026-03-10, got %s", day)
	}
	if err := s.AppendFood(model.FoodEntry{Timestamp: ts, Name: "late snack"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	entries, err := s.FoodLog("2026-03-10")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected entry in the LA day bucket, got %d", len(entries))
	}
}

func TestDeleteFoodExactTimestamp(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, time.UTC)
	ts := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	if err := s.AppendFood(model.FoodEntry{Timestamp: ts, Name: "egg"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendFood(model.FoodEntry{Timestamp: ts.Add(time.Minute), Name: "toast"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	removed, err := s.DeleteFood(ts)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Name != "egg" {
		t.Fatalf("expected egg removed, got %q", removed.Name)
	}

	if _, err := s.DeleteFood(ts); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}

	entries, err := s.FoodLog("2026-03-10")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "toast" {
		t.Fatalf("expected toast to survive, got %+v", entries)
	}
}

func TestWaterLogRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, time.UTC)
	ts := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	if err := s.AppendWater(model.WaterEntry{Timestamp: ts, AmountML: 474}); err != nil {
		t.Fatalf("append: %v", err)
	}
	entries, err := s.WaterLog("2026-03-10")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 1 || entries[0].AmountML != 474 {
		t.Fatalf("round-trip mismatch: %+v", entries)
	}
}

func TestGoalsDefaultsAndPersistence(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, time.UTC)
	goals, err := s.Goals()
	if err != nil {
		t.Fatalf("goals: %v", err)
	}
	if goals.Calories != 2000 || goals.ProteinG != 150 || goals.WaterML != 3000 {
		t.Fatalf("unexpected defaults: %+v", goals)
	}

	goals.Calories = 2400
	goals.FatG = 70
	if err := s.SaveGoals(goals); err != nil {
		t.Fatalf("save goals: %v", err)
	}
	reread, err := s.Goals()
	if err != nil {
		t.Fatalf("reread goals: %v", err)
	}
	if reread.Calories != 2400 || reread.FatG != 70 {
		t.Fatalf("goals did not persist: %+v", reread)
	}
}

func TestDayFileLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir, time.UTC)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if err := s.AppendFood(model.FoodEntry{Timestamp: ts, Name: "oats"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "food_2026-03-10.json")); err != nil {
		t.Fatalf("expected day file on disk: %v", err)
	}
}
