package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

// ErrNotFound is returned when a delete targets a timestamp with no
// matching stored entry.
var ErrNotFound = fmt.Errorf("entry not found")

// Store persists entries as one JSON file per calendar day per kind
// (food_YYYY-MM-DD.json, water_YYYY-MM-DD.json) plus a singleton
// goals.json. Each mutation rewrites the whole day file; the last
// writer wins. Timestamps are stored as absolute instants (UTC); the
// configured location buckets writes and deletes, while reads take an
// explicit day string so callers can bucket in any timezone.
type Store struct {
	dataDir string
	loc     *time.Location
}

func New(dataDir string, loc *time.Location) (*Store, error) {
	if loc == nil {
		loc = time.UTC
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dataDir: dataDir, loc: loc}, nil
}

// Location is the reference timezone used to bucket writes.
func (s *Store) Location() *time.Location {
	return s.loc
}

// DayOf converts an absolute instant to its calendar date in the
// store's reference timezone.
func (s *Store) DayOf(ts time.Time) string {
	return ts.In(s.loc).Format("2006-01-02")
}

func (s *Store) dayFile(kind, day string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s_%s.json", kind, day))
}

func loadDay[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []T
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return entries, nil
}

func saveDay[T any](path string, entries []T) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// AppendFood adds an entry to the day bucket of its timestamp.
func (s *Store) AppendFood(e model.FoodEntry) error {
	path := s.dayFile("food", s.DayOf(e.Timestamp))
	entries, err := loadDay[model.FoodEntry](path)
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return saveDay(path, entries)
}

// FoodLog returns all food entries for a day string (YYYY-MM-DD).
func (s *Store) FoodLog(day string) ([]model.FoodEntry, error) {
	return loadDay[model.FoodEntry](s.dayFile("food", day))
}

// DeleteFood removes the entry whose timestamp exactly matches ts from
// its day bucket and returns it. Repeated deletes of the same instant
// report ErrNotFound, not success.
func (s *Store) DeleteFood(ts time.Time) (model.FoodEntry, error) {
	path := s.dayFile("food", s.DayOf(ts))
	entries, err := loadDay[model.FoodEntry](path)
	if err != nil {
		return model.FoodEntry{}, err
	}
	for i, e := range entries {
		if e.Timestamp.Equal(ts) {
			removed := e
			entries = append(entries[:i], entries[i+1:]...)
			if err := saveDay(path, entries); err != nil {
				return model.FoodEntry{}, err
			}
			return removed, nil
		}
	}
	return model.FoodEntry{}, ErrNotFound
}

// AppendWater adds a water entry to the day bucket of its timestamp.
func (s *Store) AppendWater(e model.WaterEntry) error {
	path := s.dayFile("water", s.DayOf(e.Timestamp))
	entries, err := loadDay[model.WaterEntry](path)
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return saveDay(path, entries)
}

// WaterLog returns all water entries for a day string (YYYY-MM-DD).
func (s *Store) WaterLog(day string) ([]model.WaterEntry, error) {
	return loadDay[model.WaterEntry](s.dayFile("water", day))
}

func (s *Store) goalsFile() string {
	return filepath.Join(s.dataDir, "goals.json")
}

// DefaultGoals are returned until the user sets their own.
func DefaultGoals() model.Goals {
	return model.Goals{
		Calories: 2000,
		ProteinG: 150,
		WaterML:  3000,
	}
}

func (s *Store) Goals() (model.Goals, error) {
	data, err := os.ReadFile(s.goalsFile())
	if os.IsNotExist(err) {
		return DefaultGoals(), nil
	}
	if err != nil {
		return model.Goals{}, fmt.Errorf("read goals: %w", err)
	}
	var g model.Goals
	if err := json.Unmarshal(data, &g); err != nil {
		return model.Goals{}, fmt.Errorf("decode goals: %w", err)
	}
	return g, nil
}

func (s *Store) SaveGoals(g model.Goals) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	if err := os.WriteFile(s.goalsFile(), data, 0o644); err != nil {
		return fmt.Errorf("write goals: %w", err)
	}
	return nil
}
