package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/model"
)

const DefaultCacheTTL = 7 * 24 * time.Hour

// Cached decorates a provider with a SQLite-backed search cache so
// repeated queries for the same food skip the network. Cache faults
// never fail a search; the inner provider is consulted instead.
type Cached struct {
	Inner Provider
	DB    *sql.DB
	TTL   time.Duration
	now   func() time.Time
}

func NewCached(inner Provider, db *sql.DB, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{Inner: inner, DB: db, TTL: ttl, now: time.Now}
}

func (c *Cached) Name() string { return c.Inner.Name() }

func (c *Cached) Search(ctx context.Context, query string, limit int) ([]model.NutritionInfo, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if results, ok := c.lookup(key, limit); ok {
		return results, nil
	}
	results, err := c.Inner.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	c.upsert(key, limit, results)
	return results, nil
}

func (c *Cached) GetByID(ctx context.Context, id string) (*model.NutritionInfo, error) {
	return c.Inner.GetByID(ctx, id)
}

func (c *Cached) lookup(query string, limit int) ([]model.NutritionInfo, bool) {
	var resultsJSON string
	var expiresAt time.Time
	err := c.DB.QueryRow(`
SELECT results_json, expires_at
FROM provider_search_cache
WHERE provider = ? AND query = ? AND limit_requested = ?
`, c.Inner.Name(), query, limit).Scan(&resultsJSON, &expiresAt)
	if err != nil {
		return nil, false
	}
	if c.now().After(expiresAt) {
		_, _ = c.DB.Exec(`
DELETE FROM provider_search_cache
WHERE provider = ? AND query = ? AND limit_requested = ?
`, c.Inner.Name(), query, limit)
		return nil, false
	}
	var results []model.NutritionInfo
	if err := json.Unmarshal([]byte(resultsJSON), &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *Cached) upsert(query string, limit int, results []model.NutritionInfo) {
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	_, _ = c.DB.Exec(`
INSERT INTO provider_search_cache(provider, query, limit_requested, results_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, query, limit_requested) DO UPDATE SET
  results_json=excluded.results_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, c.Inner.Name(), query, limit, string(payload), c.now().UTC(), c.now().UTC().Add(c.TTL))
}

// PruneCache drops expired rows. Called opportunistically at startup.
func PruneCache(db *sql.DB, now time.Time) error {
	if _, err := db.Exec(`DELETE FROM provider_search_cache WHERE expires_at < ?`, now.UTC()); err != nil {
		return fmt.Errorf("prune search cache: %w", err)
	}
	return nil
}
