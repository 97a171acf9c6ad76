package macrotracker

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/siddhantjain/macro-tracker/internal/app"
	"github.com/siddhantjain/macro-tracker/internal/db"
	"github.com/siddhantjain/macro-tracker/internal/provider"
	"github.com/siddhantjain/macro-tracker/internal/provider/openfoodfacts"
	"github.com/siddhantjain/macro-tracker/internal/provider/usda"
	"github.com/siddhantjain/macro-tracker/internal/store"
	"github.com/siddhantjain/macro-tracker/internal/tracker"
)

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	return cfg, nil
}

// withTracker wires store and provider chain from config, runs the
// callback, and tears the lookup cache back down.
func withTracker(run func(*tracker.Tracker) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	st, err := store.New(cfg.DataDir, loc)
	if err != nil {
		return err
	}

	p, closeCache := buildProvider(cfg)
	defer closeCache()

	return run(tracker.New(p, st))
}

// buildProvider assembles the fallback chain: USDA first, Open Food
// Facts second, the optional local food file last. Both network
// providers share the SQLite search cache; if the cache database cannot
// be opened the chain runs uncached rather than failing the command.
func buildProvider(cfg app.Config) (provider.Provider, func()) {
	usdaClient := &usda.Client{APIKey: cfg.USDAAPIKey}
	offClient := &openfoodfacts.Client{}

	var providers []provider.Provider
	closeCache := func() {}

	if err := app.EnsureDir(filepath.Dir(cfg.CacheDBPath)); err == nil {
		if cacheDB, err := db.Open(cfg.CacheDBPath); err == nil {
			if err := db.ApplyMigrations(cacheDB); err == nil {
				_ = provider.PruneCache(cacheDB, time.Now())
				providers = append(providers,
					provider.NewCached(usdaClient, cacheDB, provider.DefaultCacheTTL),
					provider.NewCached(offClient, cacheDB, provider.DefaultCacheTTL),
				)
				closeCache = func() { cacheDB.Close() }
			} else {
				cacheDB.Close()
			}
		}
	}
	if len(providers) == 0 {
		fmt.Fprintln(os.Stderr, "warning: lookup cache unavailable, querying providers directly")
		providers = append(providers, provider.Provider(usdaClient), provider.Provider(offClient))
	}

	if cfg.LocalFoodsPath != "" {
		if local, err := provider.NewLocal(cfg.LocalFoodsPath); err == nil {
			providers = append(providers, local)
		} else {
			fmt.Fprintf(os.Stderr, "warning: skipping local food file: %v\n", err)
		}
	}

	return provider.NewChain(providers...), closeCache
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

func parseTimestampArg(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339)", value)
	}
	return ts, nil
}
