/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Seednode/cinemaster/catalog"
)

// loadCatalog prefers a non-empty snapshot. Otherwise it cleans the csv
// tables and, when a snapshot path is configured, stores the result there.
func loadCatalog(ctx context.Context, cfg *Config) (*catalog.Catalog, error) {
	startTime := time.Now()

	var store *catalog.Store

	if cfg.snapshot != "" {
		var err error

		store, err = catalog.OpenStore(cfg.snapshot)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		cat, err := store.Load(ctx)
		if err != nil {
			return nil, err
		}

		if cat.Len() > 0 {
			logf(cfg, "CATALOG: Loaded %d movies from snapshot %s in %s",
				cat.Len(),
				cfg.snapshot,
				time.Since(startTime).Round(time.Microsecond),
			)

			return cat, nil
		}
	}

	if cfg.movies == "" || cfg.credits == "" {
		return nil, errors.New("snapshot is empty and no --movies/--credits were given")
	}

	cat, err := catalog.LoadCSV(cfg.movies, cfg.credits)
	if err != nil {
		return nil, err
	}

	logf(cfg, "CATALOG: Cleaned %d movies from %s and %s in %s (%d fields unknown, %d duplicate titles)",
		cat.Len(),
		cfg.movies,
		cfg.credits,
		time.Since(startTime).Round(time.Microsecond),
		len(cat.Issues()),
		len(cat.Duplicates()),
	)

	for _, issue := range cat.Issues() {
		logf(cfg, "CATALOG: Unknown %v", issue)
	}

	if cat.Len() == 0 {
		logf(cfg, "CATALOG: No titles appear in both tables; rounds cannot start")
	}

	if store != nil {
		if err := store.Save(ctx, cat); err != nil {
			return nil, fmt.Errorf("failed to save snapshot: %w", err)
		}

		logf(cfg, "CATALOG: Saved snapshot to %s", cfg.snapshot)
	}

	return cat, nil
}
