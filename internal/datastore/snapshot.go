package datastore

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storegenius/storegenius/internal/enrich"
)

// SnapshotTable is the table enrichment runs are written to.
const SnapshotTable = "enrichment_runs"

// SnapshotSchema creates the snapshot table. One row per enriched product;
// products without an image store NULL.
const SnapshotSchema = `
CREATE TABLE IF NOT EXISTS enrichment_runs (
	run_id TEXT NOT NULL,
	ran_at TIMESTAMP NOT NULL,
	trend TEXT NOT NULL,
	category TEXT NOT NULL,
	position INTEGER NOT NULL,
	product_name TEXT NOT NULL,
	image TEXT
);
CREATE INDEX IF NOT EXISTS idx_enrichment_runs_run ON enrichment_runs(run_id);
`

// SaveRun flattens an enrichment result into snapshot rows and stores them.
// Returns the generated run id.
func SaveRun(store Store, tokens []string, categories []enrich.EnrichedCategory) (string, error) {
	if err := store.CreateTable(SnapshotSchema); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	ranAt := time.Now().UTC()
	trend := strings.Join(tokens, ",")

	var records []map[string]any
	for _, category := range categories {
		for position, product := range category.Products {
			var image any
			if product.Image != nil {
				image = *product.Image
			}
			records = append(records, map[string]any{
				"run_id":       runID,
				"ran_at":       ranAt,
				"trend":        trend,
				"category":     category.Category,
				"position":     position,
				"product_name": product.Name,
				"image":        image,
			})
		}
	}

	if err := store.BatchInsert(SnapshotTable, records); err != nil {
		return "", err
	}
	return runID, nil
}
