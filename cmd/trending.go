package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/storegenius/storegenius/internal/config"
	"github.com/storegenius/storegenius/internal/datastore"
	"github.com/storegenius/storegenius/internal/enrich"
	"github.com/storegenius/storegenius/internal/errors"
	"github.com/storegenius/storegenius/internal/images"
	"github.com/storegenius/storegenius/internal/trends"
	"github.com/storegenius/storegenius/internal/tui"
)

// TrendingCmd represents the trending command
type TrendingCmd struct {
	JSON          bool   `help:"Print the result as JSON"`
	Single        bool   `help:"Enrich only one brand instead of every extracted token"`
	NoInteractive bool   `help:"Skip the brand picker and take the top-ranked brand"`
	SnapshotDB    string `help:"SQLite file to record the run in"`
	ThumbnailDir  string `help:"Directory to download resized product thumbnails into"`
}

func (t *TrendingCmd) Run() error {
	cfg, err := config.FromViper()
	if err != nil {
		return err
	}
	if t.SnapshotDB != "" {
		cfg.SnapshotDBFile = t.SnapshotDB
	}
	if t.ThumbnailDir != "" {
		cfg.ThumbnailDir = t.ThumbnailDir
	}

	service, serp, strategy, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	titles, err := serp.TrendingTitles(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch trending titles: %w", err)
	}

	tokens, stopped, err := t.pickTokens(strategy, titles)
	if err != nil {
		return err
	}
	if stopped {
		slog.Info("cancelled")
		return nil
	}
	if len(tokens) == 0 {
		return errors.NewNoTrendError(len(titles))
	}

	categories, err := service.EnrichTrend(ctx, tokens)
	if err != nil {
		return err
	}

	if cfg.SnapshotDBFile != "" {
		if err := saveSnapshot(cfg.SnapshotDBFile, tokens, categories); err != nil {
			return err
		}
	}

	if cfg.ThumbnailDir != "" {
		mirrorThumbnails(ctx, cfg.ThumbnailDir, categories)
	}

	if t.JSON {
		out, err := json.MarshalIndent(categories, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(tui.RenderCategories(categories))
	return nil
}

// pickTokens narrows extracted trend tokens per the --single and
// --no-interactive flags. The interactive picker only applies to the
// allowlist strategy, which can rank candidates by frequency.
func (t *TrendingCmd) pickTokens(strategy trends.Strategy, titles []string) ([]string, bool, error) {
	tokens := strategy.Extract(titles)
	if !t.Single || len(tokens) == 0 {
		return tokens, false, nil
	}

	allowlist, ok := strategy.(trends.AllowlistStrategy)
	if !ok || t.NoInteractive {
		return tokens[:1], false, nil
	}

	result, err := tui.SelectBrand(allowlist.Ranked(titles))
	if err != nil {
		return nil, false, err
	}
	if result.Action != tui.ActionSelected || result.Selection == nil {
		return nil, true, nil
	}
	return []string{result.Selection.Brand}, false, nil
}

func saveSnapshot(dbFile string, tokens []string, categories []enrich.EnrichedCategory) error {
	store := datastore.NewSQLiteStore(dbFile)
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runID, err := datastore.SaveRun(store, tokens, categories)
	if err != nil {
		return fmt.Errorf("failed to save run snapshot: %w", err)
	}
	slog.Info("Saved run snapshot", "run_id", runID, "file", dbFile)
	return nil
}

// mirrorThumbnails downloads resized copies of resolved images. Failures are
// logged and skipped so a dead link never fails the run.
func mirrorThumbnails(ctx context.Context, dir string, categories []enrich.EnrichedCategory) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("Failed to create thumbnail directory", "dir", dir, "error", err)
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	for _, category := range categories {
		for _, product := range category.Products {
			if product.Image == nil {
				continue
			}
			savePath := filepath.Join(dir, slugify(product.Name)+".jpg")
			if err := images.DownloadAndResize(ctx, client, *product.Image, savePath, 512); err != nil {
				slog.Warn("Failed to download thumbnail", "product", product.Name, "error", err)
			}
		}
	}
}

func slugify(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, name)
	return strings.Trim(mapped, "-")
}
