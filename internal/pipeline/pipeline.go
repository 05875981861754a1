// Package pipeline orchestrates the batch run: read, parse, clean,
// analyze, fetch catalog, enrich, and write both output artifacts. The
// run is strictly sequential; the catalog fetch is the only step bound to
// the context deadline.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mwhitfield/salespipe/internal/analytics"
	"github.com/mwhitfield/salespipe/internal/catalog"
	"github.com/mwhitfield/salespipe/internal/cleaner"
	"github.com/mwhitfield/salespipe/internal/common"
	"github.com/mwhitfield/salespipe/internal/enrich"
	"github.com/mwhitfield/salespipe/internal/model"
	"github.com/mwhitfield/salespipe/internal/parser"
	"github.com/mwhitfield/salespipe/internal/report"
	"github.com/mwhitfield/salespipe/internal/service"
)

// Config carries everything one run needs. All collections created during
// the run are owned by the pipeline and discarded when it returns.
type Config struct {
	InputPath            string
	EnrichedPath         string
	ReportPath           string
	Region               string
	Currency             string
	CatalogRetry         service.RetryOptions
	TopN                 int
	LowQuantityThreshold int
	SkipEnrichment       bool
}

// RunResult summarizes a completed run.
type RunResult struct {
	Summary         *analytics.Summary
	Rejected        []model.RejectedRecord
	Enriched        []model.EnrichedTransaction
	Filter          analytics.FilterSummary
	Elapsed         time.Duration
	Accepted        int
	Matched         int
	MatchRate       float64
	CatalogDegraded bool
}

// Pipeline wires the collaborators around the core stages.
type Pipeline struct {
	reader  service.LineReader
	fetcher service.CatalogFetcher

	// OnRows, when set, receives the row count before cleaning starts and
	// returns a per-row callback (used for terminal progress).
	OnRows func(total int) func()
}

// New creates a pipeline with the given collaborators.
func New(reader service.LineReader, fetcher service.CatalogFetcher) *Pipeline {
	return &Pipeline{reader: reader, fetcher: fetcher}
}

// Run executes the full batch. Row-level data problems and catalog
// unavailability are recovered locally; unreadable input and output write
// failures are fatal. Both artifacts are staged in memory and written
// atomically, so a failed run leaves no partial output behind.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (*RunResult, error) {
	start := time.Now()

	lines, err := p.reader.ReadLines(cfg.InputPath)
	if err != nil {
		return nil, err
	}

	accepted, rejected := p.parseAndClean(lines)

	slog.Info("Cleaned input rows",
		"accepted", len(accepted),
		"rejected", len(rejected))

	accepted, filter := analytics.FilterByRegion(accepted, cfg.Region)
	if filter.Applied {
		slog.Info("Applied region filter",
			"region", filter.Region,
			"before", filter.Before,
			"after", filter.After)
	}

	// Analytics are computed before enrichment on purpose: a missing
	// catalog must never change the revenue numbers.
	summary := analytics.Compute(accepted)

	lookup, degraded := p.fetchCatalog(ctx, cfg)
	enriched := enrich.Match(accepted, lookup)
	matched, rate := enrich.MatchRate(enriched)

	if err := p.writeArtifacts(cfg, summary, rejected, enriched); err != nil {
		return nil, err
	}

	return &RunResult{
		Summary:         summary,
		Rejected:        rejected,
		Enriched:        enriched,
		Filter:          filter,
		Elapsed:         time.Since(start),
		Accepted:        len(accepted),
		Matched:         matched,
		MatchRate:       rate,
		CatalogDegraded: degraded,
	}, nil
}

// ParseAndClean runs the parse and clean stages only, for validation runs
// that stop short of analytics.
func (p *Pipeline) ParseAndClean(lines []string) ([]model.Transaction, []model.RejectedRecord) {
	return p.parseAndClean(lines)
}

func (p *Pipeline) parseAndClean(lines []string) ([]model.Transaction, []model.RejectedRecord) {
	var onRow func()
	if p.OnRows != nil {
		onRow = p.OnRows(len(lines))
	}

	accepted := make([]model.Transaction, 0, len(lines))
	var rejected []model.RejectedRecord

	for i, line := range lines {
		candidate, rej := parser.ParseLine(line, i+1)
		if rej != nil {
			rejected = append(rejected, *rej)
			if onRow != nil {
				onRow()
			}
			continue
		}

		result := cleaner.Clean(candidate)
		if result.Accepted() {
			accepted = append(accepted, *result.Transaction)
		} else {
			rejected = append(rejected, *result.Rejected)
		}
		if onRow != nil {
			onRow()
		}
	}

	return accepted, rejected
}

// fetchCatalog retrieves the product catalog, degrading to an empty lookup
// on failure. Enrichment is best-effort; the run continues either way.
func (p *Pipeline) fetchCatalog(ctx context.Context, cfg Config) (catalog.Lookup, bool) {
	if cfg.SkipEnrichment || p.fetcher == nil {
		return catalog.Lookup{}, false
	}

	var products []model.CatalogProduct
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		products, fetchErr = p.fetcher.Fetch(ctx)
		return fetchErr
	}, cfg.CatalogRetry)

	if err != nil {
		common.LogError(err, "Catalog fetch failed, continuing without enrichment", common.Fields{
			"stage": "catalog",
		})
		return catalog.Lookup{}, true
	}

	return catalog.BuildLookup(products), false
}

func (p *Pipeline) writeArtifacts(cfg Config, summary *analytics.Summary, rejected []model.RejectedRecord, enriched []model.EnrichedTransaction) error {
	var enrichedBuf bytes.Buffer
	if err := report.WriteEnriched(&enrichedBuf, enriched); err != nil {
		return fmt.Errorf("%w: %v", common.ErrReportWrite, err)
	}

	rep := report.New(summary, rejected, enriched, report.Options{
		Currency:             cfg.Currency,
		TopN:                 cfg.TopN,
		LowQuantityThreshold: cfg.LowQuantityThreshold,
	})

	var reportBuf bytes.Buffer
	if err := rep.Write(&reportBuf); err != nil {
		return fmt.Errorf("%w: %v", common.ErrReportWrite, err)
	}

	// Both artifacts rendered; only now touch the filesystem.
	if err := writeFileAtomic(cfg.EnrichedPath, enrichedBuf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrReportWrite, err)
	}
	if err := writeFileAtomic(cfg.ReportPath, reportBuf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", common.ErrReportWrite, err)
	}

	slog.Info("Wrote output artifacts",
		"enriched", cfg.EnrichedPath,
		"report", cfg.ReportPath)

	return nil
}

// writeFileAtomic stages the content in a temp file and renames it into
// place so readers never observe a partially written artifact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}
