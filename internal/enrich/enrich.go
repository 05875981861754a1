// Package enrich joins accepted transactions against the product catalog.
// Enrichment is a best-effort enhancement: it never fails the run and the
// analytics summary is computed independently before it happens.
package enrich

import (
	"math"

	"github.com/mwhitfield/salespipe/internal/catalog"
	"github.com/mwhitfield/salespipe/internal/model"
)

// Match produces one enriched record per transaction by exact lookup on
// the normalized product name. A miss leaves the catalog fields
// zero-valued and marks the record UNMATCHED; an empty or nil lookup
// degrades every record the same way.
func Match(transactions []model.Transaction, lookup catalog.Lookup) []model.EnrichedTransaction {
	enriched := make([]model.EnrichedTransaction, 0, len(transactions))

	for _, tx := range transactions {
		record := model.EnrichedTransaction{
			Transaction: tx,
			Status:      model.StatusUnmatched,
		}

		if entry, ok := lookup[catalog.NormalizeTitle(tx.ProductName)]; ok {
			record.Category = entry.Category
			record.Brand = entry.Brand
			record.Rating = entry.Rating
			record.Status = model.StatusMatched
		}

		enriched = append(enriched, record)
	}

	return enriched
}

// MatchRate returns matched count and the matched fraction in percent,
// rounded to two places. Zero records yield a zero rate.
func MatchRate(enriched []model.EnrichedTransaction) (matched int, rate float64) {
	for _, e := range enriched {
		if e.Status == model.StatusMatched {
			matched++
		}
	}
	if len(enriched) == 0 {
		return 0, 0
	}
	rate = float64(matched) / float64(len(enriched)) * 100
	return matched, math.Round(rate*100) / 100
}
