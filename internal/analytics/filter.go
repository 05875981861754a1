package analytics

import (
	"strings"

	"github.com/mwhitfield/salespipe/internal/model"
)

// FilterSummary describes the outcome of an optional region filter.
type FilterSummary struct {
	Region  string
	Before  int
	After   int
	Applied bool
}

// FilterByRegion keeps only transactions for the named region, compared
// case-insensitively. An empty region applies no filter and returns the
// input unchanged.
func FilterByRegion(transactions []model.Transaction, region string) ([]model.Transaction, FilterSummary) {
	key := strings.ToLower(strings.TrimSpace(region))
	if key == "" {
		return transactions, FilterSummary{Before: len(transactions), After: len(transactions)}
	}

	filtered := make([]model.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if strings.ToLower(tx.Region) == key {
			filtered = append(filtered, tx)
		}
	}

	return filtered, FilterSummary{
		Applied: true,
		Region:  key,
		Before:  len(transactions),
		After:   len(filtered),
	}
}
