package enrich

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/salespipe/internal/analytics"
	"github.com/mwhitfield/salespipe/internal/catalog"
	"github.com/mwhitfield/salespipe/internal/model"
)

func tx(id, productName string) model.Transaction {
	return model.NewTransaction(id,
		time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
		"P107", productName, 8, decimal.NewFromInt(173), "C009", "South")
}

func sampleLookup() catalog.Lookup {
	return catalog.BuildLookup([]model.CatalogProduct{
		{Title: "USB Cable", Category: "mobile-accessories", Brand: "Beats", Rating: 4.24},
	})
}

func TestMatch(t *testing.T) {
	transactions := []model.Transaction{
		tx("T018", "USB Cable"),
		tx("T019", "  usb cable "),
		tx("T020", "Quantum Widget"),
	}

	enriched := Match(transactions, sampleLookup())
	require.Len(t, enriched, 3)

	assert.Equal(t, model.StatusMatched, enriched[0].Status)
	assert.Equal(t, "mobile-accessories", enriched[0].Category)
	assert.Equal(t, "Beats", enriched[0].Brand)
	assert.InDelta(t, 4.24, enriched[0].Rating, 0.001)

	// Matching is on the normalized name.
	assert.Equal(t, model.StatusMatched, enriched[1].Status)

	// Miss leaves the catalog fields zero-valued.
	assert.Equal(t, model.StatusUnmatched, enriched[2].Status)
	assert.Empty(t, enriched[2].Category)
	assert.Empty(t, enriched[2].Brand)
	assert.Zero(t, enriched[2].Rating)
}

func TestMatchEmptyLookupDegrades(t *testing.T) {
	transactions := []model.Transaction{tx("T018", "USB Cable")}

	for _, lookup := range []catalog.Lookup{nil, {}} {
		enriched := Match(transactions, lookup)
		require.Len(t, enriched, 1)
		assert.Equal(t, model.StatusUnmatched, enriched[0].Status)
	}
}

// A missing catalog entry must not change analytics: revenue comes from the
// transaction, never from enrichment.
func TestUnmatchedDoesNotAffectRevenue(t *testing.T) {
	transactions := []model.Transaction{tx("T018", "USB Cable")}

	before := analytics.Compute(transactions).TotalRevenue
	enriched := Match(transactions, catalog.Lookup{})
	after := analytics.Compute(transactions).TotalRevenue

	require.Len(t, enriched, 1)
	assert.Equal(t, model.StatusUnmatched, enriched[0].Status)
	assert.True(t, before.Equal(after))
	assert.True(t, after.Equal(decimal.NewFromInt(1384)))
}

func TestMatchRate(t *testing.T) {
	enriched := Match([]model.Transaction{
		tx("T018", "USB Cable"),
		tx("T019", "Quantum Widget"),
		tx("T020", "Another Widget"),
	}, sampleLookup())

	matched, rate := MatchRate(enriched)
	assert.Equal(t, 1, matched)
	assert.InDelta(t, 33.33, rate, 0.001)

	matched, rate = MatchRate(nil)
	assert.Zero(t, matched)
	assert.Zero(t, rate)
}
