package catalog

import (
	"strings"

	"github.com/mwhitfield/salespipe/internal/model"
)

// Lookup maps normalized product titles to catalog entries.
type Lookup map[string]model.CatalogProduct

// NormalizeTitle lowercases and trims a product title. Matching is exact
// on the normalized string only; partial matches would silently
// misattribute metadata.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// BuildLookup indexes catalog products by normalized title. Entries with
// empty titles are skipped. A later duplicate title wins, matching the
// order the API returned.
func BuildLookup(products []model.CatalogProduct) Lookup {
	lookup := make(Lookup, len(products))
	for _, p := range products {
		key := NormalizeTitle(p.Title)
		if key == "" {
			continue
		}
		lookup[key] = p
	}
	return lookup
}
