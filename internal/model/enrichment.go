package model

// MatchStatus records whether a transaction's product was found in the
// external catalog.
type MatchStatus string

const (
	// StatusMatched means the product name resolved to a catalog entry.
	StatusMatched MatchStatus = "MATCHED"
	// StatusUnmatched means no catalog entry exists for the product name.
	StatusUnmatched MatchStatus = "UNMATCHED"
)

// CatalogProduct is a single entry from the external product catalog.
// Read-only for this pipeline; the catalog client supplies them wholesale.
type CatalogProduct struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Rating   float64 `json:"rating"`
}

// EnrichedTransaction is a Transaction plus catalog metadata. Created once
// per accepted transaction during enrichment and never mutated afterwards.
// On an UNMATCHED record the catalog fields stay zero-valued.
type EnrichedTransaction struct {
	Transaction
	Category string
	Brand    string
	Rating   float64
	Status   MatchStatus
}
