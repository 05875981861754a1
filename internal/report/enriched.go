// Package report renders the run's two output artifacts: the enriched
// dataset file and the human-readable analytics report.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mwhitfield/salespipe/internal/model"
)

// EnrichedHeader is the first row of the enriched dataset file. The first
// eight fields mirror the input file exactly so enriched rows re-parse as
// transactions.
const EnrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|Category|Brand|Rating|MatchStatus"

// WriteEnriched emits one pipe-delimited row per enriched transaction.
// Unmatched records keep their catalog fields empty.
func WriteEnriched(w io.Writer, enriched []model.EnrichedTransaction) error {
	if _, err := fmt.Fprintln(w, EnrichedHeader); err != nil {
		return fmt.Errorf("failed to write enriched header: %w", err)
	}

	for _, e := range enriched {
		rating := ""
		if e.Status == model.StatusMatched {
			rating = strconv.FormatFloat(e.Rating, 'f', 2, 64)
		}

		row := strings.Join([]string{
			e.ID,
			e.Date.Format(model.DateFormat),
			e.ProductID,
			e.ProductName,
			strconv.Itoa(e.Quantity),
			e.UnitPrice.String(),
			e.CustomerID,
			e.Region,
			e.Category,
			e.Brand,
			rating,
			string(e.Status),
		}, "|")

		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("failed to write enriched row %s: %w", e.ID, err)
		}
	}

	return nil
}
