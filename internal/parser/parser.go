// Package parser turns raw pipe-delimited lines into transaction
// candidates. The pipe delimiter is load-bearing: product names may
// legitimately contain commas, so the comma is never treated as a
// secondary splitter.
package parser

import (
	"strings"

	"github.com/mwhitfield/salespipe/internal/model"
)

// fieldCount is the exact number of positional fields per row:
// TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region.
const fieldCount = 8

// ParseLine splits one raw line into a candidate. If the split does not
// yield exactly 8 fields the row is rejected as incomplete and no partial
// parse is attempted. Grouping commas are stripped from the numeric fields
// here (e.g. "1,250" -> "1250") so the cleaner sees plain digit strings;
// ProductName keeps its commas.
func ParseLine(raw string, lineNumber int) (model.Candidate, *model.RejectedRecord) {
	fields := strings.Split(strings.TrimRight(raw, "\r\n"), "|")
	if len(fields) != fieldCount {
		return model.Candidate{}, &model.RejectedRecord{
			RawLine:    raw,
			LineNumber: lineNumber,
			Reason:     model.ReasonIncompleteRow,
		}
	}

	candidate := model.Candidate{
		TransactionID: fields[0],
		Date:          fields[1],
		ProductID:     fields[2],
		ProductName:   fields[3],
		Quantity:      stripGroupingCommas(fields[4]),
		UnitPrice:     stripGroupingCommas(fields[5]),
		CustomerID:    fields[6],
		Region:        fields[7],
		RawLine:       raw,
		LineNumber:    lineNumber,
	}

	return candidate, nil
}

// stripGroupingCommas removes thousands separators from a numeric field.
func stripGroupingCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
