package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/salespipe/internal/analytics"
	"github.com/mwhitfield/salespipe/internal/cleaner"
	"github.com/mwhitfield/salespipe/internal/model"
	"github.com/mwhitfield/salespipe/internal/parser"
)

func tx(id, date, productID, productName string, qty int, price, customerID, region string) model.Transaction {
	day, err := time.Parse(model.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return model.NewTransaction(id, day, productID, productName, qty, decimal.RequireFromString(price), customerID, region)
}

func TestWriteEnriched(t *testing.T) {
	enriched := []model.EnrichedTransaction{
		{
			Transaction: tx("T018", "2024-12-29", "P107", "USB Cable", 8, "173", "C009", "South"),
			Category:    "mobile-accessories",
			Brand:       "Beats",
			Rating:      4.24,
			Status:      model.StatusMatched,
		},
		{
			Transaction: tx("T019", "2024-12-30", "P108", "Quantum Widget", 1, "99.99", "C010", "North"),
			Status:      model.StatusUnmatched,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEnriched(&buf, enriched))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, EnrichedHeader, lines[0])
	assert.Equal(t, "T018|2024-12-29|P107|USB Cable|8|173|C009|South|mobile-accessories|Beats|4.24|MATCHED", lines[1])
	assert.Equal(t, "T019|2024-12-30|P108|Quantum Widget|1|99.99|C010|North||||UNMATCHED", lines[2])
}

// An enriched row's first eight fields must re-parse into the same core
// transaction.
func TestEnrichedRowRoundTrips(t *testing.T) {
	original := tx("T018", "2024-12-29", "P107", "USB Cable", 8, "173", "C009", "South")

	var buf bytes.Buffer
	require.NoError(t, WriteEnriched(&buf, []model.EnrichedTransaction{
		{Transaction: original, Status: model.StatusUnmatched},
	}))

	row := strings.Split(buf.String(), "\n")[1]
	core := strings.Join(strings.Split(row, "|")[:8], "|")

	candidate, rej := parser.ParseLine(core, 1)
	require.Nil(t, rej)

	result := cleaner.Clean(candidate)
	require.True(t, result.Accepted())

	reparsed := result.Transaction
	assert.Equal(t, original.ID, reparsed.ID)
	assert.True(t, original.Date.Equal(reparsed.Date))
	assert.Equal(t, original.ProductID, reparsed.ProductID)
	assert.Equal(t, original.ProductName, reparsed.ProductName)
	assert.Equal(t, original.Quantity, reparsed.Quantity)
	assert.True(t, original.UnitPrice.Equal(reparsed.UnitPrice))
	assert.Equal(t, original.CustomerID, reparsed.CustomerID)
	assert.Equal(t, original.Region, reparsed.Region)
	assert.True(t, original.LineTotal.Equal(reparsed.LineTotal))
}

func TestReportSections(t *testing.T) {
	transactions := []model.Transaction{
		tx("T001", "2024-12-01", "P100", "USB Cable", 2, "100", "C001", "South"),
		tx("T002", "2024-12-02", "P101", "Mouse", 20, "250", "C002", "North"),
	}
	summary := analytics.Compute(transactions)

	rejected := []model.RejectedRecord{
		{RawLine: "bad", LineNumber: 3, Reason: model.ReasonInvalidQty},
		{RawLine: "worse", LineNumber: 4, Reason: model.ReasonInvalidQty},
		{RawLine: "short", LineNumber: 5, Reason: model.ReasonIncompleteRow},
	}

	enriched := []model.EnrichedTransaction{
		{Transaction: transactions[0], Status: model.StatusMatched, Category: "mobile-accessories"},
		{Transaction: transactions[1], Status: model.StatusUnmatched},
	}

	rep := New(summary, rejected, enriched, Options{Currency: "₹", TopN: 5, LowQuantityThreshold: 10})
	rep.Now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "SALES ANALYTICS REPORT")
	assert.Contains(t, out, "Generated: 2025-01-02 03:04:05")
	assert.Contains(t, out, "Total Revenue: ₹5,200.00")
	assert.Contains(t, out, "Total Transactions: 2")
	assert.Contains(t, out, "Average Order Value: ₹2,600.00")
	assert.Contains(t, out, "Date Range: 2024-12-01 to 2024-12-02")

	assert.Contains(t, out, "Rejected Records: 3")
	assert.Contains(t, out, "invalid quantity: 2")
	assert.Contains(t, out, "incomplete row: 1")

	assert.Contains(t, out, "North | ₹5,000.00 | 96.15% | 1")
	assert.Contains(t, out, "South | ₹200.00 | 3.85% | 1")

	assert.Contains(t, out, "TOP 5 PRODUCTS BY REVENUE")
	assert.Contains(t, out, "1 | Mouse (P101) | 20 | ₹5,000.00")

	assert.Contains(t, out, "TOP 5 CUSTOMERS")
	assert.Contains(t, out, "1 | C002 | ₹5,000.00 | 1 | ₹5,000.00")

	assert.Contains(t, out, "DAILY SALES TREND")
	assert.Contains(t, out, "2024-12-01 | ₹200.00 | 1 | 1")

	assert.Contains(t, out, "Best Selling Day: 2024-12-02 (₹5,000.00 in 1 transactions)")
	assert.Contains(t, out, "Low Performing Products:")
	assert.Contains(t, out, "USB Cable (P100) - Qty: 2, Revenue: ₹200.00")

	assert.Contains(t, out, "Products Enriched: 1/2")
	assert.Contains(t, out, "Match Rate: 50.00%")
	assert.Contains(t, out, "- Mouse")
}

func TestReportEmptyRun(t *testing.T) {
	rep := New(analytics.Compute(nil), nil, nil, Options{Currency: "₹"})

	var buf bytes.Buffer
	require.NoError(t, rep.Write(&buf))
	out := buf.String()

	assert.Contains(t, out, "Total Revenue: ₹0.00")
	assert.Contains(t, out, "Total Transactions: 0")
	assert.Contains(t, out, "Rejected Records: 0")
	assert.Contains(t, out, "Match Rate: 0.00%")
	assert.NotContains(t, out, "Date Range:")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.00", "0.00"},
		{"999.99", "999.99"},
		{"1000.00", "1,000.00"},
		{"1384.00", "1,384.00"},
		{"1234567.89", "1,234,567.89"},
		{"-1234.50", "-1,234.50"},
		{"100", "100"},
	}

	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
