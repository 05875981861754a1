package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwhitfield/salespipe/internal/analytics"
	"github.com/mwhitfield/salespipe/internal/enrich"
	"github.com/mwhitfield/salespipe/internal/model"
)

const divider = "--------------------------------------------"
const banner = "============================================"

// Options controls report rendering.
type Options struct {
	Currency             string
	TopN                 int
	LowQuantityThreshold int
}

// Report renders the analytics summary, rejection diagnostics, and
// enrichment results as a management-readable text artifact.
type Report struct {
	Summary  *analytics.Summary
	Rejected []model.RejectedRecord
	Enriched []model.EnrichedTransaction
	Opts     Options
	Now      func() time.Time
}

// New builds a report over the run's results. The clock is injectable for
// tests and defaults to time.Now.
func New(summary *analytics.Summary, rejected []model.RejectedRecord, enriched []model.EnrichedTransaction, opts Options) *Report {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	return &Report{
		Summary:  summary,
		Rejected: rejected,
		Enriched: enriched,
		Opts:     opts,
		Now:      time.Now,
	}
}

// Write renders the full report. Any write failure aborts immediately: the
// report is the product of the run and a partial artifact is worse than
// none.
func (r *Report) Write(w io.Writer) error {
	sections := []func(io.Writer) error{
		r.writeHeader,
		r.writeOverallSummary,
		r.writeRejections,
		r.writeRegions,
		r.writeTopProducts,
		r.writeTopCustomers,
		r.writeDailyTrend,
		r.writeProductPerformance,
		r.writeEnrichment,
	}

	for _, section := range sections {
		if err := section(w); err != nil {
			return err
		}
	}

	return nil
}

func (r *Report) writeHeader(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s\nSALES ANALYTICS REPORT\nGenerated: %s\nRecords Processed: %d\n%s\n\n",
		banner,
		r.Now().Format("2006-01-02 15:04:05"),
		r.Summary.TransactionCount,
		banner)
	return err
}

func (r *Report) writeOverallSummary(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "OVERALL SUMMARY\n%s\n", divider); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Revenue: %s\nTotal Transactions: %d\nAverage Order Value: %s\n",
		r.money(r.Summary.TotalRevenue),
		r.Summary.TransactionCount,
		r.money(r.Summary.AverageOrderValue())); err != nil {
		return err
	}
	if r.Summary.TransactionCount > 0 {
		if _, err := fmt.Fprintf(w, "Date Range: %s to %s\n",
			r.Summary.FirstDate.Format(model.DateFormat),
			r.Summary.LastDate.Format(model.DateFormat)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeRejections(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "DATA QUALITY\n%s\nRejected Records: %d\n", divider, len(r.Rejected)); err != nil {
		return err
	}

	counts := make(map[model.RejectionReason]int)
	for _, rej := range r.Rejected {
		counts[rej.Reason]++
	}

	reasons := make([]string, 0, len(counts))
	for reason := range counts {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)

	for _, reason := range reasons {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", reason, counts[model.RejectionReason(reason)]); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeRegions(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "REGION-WISE PERFORMANCE\n%s\nRegion | Total Sales | %% of Total | Transactions\n", divider); err != nil {
		return err
	}

	for _, region := range r.Summary.Regions() {
		if _, err := fmt.Fprintf(w, "%s | %s | %s%% | %d\n",
			region.Region,
			r.money(region.Revenue),
			r.Summary.RegionShare(region).StringFixed(2),
			region.Count); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeTopProducts(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "TOP %d PRODUCTS BY REVENUE\n%s\nRank | Product | Quantity | Revenue\n", r.Opts.TopN, divider); err != nil {
		return err
	}

	for i, p := range r.Summary.TopProductsByRevenue(r.Opts.TopN) {
		if _, err := fmt.Fprintf(w, "%d | %s (%s) | %d | %s\n",
			i+1, p.Name, p.ProductID, p.Quantity, r.money(p.Revenue)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeTopCustomers(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "TOP %d CUSTOMERS\n%s\nRank | CustomerID | Total Spent | Orders | Avg Order\n", r.Opts.TopN, divider); err != nil {
		return err
	}

	for i, c := range r.Summary.TopCustomers(r.Opts.TopN) {
		if _, err := fmt.Fprintf(w, "%d | %s | %s | %d | %s\n",
			i+1, c.CustomerID, r.money(c.Revenue), c.Orders, r.money(c.AverageOrderValue())); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeDailyTrend(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "DAILY SALES TREND\n%s\nDate | Revenue | Transactions | Customers\n", divider); err != nil {
		return err
	}

	for _, day := range r.Summary.DailyTrend() {
		if _, err := fmt.Fprintf(w, "%s | %s | %d | %d\n",
			day.Date.Format(model.DateFormat),
			r.money(day.Revenue),
			day.Count,
			day.UniqueCustomers()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeProductPerformance(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "PRODUCT PERFORMANCE ANALYSIS\n%s\n", divider); err != nil {
		return err
	}

	if peak := r.Summary.PeakDay(); peak != nil {
		if _, err := fmt.Fprintf(w, "Best Selling Day: %s (%s in %d transactions)\n",
			peak.Date.Format(model.DateFormat), r.money(peak.Revenue), peak.Count); err != nil {
			return err
		}
	}

	low := r.Summary.LowPerformers(r.Opts.LowQuantityThreshold)
	if len(low) == 0 {
		if _, err := fmt.Fprintln(w, "No low performing products found."); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Low Performing Products:"); err != nil {
			return err
		}
		for _, p := range low {
			if _, err := fmt.Fprintf(w, "%s (%s) - Qty: %d, Revenue: %s\n",
				p.Name, p.ProductID, p.Quantity, r.money(p.Revenue)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *Report) writeEnrichment(w io.Writer) error {
	matched, rate := enrich.MatchRate(r.Enriched)

	if _, err := fmt.Fprintf(w, "CATALOG ENRICHMENT SUMMARY\n%s\nProducts Enriched: %d/%d\nMatch Rate: %.2f%%\n",
		divider, matched, len(r.Enriched), rate); err != nil {
		return err
	}

	unmatched := make(map[string]struct{})
	for _, e := range r.Enriched {
		if e.Status == model.StatusUnmatched {
			unmatched[e.ProductName] = struct{}{}
		}
	}

	if len(unmatched) == 0 {
		_, err := fmt.Fprintln(w, "All products were enriched successfully.")
		return err
	}

	names := make([]string, 0, len(unmatched))
	for name := range unmatched {
		names = append(names, name)
	}
	sort.Strings(names)

	if _, err := fmt.Fprintln(w, "Products not enriched:"); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "- %s\n", name); err != nil {
			return err
		}
	}

	return nil
}

// money renders an amount with the configured currency symbol and comma
// thousands grouping, always with two decimal places.
func (r *Report) money(amount decimal.Decimal) string {
	return r.Opts.Currency + groupThousands(amount.StringFixed(2))
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
