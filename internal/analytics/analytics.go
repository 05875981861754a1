// Package analytics computes aggregate sales metrics from the accepted
// transaction set. All revenue arithmetic stays in decimal form; totals
// are summed across potentially thousands of rows and float drift
// compounds.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwhitfield/salespipe/internal/model"
)

// RegionStat aggregates sales for one region.
type RegionStat struct {
	Region  string
	Revenue decimal.Decimal
	Count   int
}

// CustomerStat aggregates purchases for one customer.
type CustomerStat struct {
	CustomerID string
	Revenue    decimal.Decimal
	Orders     int
	products   map[string]struct{}
}

// DistinctProducts returns how many different products the customer bought.
func (c *CustomerStat) DistinctProducts() int {
	return len(c.products)
}

// AverageOrderValue returns revenue per order, rounded to two places.
func (c *CustomerStat) AverageOrderValue() decimal.Decimal {
	if c.Orders == 0 {
		return decimal.Zero
	}
	return c.Revenue.DivRound(decimal.NewFromInt(int64(c.Orders)), 2)
}

// ProductStat aggregates sales for one product. Grouping is by product ID,
// not name: names vary in punctuation across rows.
type ProductStat struct {
	ProductID string
	Name      string
	Revenue   decimal.Decimal
	Quantity  int
}

// DayStat aggregates sales for one calendar day.
type DayStat struct {
	Date      time.Time
	Revenue   decimal.Decimal
	Count     int
	customers map[string]struct{}
}

// UniqueCustomers returns how many distinct customers bought that day.
func (d *DayStat) UniqueCustomers() int {
	return len(d.customers)
}

// Summary holds every aggregate computed from the accepted transaction
// set. Built once per run and read-only afterwards.
type Summary struct {
	TotalRevenue     decimal.Decimal
	FirstDate        time.Time
	LastDate         time.Time
	TransactionCount int

	regions   map[string]*RegionStat
	customers map[string]*CustomerStat
	products  map[string]*ProductStat
	days      map[string]*DayStat
}

// Compute builds a Summary from the accepted transactions in a single
// pass. An empty input yields a summary with all totals at zero.
func Compute(transactions []model.Transaction) *Summary {
	s := &Summary{
		TotalRevenue: decimal.Zero,
		regions:      make(map[string]*RegionStat),
		customers:    make(map[string]*CustomerStat),
		products:     make(map[string]*ProductStat),
		days:         make(map[string]*DayStat),
	}

	for _, tx := range transactions {
		s.TotalRevenue = s.TotalRevenue.Add(tx.LineTotal)
		s.TransactionCount++

		if s.FirstDate.IsZero() || tx.Date.Before(s.FirstDate) {
			s.FirstDate = tx.Date
		}
		if tx.Date.After(s.LastDate) {
			s.LastDate = tx.Date
		}

		region, ok := s.regions[tx.Region]
		if !ok {
			region = &RegionStat{Region: tx.Region, Revenue: decimal.Zero}
			s.regions[tx.Region] = region
		}
		region.Revenue = region.Revenue.Add(tx.LineTotal)
		region.Count++

		customer, ok := s.customers[tx.CustomerID]
		if !ok {
			customer = &CustomerStat{
				CustomerID: tx.CustomerID,
				Revenue:    decimal.Zero,
				products:   make(map[string]struct{}),
			}
			s.customers[tx.CustomerID] = customer
		}
		customer.Revenue = customer.Revenue.Add(tx.LineTotal)
		customer.Orders++
		customer.products[tx.ProductID] = struct{}{}

		product, ok := s.products[tx.ProductID]
		if !ok {
			product = &ProductStat{
				ProductID: tx.ProductID,
				Name:      tx.ProductName,
				Revenue:   decimal.Zero,
			}
			s.products[tx.ProductID] = product
		}
		product.Revenue = product.Revenue.Add(tx.LineTotal)
		product.Quantity += tx.Quantity

		dayKey := tx.Date.Format(model.DateFormat)
		day, ok := s.days[dayKey]
		if !ok {
			day = &DayStat{
				Date:      tx.Date,
				Revenue:   decimal.Zero,
				customers: make(map[string]struct{}),
			}
			s.days[dayKey] = day
		}
		day.Revenue = day.Revenue.Add(tx.LineTotal)
		day.Count++
		day.customers[tx.CustomerID] = struct{}{}
	}

	return s
}

// AverageOrderValue returns overall revenue per transaction, rounded to
// two places. Zero for an empty summary.
func (s *Summary) AverageOrderValue() decimal.Decimal {
	if s.TransactionCount == 0 {
		return decimal.Zero
	}
	return s.TotalRevenue.DivRound(decimal.NewFromInt(int64(s.TransactionCount)), 2)
}

// RegionShare returns a region's percentage of total revenue, rounded to
// two places.
func (s *Summary) RegionShare(region *RegionStat) decimal.Decimal {
	if s.TotalRevenue.IsZero() {
		return decimal.Zero
	}
	return region.Revenue.Mul(decimal.NewFromInt(100)).DivRound(s.TotalRevenue, 2)
}

// Regions returns all region aggregates ordered by revenue descending,
// region name ascending on ties.
func (s *Summary) Regions() []*RegionStat {
	regions := make([]*RegionStat, 0, len(s.regions))
	for _, r := range s.regions {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool {
		if cmp := regions[i].Revenue.Cmp(regions[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return regions[i].Region < regions[j].Region
	})
	return regions
}

// TopCustomers returns up to n customers by revenue descending. Equal
// revenue breaks ties by customer ID ascending so rankings are
// deterministic.
func (s *Summary) TopCustomers(n int) []*CustomerStat {
	customers := make([]*CustomerStat, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool {
		if cmp := customers[i].Revenue.Cmp(customers[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return customers[i].CustomerID < customers[j].CustomerID
	})
	return truncateCustomers(customers, n)
}

// TopProductsByRevenue returns up to n products by revenue descending,
// product ID ascending on ties.
func (s *Summary) TopProductsByRevenue(n int) []*ProductStat {
	products := s.allProducts()
	sort.Slice(products, func(i, j int) bool {
		if cmp := products[i].Revenue.Cmp(products[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return products[i].ProductID < products[j].ProductID
	})
	return truncateProducts(products, n)
}

// TopProductsByQuantity returns up to n products by units sold descending,
// product ID ascending on ties.
func (s *Summary) TopProductsByQuantity(n int) []*ProductStat {
	products := s.allProducts()
	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity != products[j].Quantity {
			return products[i].Quantity > products[j].Quantity
		}
		return products[i].ProductID < products[j].ProductID
	})
	return truncateProducts(products, n)
}

// LowPerformers returns products whose aggregate quantity sold is below
// threshold, ordered by quantity ascending, product ID ascending on ties.
func (s *Summary) LowPerformers(threshold int) []*ProductStat {
	var low []*ProductStat
	for _, p := range s.products {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].Quantity != low[j].Quantity {
			return low[i].Quantity < low[j].Quantity
		}
		return low[i].ProductID < low[j].ProductID
	})
	return low
}

// DailyTrend returns per-day aggregates in chronological order.
func (s *Summary) DailyTrend() []*DayStat {
	days := make([]*DayStat, 0, len(s.days))
	for _, d := range s.days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// PeakDay returns the day with the highest revenue, or nil for an empty
// summary. Equal revenue resolves to the earlier day.
func (s *Summary) PeakDay() *DayStat {
	var peak *DayStat
	for _, d := range s.DailyTrend() {
		if peak == nil || d.Revenue.GreaterThan(peak.Revenue) {
			peak = d
		}
	}
	return peak
}

func (s *Summary) allProducts() []*ProductStat {
	products := make([]*ProductStat, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	return products
}

func truncateProducts(products []*ProductStat, n int) []*ProductStat {
	if n > 0 && len(products) > n {
		return products[:n]
	}
	return products
}

func truncateCustomers(customers []*CustomerStat, n int) []*CustomerStat {
	if n > 0 && len(customers) > n {
		return customers[:n]
	}
	return customers
}
