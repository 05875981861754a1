package model

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar format used by the input file and all reports.
const DateFormat = "2006-01-02"

// TransactionIDPattern matches well-formed transaction identifiers (T
// followed by one or more digits).
var TransactionIDPattern = regexp.MustCompile(`^T\d+$`)

// Candidate holds the raw string fields of a single input row after
// splitting but before any type coercion. It is transient: a candidate
// either becomes a Transaction or a RejectedRecord.
type Candidate struct {
	TransactionID string
	Date          string
	ProductID     string
	ProductName   string
	Quantity      string
	UnitPrice     string
	CustomerID    string
	Region        string
	RawLine       string
	LineNumber    int
}

// Transaction is a fully validated sales record. Construction happens only
// in the cleaner; once built, a Transaction is always valid and never
// mutated.
type Transaction struct {
	Date        time.Time
	ID          string
	ProductID   string
	ProductName string
	CustomerID  string
	Region      string
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Quantity    int
}

// NewTransaction builds a Transaction and computes its line total with
// decimal arithmetic so revenue sums never accumulate float drift.
func NewTransaction(id string, date time.Time, productID, productName string, quantity int, unitPrice decimal.Decimal, customerID, region string) Transaction {
	return Transaction{
		ID:          id,
		Date:        date,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CustomerID:  customerID,
		Region:      region,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
