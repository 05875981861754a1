// Package cleaner applies the row validation rules and constructs valid
// transactions. Cleaning is pure: the same candidate always yields the
// same verdict.
package cleaner

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwhitfield/salespipe/internal/model"
)

// Clean validates a candidate against the field rules, short-circuiting at
// the first failure so each rejected row carries a single primary reason.
// Rule order: non-empty fields, transaction id format, quantity, unit
// price, date. On success it constructs the immutable Transaction with its
// decimal line total.
func Clean(c model.Candidate) model.RowResult {
	id := strings.TrimSpace(c.TransactionID)
	date := strings.TrimSpace(c.Date)
	productID := strings.TrimSpace(c.ProductID)
	productName := strings.TrimSpace(c.ProductName)
	quantity := strings.TrimSpace(c.Quantity)
	unitPrice := strings.TrimSpace(c.UnitPrice)
	customerID := strings.TrimSpace(c.CustomerID)
	region := strings.TrimSpace(c.Region)

	for _, field := range []string{id, date, productID, productName, quantity, unitPrice, customerID, region} {
		if field == "" {
			return model.Reject(c.RawLine, c.LineNumber, model.ReasonMissingField)
		}
	}

	if !model.TransactionIDPattern.MatchString(id) {
		return model.Reject(c.RawLine, c.LineNumber, model.ReasonInvalidID)
	}

	qty, err := strconv.Atoi(quantity)
	if err != nil || qty <= 0 {
		return model.Reject(c.RawLine, c.LineNumber, model.ReasonInvalidQty)
	}

	price, err := decimal.NewFromString(unitPrice)
	if err != nil || !price.IsPositive() {
		return model.Reject(c.RawLine, c.LineNumber, model.ReasonInvalidPrice)
	}

	day, err := time.Parse(model.DateFormat, date)
	if err != nil {
		return model.Reject(c.RawLine, c.LineNumber, model.ReasonInvalidDate)
	}

	return model.Accept(model.NewTransaction(id, day, productID, productName, qty, price, customerID, region))
}
