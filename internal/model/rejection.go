package model

// RejectionReason is a coded explanation for why a raw row failed
// validation. Each rejected row carries exactly one primary reason: the
// first rule that failed.
type RejectionReason string

// Rejection reasons, in the order the rules are applied.
const (
	ReasonIncompleteRow RejectionReason = "incomplete row"
	ReasonMissingField  RejectionReason = "missing field"
	ReasonInvalidID     RejectionReason = "invalid transaction id"
	ReasonInvalidQty    RejectionReason = "invalid quantity"
	ReasonInvalidPrice  RejectionReason = "invalid unit price"
	ReasonInvalidDate   RejectionReason = "invalid date"
)

// RejectedRecord captures a row that failed parsing or validation. It is
// used only for diagnostics and reporting; rejected rows never feed
// analytics.
type RejectedRecord struct {
	RawLine    string
	Reason     RejectionReason
	LineNumber int
}

// RowResult is the outcome of parsing and cleaning one raw line: exactly
// one of Transaction or Rejected is non-nil. Downstream stages handle both
// cases instead of relying on sentinel values.
type RowResult struct {
	Transaction *Transaction
	Rejected    *RejectedRecord
}

// Accepted reports whether the row survived validation.
func (r RowResult) Accepted() bool {
	return r.Transaction != nil
}

// Accept wraps a valid transaction in a RowResult.
func Accept(t Transaction) RowResult {
	return RowResult{Transaction: &t}
}

// Reject builds a rejection outcome for the given raw line.
func Reject(rawLine string, lineNumber int, reason RejectionReason) RowResult {
	return RowResult{Rejected: &RejectedRecord{
		RawLine:    rawLine,
		LineNumber: lineNumber,
		Reason:     reason,
	}}
}
