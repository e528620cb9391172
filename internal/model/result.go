// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TransactionType is the business-level category assigned to a message.
type TransactionType string

// Transaction type constants. These form a closed set; anything the
// classifier emits outside this set maps to TypeUnknown.
const (
	TypeCredit        TransactionType = "credit"
	TypeDebit         TransactionType = "debit"
	TypeBalanceUpdate TransactionType = "balance_update"
	TypeRefund        TransactionType = "refund"
	TypeFailed        TransactionType = "failed"
	TypeFraud         TransactionType = "fraud"
	TypeUnknown       TransactionType = "unknown"
)

// UnknownMerchant is the sentinel merchant name returned when resolution
// fails or is rejected by the acceptance threshold.
const UnknownMerchant = "Unknown"

// PlaceholderReference is the fixed reference number included in every
// result. Real reference extraction is a known gap.
const PlaceholderReference = "1234567890"

// InferenceResult represents the structured outcome of classifying one message.
type InferenceResult struct {
	Amount          *decimal.Decimal `json:"amount"`
	TransactionType TransactionType  `json:"transactionType"`
	Merchant        string           `json:"merchant"`
	ReferenceNumber string           `json:"referenceNumber"`
}

// MarshalJSON emits the amount as a bare JSON number with exactly two
// fraction digits, or null when no amount was extracted. decimal's own
// MarshalJSON quotes the value and trims trailing zeros, so 500.00 would
// come out as "500".
func (r InferenceResult) MarshalJSON() ([]byte, error) {
	amount := json.RawMessage("null")
	if r.Amount != nil {
		amount = json.RawMessage(r.Amount.StringFixed(2))
	}
	return json.Marshal(struct {
		Amount          json.RawMessage `json:"amount"`
		TransactionType TransactionType `json:"transactionType"`
		Merchant        string          `json:"merchant"`
		ReferenceNumber string          `json:"referenceNumber"`
	}{amount, r.TransactionType, r.Merchant, r.ReferenceNumber})
}
