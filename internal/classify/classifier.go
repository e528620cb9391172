// Package classify maps feature vectors to transaction types using a
// trained model loaded at startup. Training happens offline; this package
// only runs the forward pass and translates raw class ids into the
// business-level label set.
package classify

import "github.com/keesa/smsparse/internal/model"

// Classifier is the contract the inference pipeline depends on. The raw
// class id it returns is an internal code, not a business category; run it
// through Label before it leaves the pipeline.
type Classifier interface {
	Predict(vector []float32) (int, error)
}

// labelTable translates raw classifier output into transaction types. The
// ids match the label encoding used by the training pipeline.
var labelTable = map[int]model.TransactionType{
	0: model.TypeCredit,
	1: model.TypeDebit,
	2: model.TypeBalanceUpdate,
	3: model.TypeRefund,
	4: model.TypeFailed,
	5: model.TypeFraud,
}

// Label maps a raw class id to its transaction type. Ids outside the known
// table map to TypeUnknown rather than failing.
func Label(raw int) model.TransactionType {
	if label, ok := labelTable[raw]; ok {
		return label
	}
	return model.TypeUnknown
}
