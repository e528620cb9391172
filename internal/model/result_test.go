package model

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestInferenceResultMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"two fraction digits kept", "500.00", "500.00"},
		{"scale widened", "99", "99.00"},
		{"thousands", "1250.00", "1250.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			result := InferenceResult{
				Amount:          &amount,
				TransactionType: TypeDebit,
				Merchant:        "amazon",
				ReferenceNumber: PlaceholderReference,
			}

			data, err := json.Marshal(result)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}

			want := fmt.Sprintf(`{"amount":%s,"transactionType":"debit","merchant":"amazon","referenceNumber":"1234567890"}`, tt.want)
			if string(data) != want {
				t.Errorf("Marshal() = %s, want %s", data, want)
			}
		})
	}
}

func TestInferenceResultMarshalNilAmount(t *testing.T) {
	result := InferenceResult{
		TransactionType: TypeUnknown,
		Merchant:        UnknownMerchant,
		ReferenceNumber: PlaceholderReference,
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"amount":null,"transactionType":"unknown","merchant":"Unknown","referenceNumber":"1234567890"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
