package textutil

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input any
		name  string
		want  string
	}{
		{name: "trims and lowercases", input: "  Amazon Pay  ", want: "amazon pay"},
		{name: "already canonical", input: "swiggy", want: "swiggy"},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "mixed case merchant", input: "ZOMATO", want: "zomato"},
		{name: "non-string passes through", input: 3, want: "3"},
		{name: "float not cased or trimmed", input: 2.5, want: "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
