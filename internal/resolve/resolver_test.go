package resolve

import (
	"math"
	"testing"

	"github.com/keesa/smsparse/internal/index"
	"github.com/keesa/smsparse/internal/model"
)

func unit(vals ...float32) []float32 {
	var norm float64
	for _, v := range vals {
		norm += float64(v) * float64(v)
	}
	scale := float32(1 / math.Sqrt(norm))
	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = v * scale
	}
	return out
}

func testPair(t *testing.T) (*index.Flat, *index.Catalog) {
	t.Helper()
	idx, err := index.NewFlat(3, "build-1")
	if err != nil {
		t.Fatalf("NewFlat() error: %v", err)
	}
	for _, vec := range [][]float32{unit(1, 0, 0), unit(0, 1, 0), unit(0, 0, 1)} {
		if addErr := idx.Add(vec); addErr != nil {
			t.Fatalf("Add() error: %v", addErr)
		}
	}
	return idx, index.NewCatalog([]string{"Amazon", "swiggy", "ZOMATO"}, "build-1")
}

func TestResolveAcceptsAboveThreshold(t *testing.T) {
	idx, cat := testPair(t)
	r := New(idx, cat, DefaultThreshold, nil)

	merchant, matched := r.Resolve(unit(0, 0.1, 1))
	if !matched {
		t.Fatal("expected a match")
	}
	if merchant != "zomato" {
		t.Errorf("merchant = %q, want zomato (normalized)", merchant)
	}
}

func TestResolveRejectsBelowThreshold(t *testing.T) {
	idx, cat := testPair(t)
	r := New(idx, cat, 0.99, nil)

	merchant, matched := r.Resolve(unit(1, 1, 1))
	if matched {
		t.Fatal("expected rejection under strict threshold")
	}
	if merchant != model.UnknownMerchant {
		t.Errorf("merchant = %q, want %q", merchant, model.UnknownMerchant)
	}
}

func TestResolveEmptyIndex(t *testing.T) {
	r := New(index.Empty(), index.EmptyCatalog(), DefaultThreshold, nil)

	for _, vec := range [][]float32{unit(1), unit(1, 2, 3), nil} {
		merchant, matched := r.Resolve(vec)
		if matched || merchant != model.UnknownMerchant {
			t.Errorf("Resolve(%v) = (%q, %v), want (Unknown, false)", vec, merchant, matched)
		}
	}
}

func TestResolveDimensionMismatch(t *testing.T) {
	idx, cat := testPair(t)
	r := New(idx, cat, DefaultThreshold, nil)

	merchant, matched := r.Resolve(unit(1, 0))
	if matched || merchant != model.UnknownMerchant {
		t.Errorf("Resolve = (%q, %v), want (Unknown, false)", merchant, matched)
	}
}

func TestResolvePositionOutsideCatalog(t *testing.T) {
	idx, _ := testPair(t)
	// A catalog shorter than the index simulates a torn artifact pair.
	short := index.NewCatalog([]string{"amazon"}, "build-1")

	r := New(idx, short, DefaultThreshold, nil)
	merchant, matched := r.Resolve(unit(0, 0, 1))
	if matched || merchant != model.UnknownMerchant {
		t.Errorf("Resolve = (%q, %v), want (Unknown, false)", merchant, matched)
	}
}
