package utils

import (
	"testing"
	"time"
)

func TestParseDateParam(t *testing.T) {
	got, err := ParseDateParam("2025-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if got, err := ParseDateParam(""); err != nil || got != nil {
		t.Fatalf("empty value should yield nil, got %v, %v", got, err)
	}
	if _, err := ParseDateParam("15/06/2025"); err == nil {
		t.Fatalf("expected error for wrong date format")
	}
}

func TestParseFloatParam(t *testing.T) {
	got, err := ParseFloatParam("19.99")
	if err != nil || got == nil || *got != 19.99 {
		t.Fatalf("got %v, %v", got, err)
	}
	if got, err := ParseFloatParam(""); err != nil || got != nil {
		t.Fatalf("empty value should yield nil, got %v, %v", got, err)
	}
	if _, err := ParseFloatParam("lots"); err == nil {
		t.Fatalf("expected error for non-numeric value")
	}
}

func TestSplitListParam(t *testing.T) {
	got := SplitListParam("Electronics, Books ,,Sports")
	want := []string{"Electronics", "Books", "Sports"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("element %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := SplitListParam(""); got != nil {
		t.Fatalf("empty value should yield nil, got %v", got)
	}
}
