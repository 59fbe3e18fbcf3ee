package services

import (
	"reflect"
	"testing"
)

func TestParseOptionsCommaSplit(t *testing.T) {
	got := ParseOptions("a, b, c")
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseOptionsJSONArray(t *testing.T) {
	got := ParseOptions(`["x","y"]`)
	want := []string{"x", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseOptionsMalformedJSON(t *testing.T) {
	if got := ParseOptions(`[not valid`); got != nil {
		t.Fatalf("expected nil for malformed literal, got %v", got)
	}
}

func TestParseOptionsEmpty(t *testing.T) {
	if got := ParseOptions(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := ParseOptions("   "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}

func TestParseOptionsDropsBlankPieces(t *testing.T) {
	got := ParseOptions(" a ,, b , ")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseOptionsPreservesOrder(t *testing.T) {
	got := ParseOptions("Referrals, Online job portals, Career fair")
	want := []string{"Referrals", "Online job portals", "Career fair"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
