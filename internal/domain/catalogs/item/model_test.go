package item

import (
	"testing"

	"github.com/shopspring/decimal"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestBuildName(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		fields   NameFields
		want     string
	}{
		{
			name:     "pipe full",
			category: CategoryPipe,
			fields:   NameFields{Type: "Pipe", Grade: "304", Size: "2 inch", Gauge: "16g"},
			want:     "Pipe 304 2 inch 16g",
		},
		{
			name:     "sheet skips blanks",
			category: CategorySheet,
			fields:   NameFields{Type: "Sheet", Grade: "202", Size: "", Gauge: "18g"},
			want:     "Sheet 202 18g",
		},
		{
			name:     "fitting carries suffix",
			category: CategoryFitting,
			fields:   NameFields{SubCategory: "Elbow", Grade: "304", FittingType: "welded", Size: "1 inch"},
			want:     "Elbow 304 welded 1 inch Fitting",
		},
		{
			name:     "polish",
			category: CategoryPolish,
			fields:   NameFields{SubCategory: "Buffing Wheel", Specification: "14 inch"},
			want:     "Buffing Wheel 14 inch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildName(tt.category, tt.fields)
			if got != tt.want {
				t.Errorf("BuildName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasisFor(t *testing.T) {
	tests := []struct {
		category Category
		subCat   string
		want     UnitBasis
	}{
		{CategoryPipe, "", ByWeight},
		{CategorySheet, "", ByWeight},
		{CategoryFitting, "elbow", ByPieceCount},
		{CategoryFitting, "bush", ByWeight},
		{CategoryFitting, " Bush ", ByWeight},
		{CategoryPolish, "", ByPieceCount},
	}

	for _, tt := range tests {
		if got := BasisFor(tt.category, tt.subCat); got != tt.want {
			t.Errorf("BasisFor(%s, %q) = %s, want %s", tt.category, tt.subCat, got, tt.want)
		}
	}
}

func TestMatchKey(t *testing.T) {
	if MatchKey("Pipe 304 2 Inch") != MatchKey("pipe3042inch") {
		t.Error("match key should be case and whitespace insensitive")
	}
	if MatchKey("Sheet 202") == MatchKey("Sheet 304") {
		t.Error("different names must not collide")
	}
}

func TestRefresh_DerivesNameAndBasis(t *testing.T) {
	it := New("", CategoryFitting)
	it.SubCategory = "bush"
	it.Grade = "304"
	it.Size = "1 inch"
	it.Refresh()

	if it.UnitBasis != ByWeight {
		t.Errorf("unit basis = %s, want %s", it.UnitBasis, ByWeight)
	}
	if it.Name == "" {
		t.Error("expected derived name")
	}
}

func TestSellingRate(t *testing.T) {
	it := New("", CategoryPipe)
	it.PurchaseRate = mustDec(t, "210.50")
	it.Margin = mustDec(t, "12")

	if !it.SellingRate().Equal(mustDec(t, "222.50")) {
		t.Errorf("selling rate = %s, want 222.50", it.SellingRate())
	}
}
