package pricing

import (
	"testing"

	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/item"
)

func TestPrice_PieceCount(t *testing.T) {
	li := LineItem{
		Category:      item.CategoryPipe,
		Name:          "Pipe 304 80x80 14",
		QuantityBasis: item.ByPieceCount,
		Quantity:      types.MustMoney("20"),
		BaseRate:      types.MustMoney("244.36"),
		Margin:        types.MustMoney("0"),
		TaxRate:       types.MustMoney("18"),
	}

	if err := Price(&li); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !li.SellingPrice.Equal(types.MustMoney("244.36")) {
		t.Errorf("sellingPrice = %s, want 244.36", li.SellingPrice)
	}
	if !li.LineAmount.Equal(types.MustMoney("4887.20")) {
		t.Errorf("lineAmount = %s, want 4887.20", li.LineAmount)
	}
	if !li.TaxAmount.Equal(types.MustMoney("879.696")) {
		t.Errorf("taxAmount = %s, want 879.696", li.TaxAmount)
	}
}

func TestPrice_WeightWithMargin(t *testing.T) {
	li := LineItem{
		Category:      item.CategoryFitting,
		Name:          "Bush Fitting",
		QuantityBasis: item.ByWeight,
		Quantity:      types.MustMoney("10"),
		BaseRate:      types.MustMoney("80"),
		Margin:        types.MustMoney("15"),
	}

	if err := Price(&li); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !li.SellingPrice.Equal(types.MustMoney("95")) {
		t.Errorf("sellingPrice = %s, want 95", li.SellingPrice)
	}
	if !li.LineAmount.Equal(types.MustMoney("950")) {
		t.Errorf("lineAmount = %s, want 950", li.LineAmount)
	}
}

func TestPrice_RejectsNegatives(t *testing.T) {
	tests := []struct {
		name string
		li   LineItem
	}{
		{"negative quantity", LineItem{Quantity: types.MustMoney("-1")}},
		{"negative rate", LineItem{BaseRate: types.MustMoney("-10")}},
		{"negative tax rate", LineItem{TaxRate: types.MustMoney("-18")}},
		{"margin below rate", LineItem{BaseRate: types.MustMoney("10"), Margin: types.MustMoney("-20")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Price(&tt.li); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPrice_DerivedFieldsRecomputedTogether(t *testing.T) {
	li := LineItem{
		Quantity: types.MustMoney("5"),
		BaseRate: types.MustMoney("100"),
		Margin:   types.MustMoney("10"),
		TaxRate:  types.MustMoney("18"),
	}
	if err := Price(&li); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutate one input and reprice: all three derived fields must change.
	li.BaseRate = types.MustMoney("200")
	if err := Price(&li); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !li.SellingPrice.Equal(types.MustMoney("210")) {
		t.Errorf("sellingPrice = %s, want 210", li.SellingPrice)
	}
	if !li.LineAmount.Equal(types.MustMoney("1050")) {
		t.Errorf("lineAmount = %s, want 1050", li.LineAmount)
	}
	if !li.TaxAmount.Equal(types.MustMoney("189")) {
		t.Errorf("taxAmount = %s, want 189", li.TaxAmount)
	}
}

func TestAggregate_OrderTotals(t *testing.T) {
	// taxable 10000, 10% discount, tax 1800, freight 200 -> grand 11000
	items := []LineItem{
		{Name: "A", LineAmount: types.MustMoney("6000"), TaxAmount: types.MustMoney("1080")},
		{Name: "B", LineAmount: types.MustMoney("4000"), TaxAmount: types.MustMoney("720")},
	}
	adj := Adjustments{
		DiscountPercent: types.MustMoney("10"),
		FreightAmount:   types.MustMoney("200"),
	}

	totals, err := Aggregate(items, adj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !totals.TaxableAmount.Equal(types.MustMoney("10000")) {
		t.Errorf("taxableAmount = %s, want 10000", totals.TaxableAmount)
	}
	if !totals.DiscountAmount.Equal(types.MustMoney("1000")) {
		t.Errorf("discountAmount = %s, want 1000", totals.DiscountAmount)
	}
	if !totals.TotalTax.Equal(types.MustMoney("1800")) {
		t.Errorf("totalTax = %s, want 1800", totals.TotalTax)
	}
	if !totals.GrandTotal.Equal(types.MustMoney("11000")) {
		t.Errorf("grandTotal = %s, want 11000", totals.GrandTotal)
	}
	if !totals.BalanceAmount.Equal(types.MustMoney("11000")) {
		t.Errorf("balanceAmount = %s, want 11000", totals.BalanceAmount)
	}
}

func TestAggregate_BalanceNeverNegative(t *testing.T) {
	items := []LineItem{
		{Name: "A", LineAmount: types.MustMoney("1000"), TaxAmount: types.MustMoney("180")},
	}

	// Exact payment leaves zero balance.
	totals, err := Aggregate(items, Adjustments{AmountPaid: types.MustMoney("1180")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.BalanceAmount.IsZero() {
		t.Errorf("balanceAmount = %s, want 0", totals.BalanceAmount)
	}

	// Overpayment is rejected, not clamped.
	_, err = Aggregate(items, Adjustments{AmountPaid: types.MustMoney("1180.01")})
	if err == nil {
		t.Error("expected overpayment error, got nil")
	}
}

func TestAggregate_RejectsMalformedLine(t *testing.T) {
	items := []LineItem{
		{Name: "A", LineAmount: types.MustMoney("1000")},
		{Name: "B", LineAmount: types.MustMoney("-50")},
	}
	if _, err := Aggregate(items, Adjustments{}); err == nil {
		t.Error("expected error for negative line amount, got nil")
	}
}

func TestFullPaymentAmount_RoundsDown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1180.999", "1180.99"},
		{"1180.001", "1180"},
		{"1180", "1180"},
	}

	for _, tt := range tests {
		got := FullPaymentAmount(types.MustMoney(tt.in))
		if !got.Equal(types.MustMoney(tt.want)) {
			t.Errorf("FullPaymentAmount(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
