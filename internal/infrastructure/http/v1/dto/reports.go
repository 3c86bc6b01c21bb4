package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/domain/reports"
)

// SalesSummaryResponse is the aggregated sales report, rounded to 2dp.
type SalesSummaryResponse struct {
	FromDate      time.Time       `json:"fromDate"`
	ToDate        time.Time       `json:"toDate"`
	OrderCount    int64           `json:"orderCount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// FromSalesSummary creates SalesSummaryResponse.
func FromSalesSummary(s reports.SalesSummary) SalesSummaryResponse {
	return SalesSummaryResponse{
		FromDate:      s.FromDate,
		ToDate:        s.ToDate,
		OrderCount:    s.OrderCount,
		TaxableAmount: types.Round2(s.TaxableAmount),
		TotalTax:      types.Round2(s.TotalTax),
		GrandTotal:    types.Round2(s.GrandTotal),
		AmountPaid:    types.Round2(s.AmountPaid),
		Outstanding:   types.Round2(s.Outstanding),
	}
}

// PartyBalanceResponse is one row of an outstanding report.
type PartyBalanceResponse struct {
	PartyID   string          `json:"partyId"`
	PartyName string          `json:"partyName"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// FromPartyBalances creates the outstanding report rows.
func FromPartyBalances(balances []ledger.PartyBalance) []PartyBalanceResponse {
	out := make([]PartyBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = PartyBalanceResponse{
			PartyID:   b.PartyID.String(),
			PartyName: b.PartyName,
			Debit:     types.Round2(b.Debit),
			Credit:    types.Round2(b.Credit),
			Balance:   types.Round2(b.Balance),
		}
	}
	return out
}
