package dto

import "github.com/shopspring/decimal"

// AvailabilityResponse is the on-hand quantity for a single item.
type AvailabilityResponse struct {
	ItemID   string          `json:"itemId"`
	Quantity decimal.Decimal `json:"quantity"`
}
