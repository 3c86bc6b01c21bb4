// Package stock provides the stock accumulation register.
// The company operates a single godown, so balances are kept per item.
package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
)

// Repository defines operations for the stock register.
type Repository interface {
	// Movement operations

	// CreateMovements batch inserts movements and applies them to
	// balances and the item stock read-model (used during posting)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteMovementsByRecorder removes all movements for a document
	// below the given posted version and rolls their effect back.
	// Used during unposting or re-posting.
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error

	// GetMovementsByRecorder retrieves all movements for a document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// Balance operations

	// GetBalance returns current balance for an item
	GetBalance(ctx context.Context, itemID id.ID) (entity.StockBalance, error)

	// GetBalanceForUpdate returns balance with a row lock for stock control
	GetBalanceForUpdate(ctx context.Context, itemID id.ID) (entity.StockBalance, error)

	// GetBalances returns all balances matching the filter
	GetBalances(ctx context.Context, filter BalanceFilter) ([]entity.StockBalance, error)

	// Reporting

	// GetMovementHistory returns movement history for an item
	GetMovementHistory(ctx context.Context, itemID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// GetTurnover calculates receipt and issue totals for a period
	GetTurnover(ctx context.Context, filter TurnoverFilter) ([]Turnover, error)

	// Maintenance

	// RecalculateBalances rebuilds the balance table from movements
	RecalculateBalances(ctx context.Context, itemID *id.ID) error
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	ItemIDs     []id.ID
	ExcludeZero bool
	MaxQuantity *decimal.Decimal
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	RecordType *entity.RecordType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// TurnoverFilter for turnover reports.
type TurnoverFilter struct {
	ItemID   *id.ID
	FromDate time.Time
	ToDate   time.Time
}

// Turnover represents receipt/issue totals per item.
type Turnover struct {
	ItemID         id.ID           `json:"itemId"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Receipt        decimal.Decimal `json:"receipt"`
	Issue          decimal.Decimal `json:"issue"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
