// Package stock provides the stock accumulation register service.
package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (the posting document service).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// RecordMovements records stock movements from a document posting.
// This is called during document posting within a transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
		if id.IsNil(m.ItemID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: item_id is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes movements for a document (used during unposting).
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	logger.Info(ctx, "reversed stock movements",
		"recorder_id", recorderID,
		"before_version", beforeVersion,
	)

	return nil
}

// Reservation represents one stock check request.
type Reservation struct {
	ItemID      id.ID
	ItemName    string
	RequiredQty decimal.Decimal
}

// CheckAndReserveStock validates stock availability with pessimistic
// locking. Must be called within the posting transaction before issue
// movements are created; any advisory check done at ingestion time can
// be stale by now.
func (s *Service) CheckAndReserveStock(ctx context.Context, reservations []Reservation) error {
	for _, r := range reservations {
		balance, err := s.repo.GetBalanceForUpdate(ctx, r.ItemID)
		if err != nil {
			return fmt.Errorf("get balance for %s: %w", r.ItemID, err)
		}

		if balance.Quantity.LessThan(r.RequiredQty) {
			name := r.ItemName
			if name == "" {
				name = r.ItemID.String()
			}
			return apperror.NewInsufficientStock(
				name,
				r.RequiredQty.InexactFloat64(),
				balance.Quantity.InexactFloat64(),
			)
		}
	}

	return nil
}

// GetAvailability returns the current balance for an item.
func (s *Service) GetAvailability(ctx context.Context, itemID id.ID) (decimal.Decimal, error) {
	balance, err := s.repo.GetBalance(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	return balance.Quantity, nil
}

// GetStock returns all non-zero balances.
func (s *Service) GetStock(ctx context.Context) ([]entity.StockBalance, error) {
	return s.repo.GetBalances(ctx, BalanceFilter{ExcludeZero: true})
}

// GetTurnover generates a receipt/issue report for the period.
func (s *Service) GetTurnover(ctx context.Context, filter TurnoverFilter) ([]Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}

// GetMovementHistory returns movement history for an item.
func (s *Service) GetMovementHistory(ctx context.Context, itemID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, itemID, filter)
}
