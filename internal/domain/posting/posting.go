// Package posting provides the document posting engine. Posting turns a
// draft document into register movements (stock, ledger) atomically;
// unposting reverses them.
package posting

import (
	"context"
	"fmt"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/tx"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/domain/registers/stock"
	"steeldesk/pkg/logger"
)

// Postable is implemented by documents that write register movements.
type Postable interface {
	entity.Validatable

	GetID() id.ID
	GetDocumentType() string
	GetPostedVersion() int
	IsPosted() bool
	MarkPosted()
	MarkUnposted()

	// GenerateMovements produces the movement set for the next posted
	// version. Called inside the posting transaction.
	GenerateMovements(ctx context.Context) (*MovementSet, error)
}

// MovementSet collects everything one posting writes to the registers.
type MovementSet struct {
	Stock  []entity.StockMovement
	Ledger []entity.LedgerEntry

	// Reservations are stock checks executed with row locks before
	// issue movements are written. A failed check aborts the posting.
	Reservations []stock.Reservation
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// AddStock appends a stock movement.
func (m *MovementSet) AddStock(movement entity.StockMovement) {
	m.Stock = append(m.Stock, movement)
}

// AddLedger appends a ledger entry.
func (m *MovementSet) AddLedger(entry entity.LedgerEntry) {
	m.Ledger = append(m.Ledger, entry)
}

// Reserve appends a stock availability check.
func (m *MovementSet) Reserve(r stock.Reservation) {
	m.Reservations = append(m.Reservations, r)
}

// Engine posts and unposts documents.
type Engine struct {
	txManager tx.Manager
	stock     *stock.Service
	ledger    *ledger.Service
}

// NewEngine creates a posting engine.
func NewEngine(txManager tx.Manager, stockSvc *stock.Service, ledgerSvc *ledger.Service) *Engine {
	return &Engine{
		txManager: txManager,
		stock:     stockSvc,
		ledger:    ledgerSvc,
	}
}

// Post validates the document, checks stock reservations under row
// locks, writes movements and saves the document, all in one
// transaction. updateDoc persists the document itself (create or
// update, the caller knows which).
func (e *Engine) Post(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Document is already posted. Unpost first.",
		).WithDetail("document_id", doc.GetID().String())
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		movements, err := doc.GenerateMovements(ctx)
		if err != nil {
			return fmt.Errorf("generate movements: %w", err)
		}

		// Authoritative stock check. Any advisory check done at
		// ingestion time may be stale by now.
		if len(movements.Reservations) > 0 {
			if err := e.stock.CheckAndReserveStock(ctx, movements.Reservations); err != nil {
				return err
			}
		}

		doc.MarkPosted()

		if err := e.stock.RecordMovements(ctx, movements.Stock); err != nil {
			return err
		}
		if err := e.ledger.RecordEntries(ctx, movements.Ledger); err != nil {
			return err
		}

		if err := updateDoc(ctx); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document posted",
		"type", doc.GetDocumentType(),
		"id", doc.GetID(),
		"posted_version", doc.GetPostedVersion(),
	)
	return nil
}

// Unpost reverses all register movements of a posted document.
func (e *Engine) Unpost(ctx context.Context, doc Postable, updateDoc func(ctx context.Context) error) error {
	if !doc.IsPosted() {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Document is not posted.",
		).WithDetail("document_id", doc.GetID().String())
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		// Remove every movement written up to and including the
		// current posted version.
		beforeVersion := doc.GetPostedVersion() + 1

		if err := e.stock.ReverseMovements(ctx, doc.GetID(), beforeVersion); err != nil {
			return err
		}
		if err := e.ledger.ReverseEntries(ctx, doc.GetID(), beforeVersion); err != nil {
			return err
		}

		doc.MarkUnposted()

		if err := updateDoc(ctx); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document unposted",
		"type", doc.GetDocumentType(),
		"id", doc.GetID(),
	)
	return nil
}
