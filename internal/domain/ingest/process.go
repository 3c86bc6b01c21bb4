package ingest

import (
	"steeldesk/internal/core/apperror"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/pricing"
)

// RowError reports one rejected data row. RowNumber is 1-based over the
// data rows (the header row is not counted).
type RowError struct {
	RowNumber int    `json:"rowNumber"`
	Message   string `json:"message"`
	Code      string `json:"code"`
}

// Result is the outcome of processing one uploaded file. Row-level
// failures never abort the batch: rejected rows are collected here and
// the accepted lines are still usable.
type Result struct {
	Lines []pricing.LineItem `json:"lines"`

	// NotFound lists computed names with no inventory match (sale side).
	NotFound []string `json:"notFound,omitempty"`

	RowErrors []RowError `json:"rowErrors,omitempty"`
}

func (r *Result) addRowError(rowNumber int, err error) {
	re := RowError{RowNumber: rowNumber, Message: err.Error()}
	if appErr, ok := apperror.AsAppError(err); ok {
		re.Message = appErr.Message
		re.Code = appErr.Code
	}
	r.RowErrors = append(r.RowErrors, re)
}

// ProcessPurchase validates and normalizes a purchase upload.
// A schema mismatch rejects the whole file before any row is processed.
func ProcessPurchase(headers []string, rows []Row, category item.Category) (Result, error) {
	if err := CheckSchema(headers, category, SidePurchase); err != nil {
		return Result{}, err
	}

	var res Result
	for i, row := range rows {
		li, err := NormalizeRow(row, category, SidePurchase)
		if err != nil {
			res.addRowError(i+1, err)
			continue
		}
		res.Lines = append(res.Lines, li)
	}
	return res, nil
}

// ProcessSale validates and normalizes a sale upload, then matches each
// line against the inventory snapshot. Unmatched names go to NotFound;
// lines whose quantity exceeds the snapshot stock are rejected per row.
// The snapshot check is advisory: the authoritative check happens inside
// the sale order's posting transaction.
func ProcessSale(headers []string, rows []Row, category item.Category, snapshot []*item.Item) (Result, error) {
	if err := CheckSchema(headers, category, SideSale); err != nil {
		return Result{}, err
	}

	index := make(map[string]*item.Item, len(snapshot))
	for _, it := range snapshot {
		index[it.MatchKey()] = it
	}

	var res Result
	for i, row := range rows {
		li, err := NormalizeRow(row, category, SideSale)
		if err != nil {
			res.addRowError(i+1, err)
			continue
		}

		matched, ok := index[item.MatchKey(li.Name)]
		if !ok {
			res.NotFound = append(res.NotFound, li.Name)
			continue
		}

		if li.Quantity.GreaterThan(matched.CurrentStock) {
			res.addRowError(i+1, apperror.NewInsufficientStock(
				matched.Name,
				li.Quantity.InexactFloat64(),
				matched.CurrentStock.InexactFloat64(),
			))
			continue
		}

		li.ItemID = matched.ID
		res.Lines = append(res.Lines, li)
	}
	return res, nil
}
