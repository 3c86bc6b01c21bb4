package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/catalogs/item"
)

func TestValidateHeaders(t *testing.T) {
	tests := []struct {
		name        string
		headers     []string
		category    item.Category
		side        Side
		wantMissing []string
	}{
		{
			name:     "exact pipe purchase headers",
			headers:  []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST"},
			category: item.CategoryPipe,
			side:     SidePurchase,
		},
		{
			name:     "casing and whitespace variations accepted",
			headers:  []string{" type ", "GRADE", "size", "gUaGe", "pieces ", "weight", "rate", " gst"},
			category: item.CategorySheet,
			side:     SidePurchase,
		},
		{
			name:     "extra columns tolerated, order irrelevant",
			headers:  []string{"GST", "Rate", "Weight", "Pieces", "Guage", "Size", "Grade", "Type", "Remarks"},
			category: item.CategoryPipe,
			side:     SidePurchase,
		},
		{
			name:        "missing GST rejects pipe upload",
			headers:     []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate"},
			category:    item.CategoryPipe,
			side:        SidePurchase,
			wantMissing: []string{"GST"},
		},
		{
			name:        "sale template requires Margin",
			headers:     []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST"},
			category:    item.CategoryPipe,
			side:        SideSale,
			wantMissing: []string{"Margin"},
		},
		{
			name:     "fitting template with spaced sub category",
			headers:  []string{"SubCategory", "Grade", "Type", "Size", "Pieces", "Weight", "Rate", "GST"},
			category: item.CategoryFitting,
			side:     SidePurchase,
		},
		{
			name:     "polish template",
			headers:  []string{"Sub Category", "Specification", "Pieces", "Weight", "Rate", "GST"},
			category: item.CategoryPolish,
			side:     SidePurchase,
		},
		{
			name:        "empty header row always fails",
			headers:     nil,
			category:    item.CategoryPipe,
			side:        SidePurchase,
			wantMissing: []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := ValidateHeaders(tt.headers, tt.category, tt.side)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestCheckSchema_NamesMissingHeaders(t *testing.T) {
	headers := []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate"}
	err := CheckSchema(headers, item.CategoryPipe, SidePurchase)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeSchemaMismatch, appErr.Code)
	assert.Equal(t, []string{"GST"}, appErr.Details["missing_headers"])
}

func TestNormalizeRow_PipeByPieces(t *testing.T) {
	row := Row{
		"Type":   "Pipe",
		"Grade":  "304",
		"Size":   "80x80",
		"Guage":  "14",
		"Pieces": "20",
		"Rate":   "244.36",
		"Margin": "0",
		"GST":    "18",
	}

	li, err := NormalizeRow(row, item.CategoryPipe, SideSale)
	require.NoError(t, err)

	assert.Equal(t, "Pipe 304 80x80 14", li.Name)
	assert.Equal(t, item.ByPieceCount, li.QuantityBasis)
	assert.True(t, li.Quantity.Equal(types.MustMoney("20")))
	assert.True(t, li.SellingPrice.Equal(types.MustMoney("244.36")))
	assert.True(t, li.LineAmount.Equal(types.MustMoney("4887.20")), "lineAmount = %s", li.LineAmount)
	assert.True(t, li.TaxAmount.Equal(types.MustMoney("879.696")), "taxAmount = %s", li.TaxAmount)
}

func TestNormalizeRow_BushFittingByWeight(t *testing.T) {
	row := Row{
		"Sub Category": "Bush",
		"Weight":       "10",
		"Rate":         "80",
		"Margin":       "15",
	}

	li, err := NormalizeRow(row, item.CategoryFitting, SideSale)
	require.NoError(t, err)

	assert.Equal(t, "Bush Fitting", li.Name)
	assert.Equal(t, item.ByWeight, li.QuantityBasis)
	assert.True(t, li.Quantity.Equal(types.MustMoney("10")))
	assert.True(t, li.SellingPrice.Equal(types.MustMoney("95")))
	assert.True(t, li.LineAmount.Equal(types.MustMoney("950")))
}

func TestNormalizeRow_NonBushFittingByPieces(t *testing.T) {
	row := Row{
		"Sub Category": "Elbow",
		"Grade":        "202",
		"Type":         "Threaded",
		"Size":         "25mm",
		"Pieces":       "50",
		"Rate":         "12",
		"GST":          "18",
	}

	li, err := NormalizeRow(row, item.CategoryFitting, SidePurchase)
	require.NoError(t, err)

	assert.Equal(t, "Elbow 202 Threaded 25mm Fitting", li.Name)
	assert.Equal(t, item.ByPieceCount, li.QuantityBasis)
	assert.True(t, li.Quantity.Equal(types.MustMoney("50")))
}

func TestNormalizeRow_WeightPreferredForPipe(t *testing.T) {
	row := Row{
		"Type":   "Pipe",
		"Grade":  "304",
		"Size":   "50x50",
		"Guage":  "16",
		"Pieces": "20",
		"Weight": "145.5",
		"Rate":   "180",
		"GST":    "18",
	}

	li, err := NormalizeRow(row, item.CategoryPipe, SidePurchase)
	require.NoError(t, err)

	assert.Equal(t, item.ByWeight, li.QuantityBasis)
	assert.True(t, li.Quantity.Equal(types.MustMoney("145.5")))
}

func TestNormalizeRow_CoercesBadNumericsToZero(t *testing.T) {
	row := Row{
		"Type":   "Pipe",
		"Grade":  "304",
		"Size":   "50x50",
		"Guage":  "16",
		"Pieces": "10",
		"Rate":   "n/a",
		"GST":    "",
	}

	li, err := NormalizeRow(row, item.CategoryPipe, SidePurchase)
	require.NoError(t, err)

	assert.True(t, li.BaseRate.IsZero())
	assert.True(t, li.TaxRate.IsZero())
	assert.True(t, li.LineAmount.IsZero())
}

func TestNormalizeRow_RejectsNegatives(t *testing.T) {
	row := Row{
		"Type":   "Pipe",
		"Grade":  "304",
		"Size":   "50x50",
		"Guage":  "16",
		"Pieces": "-5",
		"Rate":   "100",
		"GST":    "18",
	}

	_, err := NormalizeRow(row, item.CategoryPipe, SidePurchase)
	require.Error(t, err)
}

func TestNormalizeRow_Idempotent(t *testing.T) {
	row := Row{
		"Type":   "Sheet",
		"Grade":  "202",
		"Size":   "8x4",
		"Guage":  "18",
		"Weight": "320",
		"Rate":   "152.50",
		"GST":    "18",
	}

	first, err := NormalizeRow(row, item.CategorySheet, SidePurchase)
	require.NoError(t, err)
	second, err := NormalizeRow(row, item.CategorySheet, SidePurchase)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProcessPurchase_SchemaMismatchRejectsWholeFile(t *testing.T) {
	headers := []string{"Type", "Grade", "Size"}
	rows := []Row{{"Type": "Pipe", "Grade": "304", "Size": "80x80"}}

	_, err := ProcessPurchase(headers, rows, item.CategoryPipe)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeSchemaMismatch, appErr.Code)
}

func TestProcessPurchase_CollectsRowErrors(t *testing.T) {
	headers := []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST"}
	rows := []Row{
		{"Type": "Pipe", "Grade": "304", "Size": "80x80", "Guage": "14", "Pieces": "20", "Rate": "244.36", "GST": "18"},
		{"Type": "Pipe", "Grade": "304", "Size": "50x50", "Guage": "16", "Pieces": "-3", "Rate": "180", "GST": "18"},
		{"Type": "Pipe", "Grade": "202", "Size": "25x25", "Guage": "18", "Pieces": "10", "Rate": "95", "GST": "18"},
	}

	res, err := ProcessPurchase(headers, rows, item.CategoryPipe)
	require.NoError(t, err)

	assert.Len(t, res.Lines, 2)
	require.Len(t, res.RowErrors, 1)
	assert.Equal(t, 2, res.RowErrors[0].RowNumber)
}

func TestProcessSale_MatchingAndStockChecks(t *testing.T) {
	headers := []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST", "Margin"}
	rows := []Row{
		// Matched, within stock.
		{"Type": "Pipe", "Grade": "304", "Size": "80x80", "Guage": "14", "Pieces": "20", "Rate": "244.36", "Margin": "10", "GST": "18"},
		// No inventory match.
		{"Type": "Pipe", "Grade": "316", "Size": "100x100", "Guage": "12", "Pieces": "5", "Rate": "410", "Margin": "0", "GST": "18"},
		// Matched, exceeds stock.
		{"Type": "Pipe", "Grade": "304", "Size": "80x80", "Guage": "14", "Pieces": "500", "Rate": "244.36", "Margin": "10", "GST": "18"},
	}

	stocked := item.New("ITM-1", item.CategoryPipe)
	stocked.Grade = "304"
	stocked.Size = "80x80"
	stocked.Gauge = "14"
	stocked.Refresh()
	stocked.CurrentStock = types.MustMoney("100")

	res, err := ProcessSale(headers, rows, item.CategoryPipe, []*item.Item{stocked})
	require.NoError(t, err)

	require.Len(t, res.Lines, 1)
	assert.Equal(t, stocked.ID, res.Lines[0].ItemID)
	assert.Equal(t, []string{"Pipe 316 100x100 12"}, res.NotFound)
	require.Len(t, res.RowErrors, 1)
	assert.Equal(t, 3, res.RowErrors[0].RowNumber)
	assert.Equal(t, apperror.CodeInsufficientStock, res.RowErrors[0].Code)
}

func TestProcessSale_MatchIsCaseAndSpaceInsensitive(t *testing.T) {
	headers := []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST", "Margin"}
	rows := []Row{
		{"Type": "pipe", "Grade": " 304 ", "Size": "80X80", "Guage": "14", "Pieces": "1", "Rate": "244.36", "Margin": "0", "GST": "18"},
	}

	stocked := item.New("ITM-1", item.CategoryPipe)
	stocked.Grade = "304"
	stocked.Size = "80x80"
	stocked.Gauge = "14"
	stocked.Refresh()
	stocked.CurrentStock = types.MustMoney("10")

	res, err := ProcessSale(headers, rows, item.CategoryPipe, []*item.Item{stocked})
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Empty(t, res.NotFound)
}
