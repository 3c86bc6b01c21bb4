// Package ingest implements the spreadsheet upload pipeline: header
// template validation, row normalization and inventory matching.
// It operates on a parsed {headers, rows} view and performs no I/O.
package ingest

import (
	"strings"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/domain/catalogs/item"
)

// Side distinguishes purchase uploads from sale uploads.
// Sale templates additionally require a Margin column.
type Side string

const (
	SidePurchase Side = "purchase"
	SideSale     Side = "sale"
)

// Column names as they appear in the upload templates.
// "Guage" is the historical spelling used in the company's sheets.
const (
	ColType          = "Type"
	ColGrade         = "Grade"
	ColSize          = "Size"
	ColGauge         = "Guage"
	ColSubCategory   = "Sub Category"
	ColSpecification = "Specification"
	ColName          = "Name"
	ColPieces        = "Pieces"
	ColWeight        = "Weight"
	ColRate          = "Rate"
	ColGST           = "GST"
	ColMargin        = "Margin"
)

var (
	pipeSheetColumns = []string{ColType, ColGrade, ColSize, ColGauge, ColPieces, ColWeight, ColRate, ColGST}
	fittingColumns   = []string{ColSubCategory, ColGrade, ColType, ColSize, ColPieces, ColWeight, ColRate, ColGST}
	polishColumns    = []string{ColSubCategory, ColSpecification, ColPieces, ColWeight, ColRate, ColGST}
	genericColumns   = []string{ColName, ColPieces, ColWeight, ColRate, ColGST}
)

// Template returns the required header set for a category and side.
// Pipe and sheet share one template; unknown categories fall back to
// the generic template.
func Template(category item.Category, side Side) []string {
	var cols []string
	switch category {
	case item.CategoryPipe, item.CategorySheet:
		cols = pipeSheetColumns
	case item.CategoryFitting:
		cols = fittingColumns
	case item.CategoryPolish:
		cols = polishColumns
	default:
		cols = genericColumns
	}

	out := make([]string, 0, len(cols)+1)
	out = append(out, cols...)
	if side == SideSale {
		out = append(out, ColMargin)
	}
	return out
}

// Templates returns all category templates for a side, keyed by category.
func Templates(side Side) map[item.Category][]string {
	return map[item.Category][]string{
		item.CategoryPipe:    Template(item.CategoryPipe, side),
		item.CategorySheet:   Template(item.CategorySheet, side),
		item.CategoryFitting: Template(item.CategoryFitting, side),
		item.CategoryPolish:  Template(item.CategoryPolish, side),
	}
}

// ValidateHeaders checks an uploaded header row against the category
// template. Matching is case-insensitive and whitespace-insensitive;
// extra columns are tolerated and order is irrelevant. Returns the
// missing template headers; an empty slice means the file is accepted.
// An empty header row never validates.
func ValidateHeaders(headers []string, category item.Category, side Side) []string {
	required := Template(category, side)

	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		if key := headerKey(h); key != "" {
			present[key] = true
		}
	}

	var missing []string
	for _, col := range required {
		if !present[headerKey(col)] {
			missing = append(missing, col)
		}
	}
	return missing
}

// CheckSchema wraps ValidateHeaders into the whole-file rejection error.
func CheckSchema(headers []string, category item.Category, side Side) error {
	missing := ValidateHeaders(headers, category, side)
	if len(missing) == 0 {
		return nil
	}
	return apperror.NewSchemaMismatch(string(category), missing)
}

// headerKey normalizes a header for comparison: lower-cased with all
// whitespace removed, so "Sub Category", "subcategory" and " SUB CATEGORY "
// are the same column.
func headerKey(h string) string {
	var b strings.Builder
	b.Grow(len(h))
	for _, r := range strings.ToLower(h) {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
