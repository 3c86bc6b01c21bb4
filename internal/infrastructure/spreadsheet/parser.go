// Package spreadsheet parses uploaded .xlsx and .csv files into the
// header/row view the ingest pipeline consumes, and renders the
// category upload templates back out as workbooks.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/ingest"
)

// File is a parsed upload: the header row plus data rows keyed by header.
type File struct {
	Headers []string
	Rows    []ingest.Row
}

// Parse reads an uploaded spreadsheet. The format is chosen by file
// extension: .csv goes through encoding/csv, .xlsx/.xls through
// excelize (first sheet only). Fully empty data rows are dropped;
// ragged rows are padded with empty cells.
func Parse(r io.Reader, filename string) (*File, error) {
	var raw [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		raw, err = parseCSV(r)
	case ".xlsx", ".xls":
		raw, err = parseExcel(r)
	default:
		return nil, apperror.NewValidation("unsupported file type, expected .xlsx or .csv").
			WithDetail("extension", ext)
	}
	if err != nil {
		return nil, apperror.NewValidation("file could not be parsed").
			WithDetail("reason", err.Error())
	}

	return fromRaw(raw), nil
}

func parseCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func parseExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

func fromRaw(raw [][]string) *File {
	out := &File{}
	if len(raw) == 0 {
		return out
	}

	for _, h := range raw[0] {
		out.Headers = append(out.Headers, strings.TrimSpace(trimBOM(h)))
	}

	for _, cells := range raw[1:] {
		if isEmptyRow(cells) {
			continue
		}
		row := make(ingest.Row, len(out.Headers))
		for i, h := range out.Headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = strings.TrimSpace(cells[i])
			} else {
				row[h] = ""
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Excel saved as "CSV UTF-8" prefixes the first header with a BOM.
func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

// BuildTemplateWorkbook renders the upload templates for a side as an
// .xlsx workbook with one sheet per category.
func BuildTemplateWorkbook(side ingest.Side) (*excelize.File, error) {
	f := excelize.NewFile()

	categories := []item.Category{
		item.CategoryPipe, item.CategorySheet, item.CategoryFitting, item.CategoryPolish,
	}

	for i, category := range categories {
		sheet := sheetTitle(category)
		if i == 0 {
			f.SetSheetName(f.GetSheetName(0), sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
			}
		}

		headers := ingest.Template(category, side)
		cells := make([]any, len(headers))
		for j, h := range headers {
			cells[j] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
			return nil, fmt.Errorf("write headers %s: %w", sheet, err)
		}
	}

	return f, nil
}

func sheetTitle(c item.Category) string {
	s := string(c)
	if s == "" {
		return "Sheet"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
