package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"steeldesk/internal/domain/ingest"
)

func TestParse_CSV(t *testing.T) {
	data := "Type,Grade,Size,Guage,Pieces,Weight,Rate,GST\n" +
		"Round,304,2in,16g,10,25.5,210,18\n" +
		",,,,,,,\n" + // empty row is dropped
		"Square,202,1in,,0,12,180,18\n"

	f, err := Parse(strings.NewReader(data), "purchase.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST"}, f.Headers)
	require.Len(t, f.Rows, 2)
	assert.Equal(t, "Round", f.Rows[0]["Type"])
	assert.Equal(t, "25.5", f.Rows[0]["Weight"])
	assert.Equal(t, "", f.Rows[1]["Guage"])
}

func TestParse_CSV_BOMAndRaggedRows(t *testing.T) {
	data := "\uFEFFName,Pieces,Weight,Rate,GST\n" +
		"Bush 1in,5\n"

	f, err := Parse(strings.NewReader(data), "upload.CSV")
	require.NoError(t, err)

	assert.Equal(t, "Name", f.Headers[0])
	require.Len(t, f.Rows, 1)
	assert.Equal(t, "Bush 1in", f.Rows[0]["Name"])
	assert.Equal(t, "", f.Rows[0]["Rate"])
}

func TestParse_XLSX(t *testing.T) {
	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	require.NoError(t, wb.SetSheetRow(sheet, "A1", &[]any{"Type", "Grade", "Size", "Guage", "Pieces", "Weight", "Rate", "GST"}))
	require.NoError(t, wb.SetSheetRow(sheet, "A2", &[]any{"Round", "304", "2in", "16g", 10, 25.5, 210, 18}))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)

	f, err := Parse(bytes.NewReader(buf.Bytes()), "purchase.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Guage", f.Headers[3])
	require.Len(t, f.Rows, 1)
	assert.Equal(t, "Round", f.Rows[0]["Type"])
	assert.Equal(t, "10", f.Rows[0]["Pieces"])
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := Parse(strings.NewReader("x"), "upload.pdf")
	assert.Error(t, err)
}

func TestBuildTemplateWorkbook(t *testing.T) {
	wb, err := BuildTemplateWorkbook(ingest.SideSale)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Pipe", "Sheet", "Fitting", "Polish"}, wb.GetSheetList())

	rows, err := wb.GetRows("Pipe")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Contains(t, rows[0], "Margin")
	assert.Contains(t, rows[0], "Guage")
}
