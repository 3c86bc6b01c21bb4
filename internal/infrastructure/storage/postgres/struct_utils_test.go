package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Category string `db:"category" json:"category"`
	Ignored  string `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns_EmbeddedFields(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "code", "name", "category",
	}
	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}

	assert.NotContains(t, cols, "-")
	assert.Len(t, cols, len(expectedCols))
}

func TestStructToMap_EmbeddedFields(t *testing.T) {
	cat := mockCatalog{
		Catalog: entity.Catalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
			Code: "ITM-00001",
			Name: "Pipe 304 80x80 14",
		},
		Category: "pipe",
		Ignored:  "skip me",
		NoTag:    "skip me too",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "ITM-00001", m["code"])
	assert.Equal(t, "Pipe 304 80x80 14", m["name"])
	assert.Equal(t, "pipe", m["category"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 6)
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{Category: "sheet"}
	m := StructToMap(cat)
	assert.Equal(t, "sheet", m["category"])
}
