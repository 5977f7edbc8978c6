package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"faktura/internal/core/entity"
	"faktura/internal/core/id"
)

type mockCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code: "TEST",
		Name: "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
}

func TestStructToMap_SkipsUntaggedFields(t *testing.T) {
	type withUntagged struct {
		Code   string `db:"code"`
		Hidden string `db:"-"`
		Plain  string
	}

	m := StructToMap(withUntagged{Code: "A", Hidden: "B", Plain: "C"})

	assert.Equal(t, "A", m["code"])
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 1)
}
