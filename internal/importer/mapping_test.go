package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMapColumnsEnglishHeaders(t *testing.T) {
	m, err := AutoMapColumns([]string{"Designation", "Name", "Article", "Unit"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Col(FieldDesignation))
	assert.Equal(t, 1, m.Col(FieldName))
	assert.Equal(t, 2, m.Col(FieldArticle))
	assert.Equal(t, 3, m.Col(FieldUnit))
	assert.Empty(t, m.Unmatched)
}

func TestAutoMapColumnsRussianHeaders(t *testing.T) {
	m, err := AutoMapColumns([]string{"Обозначение", "Наименование", "Ед. изм.", "Примечание"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Col(FieldDesignation))
	assert.Equal(t, 1, m.Col(FieldName))
	assert.Equal(t, 2, m.Col(FieldUnit))
	assert.Equal(t, -1, m.Col(FieldArticle))
	assert.Equal(t, []string{"Примечание"}, m.Unmatched)
}

func TestAutoMapColumnsPrefixFallback(t *testing.T) {
	// Qualified headers only match in the prefix pass.
	m, err := AutoMapColumns([]string{"Наименование изделия", "Обозначение по ГОСТ"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Col(FieldName))
	assert.Equal(t, 1, m.Col(FieldDesignation))
}

func TestAutoMapColumnsExactBeatsPrefix(t *testing.T) {
	// The exact "Наименование" must win even when a qualified variant
	// appears earlier in the header row.
	m, err := AutoMapColumns([]string{"Наименование детали", "Наименование"})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Col(FieldName))
}

func TestAutoMapColumnsRequiresName(t *testing.T) {
	_, err := AutoMapColumns([]string{"Обозначение", "Количество"})
	assert.Error(t, err)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Ед. Изм.  ", "ед изм"},
		{"Болт М8х40", "болт м8х40"},
		{"Ёлка", "елка"},
		{"A--B  c", "a b c"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), tt.in)
	}
}
