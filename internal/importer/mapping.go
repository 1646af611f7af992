package importer

import (
	"fmt"
	"strings"
)

// Field identifies a catalog field a spreadsheet column can map to.
type Field string

const (
	FieldDesignation Field = "designation"
	FieldName        Field = "name"
	FieldArticle     Field = "article"
	FieldUnit        Field = "unit"
)

// headerSynonyms lists the normalized header spellings seen in catalog
// exports, per field. Matching is done on normalized text, so case,
// punctuation and extra spaces do not matter.
var headerSynonyms = map[Field][]string{
	FieldDesignation: {"designation", "обозначение", "децимальный номер", "шифр"},
	FieldName:        {"name", "наименование", "название"},
	FieldArticle:     {"article", "артикул", "номер по каталогу"},
	FieldUnit:        {"unit", "ед изм", "единица измерения", "ед"},
}

// ColumnMapping maps catalog fields to spreadsheet column indices.
type ColumnMapping struct {
	Columns   map[Field]int
	Unmatched []string // headers no field claimed, reported in the preview
}

// Col returns the column index for a field, or -1 when unmapped.
func (m *ColumnMapping) Col(f Field) int {
	if i, ok := m.Columns[f]; ok {
		return i
	}
	return -1
}

// cell reads the mapped cell of a row, empty when the field is unmapped or
// the row is too short.
func (m *ColumnMapping) cell(row []string, f Field) string {
	i := m.Col(f)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// AutoMapColumns assigns each header to a catalog field by normalized
// synonym match: exact match first, then prefix match for headers carrying
// extra qualifiers ("Наименование изделия"). The first header claiming a
// field wins; a file without a name column cannot be imported.
func AutoMapColumns(headers []string) (*ColumnMapping, error) {
	mapping := &ColumnMapping{Columns: make(map[Field]int)}

	claimed := make([]bool, len(headers))
	for _, field := range []Field{FieldDesignation, FieldName, FieldArticle, FieldUnit} {
		if i := matchHeader(headers, claimed, field, true); i >= 0 {
			mapping.Columns[field] = i
			claimed[i] = true
		}
	}
	// Second pass: prefix matches for fields still unmapped.
	for _, field := range []Field{FieldDesignation, FieldName, FieldArticle, FieldUnit} {
		if _, ok := mapping.Columns[field]; ok {
			continue
		}
		if i := matchHeader(headers, claimed, field, false); i >= 0 {
			mapping.Columns[field] = i
			claimed[i] = true
		}
	}

	for i, h := range headers {
		if !claimed[i] && h != "" {
			mapping.Unmatched = append(mapping.Unmatched, h)
		}
	}

	if mapping.Col(FieldName) < 0 {
		return nil, fmt.Errorf("no column maps to the item name (looked for: %s)",
			strings.Join(headerSynonyms[FieldName], ", "))
	}
	return mapping, nil
}

func matchHeader(headers []string, claimed []bool, field Field, exact bool) int {
	for i, h := range headers {
		if claimed[i] {
			continue
		}
		norm := NormalizeText(h)
		if norm == "" {
			continue
		}
		for _, syn := range headerSynonyms[field] {
			if exact && norm == NormalizeText(syn) {
				return i
			}
			if !exact && strings.HasPrefix(norm, NormalizeText(syn)) {
				return i
			}
		}
	}
	return -1
}

// NormalizeText lowers case, folds ё to е, drops punctuation and collapses
// whitespace. Used both for header matching and duplicate detection.
func NormalizeText(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r == 'ё':
			b.WriteRune('е')
			lastSpace = false
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r >= 'а' && r <= 'я':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
