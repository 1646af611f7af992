// Package importer turns a spreadsheet export of the parts catalog into
// validated nomenclature items: it sniffs the CSV dialect, auto-maps the
// header columns to catalog fields, validates each row, and detects
// duplicates against the existing catalog.
package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Table is a parsed spreadsheet: one header row plus data rows, all cells
// trimmed.
type Table struct {
	Headers []string
	Rows    [][]string
}

// LoadTable reads a CSV export. Both comma and semicolon delimited files
// are accepted (spreadsheet tools in different locales disagree), and a
// UTF-8 byte order mark is tolerated.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTable(string(data))
}

// ParseTable parses CSV content into a Table.
func ParseTable(content string) (*Table, error) {
	content = strings.TrimPrefix(content, "\uFEFF")
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("file is empty")
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.FieldsPerRecord = -1 // ragged rows are handled during validation
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	table := &Table{Headers: trimAll(records[0])}
	for _, rec := range records[1:] {
		row := trimAll(rec)
		if isBlankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// sniffDelimiter picks the delimiter by counting candidates in the header
// line. Ties go to the comma.
func sniffDelimiter(content string) rune {
	line := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		line = content[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
