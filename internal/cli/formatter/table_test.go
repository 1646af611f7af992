package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "Qty"},
		[][]string{
			{"bracket", "4"},
			{"long part name", "12"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	// The quantity column starts at the same offset on every data row.
	assert.Equal(t, strings.Index(lines[2], "4"), strings.Index(lines[3], "12"))
}

func TestRenderTableShortRow(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"only"}})
	assert.Contains(t, out, "only")
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}
