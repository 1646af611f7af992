package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/domain"
)

func siblings(idList ...string) []*domain.Stage {
	out := make([]*domain.Stage, len(idList))
	for i, id := range idList {
		out[i] = stage(id, "pr1", "p1", "Stage "+id, order(i))
	}
	return out
}

func TestMoveAndReindexMoveUp(t *testing.T) {
	// Drag s2 (index 2) to before s0 (index 0).
	list := siblings("s0", "s1", "s2")
	got := MoveAndReindex(list, "s2", "s0")

	assert.Equal(t, []string{"s2", "s0", "s1"}, ids(got))
	for i, s := range got {
		require.NotNil(t, s.OrderIndex)
		assert.Equal(t, i, *s.OrderIndex)
	}
	// Input untouched.
	assert.Equal(t, []string{"s0", "s1", "s2"}, ids(list))
	assert.Equal(t, 0, *list[0].OrderIndex)
}

func TestMoveAndReindexMoveDown(t *testing.T) {
	list := siblings("a", "b", "c", "d")
	got := MoveAndReindex(list, "a", "c")
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(got))
}

func TestMoveAndReindexNoOps(t *testing.T) {
	list := siblings("a", "b", "c")

	same := MoveAndReindex(list, "a", "a")
	assert.Equal(t, ids(list), ids(same))

	missing := MoveAndReindex(list, "zz", "b")
	assert.Equal(t, ids(list), ids(missing))

	missingTarget := MoveAndReindex(list, "b", "zz")
	assert.Equal(t, ids(list), ids(missingTarget))
}

func TestMoveAndReindexAdjacentSwap(t *testing.T) {
	// Moving onto the immediate successor swaps exactly the pair.
	list := siblings("a", "b", "c")
	got := MoveAndReindex(list, "a", "b")
	assert.Equal(t, []string{"b", "a", "c"}, ids(got))
}

func TestMoveAndReindexReindexesDense(t *testing.T) {
	// Sparse and missing input indices come out dense and zero-based.
	list := []*domain.Stage{
		stage("a", "pr1", "p1", "a", order(3)),
		stage("b", "pr1", "p1", "b", nil),
		stage("c", "pr1", "p1", "c", order(10)),
	}
	got := MoveAndReindex(list, "c", "a")
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
	for i, s := range got {
		require.NotNil(t, s.OrderIndex)
		assert.Equal(t, i, *s.OrderIndex)
	}
}
