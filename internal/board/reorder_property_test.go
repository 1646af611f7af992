package board

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/avelichko/fabplan/internal/domain"
)

// For any sibling list and any valid source/target pair, the reordered list
// keeps the same identity set and carries order indices exactly 0..n-1.
func TestPropertyMoveAndReindexContiguity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("reindex is dense, zero-based and complete", prop.ForAll(
		func(n, srcIdx, dstIdx int) bool {
			src, dst := srcIdx%n, dstIdx%n
			list := numberedSiblings(n)
			got := MoveAndReindex(list, list[src].ID, list[dst].ID)

			if len(got) != n {
				return false
			}
			seenIdx := make(map[int]bool, n)
			seenID := make(map[string]bool, n)
			for i, s := range got {
				if s.OrderIndex == nil || *s.OrderIndex != i {
					return false
				}
				seenIdx[*s.OrderIndex] = true
				seenID[s.ID] = true
			}
			return len(seenIdx) == n && len(seenID) == n
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 1<<20),
		gen.IntRange(0, 1<<20),
	))

	properties.Property("moved item lands at the target's original index", prop.ForAll(
		func(n, srcIdx, dstIdx int) bool {
			src, dst := srcIdx%n, dstIdx%n
			list := numberedSiblings(n)
			got := MoveAndReindex(list, list[src].ID, list[dst].ID)
			if src == dst {
				return ids(got)[src] == list[src].ID
			}
			return got[dst].ID == list[src].ID
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 1<<20),
		gen.IntRange(0, 1<<20),
	))

	properties.TestingRun(t)
}

func numberedSiblings(n int) []*domain.Stage {
	idList := make([]string, n)
	for i := range idList {
		idList[i] = fmt.Sprintf("s%03d", i)
	}
	return siblings(idList...)
}
