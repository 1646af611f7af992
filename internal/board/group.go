package board

import (
	"sort"

	"github.com/avelichko/fabplan/internal/domain"
)

// MissingOrder is the sort key used for records the server has never
// assigned an order index. Large enough to sort after any real index while
// staying well inside int range, so comparisons stay deterministic.
const MissingOrder = 1 << 30

// GroupByProject buckets the flat stage list by owning project in a single
// pass. Bucket contents keep server response order; the projects map key
// set carries no ordering of its own.
func GroupByProject(stages []*domain.Stage) map[string][]*domain.Stage {
	groups := make(map[string][]*domain.Stage)
	for _, s := range stages {
		groups[s.ProjectID] = append(groups[s.ProjectID], s)
	}
	return groups
}

// GroupByProduct buckets one project's stages by owning product, excluding
// placeholder records before grouping. Placeholders only mark an empty
// product or project row and never participate in ordering.
func GroupByProduct(stages []*domain.Stage) map[string][]*domain.Stage {
	groups := make(map[string][]*domain.Stage)
	for _, s := range stages {
		if s.IsPlaceholder() {
			continue
		}
		groups[s.ProductID] = append(groups[s.ProductID], s)
	}
	return groups
}

// SortBySiblingOrder sorts list ascending by order index, in place. Items
// with no assigned index sort last, and equal keys keep their relative
// input order (the server response order on first load).
func SortBySiblingOrder[T any](list []T, orderOf func(T) *int) {
	sort.SliceStable(list, func(i, j int) bool {
		return domain.IntOr(orderOf(list[i]), MissingOrder) <
			domain.IntOr(orderOf(list[j]), MissingOrder)
	})
}
