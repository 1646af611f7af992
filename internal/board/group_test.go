package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/domain"
)

func stage(id, projectID, productID, name string, order *int) *domain.Stage {
	return &domain.Stage{
		ID:        id,
		Name:      name,
		ProjectID: projectID,
		ProductID: productID,
		OrderIndex: func() *int {
			return order
		}(),
	}
}

func order(i int) *int { return &i }

func TestGroupByProjectKeepsBucketOrder(t *testing.T) {
	flat := []*domain.Stage{
		stage("s1", "pr1", "p1", "a", order(1)),
		stage("s2", "pr2", "p2", "b", order(0)),
		stage("s3", "pr1", "p1", "c", order(0)),
	}
	groups := GroupByProject(flat)
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"s1", "s3"}, ids(groups["pr1"]))
	assert.Equal(t, []string{"s2"}, ids(groups["pr2"]))
}

func TestGroupByProductExcludesPlaceholders(t *testing.T) {
	flat := []*domain.Stage{
		stage(domain.PlaceholderPrefix+"x", "pr1", "p1", "", nil),
		stage("s1", "pr1", "p1", "Welding", order(1)),
		stage("s2", "pr1", "p1", "Painting", order(0)),
	}
	groups := GroupByProduct(flat)
	require.Len(t, groups, 1)

	list := groups["p1"]
	SortBySiblingOrder(list, func(s *domain.Stage) *int { return s.OrderIndex })
	assert.Equal(t, []string{"s2", "s1"}, ids(list))
}

func TestSortBySiblingOrderMissingSortsLast(t *testing.T) {
	list := []*domain.Stage{
		stage("a", "pr", "p", "a", nil),
		stage("b", "pr", "p", "b", order(1)),
		stage("c", "pr", "p", "c", nil),
		stage("d", "pr", "p", "d", order(0)),
	}
	SortBySiblingOrder(list, func(s *domain.Stage) *int { return s.OrderIndex })
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(list))
}

func TestSortBySiblingOrderAllMissingKeepsInputOrder(t *testing.T) {
	list := []*domain.Stage{
		stage("a", "pr", "p", "a", nil),
		stage("b", "pr", "p", "b", nil),
		stage("c", "pr", "p", "c", nil),
	}
	SortBySiblingOrder(list, func(s *domain.Stage) *int { return s.OrderIndex })
	assert.Equal(t, []string{"a", "b", "c"}, ids(list))
}

func ids(list []*domain.Stage) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.ID
	}
	return out
}
