package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/domain"
)

func boardFlat() []*domain.Stage {
	mk := func(id, proj, prod, name string, o, po, pro int) *domain.Stage {
		s := stage(id, proj, prod, name, order(o))
		s.ProductOrderIndex = order(po)
		s.ProjectOrderIndex = order(pro)
		s.ProjectName = "Project " + proj
		s.ProductName = "Product " + prod
		s.ProjectStatus = domain.ProjectInProgress
		return s
	}
	return []*domain.Stage{
		// Second project first in the response; ordering must come from
		// the order indices, not response position.
		mk("s3", "pr2", "p3", "Assembly", 0, 0, 1),
		mk("s1", "pr1", "p1", "Cutting", 1, 0, 0),
		mk("s0", "pr1", "p1", "Welding", 0, 0, 0),
		mk("s2", "pr1", "p2", "Painting", 0, 1, 0),
	}
}

func TestBuildSnapshotOrdersEveryLevel(t *testing.T) {
	snap := BuildSnapshot(boardFlat(), nil)

	require.Len(t, snap.Projects, 2)
	assert.Equal(t, "pr1", snap.Projects[0].ID)
	assert.Equal(t, "pr2", snap.Projects[1].ID)

	pr1 := snap.Projects[0]
	require.Len(t, pr1.Products, 2)
	assert.Equal(t, "p1", pr1.Products[0].ID)
	assert.Equal(t, "p2", pr1.Products[1].ID)
	assert.Equal(t, []string{"s0", "s1"}, ids(pr1.Products[0].Stages))
}

func TestBuildSnapshotPlaceholderMakesEmptyProduct(t *testing.T) {
	flat := []*domain.Stage{
		{
			ID:        domain.PlaceholderPrefix + "e1",
			ProjectID: "pr1", ProjectName: "Empty-ish",
			ProjectStatus: domain.ProjectNew,
			ProductID:     "p9", ProductName: "Hull",
		},
	}
	snap := BuildSnapshot(flat, nil)
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Projects[0].Products, 1)
	assert.Equal(t, "Hull", snap.Projects[0].Products[0].Name)
	assert.Empty(t, snap.Projects[0].Products[0].Stages)
}

func TestBuildSnapshotPlaceholderMakesEmptyProject(t *testing.T) {
	flat := []*domain.Stage{
		{
			ID:        domain.PlaceholderPrefix + "e2",
			ProjectID: "pr7", ProjectName: "Bare project",
			ProjectStatus: domain.ProjectNew,
		},
	}
	snap := BuildSnapshot(flat, nil)
	require.Len(t, snap.Projects, 1)
	assert.Empty(t, snap.Projects[0].Products)
}

func TestBuildSnapshotStatusFilter(t *testing.T) {
	flat := boardFlat()
	flat[0].ProjectStatus = domain.ProjectArchived // pr2

	filter := DefaultStatusFilter()
	filter[domain.ProjectArchived] = false

	snap := BuildSnapshot(flat, filter)
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "pr1", snap.Projects[0].ID)

	// Filtering never rewrites order indices.
	assert.Equal(t, 0, *snap.Projects[0].OrderIndex)
}

func TestStatusFilterDefaults(t *testing.T) {
	var nilFilter StatusFilter
	assert.True(t, nilFilter.Allows(domain.ProjectArchived))

	f := DefaultStatusFilter()
	for _, st := range domain.AllProjectStatuses {
		assert.True(t, f.Allows(st))
	}
}

func TestSnapshotLookups(t *testing.T) {
	snap := BuildSnapshot(boardFlat(), nil)

	proj, prod := snap.ProductByStage("s2")
	require.NotNil(t, prod)
	assert.Equal(t, "p2", prod.ID)
	assert.Equal(t, "pr1", proj.ID)

	assert.Equal(t, "pr2", snap.ProjectByProduct("p3").ID)
	assert.Nil(t, snap.Project("nope"))

	_, missing := snap.ProductByStage("nope")
	assert.Nil(t, missing)
}
