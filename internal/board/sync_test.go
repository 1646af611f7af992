package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/domain"
	"github.com/avelichko/fabplan/internal/testutil"
)

var errServer = errors.New("backend returned status 500")

func newBoard(t *testing.T, backend *testutil.FakeBackend) *board.Coordinator {
	t.Helper()
	coord := board.NewCoordinator(backend, nil)
	require.NoError(t, coord.Refetch(context.Background()))
	return coord
}

func stageIDs(prod *board.ProductRow) []string {
	out := make([]string, len(prod.Stages))
	for i, s := range prod.Stages {
		out[i] = s.ID
	}
	return out
}

func TestDropAppliesOptimisticallyBeforePersist(t *testing.T) {
	backend := &testutil.FakeBackend{Flat: testutil.BoardFixture("pr1", "p1", "s0", "s1", "s2")}
	coord := newBoard(t, backend)

	coord.BeginDrag("s2")
	persist, err := coord.Drop(board.Gesture{SourceToken: "s2", TargetToken: "s0"})
	require.NoError(t, err)
	require.NotNil(t, persist)

	// The local state already reflects the drop; no network call has run.
	assert.Empty(t, backend.StageCalls)
	assert.Equal(t, board.StatePersisting, coord.State())

	_, prod := coord.Snapshot().ProductByStage("s2")
	assert.Equal(t, []string{"s2", "s0", "s1"}, stageIDs(prod))

	require.NoError(t, persist(context.Background()))
	require.NoError(t, coord.OnPersistResult(context.Background(), nil))
	assert.Equal(t, board.StateIdle, coord.State())

	// The persistence payload carries the full reindexed sibling list.
	require.Len(t, backend.StageCalls, 1)
	call := backend.StageCalls[0]
	assert.Equal(t, "p1", call.ProductID)
	require.Len(t, call.Orders, 3)
	assert.Equal(t, "s2", call.Orders[0].ID)
	assert.Equal(t, 0, call.Orders[0].Order)
	assert.Equal(t, "s0", call.Orders[1].ID)
	assert.Equal(t, 1, call.Orders[1].Order)
}

func TestDropPatchesFlatCollection(t *testing.T) {
	backend := &testutil.FakeBackend{Flat: testutil.BoardFixture("pr1", "p1", "s0", "s1", "s2")}
	coord := newBoard(t, backend)

	coord.BeginDrag("s2")
	_, err := coord.Drop(board.Gesture{SourceToken: "s2", TargetToken: "s0"})
	require.NoError(t, err)

	wantOrder := map[string]int{"s2": 0, "s0": 1, "s1": 2}
	for _, s := range coord.Snapshot().Flat {
		require.NotNil(t, s.OrderIndex, s.ID)
		assert.Equal(t, wantOrder[s.ID], *s.OrderIndex, s.ID)
	}
}

func TestPersistFailureRollsBackToFetchedTruth(t *testing.T) {
	backend := &testutil.FakeBackend{
		Flat:       testutil.BoardFixture("pr1", "p1", "s0", "s1", "s2"),
		FailNext:   1,
		PersistErr: errServer,
	}
	coord := newBoard(t, backend)

	coord.BeginDrag("s2")
	persist, err := coord.Drop(board.Gesture{SourceToken: "s2", TargetToken: "s0"})
	require.NoError(t, err)

	persistErr := persist(context.Background())
	require.ErrorIs(t, persistErr, errServer)
	require.NoError(t, coord.OnPersistResult(context.Background(), persistErr))

	// Board state equals a fresh fetch, not the failed optimistic order.
	_, prod := coord.Snapshot().ProductByStage("s0")
	assert.Equal(t, []string{"s0", "s1", "s2"}, stageIDs(prod))
	assert.Equal(t, int32(2), backend.FetchCount.Load())
	assert.Equal(t, board.StateIdle, coord.State())
}

func TestDropCancelledGesture(t *testing.T) {
	backend := &testutil.FakeBackend{Flat: testutil.BoardFixture("pr1", "p1", "s0", "s1")}
	coord := newBoard(t, backend)

	coord.BeginDrag("s0")
	persist, err := coord.Drop(board.Gesture{SourceToken: "s0"})
	require.NoError(t, err)
	assert.Nil(t, persist)
	assert.Equal(t, board.StateIdle, coord.State())

	coord.BeginDrag("s0")
	persist, err = coord.Drop(board.Gesture{SourceToken: "s0", TargetToken: "s0"})
	require.NoError(t, err)
	assert.Nil(t, persist)
}

func TestDropAcrossProductsIsIgnored(t *testing.T) {
	flat := append(
		testutil.BoardFixture("pr1", "p1", "s0", "s1"),
		testutil.BoardFixture("pr1", "p2", "x0", "x1")...,
	)
	backend := &testutil.FakeBackend{Flat: flat}
	coord := newBoard(t, backend)

	coord.BeginDrag("s0")
	persist, err := coord.Drop(board.Gesture{SourceToken: "s0", TargetToken: "x1"})
	require.NoError(t, err)
	assert.Nil(t, persist)
	assert.Equal(t, board.StateIdle, coord.State())
}

func TestDropCrossKindIsIgnored(t *testing.T) {
	backend := &testutil.FakeBackend{Flat: testutil.BoardFixture("pr1", "p1", "s0", "s1")}
	coord := newBoard(t, backend)

	coord.BeginDrag("s0")
	persist, err := coord.Drop(board.Gesture{
		SourceToken: "s0",
		TargetToken: board.EncodeToken(board.KindProduct, "p1"),
	})
	require.NoError(t, err)
	assert.Nil(t, persist)
}

func TestProductReorderWithinProject(t *testing.T) {
	flat := append(
		testutil.BoardFixture("pr1", "p1", "s0"),
		testutil.BoardFixture("pr1", "p2", "x0")...,
	)
	// BoardFixture assigns product order 0 to both; make them distinct.
	for _, s := range flat {
		if s.ProductID == "p2" {
			o := 1
			s.ProductOrderIndex = &o
		}
	}
	backend := &testutil.FakeBackend{Flat: flat}
	coord := newBoard(t, backend)

	srcToken := board.EncodeToken(board.KindProduct, "p2")
	dstToken := board.EncodeToken(board.KindProduct, "p1")
	coord.BeginDrag(srcToken)
	persist, err := coord.Drop(board.Gesture{SourceToken: srcToken, TargetToken: dstToken})
	require.NoError(t, err)
	require.NotNil(t, persist)

	proj := coord.Snapshot().Project("pr1")
	require.Len(t, proj.Products, 2)
	assert.Equal(t, "p2", proj.Products[0].ID)
	assert.Equal(t, 0, *proj.Products[0].OrderIndex)

	// The flat mirror picked up the product order change.
	for _, s := range coord.Snapshot().Flat {
		if s.ProductID == "p2" {
			assert.Equal(t, 0, *s.ProductOrderIndex)
		}
	}

	require.NoError(t, persist(context.Background()))
	require.Len(t, backend.ProductCalls, 1)
	assert.Equal(t, "p2", backend.ProductCalls[0][0].ID)
	assert.Equal(t, 0, backend.ProductCalls[0][0].OrderIndex)
}

func TestProjectReorder(t *testing.T) {
	flat := append(
		testutil.BoardFixture("pr1", "p1", "s0"),
		testutil.BoardFixture("pr2", "p2", "x0")...,
	)
	for _, s := range flat {
		if s.ProjectID == "pr2" {
			o := 1
			s.ProjectOrderIndex = &o
		}
	}
	backend := &testutil.FakeBackend{Flat: flat}
	coord := newBoard(t, backend)

	srcToken := board.EncodeToken(board.KindProject, "pr2")
	dstToken := board.EncodeToken(board.KindProject, "pr1")
	coord.BeginDrag(srcToken)
	persist, err := coord.Drop(board.Gesture{SourceToken: srcToken, TargetToken: dstToken})
	require.NoError(t, err)
	require.NotNil(t, persist)

	snap := coord.Snapshot()
	assert.Equal(t, "pr2", snap.Projects[0].ID)

	require.NoError(t, persist(context.Background()))
	require.Len(t, backend.ProjectCalls, 1)
	assert.Equal(t, "pr2", backend.ProjectCalls[0][0].ID)
}

func TestDropBeforeFetchFails(t *testing.T) {
	coord := board.NewCoordinator(&testutil.FakeBackend{}, nil)
	coord.BeginDrag("s0")
	_, err := coord.Drop(board.Gesture{SourceToken: "s0", TargetToken: "s1"})
	assert.ErrorIs(t, err, board.ErrNoBoard)
}

func TestSetFilterHidesWithoutReordering(t *testing.T) {
	flat := append(
		testutil.BoardFixture("pr1", "p1", "s0"),
		testutil.BoardFixture("pr2", "p2", "x0")...,
	)
	for _, s := range flat {
		if s.ProjectID == "pr2" {
			s.ProjectStatus = domain.ProjectArchived
			o := 1
			s.ProjectOrderIndex = &o
		}
	}
	backend := &testutil.FakeBackend{Flat: flat}
	coord := newBoard(t, backend)
	require.Len(t, coord.Snapshot().Projects, 2)

	filter := board.DefaultStatusFilter()
	filter[domain.ProjectArchived] = false
	coord.SetFilter(filter)
	require.Len(t, coord.Snapshot().Projects, 1)

	coord.SetFilter(board.DefaultStatusFilter())
	snap := coord.Snapshot()
	require.Len(t, snap.Projects, 2)
	assert.Equal(t, "pr1", snap.Projects[0].ID)
	assert.Equal(t, 1, *snap.Projects[1].OrderIndex)
}
