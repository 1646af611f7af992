package prefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelichko/fabplan/internal/board"
	"github.com/avelichko/fabplan/internal/domain"
	"github.com/avelichko/fabplan/internal/prefs"
	"github.com/avelichko/fabplan/internal/testutil"
)

func TestCollapseRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	store := prefs.NewStore(database, "u1", nil)

	// Nothing stored: documented default is the empty set.
	assert.Empty(t, store.LoadCollapsedProjects(ctx))

	set := prefs.Toggle(store.LoadCollapsedProjects(ctx), "pr1")
	store.SaveCollapsedProjects(ctx, set)

	// A fresh store over the same database sees the persisted value.
	reloaded := prefs.NewStore(database, "u1", nil)
	got := reloaded.LoadCollapsedProjects(ctx)
	assert.True(t, got["pr1"])
	assert.Len(t, got, 1)

	// Toggling again empties the set, and the stored value follows.
	store.SaveCollapsedProjects(ctx, prefs.Toggle(got, "pr1"))
	assert.Empty(t, reloaded.LoadCollapsedProjects(ctx))

	var raw string
	err := database.QueryRow(
		`SELECT value FROM preferences WHERE key = ?`, "collapsed_projects:u1").Scan(&raw)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestCollapsedSetIsStoredSorted(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	store := prefs.NewStore(database, "u1", nil)

	// Map iteration order is randomized; the stored array must not be.
	store.SaveCollapsedProjects(ctx, map[string]bool{
		"pr3": true, "pr1": true, "pr9": true, "pr2": true,
	})

	var raw string
	err := database.QueryRow(
		`SELECT value FROM preferences WHERE key = ?`, "collapsed_projects:u1").Scan(&raw)
	require.NoError(t, err)
	assert.Equal(t, `["pr1","pr2","pr3","pr9"]`, raw)
}

func TestPreferencesAreScopedByUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	a := prefs.NewStore(database, "alice", nil)
	b := prefs.NewStore(database, "bob", nil)

	a.SaveCollapsedProducts(ctx, map[string]bool{"p1": true})
	assert.True(t, a.LoadCollapsedProducts(ctx)["p1"])
	assert.Empty(t, b.LoadCollapsedProducts(ctx))
}

func TestStatusFilterDefaultsAndRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	store := prefs.NewStore(database, "u1", nil)

	// Default is all-true over the closed status set.
	filter := store.LoadStatusFilter(ctx)
	for _, st := range domain.AllProjectStatuses {
		assert.True(t, filter.Allows(st))
	}

	filter[domain.ProjectArchived] = false
	store.SaveStatusFilter(ctx, filter)

	got := store.LoadStatusFilter(ctx)
	assert.False(t, got.Allows(domain.ProjectArchived))
	assert.True(t, got.Allows(domain.ProjectInProgress))
}

func TestCorruptValueFallsBackToDefault(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := database.Exec(
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)`,
		"status_filters:u1", "{not json", "2026-01-01T00:00:00Z")
	require.NoError(t, err)

	store := prefs.NewStore(database, "u1", nil)
	filter := store.LoadStatusFilter(ctx)
	assert.Equal(t, board.DefaultStatusFilter(), filter)
	assert.Empty(t, store.LoadCollapsedProjects(ctx))
}

func TestToggleIsPure(t *testing.T) {
	orig := map[string]bool{"a": true}
	withB := prefs.Toggle(orig, "b")

	assert.True(t, withB["a"])
	assert.True(t, withB["b"])
	assert.Len(t, orig, 1, "input set must not be mutated")

	withoutA := prefs.Toggle(withB, "a")
	assert.False(t, withoutA["a"])
	assert.True(t, withoutA["b"])
}
