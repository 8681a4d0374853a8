package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID  string
	PID string
}

func id(e entry) string     { return e.ID }
func pid(e entry) string    { return e.PID }
func item(n *Node[entry]) string { return n.Item.ID }

func flatten(nodes []*Node[entry], out map[string]*Node[entry]) {
	for _, n := range nodes {
		out[n.Item.ID] = n
		flatten(n.Children, out)
	}
}

func TestBuild(t *testing.T) {
	items := []entry{
		{ID: "a"},
		{ID: "a1", PID: "a"},
		{ID: "a2", PID: "a"},
		{ID: "a21", PID: "a2"},
		{ID: "b"},
	}

	forest, err := Build(items, id, pid)
	require.NoError(t, err)
	require.Len(t, forest, 2)

	assert.Equal(t, "a", item(forest[0]))
	assert.Equal(t, "b", item(forest[1]))
	assert.Equal(t, 1, forest[0].Depth)

	all := map[string]*Node[entry]{}
	flatten(forest, all)
	assert.Len(t, all, len(items), "every item appears exactly once")
	assert.Equal(t, 2, all["a1"].Depth)
	assert.Equal(t, 2, all["a2"].Depth)
	assert.Equal(t, 3, all["a21"].Depth)
}

func TestBuildSiblingOrder(t *testing.T) {
	items := []entry{
		{ID: "root"},
		{ID: "c", PID: "root"},
		{ID: "a", PID: "root"},
		{ID: "b", PID: "root"},
	}

	forest, err := Build(items, id, pid)
	require.NoError(t, err)
	require.Len(t, forest, 1)

	got := make([]string, 0, 3)
	for _, n := range forest[0].Children {
		got = append(got, n.Item.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got, "input order preserved")
}

func TestBuildDropsOrphans(t *testing.T) {
	items := []entry{
		{ID: "root"},
		{ID: "child", PID: "root"},
		{ID: "orphan", PID: "missing"},
	}

	forest, err := Build(items, id, pid)
	require.NoError(t, err)

	all := map[string]*Node[entry]{}
	flatten(forest, all)
	assert.Len(t, all, 2)
	assert.NotContains(t, all, "orphan")
}

func TestBuildEmptyInput(t *testing.T) {
	forest, err := Build(nil, id, pid)
	require.NoError(t, err)
	assert.Empty(t, forest)
}

func TestBuildCycle(t *testing.T) {
	// Duplicate ids make a node reachable as its own descendant.
	items := []entry{
		{ID: "a"},
		{ID: "b", PID: "a"},
		{ID: "b", PID: "b"},
	}

	_, err := Build(items, id, pid)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestBuildParentChildDepthInvariant(t *testing.T) {
	items := []entry{
		{ID: "1"},
		{ID: "2", PID: "1"},
		{ID: "3", PID: "2"},
		{ID: "4", PID: "3"},
	}

	forest, err := Build(items, id, pid)
	require.NoError(t, err)

	var walk func(parentDepth int, nodes []*Node[entry])
	walk = func(parentDepth int, nodes []*Node[entry]) {
		for _, n := range nodes {
			assert.Equal(t, parentDepth+1, n.Depth)
			walk(n.Depth, n.Children)
		}
	}
	walk(0, forest)
}
