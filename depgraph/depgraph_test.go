package depgraph

import (
	"testing"

	"github.com/routekit-dev/routekit/manifest/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Node_Display(t *testing.T) {
	assert.Equal(t, "self", Self().Display())
	assert.Equal(t, "#logger", Named("logger").Display())
}

func Test_ProjectReference(t *testing.T) {
	tests := []struct {
		name     string
		ref      values.Reference
		wantNode Node
		wantOk   bool
	}{
		{"self", values.SelfRef(), Self(), true},
		{"named", values.MustReference("#logger"), Named("logger"), true},
		{"child", values.ChildRef(values.MustName("worker"), values.MustName("coll")), Named("worker"), true},
		{"parent", values.ParentRef(), Node{}, false},
		{"framework", values.FrameworkRef(), Node{}, false},
		{"debug", values.DebugRef(), Node{}, false},
		{"void", values.VoidRef(), Node{}, false},
		{"all", values.AllRef(), Node{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := ProjectReference(tt.ref)
			assert.Equal(t, tt.wantOk, ok)
			if ok {
				assert.Equal(t, tt.wantNode, node)
			}
		})
	}
}

func Test_Graph_SelfLoopSkipped(t *testing.T) {
	g := New()
	g.AddEdge(Self(), Self())

	assert.False(t, g.HasEdge(Self(), Self()))
	_, err := g.Toposort()
	assert.NoError(t, err)
}

func Test_Graph_Toposort_DAG(t *testing.T) {
	g := New()
	g.AddEdge(Named("a"), Named("b"))
	g.AddEdge(Named("b"), Named("c"))
	g.AddEdge(Named("a"), Named("c"))
	g.AddEdge(Self(), Named("a"))

	order, err := g.Toposort()
	require.NoError(t, err)
	require.Len(t, order, 4)

	position := make(map[Node]int)
	for i, n := range order {
		position[n] = i
	}
	assert.Less(t, position[Named("a")], position[Named("b")])
	assert.Less(t, position[Named("b")], position[Named("c")])
	assert.Less(t, position[Self()], position[Named("a")])
}

func Test_Graph_Toposort_Deterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddEdge(Named("x"), Named("m"))
		g.AddEdge(Named("x"), Named("a"))
		g.AddNode(Named("q"))
		return g
	}

	first, err := build().Toposort()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		order, err := build().Toposort()
		require.NoError(t, err)
		assert.Equal(t, first, order)
	}
}

func Test_Graph_TwoNodeCycle(t *testing.T) {
	g := New()
	g.AddEdge(Self(), Named("child"))
	g.AddEdge(Named("child"), Self())

	_, err := g.Toposort()
	require.Error(t, err)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "{{#child -> self -> #child}}", cycleErr.Render())
}

func Test_Graph_MultipleCycles(t *testing.T) {
	// a -> b -> c -> a and b -> d -> b.
	g := New()
	g.AddEdge(Named("a"), Named("b"))
	g.AddEdge(Named("b"), Named("c"))
	g.AddEdge(Named("c"), Named("a"))
	g.AddEdge(Named("b"), Named("d"))
	g.AddEdge(Named("d"), Named("b"))

	_, err := g.Toposort()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "{{#a -> #b -> #c -> #a}, {#b -> #d -> #b}}", cycleErr.Render())
}

func Test_Graph_CycleWithTail(t *testing.T) {
	// The tail node e hangs off the cycle and must not appear in it.
	g := New()
	g.AddEdge(Named("a"), Named("b"))
	g.AddEdge(Named("b"), Named("a"))
	g.AddEdge(Named("b"), Named("e"))

	_, err := g.Toposort()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "{{#a -> #b -> #a}}", cycleErr.Render())
}

func Test_Graph_NamedSelfLoop(t *testing.T) {
	g := New()
	g.AddEdge(Named("a"), Named("a"))

	_, err := g.Toposort()
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "{{#a -> #a}}", cycleErr.Render())
}

func Test_Graph_RenderDeterministic(t *testing.T) {
	build := func() *Graph {
		g := New()
		g.AddEdge(Named("b"), Named("d"))
		g.AddEdge(Named("d"), Named("b"))
		g.AddEdge(Named("a"), Named("c"))
		g.AddEdge(Named("c"), Named("a"))
		return g
	}

	_, err := build().Toposort()
	var first *CycleError
	require.ErrorAs(t, err, &first)
	for i := 0; i < 10; i++ {
		_, err := build().Toposort()
		var cycleErr *CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, first.Render(), cycleErr.Render())
	}
	assert.Equal(t, "{{#a -> #c -> #a}, {#b -> #d -> #b}}", first.Render())
}
