package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddEdgeSymmetric(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2)

	assert.Contains(t, g.Neighbours(1), uint32(2))
	assert.Contains(t, g.Neighbours(2), uint32(1))
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 1, g.Edges())
}

func TestAddEdgeIdempotent(t *testing.T) {
	g := NewGraph()
	g.AddEdge(1, 2)
	g.AddEdge(1, 2)
	g.AddEdge(2, 1)

	if d := g.Degree(1); d != 1 {
		t.Errorf("expected degree 1 for node 1, got %d", d)
	}
	if d := g.Degree(2); d != 1 {
		t.Errorf("expected degree 1 for node 2, got %d", d)
	}
	assert.Equal(t, 1, g.Edges())
}

func TestAddEdgeImplicitNodes(t *testing.T) {
	g := NewGraph()
	assert.False(t, g.HasNode(7))
	g.AddEdge(7, 9)
	assert.True(t, g.HasNode(7))
	assert.True(t, g.HasNode(9))
}

func TestAddEdgeSelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddEdge(3, 3)

	assert.True(t, g.HasNode(3))
	assert.Equal(t, 0, g.Degree(3))
	assert.Equal(t, 0, g.Edges())
}

func TestGraphSized(t *testing.T) {
	g := NewGraphSized(128)
	g.AddEdge(1, 2)
	assert.Equal(t, 2, g.Len())
}
