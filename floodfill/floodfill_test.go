package floodfill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A 5x1x1 line of nodes with an obstruction between index 2 and 3
// splits into two components: {0,1,2} and {3,4}.
func TestBFSSplitsAcrossObstruction(t *testing.T) {
	dims := Dims{Nx: 5, Ny: 1, Nz: 1}
	occluded := make([]bool, dims.N())
	obstructed := func(a, b Node) bool {
		lo, hi := a.I, b.I
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo == 2 && hi == 3
	}

	comp := BFS(dims, occluded, obstructed)

	assert.Equal(t, comp[dims.Index(0, 0, 0)], comp[dims.Index(2, 0, 0)])
	assert.NotEqual(t, comp[dims.Index(2, 0, 0)], comp[dims.Index(3, 0, 0)])
	assert.Equal(t, comp[dims.Index(3, 0, 0)], comp[dims.Index(4, 0, 0)])
}

func TestBFSSkipsOccludedNodes(t *testing.T) {
	dims := Dims{Nx: 3, Ny: 1, Nz: 1}
	occluded := []bool{false, true, false}
	comp := BFS(dims, occluded, func(a, b Node) bool { return false })

	assert.Equal(t, 0, comp[1])
	assert.NotEqual(t, 0, comp[0])
	assert.NotEqual(t, 0, comp[2])
	assert.NotEqual(t, comp[0], comp[2]) // occluded node blocks the path between them
}

func TestRenumberAssignsPalette(t *testing.T) {
	comp := []int{0, 1, 1, 2, 3}
	got := Renumber(comp, map[int]bool{1: true}, map[int]bool{2: true})

	assert.Equal(t, 0, got[0])
	assert.Equal(t, 1, got[1])
	assert.Equal(t, 1, got[2])
	assert.Equal(t, 2, got[3])
	assert.Equal(t, -1, got[4])
}
