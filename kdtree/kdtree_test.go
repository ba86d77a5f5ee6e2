package kdtree

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/m2c/surface"
)

func box(x, y, z float64) surface.AABB {
	p := surface.Vec3{X: x, Y: y, Z: z}
	return surface.AABB{Min: p, Max: p.Add(surface.Vec3{X: 0.1, Y: 0.1, Z: 0.1})}
}

func TestFindInBoxFindsOverlapping(t *testing.T) {
	items := []Item{
		{ID: 0, Box: box(0, 0, 0)},
		{ID: 1, Box: box(5, 5, 5)},
		{ID: 2, Box: box(0.05, 0.05, 0.05)},
		{ID: 3, Box: box(10, 10, 10)},
	}
	tree := Build(items)

	got := tree.FindInBox(surface.Vec3{X: -1, Y: -1, Z: -1}, surface.Vec3{X: 1, Y: 1, Z: 1}, nil)
	sort.Ints(got)
	assert.Equal(t, []int{0, 2}, got)
}

func TestFindInBoxEmptyTree(t *testing.T) {
	tree := Build(nil)
	got := tree.FindInBox(surface.Vec3{}, surface.Vec3{X: 1, Y: 1, Z: 1}, nil)
	assert.Empty(t, got)
}
