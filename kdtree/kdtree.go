// Package kdtree implements the k-d tree over triangle AABB centers used
// by the intersector: a static spatial index built
// once per step over the scoped triangle set, queried many times per
// node. The recursive bounding-box-and-median-split construction follows
// the Barnes-Hut KDNode pattern used for n-body spatial trees in the
// retrieved pack (a leaf holds a small body/triangle list, an internal
// node holds a bounding box and two children).
package kdtree

import (
	"sort"

	"github.com/notargets/m2c/surface"
	"github.com/notargets/m2c/utils"
)

const leafSize = 8

// Tree indexes a set of triangle ids by their AABB centers.
type Tree struct {
	root *node
}

type node struct {
	box         surface.AABB
	left, right *node
	items       []Item // only set on leaves; box is each item's own AABB, not the leaf's union
}

// Item is one triangle's id plus its bounding box, the input to Build.
type Item struct {
	ID  int
	Box surface.AABB
}

// Build constructs a Tree over the given items. An empty item list yields
// a Tree whose FindInBox always returns no results.
func Build(items []Item) *Tree {
	if len(items) == 0 {
		return &Tree{}
	}
	idx := utils.NewRange(0, len(items)-1)
	return &Tree{root: build(items, idx, 0)}
}

func build(items []Item, idx []int, depth int) *node {
	box := items[idx[0]].Box
	for _, i := range idx[1:] {
		box = box.Union(items[i].Box)
	}
	if len(idx) <= leafSize {
		leafItems := make([]Item, len(idx))
		for k, i := range idx {
			leafItems[k] = items[i]
		}
		return &node{box: box, items: leafItems}
	}

	axis := depth % 3
	sort.Slice(idx, func(a, b int) bool {
		ca, cb := items[idx[a]].Box.Center(), items[idx[b]].Box.Center()
		switch axis {
		case 0:
			return ca.X < cb.X
		case 1:
			return ca.Y < cb.Y
		default:
			return ca.Z < cb.Z
		}
	})
	mid := len(idx) / 2
	return &node{
		box:   box,
		left:  build(items, idx[:mid], depth+1),
		right: build(items, idx[mid:], depth+1),
	}
}

// FindInBox appends to out every triangle id whose AABB intersects the
// query box [bboxMin,bboxMax]; the caller supplies a buffer and it
// grows it on overflow. Because Go
// slices grow themselves, the overflow-and-retry behavior named in the
// original contract is implicit -- append never fails -- but the
// capacity hint lets a caller avoid reallocation across repeated queries
// from a per-node buffer it reuses.
func (t *Tree) FindInBox(bboxMin, bboxMax surface.Vec3, out []int) []int {
	if t.root == nil {
		return out
	}
	query := surface.AABB{Min: bboxMin, Max: bboxMax}
	return findInBox(t.root, query, out)
}

func findInBox(n *node, query surface.AABB, out []int) []int {
	if !n.box.Overlaps(query) {
		return out
	}
	if n.items != nil {
		for _, it := range n.items {
			if it.Box.Overlaps(query) {
				out = append(out, it.ID)
			}
		}
		return out
	}
	out = findInBox(n.left, query, out)
	out = findInBox(n.right, query, out)
	return out
}

// BuildFromMesh constructs a Tree over the AABBs of the given triangle
// ids in m, as used by the intersector's "subdomain scope" pass
//.
func BuildFromMesh(m *surface.Mesh, triangleIDs []int) *Tree {
	items := make([]Item, len(triangleIDs))
	for i, ti := range triangleIDs {
		items[i] = Item{ID: ti, Box: m.TriangleBounds(ti)}
	}
	return Build(items)
}
