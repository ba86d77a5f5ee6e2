package spmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/m2c/grid"
)

func TestAllreduceMax(t *testing.T) {
	w := NewWorld(4)
	results := make([]float64, 4)
	w.Run(func(rank int) {
		results[rank] = w.Allreduce(rank, float64(rank), Max)
	})
	for _, r := range results {
		assert.Equal(t, 3.0, r)
	}
}

func TestAllreduceSum(t *testing.T) {
	w := NewWorld(3)
	results := make([]float64, 3)
	w.Run(func(rank int) {
		results[rank] = w.Allreduce(rank, 1.0, Sum)
	})
	for _, r := range results {
		assert.Equal(t, 3.0, r)
	}
}

func TestGhostExchange(t *testing.T) {
	procs := [3]int{2, 1, 1}
	n := [3]int{5, 3, 3}
	subs := grid.Decompose3D(n, procs, 1)

	w := NewWorld(2)
	fs := NewFieldSet[float64]("phi", w, subs, procs)

	w.Run(func(rank int) {
		scope := fs.Fields[rank].Acquire(true)
		scope.ForEachOwned(func(i, j, k int) {
			scope.Set(i, j, k, float64(rank+1))
		})
		scope.Release()
	})

	// After exchange, rank 0's ghost layer at the shared face should see
	// rank 1's owned value, and vice versa.
	sub0 := subs[0]
	sharedI := sub0.Owned[grid.X].Hi // first ghost index into rank 1's territory
	got := fs.Fields[0].At(sharedI, sub0.Owned[grid.Y].Lo, sub0.Owned[grid.Z].Lo)
	assert.Equal(t, 2.0, got)

	sub1 := subs[1]
	got2 := fs.Fields[1].At(sub1.Owned[grid.X].Lo-1, sub1.Owned[grid.Y].Lo, sub1.Owned[grid.Z].Lo)
	assert.Equal(t, 1.0, got2)
}

func TestPartitionMapSplit(t *testing.T) {
	pm := NewPartitionMapForTest(4, 10)
	total := 0
	for r := 0; r < 4; r++ {
		total += pm.Range(r).Len()
	}
	assert.Equal(t, 10, total)
}

func NewPartitionMapForTest(p, n int) *grid.PartitionMap { return grid.NewPartitionMap(p, n) }
