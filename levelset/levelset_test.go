package levelset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/m2c/grid"
)

// buildLinearPhi fills phi(i,j,k) = x_i - offset, a field that is
// already an exact signed distance to the plane x=offset (slope 1 in
// x, independent of y,z).
func buildLinearPhi(n int, offset float64) *grid.Field[float64] {
	sub := grid.Subdomain{
		Owned:  [3]grid.Bounds{{Lo: 0, Hi: n}, {Lo: 0, Hi: n}, {Lo: 0, Hi: n}},
		Ghost:  1,
		Global: [3]grid.Bounds{{Lo: 0, Hi: n}, {Lo: 0, Hi: n}, {Lo: 0, Hi: n}},
	}
	phi := grid.NewField[float64]("phi", sub)
	ws := phi.Acquire(true)
	ws.ForEachGhosted(func(i, j, k int) {
		x := float64(i) / float64(n-1)
		ws.Set(i, j, k, x-offset)
	})
	ws.Release()
	return phi
}

func TestReinitializeIsIdempotentOnAnAlreadySignedDistanceField(t *testing.T) {
	const n = 13
	phi := buildLinearPhi(n, 0.37)
	ext := grid.NewUniformExtents([3]float64{0, 0, 0}, [3]float64{1, 1, 1}, [3]int{n, n, n})

	r := NewReinitializer(DefaultConfig())
	_, residual, converged := r.Reinitialize(phi, ext)

	assert.True(t, converged)
	assert.Less(t, residual, DefaultConfig().Tolerance)

	rs := phi.Acquire(false)
	defer rs.Release()
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		got := rs.At(i, 6, 6)
		assert.InDelta(t, x-0.37, got, 5e-2)
	}
}

func TestReinitializeKeepsZeroCrossingInPlace(t *testing.T) {
	const n = 13
	phi := buildLinearPhi(n, 0.37)
	ext := grid.NewUniformExtents([3]float64{0, 0, 0}, [3]float64{1, 1, 1}, [3]int{n, n, n})

	r := NewReinitializer(DefaultConfig())
	r.Reinitialize(phi, ext)

	rs := phi.Acquire(false)
	defer rs.Release()

	var crossing float64 = -1
	for i := 0; i+1 < n; i++ {
		a, b := rs.At(i, 6, 6), rs.At(i+1, 6, 6)
		if (a <= 0 && b > 0) || (a >= 0 && b < 0) {
			t0 := float64(i) / float64(n-1)
			t1 := float64(i+1) / float64(n-1)
			crossing = t0 + (t1-t0)*(-a)/(b-a)
			break
		}
	}
	assert.True(t, crossing >= 0)
	assert.True(t, math.Abs(crossing-0.37) < 1.0/float64(n-1))
}
