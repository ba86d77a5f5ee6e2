package linsolve

import (
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/stretchr/testify/assert"
)

// tridiagonal builds the classic [-1,2,-1] discrete 1-D Laplacian, whose
// exact solution for b=1 (uniform load) is known in closed form.
func tridiagonal(n int) *sparse.CSR {
	dok := sparse.NewDOK(n, n)
	for i := 0; i < n; i++ {
		dok.Set(i, i, 2)
		if i > 0 {
			dok.Set(i, i-1, -1)
		}
		if i+1 < n {
			dok.Set(i, i+1, -1)
		}
	}
	return dok.ToCSR()
}

func TestSolveCGConvergesOnSPDSystem(t *testing.T) {
	const n = 20
	a := tridiagonal(n)
	b := make([]float64, n)
	for i := range b {
		b[i] = 1
	}

	x, res := SolveCG(a, b, nil, 1e-10, 500)
	assert.True(t, res.Converged)
	assert.Less(t, res.Residual, 1e-9)

	// Check Ax=b directly rather than trusting a closed form.
	resid := make([]float64, n)
	for i := 0; i < n; i++ {
		resid[i] = a.At(i, 0) * x[0]
		for j := 1; j < n; j++ {
			resid[i] += a.At(i, j) * x[j]
		}
		resid[i] -= b[i]
	}
	assert.Less(t, Norm2(resid), 1e-6)
}

func TestPinRowRemovesNullSpace(t *testing.T) {
	const n = 5
	dok := sparse.NewDOK(n, n)
	// An all-Neumann 1-D Poisson stencil: singular (constant vector in
	// the null space) until a row is pinned.
	for i := 0; i < n; i++ {
		deg := 0.0
		if i > 0 {
			dok.Set(i, i-1, -1)
			deg++
		}
		if i+1 < n {
			dok.Set(i, i+1, -1)
			deg++
		}
		dok.Set(i, i, deg)
	}
	b := make([]float64, n)
	PinRow(dok, b, 0)

	a := dok.ToCSR()
	assert.Equal(t, 1.0, a.At(0, 0))
	for j := 1; j < n; j++ {
		assert.Equal(t, 0.0, a.At(0, j))
	}
	assert.Equal(t, 0.0, b[0])

	_, res := SolveCG(a, b, nil, 1e-10, 500)
	assert.True(t, res.Converged)
}
