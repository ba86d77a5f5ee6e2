// Package linsolve wraps sparse assembly (github.com/james-bowman/sparse)
// and dense vector algebra (gonum.org/v1/gonum/mat) into a small
// preconditioned conjugate-gradient Krylov solver, used by the SIMPLE
// driver for both the momentum equations and the pressure-correction
// Poisson operator.
package linsolve

import (
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Result reports how a solve terminated.
type Result struct {
	Iterations int
	Residual   float64 // final ||Ax-b||_2 / ||b||_2
	Converged  bool
}

// PinRow removes the null space of a singular operator (the 7-point
// pressure-correction Poisson matrix has one for an all-Neumann
// problem) by replacing row pin with the identity row and zeroing the
// corresponding right-hand-side entry.
func PinRow(a *sparse.DOK, b []float64, pin int) {
	n, _ := a.Dims()
	for j := 0; j < n; j++ {
		if j != pin {
			a.Set(pin, j, 0)
		}
	}
	a.Set(pin, pin, 1)
	b[pin] = 0
}

// SolveCG runs Jacobi-preconditioned conjugate gradient on the
// symmetric positive (semi-)definite system Ax=b, starting from x0 (or
// the zero vector if x0 is nil).
func SolveCG(a *sparse.CSR, b []float64, x0 []float64, tol float64, maxIter int) ([]float64, Result) {
	n := len(b)
	x := make([]float64, n)
	if x0 != nil {
		copy(x, x0)
	}
	bv := mat.NewVecDense(n, b)
	xv := mat.NewVecDense(n, x)
	bNorm := mat.Norm(bv, 2)
	if bNorm == 0 {
		bNorm = 1
	}

	diag := make([]float64, n)
	for i := 0; i < n; i++ {
		d := a.At(i, i)
		if d == 0 {
			d = 1
		}
		diag[i] = d
	}
	precond := func(r *mat.VecDense) *mat.VecDense {
		z := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			z.SetVec(i, r.AtVec(i)/diag[i])
		}
		return z
	}

	ax := mat.NewVecDense(n, nil)
	ax.MulVec(a, xv)
	r := mat.NewVecDense(n, nil)
	r.SubVec(bv, ax)

	resNorm := mat.Norm(r, 2)
	if resNorm/bNorm < tol {
		return x, Result{Iterations: 0, Residual: resNorm / bNorm, Converged: true}
	}

	z := precond(r)
	p := mat.VecDenseCopyOf(z)
	rsold := mat.Dot(r, z)

	it := 0
	for ; it < maxIter; it++ {
		ap := mat.NewVecDense(n, nil)
		ap.MulVec(a, p)
		denom := mat.Dot(p, ap)
		if denom == 0 {
			break
		}
		alpha := rsold / denom

		xv.AddScaledVec(xv, alpha, p)
		r.AddScaledVec(r, -alpha, ap)

		resNorm = mat.Norm(r, 2)
		if resNorm/bNorm < tol {
			it++
			break
		}

		z = precond(r)
		rsnew := mat.Dot(r, z)
		beta := rsnew / rsold
		next := mat.NewVecDense(n, nil)
		next.AddScaledVec(z, beta, p)
		p = next
		rsold = rsnew
	}

	return x, Result{Iterations: it, Residual: resNorm / bNorm, Converged: resNorm/bNorm < tol}
}

// Norm2 is a small convenience wrapper so callers outside this package
// don't need to reach for gonum/floats directly for a plain L2 norm.
func Norm2(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
