package simple

import "github.com/james-bowman/sparse"

// divergence computes the discrete divergence of the starred velocity
// field at every cell; its negative is the right-hand side of the
// pressure-correction equation.
func divergence(st *State) []float64 {
	d := st.Dims
	h := st.H
	div := make([]float64, d.NCells())
	for k := 0; k < d.Nz; k++ {
		for j := 0; j < d.Ny; j++ {
			for i := 0; i < d.Nx; i++ {
				c := d.cellIdx(i, j, k)
				du := st.U[d.uIdx(i+1, j, k)] - st.U[d.uIdx(i, j, k)]
				dv := st.V[d.vIdx(i, j+1, k)] - st.V[d.vIdx(i, j, k)]
				dw := st.W[d.wIdx(i, j, k+1)] - st.W[d.wIdx(i, j, k)]
				div[c] = (du + dv + dw) / h
			}
		}
	}
	return div
}

// assemblePressureCorrection builds the 7-point Poisson-like operator
// for p', with coefficients built from the momentum diagonals' inverses
// (dx,dy,dz, one per face of the corresponding component's lattice),
// and minus the discrete divergence of u*,v*,w* as the right-hand side,
// so that the correction u <- u* - dx*grad(p') cancels the divergence.
// Faces with a zero coefficient (fixed boundary faces) add nothing, so
// the system is a singular Neumann one; the caller pins one degree of
// freedom (the first cell, index 0) with linsolve.PinRow to remove its
// null space.
func assemblePressureCorrection(st *State, dx, dy, dz []float64) (*sparse.DOK, []float64) {
	d := st.Dims
	h2 := st.H * st.H
	n := d.NCells()
	a := sparse.NewDOK(n, n)
	b := divergence(st)
	for c := range b {
		b[c] = -b[c]
	}

	for k := 0; k < d.Nz; k++ {
		for j := 0; j < d.Ny; j++ {
			for i := 0; i < d.Nx; i++ {
				c := d.cellIdx(i, j, k)
				var aP float64

				addFace := func(nbI, nbJ, nbK int, coeff float64) {
					if coeff <= 0 {
						return
					}
					aP += coeff
					if nbI >= 0 && nbI < d.Nx && nbJ >= 0 && nbJ < d.Ny && nbK >= 0 && nbK < d.Nz {
						a.Set(c, d.cellIdx(nbI, nbJ, nbK), -coeff)
					}
				}

				addFace(i-1, j, k, dx[d.uIdx(i, j, k)]/h2)
				addFace(i+1, j, k, dx[d.uIdx(i+1, j, k)]/h2)
				addFace(i, j-1, k, dy[d.vIdx(i, j, k)]/h2)
				addFace(i, j+1, k, dy[d.vIdx(i, j+1, k)]/h2)
				addFace(i, j, k-1, dz[d.wIdx(i, j, k)]/h2)
				addFace(i, j, k+1, dz[d.wIdx(i, j, k+1)]/h2)

				if aP == 0 {
					aP = 1
				}
				a.Set(c, c, aP)
			}
		}
	}
	return a, b
}
