package simple

import (
	"github.com/james-bowman/sparse"
)

// lattice describes one velocity component's face array: the extents of
// the 3-D index space it's stored over, and how to convert (i,j,k) to a
// flat face index.
type lattice struct {
	nx, ny, nz int // shape of this component's own face array
	idx        func(i, j, k int) int
}

func (st *State) uLattice() lattice {
	return lattice{st.Dims.Nx + 1, st.Dims.Ny, st.Dims.Nz, st.Dims.uIdx}
}
func (st *State) vLattice() lattice {
	return lattice{st.Dims.Nx, st.Dims.Ny + 1, st.Dims.Nz, st.Dims.vIdx}
}
func (st *State) wLattice() lattice {
	return lattice{st.Dims.Nx, st.Dims.Ny, st.Dims.Nz + 1, st.Dims.wIdx}
}

// boundaryValue returns the Dirichlet velocity component comp (0=u,1=v,2=w)
// for a face lattice index that lies on the subdomain's outer boundary.
func boundaryValue(lat lattice, i, j, k, comp int, bc BoundaryConditions) float64 {
	switch {
	case i == 0:
		return bc.XLo[comp]
	case i == lat.nx-1:
		return bc.XHi[comp]
	case j == 0:
		return bc.YLo[comp]
	case j == lat.ny-1:
		return bc.YHi[comp]
	case k == 0:
		return bc.ZLo[comp]
	case k == lat.nz-1:
		return bc.ZHi[comp]
	}
	return 0
}

// isInterior reports whether (i,j,k) is strictly inside lat -- the only
// points the momentum equation is solved for; boundary-face values are
// fixed by bc.
func isInterior(lat lattice, i, j, k int) bool {
	return i > 0 && i < lat.nx-1 && j > 0 && j < lat.ny-1 && k > 0 && k < lat.nz-1
}

// assembleMomentum builds the false-time-step discrete momentum
// equation for one velocity component over its own interior face
// points: standard second-order central diffusion plus first-order
// upwind convection using the face's own value as the local convecting
// velocity along every axis (a same-lattice approximation in place of a
// face-to-face interpolation of the transverse components). The
// relaxation factor E inflates the diagonal, per the "false time step"
// form: add diag/E on the LHS, compensating with the explicit term on
// the RHS so a converged solve reproduces the unrelaxed equation.
//
// The third return value holds, per face, the inverse of the relaxed
// diagonal for interior faces and 0 for boundary faces, whose values are
// fixed by bc and take no pressure correction.
func assembleMomentum(lat lattice, field []float64, comp int, st *State, bc BoundaryConditions, e float64) (*sparse.DOK, []float64, []float64) {
	n := lat.nx * lat.ny * lat.nz
	a := sparse.NewDOK(n, n)
	b := make([]float64, n)
	diag := make([]float64, n)

	h := st.H
	nu := st.Nu
	diff := nu / (h * h)

	flat := func(i, j, k int) int { return (k*lat.ny+j)*lat.nx + i }

	for k := 0; k < lat.nz; k++ {
		for j := 0; j < lat.ny; j++ {
			for i := 0; i < lat.nx; i++ {
				row := flat(i, j, k)
				if !isInterior(lat, i, j, k) {
					a.Set(row, row, 1)
					b[row] = boundaryValue(lat, i, j, k, comp, bc)
					diag[row] = 0
					continue
				}

				uP := field[lat.idx(i, j, k)]
				aP := 6 * diff // one diffusion contribution per neighbor direction

				type nb struct{ di, dj, dk int }
				neighbors := []nb{{-1, 0, 0}, {1, 0, 0}, {0, -1, 0}, {0, 1, 0}, {0, 0, -1}, {0, 0, 1}}
				for _, d := range neighbors {
					ni, nj, nk := i+d.di, j+d.dj, k+d.dk
					nbRow := flat(ni, nj, nk)
					// upwind convection: the face's own velocity estimates the
					// local convecting speed along each axis.
					var conv float64
					switch {
					case d.di != 0:
						conv = uP / h
					case d.dj != 0:
						conv = uP / h
					default:
						conv = uP / h
					}
					coeff := diff
					if conv > 0 && (d.di < 0 || d.dj < 0 || d.dk < 0) {
						coeff += conv
						aP += conv
					} else if conv < 0 && (d.di > 0 || d.dj > 0 || d.dk > 0) {
						coeff += -conv
						aP += -conv
					}
					a.Set(row, nbRow, -coeff)
				}

				relaxedDiag := aP / e
				a.Set(row, row, relaxedDiag)
				b[row] = aP * (1/e - 1) * uP
				diag[row] = 1 / relaxedDiag
			}
		}
	}
	return a, b, diag
}
