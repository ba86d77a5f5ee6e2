// Package godunov implements a thin directional-flux functor: solve the
// Riemann problem at a face, evaluate the physical flux at the
// resulting star state. Reconstruction to the face is an external
// collaborator's job (a Reconstructor), not this package's -- this is a
// thin functor with no other numerics.
package godunov

import (
	"github.com/notargets/m2c/grid"
	"github.com/notargets/m2c/material"
	"github.com/notargets/m2c/riemann"
)

// Reconstructor reconstructs the left/right primitive states (and their
// material ids) at the face between cell (i,j,k) and its neighbor one
// step up along axis. It is supplied by the caller; this package never
// implements one itself.
type Reconstructor interface {
	Face(axis grid.Axis, i, j, k int) (VL, VR material.State, idL, idR int)
}

// Flux evaluates the Godunov numerical flux using an exact Riemann
// solver and a material table for the post-solve physical-flux
// evaluation.
type Flux struct {
	Solver *riemann.Solver
	Table  *material.Table
}

func NewFlux(solver *riemann.Solver, table *material.Table) *Flux {
	return &Flux{Solver: solver, Table: table}
}

// PhysicalFlux evaluates the compressible Euler flux F_d(V) in the
// direction (nx,ny,nz)
func PhysicalFlux(V material.State, eos material.EOS, nx, ny, nz float64) material.Conserved {
	un := V.NormalVelocity(nx, ny, nz)
	e := eos.E(V.Rho, V.P)
	ke := 0.5 * V.Rho * (V.U*V.U + V.V*V.V + V.W*V.W)
	E := V.Rho*e + ke
	return material.Conserved{
		Rho:  V.Rho * un,
		RhoU: V.Rho*un*V.U + V.P*nx,
		RhoV: V.Rho*un*V.V + V.P*ny,
		RhoW: V.Rho*un*V.W + V.P*nz,
		E:    un * (E + V.P),
	}
}

// Face solves the Riemann problem at one already-reconstructed face and
// returns the physical flux plus the full solution, so the caller can
// cache it for the multiphase updater.
func (f *Flux) Face(nx, ny, nz float64, VL material.State, idL int, VR material.State, idR int, key riemann.FaceKey, cache *riemann.SolutionCache) (material.Conserved, riemann.Result) {
	res := f.Solver.Solve(nx, ny, nz, VL, idL, VR, idR)
	if cache != nil {
		cache.Store(key, res)
	}
	eos := f.Table.Get(res.IDstar)
	return PhysicalFlux(res.Vstar, eos, nx, ny, nz), res
}

// Evaluate reconstructs via recon and then solves/evaluates the flux at
// the face between (i,j,k) and its axis-neighbor.
func (f *Flux) Evaluate(recon Reconstructor, axis grid.Axis, i, j, k int, nx, ny, nz float64, cache *riemann.SolutionCache) (material.Conserved, riemann.Result) {
	VL, VR, idL, idR := recon.Face(axis, i, j, k)
	key := riemann.FaceKey{I: i, J: j, K: k, Axis: int(axis)}
	return f.Face(nx, ny, nz, VL, idL, VR, idR, key, cache)
}
