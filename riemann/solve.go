package riemann

import (
	"math"

	"github.com/notargets/m2c/material"
)

// solvePStar finds the star pressure and velocity that make the 1-wave
// and 3-wave relations agree: u*_1(p) = u*_3(p). It grounds the outer
// iteration on ExactRiemannSolverBase::FindInitialInterval +
// ComputeRhoUStar (original_source/ExactRiemannSolverBase.cpp): bracket
// the root by geometric expansion, then close it with a regula-falsi
// (Illinois-modified) iteration bounded by TolMain/MaxItsMain.
func (s *Solver) solvePStar(left, right wave) (pstar, ustar, rhoLstar, rhoRstar float64, status Status) {
	g := func(p float64) (val, uL, rhoL, uR, rhoR float64) {
		uL, rhoL = uStarFromWave(left, p, -1, s.cfg)
		uR, rhoR = uStarFromWave(right, p, +1, s.cfg)
		return uL - uR, uL, rhoL, uR, rhoR
	}

	a := s.cfg.MinPressure
	ga, uLa, rhoLa, uRa, rhoRa := g(a)
	if ga <= 0 {
		// No pressure, however small, can bridge the velocity gap: the
		// two rarefactions separate and a vacuum forms between them
		//.
		_ = uLa
		_ = uRa
		return a, 0, rhoLa, rhoRa, Vacuum
	}

	b := math.Max(left.p, right.p)
	if b <= a {
		b = a*2 + 1
	}
	gb, _, _, _, _ := g(b)
	it := 0
	for sameSign(ga, gb) && it < s.cfg.MaxItsBracket {
		b *= 2
		gb, _, _, _, _ = g(b)
		it++
	}
	if sameSign(ga, gb) || math.IsNaN(ga) || math.IsNaN(gb) {
		return 0, 0, 0, 0, Failure
	}

	fa, fb := ga, gb
	stale := 0 // 0=neither, 1=a replaced last (b held stale), 2=b replaced last (a held stale)
	for it := 0; it < s.cfg.MaxItsMain; it++ {
		s.It1Wave++
		c := b - fb*(b-a)/(fb-fa)
		if !(c > a && c < b) {
			c = 0.5 * (a + b)
		}
		fc, uL, rhoL, uR, rhoR := g(c)
		s.It3Wave++
		if math.Abs(fc) < s.cfg.TolMain*math.Max(1, math.Abs(uL)) || (b-a) < s.cfg.TolMain*math.Max(1, c) {
			return c, 0.5 * (uL + uR), rhoL, rhoR, OK
		}
		if sameSign(fa, fc) {
			a, fa = c, fc
			if stale == 1 {
				// a has been replaced twice running: Illinois modification,
				// halve the stale far endpoint so it gets pulled in instead
				// of pinning the secant and stalling convergence.
				fb *= 0.5
			}
			stale = 1
		} else {
			b, fb = c, fc
			if stale == 2 {
				fa *= 0.5
			}
			stale = 2
		}
	}
	return 0, 0, 0, 0, Failure
}

// vacuumSolution builds the three-region (left state / vacuum /
// right state) self-similar solution used when solvePStar reports
// Vacuum: each side fans out in its own rarefaction down to
// MinPressure, and the region between the two vacuum fronts (if any)
// samples as the vacuum state
func (s *Solver) vacuumSolution(nx, ny, nz float64, left, right wave, tL, tR [3]float64, idL, idR int) Result {
	pv := s.cfg.MinPressure
	uL0, rhoL0 := rarefactionIntegrate(left, pv, -1, s.cfg)
	uR0, rhoR0 := rarefactionIntegrate(right, pv, +1, s.cfg)

	VstarL := fromNormal(rhoL0, uL0, pv, tL, nx, ny, nz)
	VstarR := fromNormal(rhoR0, uR0, pv, tR, nx, ny, nz)

	rho, u, p, headLambda, found := rarefactionSampleXi0(left, pv, -1, s.cfg)
	if found {
		return Result{Status: Vacuum, Vstar: fromNormal(rho, u, p, tL, nx, ny, nz), IDstar: idL, VstarL: VstarL, VstarR: VstarR, Pstar: pv}
	}
	if headLambda >= 0 {
		return Result{Status: Vacuum, Vstar: fromNormal(left.rho, left.u, left.p, tL, nx, ny, nz), IDstar: idL, VstarL: VstarL, VstarR: VstarR, Pstar: pv}
	}

	rho, u, p, headLambda, found = rarefactionSampleXi0(right, pv, +1, s.cfg)
	if found {
		return Result{Status: Vacuum, Vstar: fromNormal(rho, u, p, tR, nx, ny, nz), IDstar: idR, VstarL: VstarL, VstarR: VstarR, Pstar: pv}
	}
	if headLambda <= 0 {
		return Result{Status: Vacuum, Vstar: fromNormal(right.rho, right.u, right.p, tR, nx, ny, nz), IDstar: idR, VstarL: VstarL, VstarR: VstarR, Pstar: pv}
	}

	// xi=0 lies strictly between the two vacuum fronts: true vacuum.
	vac := material.State{Rho: 0, U: 0.5 * (uL0*nx + uR0*nx), V: 0.5 * (uL0*ny + uR0*ny), W: 0.5 * (uL0*nz + uR0*nz), P: 0}
	return Result{Status: Vacuum, Vstar: vac, IDstar: idL, VstarL: VstarL, VstarR: VstarR, Pstar: pv}
}
