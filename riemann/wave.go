package riemann

import (
	"math"

	"github.com/notargets/m2c/material"
)

// wave bundles one side's state with its EOS, grounded on
// ExactRiemannSolverBase's per-side state bundle (original_source:
// ExactRiemannSolverBase.h). sign is not stored here: the 1-wave (left)
// and 3-wave (right) share every relation below, differing only by the
// sign convention threaded through as a parameter (-1 for the 1-wave,
// +1 for the 3-wave).
type wave struct {
	rho, u, p float64
	eos       material.EOS
}

func sameSign(a, b float64) bool { return (a > 0 && b > 0) || (a < 0 && b < 0) }

// stepsFor picks the number of equal pressure steps between pStart and
// pTarget so that each step is no larger than the rarefaction
// integration tolerance tol.
func stepsFor(pStart, pTarget, tol float64) int {
	d := math.Abs(pTarget - pStart)
	if d == 0 {
		return 1
	}
	if tol <= 0 {
		tol = 1e-3
	}
	n := int(math.Ceil(d / tol))
	if n < 1 {
		n = 1
	}
	if n > 200000 {
		n = 200000
	}
	return n
}

// rk4Step advances one pressure step of the rarefaction ODE
//
//	drho/dp = 1/c(rho,p)^2
//	du/dp   = sign/(rho*c(rho,p))
//
// by classical 4th-order Runge-Kutta. A step longer than a tenth of the
// current pressure is split into halves, because the ODE stiffens as p
// approaches zero.
func rk4Step(eos material.EOS, rho, u, p, h, sign float64) (rho2, u2 float64) {
	if p > 0 && p+h > 0 && math.Abs(h) > 0.1*p {
		half := 0.5 * h
		rho, u = rk4Step(eos, rho, u, p, half, sign)
		return rk4Step(eos, rho, u, p+half, half, sign)
	}
	deriv := func(rho, u, p float64) (drho, du float64) {
		if rho <= 0 {
			return 0, 0
		}
		c := eos.SoundSpeed(rho, p)
		if c <= 0 {
			return 0, 0
		}
		return 1 / (c * c), sign / (rho * c)
	}
	k1r, k1u := deriv(rho, u, p)
	k2r, k2u := deriv(rho+0.5*h*k1r, u+0.5*h*k1u, p+0.5*h)
	k3r, k3u := deriv(rho+0.5*h*k2r, u+0.5*h*k2u, p+0.5*h)
	k4r, k4u := deriv(rho+h*k3r, u+h*k3u, p+h)
	rho2 = rho + h/6*(k1r+2*k2r+2*k3r+k4r)
	u2 = u + h/6*(k1u+2*k2u+2*k3u+k4u)
	return
}

// rarefactionIntegrate integrates the fan from w's state to pTarget and
// returns the velocity and density at the far end, used by the outer
// p* iteration (it does not need the interior of the fan).
func rarefactionIntegrate(w wave, pTarget, sign float64, cfg Config) (u, rho float64) {
	rho, u, p := w.rho, w.u, w.p
	n := stepsFor(p, pTarget, cfg.TolRarefaction)
	h := (pTarget - p) / float64(n)
	for i := 0; i < n; i++ {
		rho, u = rk4Step(w.eos, rho, u, p, h, sign)
		p += h
		if rho <= 0 {
			rho = 1e-12
		}
	}
	return u, rho
}

// rarefactionSampleXi0 integrates the fan from w's state to pTarget,
// watching the local characteristic speed lambda = u + sign*c for a sign
// change, and linearly interpolates the crossing. found is false when
// xi=0 lies outside the fan on the side it started from -- the caller
// distinguishes pre-fan from post-fan using the starting sign of lambda.
func rarefactionSampleXi0(w wave, pTarget, sign float64, cfg Config) (rho, u, p float64, headLambda float64, found bool) {
	rho, u, p = w.rho, w.u, w.p
	c := w.eos.SoundSpeed(rho, p)
	lambdaPrev := u + sign*c
	headLambda = lambdaPrev
	n := stepsFor(p, pTarget, cfg.TolRarefaction)
	h := (pTarget - p) / float64(n)
	for i := 0; i < n; i++ {
		rhoNext, uNext := rk4Step(w.eos, rho, u, p, h, sign)
		pNext := p + h
		if rhoNext <= 0 {
			rhoNext = 1e-12
		}
		cNext := w.eos.SoundSpeed(rhoNext, pNext)
		lambdaNext := uNext + sign*cNext
		if lambdaPrev == 0 {
			return rho, u, p, headLambda, true
		}
		if !sameSign(lambdaPrev, lambdaNext) {
			t := lambdaPrev / (lambdaPrev - lambdaNext)
			return rho + t*(rhoNext-rho), u + t*(uNext-u), p + t*(pNext-p), headLambda, true
		}
		rho, u, p = rhoNext, uNext, pNext
		lambdaPrev = lambdaNext
	}
	return rho, u, p, headLambda, false
}

// hugoniotRho solves the Hugoniot jump condition
//
//	e(rho,p) - e(rhoK,pK) + 0.5*(pK+p)*(1/rho - 1/rhoK) = 0
//
// for the post-shock density rho, given the pre-shock state (rhoK,pK) and
// the post-shock pressure p, by a bracket-then-regula-falsi hybrid
// (grounded on ExactRiemannSolverBase's secant/bisection HugoniotEquation
// solve in original_source/ExactRiemannSolverBase.h).
func hugoniotRho(eos material.EOS, rhoK, pK, p float64, cfg Config) float64 {
	g := func(rho float64) float64 {
		if rho <= 0 {
			return 1e300
		}
		return eos.E(rho, p) - eos.E(rhoK, pK) + 0.5*(pK+p)*(1/rho-1/rhoK)
	}
	a := rhoK
	fa := g(a * (1 + 1e-9))
	b := rhoK * 2
	fb := g(b)
	it := 0
	for sameSign(fa, fb) && it < cfg.MaxItsBracket {
		b *= 2
		fb = g(b)
		it++
	}
	if sameSign(fa, fb) {
		return rhoK
	}
	for it := 0; it < cfg.MaxItsShock; it++ {
		c := b - fb*(b-a)/(fb-fa)
		if !(c > a && c < b) {
			c = 0.5 * (a + b)
		}
		fc := g(c)
		if math.Abs(fc) < cfg.TolShock || (b-a) < cfg.TolShock*math.Max(1, b) {
			return c
		}
		if sameSign(fa, fc) {
			a, fa = c, fc
		} else {
			b, fb = c, fc
		}
	}
	return 0.5 * (a + b)
}

// uStarFromWave evaluates f_K(p): the velocity on the star side of wave
// K (1-wave when sign=-1, 3-wave when sign=+1) that crossing to pressure
// p implies, plus the corresponding star density. p<w.p selects a
// rarefaction (RK4 ODE integration); p>=w.p selects a shock (Hugoniot
// solve)
func uStarFromWave(w wave, p, sign float64, cfg Config) (uStar, rhoStar float64) {
	if p == w.p {
		return w.u, w.rho
	}
	if p < w.p {
		return rarefactionIntegrate(w, p, sign, cfg)
	}
	rhoStar = hugoniotRho(w.eos, w.rho, w.p, p, cfg)
	j2 := (p - w.p) * (1/w.rho - 1/rhoStar)
	if j2 < 0 {
		j2 = 0
	}
	uStar = w.u + sign*math.Sqrt(j2)
	return uStar, rhoStar
}
