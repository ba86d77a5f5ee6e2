package riemann

import (
	"math"

	"github.com/notargets/m2c/material"
)

// sample resolves the seven-case xi=0 sampler: given the converged
// (pstar,ustar) and the star densities on each side, pick
// which of {unperturbed left, left star, vacuum, right star, unperturbed
// right} the interface sits in, covering left-shock/left-rarefaction
// crossed with right-shock/right-rarefaction plus the degenerate
// contact-exactly-at-xi=0 case.
func (s *Solver) sample(nx, ny, nz float64, left, right wave, tL, tR [3]float64, idL, idR int, rhoLstar, rhoRstar, ustar, pstar float64) (material.State, int) {
	if ustar >= 0 {
		return s.sampleSide(left, tL, nx, ny, nz, idL, rhoLstar, ustar, pstar, -1)
	}
	return s.sampleSide(right, tR, nx, ny, nz, idR, rhoRstar, ustar, pstar, +1)
}

// sampleSide samples xi=0 within one side's wave family (sign=-1 for the
// 1-wave/left family, sign=+1 for the 3-wave/right family), distinguishing
// a shock (single discontinuity speed) from a rarefaction (a fan, sampled
// by re-integrating and watching for a characteristic-speed sign change).
func (s *Solver) sampleSide(w wave, t [3]float64, nx, ny, nz float64, id int, rhoStar, ustar, pstar, sign float64) (material.State, int) {
	if pstar > w.p {
		// Shock: single speed S = w.u + sign*J/w.rho, with J the mass flux
		// through the shock, J^2 = (pstar-w.p)/(1/w.rho-1/rhoStar).
		dv := 1/w.rho - 1/rhoStar
		J := w.rho * w.eos.SoundSpeed(w.rho, w.p)
		if dv > 0 {
			J = math.Sqrt((pstar - w.p) / dv)
		}
		S := w.u + sign*J/w.rho
		if sign < 0 {
			if 0 < S {
				return fromNormal(w.rho, w.u, w.p, t, nx, ny, nz), id
			}
			return fromNormal(rhoStar, ustar, pstar, t, nx, ny, nz), id
		}
		if 0 > S {
			return fromNormal(w.rho, w.u, w.p, t, nx, ny, nz), id
		}
		return fromNormal(rhoStar, ustar, pstar, t, nx, ny, nz), id
	}

	// Rarefaction fan between w's state and the star state.
	rho, u, p, headLambda, found := rarefactionSampleXi0(w, pstar, sign, s.cfg)
	if found {
		return fromNormal(rho, u, p, t, nx, ny, nz), id
	}
	if (sign < 0 && headLambda >= 0) || (sign > 0 && headLambda <= 0) {
		return fromNormal(w.rho, w.u, w.p, t, nx, ny, nz), id
	}
	return fromNormal(rhoStar, ustar, pstar, t, nx, ny, nz), id
}
