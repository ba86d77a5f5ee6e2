package simple

import (
	"math"

	"github.com/notargets/m2c/linsolve"
)

// Mode selects which member of the SIMPLE family Driver.Step runs.
type Mode int

const (
	SIMPLE Mode = iota
	SIMPLER
	SIMPLEC
)

// Config holds the outer-loop and linear-solve tolerances for one
// Driver.
type Config struct {
	Mode                 Mode
	E                     float64 // momentum false-time-step relaxation
	AlphaP                float64 // pressure-correction relaxation; SIMPLEC forces 1
	MaxIts                int
	FirstStepMultiplier   int // MaxIts is multiplied by this on the first step
	ConvergenceTolerance  float64
	CGTolerance           float64
	CGMaxIters            int
}

func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:                 mode,
		E:                    0.7,
		AlphaP:               0.3,
		MaxIts:               50,
		FirstStepMultiplier:  10,
		ConvergenceTolerance: 1e-4,
		CGTolerance:          1e-8,
		CGMaxIters:           500,
	}
}

// Workspace holds the scratch fields one outer iteration needs: the
// momentum-diagonal inverses (the coefficients the pressure-correction
// operator and the velocity update both read) and the assembled
// pressure-correction right-hand side.
type Workspace struct {
	DX, DY, DZ []float64
	Pprime     []float64
	B          []float64
}

// Driver runs the SIMPLE/SIMPLER/SIMPLEC outer iteration against a
// State.
type Driver struct {
	cfg Config
	bc  BoundaryConditions
}

func NewDriver(cfg Config, bc BoundaryConditions) *Driver {
	return &Driver{cfg: cfg, bc: bc}
}

// Step runs the outer pressure-velocity iteration to convergence (or
// MaxIts, multiplied by FirstStepMultiplier if firstStep), mutating st
// in place. It returns the final relative velocity-change norm, whether
// it converged, and the iteration count actually run.
func (drv *Driver) Step(st *State, firstStep bool) (residual float64, converged bool, iterations int) {
	maxIts := drv.cfg.MaxIts
	if firstStep {
		maxIts *= drv.cfg.FirstStepMultiplier
	}
	if maxIts < 1 {
		maxIts = 1
	}

	it := 0
	var last float64
	for ; it < maxIts; it++ {
		last = drv.outerIteration(st)
		if last < drv.cfg.ConvergenceTolerance {
			it++
			break
		}
	}
	return last, last < drv.cfg.ConvergenceTolerance, it
}

func (drv *Driver) outerIteration(st *State) float64 {
	uOld := append([]float64(nil), st.U...)
	vOld := append([]float64(nil), st.V...)
	wOld := append([]float64(nil), st.W...)

	// Step 2: momentum equations with upwinding and false-time-step
	// relaxation, one velocity Krylov solve per component.
	au, bu, dx := assembleMomentum(st.uLattice(), st.U, 0, st, drv.bc, drv.cfg.E)
	av, bv, dy := assembleMomentum(st.vLattice(), st.V, 1, st, drv.bc, drv.cfg.E)
	aw, bw, dz := assembleMomentum(st.wLattice(), st.W, 2, st, drv.bc, drv.cfg.E)

	uStar, _ := linsolve.SolveCG(au.ToCSR(), bu, st.U, drv.cfg.CGTolerance, drv.cfg.CGMaxIters)
	vStar, _ := linsolve.SolveCG(av.ToCSR(), bv, st.V, drv.cfg.CGTolerance, drv.cfg.CGMaxIters)
	wStar, _ := linsolve.SolveCG(aw.ToCSR(), bw, st.W, drv.cfg.CGTolerance, drv.cfg.CGMaxIters)
	st.U, st.V, st.W = uStar, vStar, wStar

	// Step 3 (SIMPLER only): solve a pressure predictor from the
	// hat-velocities before solving for the correction.
	if drv.cfg.Mode == SIMPLER {
		aHat, bHat := assemblePressureCorrection(st, dx, dy, dz)
		linsolve.PinRow(aHat, bHat, 0)
		pHat, _ := linsolve.SolveCG(aHat.ToCSR(), bHat, st.P, drv.cfg.CGTolerance, drv.cfg.CGMaxIters)
		st.P = pHat
	}

	// Step 4: assemble the pressure-correction Poisson operator, pinned
	// at the corner cell to remove the null space.
	aP, bP := assemblePressureCorrection(st, dx, dy, dz)
	linsolve.PinRow(aP, bP, 0)

	// Step 5: solve for p' and correct u,v,w,p.
	pprime, _ := linsolve.SolveCG(aP.ToCSR(), bP, nil, drv.cfg.CGTolerance, drv.cfg.CGMaxIters)

	alphaP := drv.cfg.AlphaP
	if drv.cfg.Mode == SIMPLEC {
		alphaP = 1
	}
	drv.updateStates(st, pprime, dx, dy, dz, alphaP)

	// Step 6: relative velocity-change norm over the whole outer step.
	return relativeDelta(uOld, st.U, vOld, st.V, wOld, st.W)
}

// updateStates applies the SIMPLE correction step: u <- u* - DX*grad(p'),
// v and w likewise, p <- p + alphaP*p'. pprime is read directly (no
// stale alias), and the w update reads the w-component array (dz, st.W),
// never the v-component's storage.
func (drv *Driver) updateStates(st *State, pprime, dx, dy, dz []float64, alphaP float64) {
	d := st.Dims
	h := st.H

	uLat := st.uLattice()
	for k := 0; k < uLat.nz; k++ {
		for j := 0; j < uLat.ny; j++ {
			for i := 0; i < uLat.nx; i++ {
				if !isInterior(uLat, i, j, k) {
					continue
				}
				idx := d.uIdx(i, j, k)
				dp := pprime[d.cellIdx(i-1, j, k)] - pprime[d.cellIdx(i, j, k)]
				st.U[idx] += dx[idx] * dp / h
			}
		}
	}

	vLat := st.vLattice()
	for k := 0; k < vLat.nz; k++ {
		for j := 0; j < vLat.ny; j++ {
			for i := 0; i < vLat.nx; i++ {
				if !isInterior(vLat, i, j, k) {
					continue
				}
				idx := d.vIdx(i, j, k)
				dp := pprime[d.cellIdx(i, j-1, k)] - pprime[d.cellIdx(i, j, k)]
				st.V[idx] += dy[idx] * dp / h
			}
		}
	}

	wLat := st.wLattice()
	for k := 0; k < wLat.nz; k++ {
		for j := 0; j < wLat.ny; j++ {
			for i := 0; i < wLat.nx; i++ {
				if !isInterior(wLat, i, j, k) {
					continue
				}
				idx := d.wIdx(i, j, k)
				dp := pprime[d.cellIdx(i, j, k-1)] - pprime[d.cellIdx(i, j, k)]
				st.W[idx] += dz[idx] * dp / h
			}
		}
	}

	for c := 0; c < d.NCells(); c++ {
		st.P[c] += alphaP * pprime[c]
	}
}

func relativeDelta(uOld, uNew, vOld, vNew, wOld, wNew []float64) float64 {
	var num, den float64
	accumulate := func(old, new_ []float64) {
		for i := range old {
			d := new_[i] - old[i]
			num += d * d
			den += old[i] * old[i]
		}
	}
	accumulate(uOld, uNew)
	accumulate(vOld, vNew)
	accumulate(wOld, wNew)
	if den == 0 {
		return math.Sqrt(num)
	}
	return math.Sqrt(num / den)
}
