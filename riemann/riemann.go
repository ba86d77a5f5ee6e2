// Package riemann implements an exact two-material Riemann solver, the
// numerically hard core of the Godunov flux. Given
// a left and right primitive state (each with its own material id and
// therefore potentially its own EOS), it finds the intermediate pressure
// p* and normal velocity u* that make the 1-wave and 3-wave relations
// agree, then samples the resulting self-similar solution at xi=0.
package riemann

import (
	"math"

	"github.com/notargets/m2c/material"
)

// Status reports how a solve resolved, for callers that want to count
// RIEMANN_FAILURE events without treating them as an error in the Go
// sense (the solver never returns a non-nil error; a failure is a
// Status, substituted with a configured fallback state).
type Status int

const (
	OK Status = iota
	Vacuum
	IdenticalStates
	Failure
)

// Config holds the tolerances and iteration caps for the iterative
// pressure solve.
type Config struct {
	TolMain         float64 // relative tolerance on the outer p* iteration
	MaxItsMain      int
	TolShock        float64 // tolerance on the Hugoniot secant/bisection solve
	MaxItsShock     int
	TolRarefaction  float64 // pressure-step tolerance for the RK4 rarefaction integration
	MaxItsBracket   int
	MinPressure     float64 // below this, the star region is replaced by vacuum
	FailureThreshold float64
	PressureAtFailure material.State // returned verbatim on RIEMANN_FAILURE
	IdenticalEps    float64 // ||VL-VR|| below this, with idL==idR, short-circuits to VL
}

// DefaultConfig returns reasonable tolerances, tight enough to resolve
// the Sod shock tube's p*,u* to within 1e-4.
func DefaultConfig() Config {
	return Config{
		TolMain:          1e-8,
		MaxItsMain:       200,
		TolShock:         1e-9,
		MaxItsShock:      200,
		TolRarefaction:   1e-3,
		MaxItsBracket:    60,
		MinPressure:      1e-8,
		FailureThreshold: -1e6,
		IdenticalEps:     1e-12,
	}
}

// Solver is the exact two-material Riemann solver. It is stateless across
// calls except for the iteration counters, which callers read to amortize
// integration paths across neighboring interfaces.
type Solver struct {
	cfg   Config
	table *material.Table

	It1Wave, It3Wave int
}

// NewSolver builds a Solver resolving material ids through table.
func NewSolver(cfg Config, table *material.Table) *Solver {
	return &Solver{cfg: cfg, table: table}
}

// Result is the full self-similar solution returned by Solve.
type Result struct {
	Status   Status
	Vstar    material.State // solution sampled at xi=0
	IDstar   int
	VstarL   material.State // left star state
	VstarR   material.State // right star state
	Pstar    float64
	Ustar    float64 // normal velocity in star region
}

// Solve computes the Riemann solution at xi=0 for left state VL (material
// idL) against right state VR (material idR), across the face with unit
// normal (nx,ny,nz) pointing from left to right.
func (s *Solver) Solve(nx, ny, nz float64, VL material.State, idL int, VR material.State, idR int) Result {
	if idL == idR && statesClose(VL, VR, s.cfg.IdenticalEps) {
		return Result{Status: IdenticalStates, Vstar: VL, IDstar: idL, VstarL: VL, VstarR: VL, Pstar: VL.P, Ustar: VL.NormalVelocity(nx, ny, nz)}
	}

	eosL, eosR := s.table.Get(idL), s.table.Get(idR)
	uL := VL.NormalVelocity(nx, ny, nz)
	uR := VR.NormalVelocity(nx, ny, nz)
	tL := tangential(VL, nx, ny, nz, uL)
	tR := tangential(VR, nx, ny, nz, uR)

	left := wave{rho: VL.Rho, u: uL, p: VL.P, eos: eosL}
	right := wave{rho: VR.Rho, u: uR, p: VR.P, eos: eosR}

	pstar, ustar, rhoLstar, rhoRstar, status := s.solvePStar(left, right)

	if status == Failure {
		f := s.cfg.PressureAtFailure
		return Result{Status: Failure, Vstar: f, IDstar: idL, VstarL: f, VstarR: f, Pstar: f.P}
	}

	if status == Vacuum {
		return s.vacuumSolution(nx, ny, nz, left, right, tL, tR, idL, idR)
	}

	VstarL := fromNormal(rhoLstar, ustar, pstar, tL, nx, ny, nz)
	VstarR := fromNormal(rhoRstar, ustar, pstar, tR, nx, ny, nz)

	Vs, IDs := s.sample(nx, ny, nz, left, right, tL, tR, idL, idR, rhoLstar, rhoRstar, ustar, pstar)

	return Result{
		Status: status, Vstar: Vs, IDstar: IDs,
		VstarL: VstarL, VstarR: VstarR, Pstar: pstar, Ustar: ustar,
	}
}

func statesClose(a, b material.State, eps float64) bool {
	d := math.Hypot(math.Hypot(a.Rho-b.Rho, a.U-b.U), math.Hypot(math.Hypot(a.V-b.V, a.W-b.W), a.P-b.P))
	return d < eps
}

// tangential returns the velocity component orthogonal to the face
// normal, carried unchanged into the corresponding side's star state.
func tangential(V material.State, nx, ny, nz, un float64) [3]float64 {
	return [3]float64{V.U - un*nx, V.V - un*ny, V.W - un*nz}
}

func fromNormal(rho, un, p float64, t [3]float64, nx, ny, nz float64) material.State {
	return material.State{
		Rho: rho,
		U:   un*nx + t[0],
		V:   un*ny + t[1],
		W:   un*nz + t[2],
		P:   p,
	}
}
