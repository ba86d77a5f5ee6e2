package material

import "math"

// State is the primitive 5-tuple: density, the three velocity
// components, and pressure, stored at cell centers.
type State struct {
	Rho        float64
	U, V, W    float64
	P          float64
}

// Velocity returns the velocity vector as three scalars, for call sites
// that want to dot it against a face normal.
func (s State) Velocity() (u, v, w float64) { return s.U, s.V, s.W }

// NormalVelocity projects the velocity onto a unit vector, e.g. a face
// normal or an edge direction.
func (s State) NormalVelocity(nx, ny, nz float64) float64 {
	return s.U*nx + s.V*ny + s.W*nz
}

// Conserved is the conservative 5-tuple (rho, rho*u, rho*v, rho*w, E),
// where E is the total energy per unit volume.
type Conserved struct {
	Rho, RhoU, RhoV, RhoW, E float64
}

// ToConserved converts a primitive state to conservative variables using
// the given EOS for the internal energy term.
func ToConserved(s State, eos EOS) Conserved {
	ke := 0.5 * s.Rho * (s.U*s.U + s.V*s.V + s.W*s.W)
	e := eos.E(s.Rho, s.P)
	return Conserved{
		Rho:  s.Rho,
		RhoU: s.Rho * s.U,
		RhoV: s.Rho * s.V,
		RhoW: s.Rho * s.W,
		E:    s.Rho*e + ke,
	}
}

// ToPrimitive is the exact inverse of ToConserved: the round-trip is the
// identity up to floating point on valid states.
func ToPrimitive(c Conserved, eos EOS) State {
	if c.Rho <= 0 {
		return State{}
	}
	u, v, w := c.RhoU/c.Rho, c.RhoV/c.Rho, c.RhoW/c.Rho
	ke := 0.5 * c.Rho * (u*u + v*v + w*w)
	e := (c.E - ke) / c.Rho
	return State{Rho: c.Rho, U: u, V: v, W: w, P: eos.P(c.Rho, e)}
}

// ClipResult reports what Clip had to do to a state, for the caller to
// count and warn
type ClipResult struct {
	ClippedDensity  bool
	ClippedPressure bool
	BelowFailure    bool
}

// Clip enforces rho>0, p>=floor on a state. It never panics: the caller
// decides, via the returned ClipResult, whether to count/warn (real
// domain) or to stay silent (ghost domain).
func Clip(s State, eos EOS) (State, ClipResult) {
	const densityFloor = 1e-8
	var r ClipResult
	if s.Rho <= 0 || math.IsNaN(s.Rho) {
		s.Rho = densityFloor
		r.ClippedDensity = true
	}
	floor := eos.PressureFloor()
	if s.P < floor || math.IsNaN(s.P) {
		if s.P < eos.FailureThreshold() {
			r.BelowFailure = true
		}
		s.P = floor
		r.ClippedPressure = true
	}
	return s, r
}
