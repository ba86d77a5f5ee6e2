// Package material implements the per-material equation-of-state (EOS)
// interface: pressure/energy/temperature/sound-speed relations, resolved
// once per material at setup time rather than dispatched virtually in the
// hot loop (the Riemann solver and Godunov flux only ever hold a narrow
// EOS value, never a class hierarchy).
package material

import "math"

// EOS is the per-material thermodynamic contract. Implementations must be
// pure functions of (rho, p) / (rho, e): no EOS method ever mutates shared
// state, so a *StiffenedGas value can be shared by reference
// across every rank without synchronization: a deep EOS class hierarchy
// collapses into a narrow sum type here instead.
type EOS interface {
	// P returns pressure given density and specific internal energy.
	P(rho, e float64) float64
	// E returns specific internal energy given density and pressure.
	E(rho, p float64) float64
	// SoundSpeed returns the sound speed given density and pressure.
	SoundSpeed(rho, p float64) float64
	// Temperature returns temperature given density and specific internal
	// energy.
	Temperature(rho, e float64) float64
	// RefTemperature is the material's reference temperature.
	RefTemperature() float64
	// PressureFloor is the minimum physically-admissible pressure; callers
	// clip to this value rather than aborting, incrementing a counter and
	// warning instead.
	PressureFloor() float64
	// FailureThreshold is the pressure below which a clamp must be flagged
	// to the caller as a failure rather than a routine clip.
	FailureThreshold() float64
}

// StiffenedGas implements p = (gamma-1)*rho*e - gamma*pc, the stiffened
// (and, at pc=0, ideal) gas law used by both the compressible gas and
// nearly-incompressible liquid materials alike (ideal-gas Sod tube,
// stiffened-gas water).
type StiffenedGas struct {
	Gamma float64 // ratio of specific heats
	Pc    float64 // stiffening pressure (0 for an ideal gas)
	Cv    float64 // specific heat at constant volume, for Temperature()
	T0    float64 // reference temperature
	Pfl   float64 // pressure floor
	Pfail float64 // failure threshold
}

// NewIdealGas returns a StiffenedGas with Pc=0, i.e. the calorically
// perfect gas p = (gamma-1)*rho*e used by the Sod shock tube.
func NewIdealGas(gamma float64) *StiffenedGas {
	return &StiffenedGas{
		Gamma: gamma,
		Cv:    1.0,
		Pfl:   1e-8,
		Pfail: -1e-6,
	}
}

// NewStiffenedGas returns a StiffenedGas material with a non-zero
// stiffening pressure, e.g. water (gamma approx 4.4-7.15, Pc approx
// 1-3e8 Pa depending on units).
func NewStiffenedGas(gamma, pc float64) *StiffenedGas {
	return &StiffenedGas{
		Gamma: gamma,
		Pc:    pc,
		Cv:    1.0,
		Pfl:   -pc + 1e-6,
		Pfail: -pc,
	}
}

func (g *StiffenedGas) P(rho, e float64) float64 {
	return (g.Gamma-1)*rho*e - g.Gamma*g.Pc
}

func (g *StiffenedGas) E(rho, p float64) float64 {
	if rho <= 0 {
		return 0
	}
	return (p + g.Gamma*g.Pc) / ((g.Gamma - 1) * rho)
}

func (g *StiffenedGas) SoundSpeed(rho, p float64) float64 {
	if rho <= 0 {
		return 0
	}
	arg := g.Gamma * (p + g.Pc) / rho
	if arg < 0 {
		arg = 0
	}
	return math.Sqrt(arg)
}

func (g *StiffenedGas) Temperature(rho, e float64) float64 {
	if g.Cv == 0 {
		return g.T0
	}
	p := g.P(rho, e)
	return g.T0 + (e-g.E(rho, p))/g.Cv + p/(rho*g.Cv*(g.Gamma-1))
}

func (g *StiffenedGas) RefTemperature() float64    { return g.T0 }
func (g *StiffenedGas) PressureFloor() float64      { return g.Pfl }
func (g *StiffenedGas) FailureThreshold() float64   { return g.Pfail }

// Table resolves a material id to its EOS at setup time. Lookups in the
// hot path (Riemann solve, flux evaluation) are a single slice index, not
// a virtual call through an interface hierarchy.
type Table struct {
	eos []EOS
}

// InactiveMaterialID names a cell that is excluded from the real domain
// (e.g. inside an embedded solid)
const InactiveMaterialID = -1

func NewTable(materials ...EOS) *Table {
	return &Table{eos: materials}
}

func (t *Table) Get(id int) EOS {
	if id < 0 || id >= len(t.eos) {
		panic("material.Table: id out of range")
	}
	return t.eos[id]
}

func (t *Table) Len() int { return len(t.eos) }

// Valid reports whether id is either InactiveMaterialID or a valid index
// into the table.
func (t *Table) Valid(id int) bool {
	return id == InactiveMaterialID || (id >= 0 && id < len(t.eos))
}
