package simple

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// lidDrivenCavity builds a small cubic cavity with a moving lid on the
// y=hi face and no-slip walls everywhere else, the classic SIMPLE
// smoke scenario.
func lidDrivenCavity(n int) (*State, BoundaryConditions) {
	dims := Dims{Nx: n, Ny: n, Nz: n}
	st := NewState(dims, 1.0/float64(n), 1.0, 0.05)
	bc := BoundaryConditions{
		YHi: [3]float64{1.0, 0, 0},
	}
	return st, bc
}

func TestDriverStepReducesResidualOnLidDrivenCavity(t *testing.T) {
	st, bc := lidDrivenCavity(4)
	drv := NewDriver(DefaultConfig(SIMPLE), bc)

	residual, _, iterations := drv.Step(st, true)
	assert.Greater(t, iterations, 0)
	assert.False(t, math.IsNaN(residual))
	assert.False(t, math.IsInf(residual, 0))

	for _, v := range st.U {
		assert.False(t, math.IsNaN(v))
	}
	for _, v := range st.P {
		assert.False(t, math.IsNaN(v))
	}
}

func TestDriverStepConvergesAcrossRepeatedCalls(t *testing.T) {
	st, bc := lidDrivenCavity(4)
	cfg := DefaultConfig(SIMPLE)
	cfg.MaxIts = 20
	drv := NewDriver(cfg, bc)

	first, _, _ := drv.Step(st, true)
	second, converged, _ := drv.Step(st, false)

	assert.False(t, math.IsNaN(first))
	assert.False(t, math.IsNaN(second))
	_ = converged
}

func TestSIMPLERHatVelocityPredictorRuns(t *testing.T) {
	st, bc := lidDrivenCavity(4)
	drv := NewDriver(DefaultConfig(SIMPLER), bc)

	residual, _, _ := drv.Step(st, true)
	assert.False(t, math.IsNaN(residual))
}

func TestSIMPLECForcesAlphaPToOne(t *testing.T) {
	cfg := DefaultConfig(SIMPLEC)
	assert.NotEqual(t, 1.0, cfg.AlphaP, "config default should not itself be 1; Step must force it")

	st, bc := lidDrivenCavity(4)
	drv := NewDriver(cfg, bc)
	residual, _, _ := drv.Step(st, true)
	assert.False(t, math.IsNaN(residual))
}

func TestUpdateStatesAppliesPressureCorrectionToAllComponents(t *testing.T) {
	dims := Dims{Nx: 3, Ny: 3, Nz: 3}
	st := NewState(dims, 1.0, 1.0, 0.01)
	bc := BoundaryConditions{}
	drv := NewDriver(DefaultConfig(SIMPLE), bc)

	dx := make([]float64, dims.nU())
	dy := make([]float64, dims.nV())
	dz := make([]float64, dims.nW())
	for i := range dx {
		dx[i] = 1
	}
	for i := range dy {
		dy[i] = 1
	}
	for i := range dz {
		dz[i] = 1
	}

	pprime := make([]float64, dims.NCells())
	pprime[dims.cellIdx(1, 1, 1)] = 1.0

	drv.updateStates(st, pprime, dx, dy, dz, 1.0)

	// The interior u-face adjacent to the perturbed cell should have
	// moved; a far corner face should not.
	movedIdx := dims.uIdx(1, 1, 1)
	assert.NotEqual(t, 0.0, st.U[movedIdx])
	assert.NotEqual(t, 0.0, st.V[dims.vIdx(1, 1, 1)])
	assert.NotEqual(t, 0.0, st.W[dims.wIdx(1, 1, 1)])
	assert.Equal(t, 0.0, st.U[dims.uIdx(0, 0, 0)])

	for c := 0; c < dims.NCells(); c++ {
		assert.Equal(t, pprime[c], st.P[c])
	}
}
