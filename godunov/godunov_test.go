package godunov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/m2c/grid"
	"github.com/notargets/m2c/material"
	"github.com/notargets/m2c/riemann"
)

type constRecon struct {
	VL, VR     material.State
	idL, idR   int
}

func (c constRecon) Face(axis grid.Axis, i, j, k int) (material.State, material.State, int, int) {
	return c.VL, c.VR, c.idL, c.idR
}

func TestFluxIdenticalStatesMatchesAnalyticEulerFlux(t *testing.T) {
	table := material.NewTable(material.NewIdealGas(1.4))
	flux := NewFlux(riemann.NewSolver(riemann.DefaultConfig(), table), table)

	V := material.State{Rho: 1.0, U: 0.5, P: 1.0}
	recon := constRecon{VL: V, VR: V, idL: 0, idR: 0}

	got, res := flux.Evaluate(recon, grid.X, 3, 0, 0, 1, 0, 0, nil)
	want := PhysicalFlux(V, table.Get(0), 1, 0, 0)

	assert.Equal(t, riemann.IdenticalStates, res.Status)
	assert.InDelta(t, want.Rho, got.Rho, 1e-12)
	assert.InDelta(t, want.RhoU, got.RhoU, 1e-12)
	assert.InDelta(t, want.E, got.E, 1e-12)
}

func TestFluxCachesSolution(t *testing.T) {
	table := material.NewTable(material.NewIdealGas(1.4))
	flux := NewFlux(riemann.NewSolver(riemann.DefaultConfig(), table), table)
	cache := riemann.NewSolutionCache()

	recon := constRecon{
		VL:  material.State{Rho: 1.0, P: 1.0},
		VR:  material.State{Rho: 0.125, P: 0.1},
		idL: 0, idR: 0,
	}
	_, _ = flux.Evaluate(recon, grid.X, 1, 2, 3, 1, 0, 0, cache)

	_, ok := cache.Get(riemann.FaceKey{I: 1, J: 2, K: 3, Axis: int(grid.X)})
	assert.True(t, ok)
	assert.Equal(t, 1, cache.Len())
}
