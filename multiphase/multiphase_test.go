package multiphase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/m2c/material"
	"github.com/notargets/m2c/riemann"
)

func TestGatherFaceContributionsFiltersByResolvedID(t *testing.T) {
	cache := riemann.NewSolutionCache()
	cache.Store(riemann.FaceKey{I: 4, J: 5, K: 5, Axis: 0}, riemann.Result{
		IDstar: 7,
		VstarL: material.State{Rho: 1, U: 2, P: 1},
		VstarR: material.State{Rho: 1, U: 2, P: 1},
	})
	cache.Store(riemann.FaceKey{I: 5, J: 5, K: 5, Axis: 0}, riemann.Result{
		IDstar: 3, // different id: the +X face resolved to a different material
		VstarL: material.State{Rho: 5, U: -9, P: 1},
		VstarR: material.State{Rho: 5, U: -9, P: 1},
	})

	cs := GatherFaceContributions(cache, 5, 5, 5, 7)
	assert.Len(t, cs, 1)
	assert.True(t, cs[0].IsInflow) // U=2 > 0 at the -X face is inflow into cell (5,5,5)
	assert.InDelta(t, 2, cs[0].InflowSpeed, 1e-12)
}

func TestUpdateRiemannBasedWeightsByInflowSpeed(t *testing.T) {
	cs := []RiemannContribution{
		{IsInflow: true, InflowSpeed: 1, State: material.State{Rho: 1, P: 1}},
		{IsInflow: true, InflowSpeed: 3, State: material.State{Rho: 5, P: 9}},
	}
	out, ok := UpdateRiemannBased(cs, true)
	assert.True(t, ok)
	// (1*1 + 3*5) / 4 = 4 ; (1*1 + 3*9) / 4 = 7
	assert.InDelta(t, 4, out.Rho, 1e-12)
	assert.InDelta(t, 7, out.P, 1e-12)
}

func TestUpdateRiemannBasedFallsBackToUniformWhenNoInflow(t *testing.T) {
	cs := []RiemannContribution{
		{IsInflow: false, InflowSpeed: 0, State: material.State{Rho: 2}},
		{IsInflow: false, InflowSpeed: 0, State: material.State{Rho: 4}},
	}
	out, ok := UpdateRiemannBased(cs, true)
	assert.True(t, ok)
	assert.InDelta(t, 3, out.Rho, 1e-12)
}

func TestUpdateRiemannBasedWithNoContributionsFails(t *testing.T) {
	_, ok := UpdateRiemannBased(nil, true)
	assert.False(t, ok)
}

func TestUpdateExtrapolationWeightsByUpwindCosine(t *testing.T) {
	neighbors := []ExtrapolationNeighbor{
		// directly upwind: displacement and velocity aligned, cos=1
		{SameID: true, Displacement: [3]float64{1, 0, 0}, Velocity: [3]float64{1, 0, 0}, State: material.State{Rho: 2}},
		// perpendicular: cos=0, excluded
		{SameID: true, Displacement: [3]float64{0, 1, 0}, Velocity: [3]float64{1, 0, 0}, State: material.State{Rho: 100}},
		// changed id this step: excluded regardless of geometry
		{SameID: true, ChangedID: true, Displacement: [3]float64{1, 0, 0}, Velocity: [3]float64{1, 0, 0}, State: material.State{Rho: 100}},
		// different id: excluded
		{SameID: false, Displacement: [3]float64{1, 0, 0}, Velocity: [3]float64{1, 0, 0}, State: material.State{Rho: 100}},
	}
	out, ok := UpdateExtrapolation(neighbors, nil)
	assert.True(t, ok)
	assert.InDelta(t, 2, out.Rho, 1e-12)
}

func TestUpdateExtrapolationWarnsAndZeroesOnNoWeight(t *testing.T) {
	var warned string
	neighbors := []ExtrapolationNeighbor{
		{SameID: true, Displacement: [3]float64{0, 1, 0}, Velocity: [3]float64{1, 0, 0}, State: material.State{Rho: 9}},
	}
	out, ok := UpdateExtrapolation(neighbors, func(msg string) { warned = msg })
	assert.False(t, ok)
	assert.Equal(t, material.State{}, out)
	assert.NotEmpty(t, warned)
}
