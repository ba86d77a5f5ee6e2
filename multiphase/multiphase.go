// Package multiphase implements the multiphase state updater: filling
// in the primitive state at a cell whose material id changed between
// steps, either by reusing the cached Riemann solutions from the flux
// sweep that just ran, or by extrapolating from same-id neighbors that
// did not themselves change id.
package multiphase

import (
	"math"

	"github.com/notargets/m2c/material"
	"github.com/notargets/m2c/riemann"
)

// RiemannContribution is one face's candidate contribution to the
// Riemann-based update of a cell whose id changed to newID.
type RiemannContribution struct {
	IsInflow    bool // true if the star velocity at this face points into the cell
	InflowSpeed float64 // magnitude of the inflow component, used as the averaging weight
	State       material.State
}

// GatherFaceContributions reads the six face-adjacent entries already
// present in cache (populated during the Godunov flux sweep for this
// step) and returns the ones whose resolved material id matches newID,
// selecting the star state on the correct side of each face.
func GatherFaceContributions(cache *riemann.SolutionCache, i, j, k, newID int) []RiemannContribution {
	type face struct {
		key        riemann.FaceKey
		cellIsLeft bool
		normal     [3]float64
	}
	faces := [6]face{
		{riemann.FaceKey{I: i - 1, J: j, K: k, Axis: 0}, false, [3]float64{-1, 0, 0}},
		{riemann.FaceKey{I: i, J: j, K: k, Axis: 0}, true, [3]float64{1, 0, 0}},
		{riemann.FaceKey{I: i, J: j - 1, K: k, Axis: 1}, false, [3]float64{0, -1, 0}},
		{riemann.FaceKey{I: i, J: j, K: k, Axis: 1}, true, [3]float64{0, 1, 0}},
		{riemann.FaceKey{I: i, J: j, K: k - 1, Axis: 2}, false, [3]float64{0, 0, -1}},
		{riemann.FaceKey{I: i, J: j, K: k, Axis: 2}, true, [3]float64{0, 0, 1}},
	}
	var out []RiemannContribution
	for _, f := range faces {
		res, ok := cache.Get(f.key)
		if !ok || res.IDstar != newID {
			continue
		}
		state := res.VstarR
		if f.cellIsLeft {
			state = res.VstarL
		}
		un := state.NormalVelocity(f.normal[0], f.normal[1], f.normal[2])
		out = append(out, RiemannContribution{IsInflow: un < 0, InflowSpeed: -un, State: state})
	}
	return out
}

// UpdateRiemannBased implements the Riemann-based policy: weight
// inflowing same-id contributions by inflow speed and renormalize;
// fall back to uniform averaging over all same-id contributions if none
// are inflowing (upwind=false skips the inflow filter entirely).
func UpdateRiemannBased(contributions []RiemannContribution, upwind bool) (material.State, bool) {
	if len(contributions) == 0 {
		return material.State{}, false
	}
	if upwind {
		var inflow []RiemannContribution
		for _, c := range contributions {
			if c.IsInflow {
				inflow = append(inflow, c)
			}
		}
		if len(inflow) > 0 {
			return weightedAverage(inflow), true
		}
	}
	return uniformAverage(contributions), true
}

func weightedAverage(cs []RiemannContribution) material.State {
	var sumW float64
	var out material.State
	for _, c := range cs {
		w := math.Abs(c.InflowSpeed)
		sumW += w
		out.Rho += w * c.State.Rho
		out.U += w * c.State.U
		out.V += w * c.State.V
		out.W += w * c.State.W
		out.P += w * c.State.P
	}
	if sumW == 0 {
		return uniformAverage(cs)
	}
	out.Rho /= sumW
	out.U /= sumW
	out.V /= sumW
	out.W /= sumW
	out.P /= sumW
	return out
}

func uniformAverage(cs []RiemannContribution) material.State {
	var out material.State
	n := float64(len(cs))
	for _, c := range cs {
		out.Rho += c.State.Rho
		out.U += c.State.U
		out.V += c.State.V
		out.W += c.State.W
		out.P += c.State.P
	}
	out.Rho /= n
	out.U /= n
	out.V /= n
	out.W /= n
	out.P /= n
	return out
}

// ExtrapolationNeighbor is a same-position-frame neighbor cell used by
// the extrapolation policy.
type ExtrapolationNeighbor struct {
	SameID       bool // whether the neighbor's id equals the cell's new id
	ChangedID    bool // whether the neighbor's own id changed this step
	Displacement [3]float64 // x_cell - x_neighbor
	Velocity     [3]float64
	State        material.State
}

// UpdateExtrapolation implements the extrapolation policy: weight each
// eligible neighbor by max(0, cos(angle between displacement and the
// neighbor's velocity)), i.e. only neighbors whose flow points toward
// the cell contribute. warn is called (if non-nil) when every weight is
// zero, per the "emit a warning and leave the cell zero" contract.
func UpdateExtrapolation(neighbors []ExtrapolationNeighbor, warn func(string)) (material.State, bool) {
	var sumW float64
	var out material.State
	for _, nb := range neighbors {
		if nb.ChangedID || !nb.SameID {
			continue
		}
		dNorm := norm(nb.Displacement)
		vNorm := norm(nb.Velocity)
		if dNorm == 0 || vNorm == 0 {
			continue
		}
		cos := dot(nb.Displacement, nb.Velocity) / (dNorm * vNorm)
		w := math.Max(0, cos)
		if w == 0 {
			continue
		}
		sumW += w
		out.Rho += w * nb.State.Rho
		out.U += w * nb.State.U
		out.V += w * nb.State.V
		out.W += w * nb.State.W
		out.P += w * nb.State.P
	}
	if sumW == 0 {
		if warn != nil {
			warn("multiphase: extrapolation found no upwind-direction neighbor, leaving cell state zero")
		}
		return material.State{}, false
	}
	out.Rho /= sumW
	out.U /= sumW
	out.V /= sumW
	out.W /= sumW
	out.P /= sumW
	return out, true
}

func norm(v [3]float64) float64 { return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]) }
func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }
