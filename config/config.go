// Package config parses the YAML input deck describing a run: the
// material table, mesh extents, boundary conditions, initial-condition
// regions, embedded-surface file paths, and solver options.
package config

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
	"github.com/notargets/m2c/material"
)

// Struct tags below are "json", not "yaml": ghodss/yaml converts the
// document to JSON and unmarshals it with encoding/json, which only
// reads json tags.

// MaterialSpec names one entry of the material table (component A):
// an equation-of-state kind plus its parameters, resolved to a
// material.EOS value at setup time.
type MaterialSpec struct {
	Name  string             `json:"Name"`
	Kind  string             `json:"Kind"` // "ideal-gas" or "stiffened-gas"
	Gamma float64            `json:"Gamma"`
	Pc    float64            `json:"Pc"`
	Extra map[string]float64 `json:"Extra,omitempty"`
}

// RegionSpec describes one initial-condition region: an axis-aligned
// box (or, absent bounds, the whole domain) filled with a uniform
// primitive state and a material id.
type RegionSpec struct {
	MaterialName string     `json:"Material"`
	Lo           [3]float64 `json:"Lo"`
	Hi           [3]float64 `json:"Hi"`
	Rho          float64    `json:"Rho"`
	U            float64    `json:"U"`
	V            float64    `json:"V"`
	W            float64    `json:"W"`
	P            float64    `json:"P"`
}

// MeshSpec describes the structured grid extents and spacing
// (component B).
type MeshSpec struct {
	Nx         int        `json:"Nx"`
	Ny         int        `json:"Ny"`
	Nz         int        `json:"Nz"`
	Lo         [3]float64 `json:"Lo"`
	Hi         [3]float64 `json:"Hi"`
	GhostDepth int        `json:"GhostDepth"`
}

// SurfaceSpec names one embedded-surface triangle-mesh file path and
// the material id it encloses (component F).
type SurfaceSpec struct {
	Path       string `json:"Path"`
	MaterialID int    `json:"MaterialID"`
}

// SolverOptions covers the couplings and tolerances spanning
// components D, H, I, J, K.
type SolverOptions struct {
	Mode                  string  `json:"Mode"` // "simple", "simpler", "simplec"
	CFL                   float64 `json:"CFL"`
	FinalTime             float64 `json:"FinalTime"`
	MaxIterations         int     `json:"MaxIterations"`
	ConvergenceTolerance  float64 `json:"ConvergenceTolerance"`
	MultiphaseUpdatePolicy string `json:"MultiphaseUpdatePolicy"` // "riemann" or "extrapolation"
	ReinitializationSteps int     `json:"ReinitializationSteps"`
}

// Deck is the top-level parsed input deck.
type Deck struct {
	Title     string         `json:"Title"`
	Materials []MaterialSpec `json:"Materials"`
	Mesh      MeshSpec       `json:"Mesh"`
	Regions   []RegionSpec   `json:"Regions"`
	Surfaces  []SurfaceSpec  `json:"Surfaces"`
	Solver    SolverOptions  `json:"Solver"`
	BCs       map[string]map[string]float64 `json:"BCs"`
}

// Parse unmarshals a YAML input deck.
func (d *Deck) Parse(data []byte) error {
	return yaml.Unmarshal(data, d)
}

// ResolveMaterials builds a material.Table from the deck's material
// list, plus a name-to-index map for resolving RegionSpec.MaterialName
// at initial-condition setup. Configuration errors (an unrecognized
// Kind) are returned, never panicked.
func (d *Deck) ResolveMaterials() (*material.Table, map[string]int, error) {
	eos := make([]material.EOS, 0, len(d.Materials))
	index := make(map[string]int, len(d.Materials))
	for i, m := range d.Materials {
		switch m.Kind {
		case "ideal-gas":
			eos = append(eos, material.NewIdealGas(m.Gamma))
		case "stiffened-gas":
			eos = append(eos, material.NewStiffenedGas(m.Gamma, m.Pc))
		default:
			return nil, nil, fmt.Errorf("config: material %q has unrecognized Kind %q", m.Name, m.Kind)
		}
		index[m.Name] = i
	}
	return material.NewTable(eos...), index, nil
}

// Validate reports the first configuration error found: missing mesh
// extents, a region naming a material that isn't in the table, or an
// unrecognized solver mode. Configuration errors are returned, never
// panicked -- the CLI prints them to stderr and exits -1.
func (d *Deck) Validate() error {
	if d.Mesh.Nx <= 0 || d.Mesh.Ny <= 0 || d.Mesh.Nz <= 0 {
		return fmt.Errorf("config: mesh dimensions must be positive, got (%d,%d,%d)", d.Mesh.Nx, d.Mesh.Ny, d.Mesh.Nz)
	}
	names := make(map[string]bool, len(d.Materials))
	for _, m := range d.Materials {
		names[m.Name] = true
	}
	for _, r := range d.Regions {
		if !names[r.MaterialName] {
			return fmt.Errorf("config: region references unknown material %q", r.MaterialName)
		}
	}
	switch d.Solver.Mode {
	case "simple", "simpler", "simplec", "":
	default:
		return fmt.Errorf("config: unrecognized solver mode %q", d.Solver.Mode)
	}
	return nil
}

// Print writes a human-readable echo of the deck, with a deterministic
// key order for any map fields.
func (d *Deck) Print() {
	fmt.Printf("%q\t\t= Title\n", d.Title)
	fmt.Printf("%8.5f\t\t= CFL\n", d.Solver.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", d.Solver.FinalTime)
	fmt.Printf("[%s]\t\t= Solver Mode\n", d.Solver.Mode)
	fmt.Printf("(%d,%d,%d)\t\t= Mesh dims\n", d.Mesh.Nx, d.Mesh.Ny, d.Mesh.Nz)

	keys := make([]string, 0, len(d.BCs))
	for k := range d.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("BCs[%s] = %v\n", k, d.BCs[k])
	}
}
