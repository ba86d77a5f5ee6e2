package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleDeck = `
Title: sod shock tube
Materials:
  - Name: air-left
    Kind: ideal-gas
    Gamma: 1.4
  - Name: air-right
    Kind: ideal-gas
    Gamma: 1.4
Mesh:
  Nx: 100
  Ny: 1
  Nz: 1
  GhostDepth: 2
Regions:
  - Material: air-left
    Rho: 1.0
    P: 1.0
  - Material: air-right
    Rho: 0.125
    P: 0.1
Solver:
  Mode: simple
  CFL: 0.5
  FinalTime: 0.2
  ConvergenceTolerance: 1e-4
`

func TestDeckParsesSampleYAML(t *testing.T) {
	var d Deck
	assert.NoError(t, d.Parse([]byte(sampleDeck)))
	assert.Equal(t, "sod shock tube", d.Title)
	assert.Len(t, d.Materials, 2)
	assert.Equal(t, 100, d.Mesh.Nx)
	assert.Equal(t, "simple", d.Solver.Mode)
	assert.NoError(t, d.Validate())

	table, index, err := d.ResolveMaterials()
	assert.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, 0, index["air-left"])
	assert.Equal(t, 1, index["air-right"])
}

func TestResolveMaterialsRejectsUnknownKind(t *testing.T) {
	d := Deck{Materials: []MaterialSpec{{Name: "x", Kind: "plasma"}}}
	_, _, err := d.ResolveMaterials()
	assert.Error(t, err)
}

func TestDeckValidateRejectsUnknownMaterial(t *testing.T) {
	d := Deck{
		Mesh:      MeshSpec{Nx: 1, Ny: 1, Nz: 1},
		Materials: []MaterialSpec{{Name: "a"}},
		Regions:   []RegionSpec{{MaterialName: "b"}},
	}
	assert.Error(t, d.Validate())
}

func TestDeckValidateRejectsBadMeshDims(t *testing.T) {
	d := Deck{Mesh: MeshSpec{Nx: 0, Ny: 1, Nz: 1}}
	assert.Error(t, d.Validate())
}

func TestDeckValidateRejectsUnknownSolverMode(t *testing.T) {
	d := Deck{Mesh: MeshSpec{Nx: 1, Ny: 1, Nz: 1}, Solver: SolverOptions{Mode: "bogus"}}
	assert.Error(t, d.Validate())
}
