// Package output names the external-collaborator contracts for
// writing simulation results: full-field snapshots (VTK or similar),
// point probes, and line plots. None of these are implemented here --
// file formats, mesh readers, and plotting are explicitly out of
// scope -- but the core still needs an interface to call through so a
// driver can be written and tested without a real writer attached.
package output

import "github.com/notargets/m2c/grid"

// SnapshotWriter persists a full-field dump of a rank's subdomain at a
// given simulation time. A real implementation (VTK, HDF5, ...) lives
// outside this module.
type SnapshotWriter interface {
	WriteSnapshot(time float64, fields map[string]*grid.Field[float64]) error
}

// ProbeWriter records the value of named fields at a fixed set of grid
// points over time.
type ProbeWriter interface {
	WriteProbe(time float64, point [3]float64, values map[string]float64) error
}

// LinePlotWriter records a 1-D slice of named fields along a line
// through the domain, for convergence/profile plots.
type LinePlotWriter interface {
	WriteLine(time float64, axis int, values map[string][]float64) error
}

// NullWriter implements all three interfaces as no-ops, so a driver
// can run with no attached writer configured.
type NullWriter struct{}

func (NullWriter) WriteSnapshot(time float64, fields map[string]*grid.Field[float64]) error {
	return nil
}
func (NullWriter) WriteProbe(time float64, point [3]float64, values map[string]float64) error {
	return nil
}
func (NullWriter) WriteLine(time float64, axis int, values map[string][]float64) error { return nil }
