/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/notargets/m2c/config"
	"github.com/notargets/m2c/internal/logwarn"
	"github.com/notargets/m2c/simple"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario from a YAML input deck",
	Run: func(cmd *cobra.Command, args []string) {
		deckPath, _ := cmd.Flags().GetString("deck")
		if deckPath == "" {
			fmt.Fprintln(os.Stderr, "run: --deck is required")
			os.Exit(-1)
		}
		os.Exit(runDeck(deckPath))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("deck", "", "path to the YAML input deck")
}

func runDeck(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	var d config.Deck
	if err := d.Parse(data); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	if err := d.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	d.Print()

	switch d.Solver.Mode {
	case "simple", "":
		return runIncompressible(d, simple.SIMPLE)
	case "simpler":
		return runIncompressible(d, simple.SIMPLER)
	case "simplec":
		return runIncompressible(d, simple.SIMPLEC)
	default:
		fmt.Fprintf(os.Stderr, "run: unsupported solver mode %q\n", d.Solver.Mode)
		return -1
	}
}

func runIncompressible(d config.Deck, mode simple.Mode) int {
	dims := simple.Dims{Nx: d.Mesh.Nx, Ny: d.Mesh.Ny, Nz: d.Mesh.Nz}
	h := (d.Mesh.Hi[0] - d.Mesh.Lo[0]) / float64(d.Mesh.Nx)
	if h <= 0 {
		h = 1
	}
	st := simple.NewState(dims, h, 1.0, 1e-3)

	cfg := simple.DefaultConfig(mode)
	if d.Solver.ConvergenceTolerance > 0 {
		cfg.ConvergenceTolerance = d.Solver.ConvergenceTolerance
	}
	if d.Solver.MaxIterations > 0 {
		cfg.MaxIts = d.Solver.MaxIterations
	}

	drv := simple.NewDriver(cfg, simple.BoundaryConditions{})
	residual, converged, iterations := drv.Step(st, true)
	if !converged {
		logwarn.Warnf("SIMPLE did not converge after %d iterations (residual %g)", iterations, residual)
	}
	fmt.Printf("residual=%g converged=%v iterations=%d\n", residual, converged, iterations)
	return 0
}
