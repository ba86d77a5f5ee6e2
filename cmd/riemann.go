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

	"github.com/notargets/m2c/material"
	"github.com/notargets/m2c/riemann"
	"github.com/spf13/cobra"
)

var riemannCmd = &cobra.Command{
	Use:   "riemann",
	Short: "Solve a single two-material Riemann problem and print the star state",
	Run: func(cmd *cobra.Command, args []string) {
		rhoL, _ := cmd.Flags().GetFloat64("rhoL")
		pL, _ := cmd.Flags().GetFloat64("pL")
		rhoR, _ := cmd.Flags().GetFloat64("rhoR")
		pR, _ := cmd.Flags().GetFloat64("pR")
		gammaL, _ := cmd.Flags().GetFloat64("gammaL")
		gammaR, _ := cmd.Flags().GetFloat64("gammaR")

		res := solveRiemann(rhoL, pL, gammaL, rhoR, pR, gammaR)
		fmt.Printf("status=%v p*=%g u*=%g idstar=%d\n", res.Status, res.Pstar, res.Ustar, res.IDstar)
	},
}

func init() {
	rootCmd.AddCommand(riemannCmd)
	riemannCmd.Flags().Float64("rhoL", 1.0, "left density")
	riemannCmd.Flags().Float64("pL", 1.0, "left pressure")
	riemannCmd.Flags().Float64("gammaL", 1.4, "left material gamma")
	riemannCmd.Flags().Float64("rhoR", 0.125, "right density")
	riemannCmd.Flags().Float64("pR", 0.1, "right pressure")
	riemannCmd.Flags().Float64("gammaR", 1.4, "right material gamma")
}

func solveRiemann(rhoL, pL, gammaL, rhoR, pR, gammaR float64) riemann.Result {
	table := material.NewTable(material.NewIdealGas(gammaL), material.NewIdealGas(gammaR))
	solver := riemann.NewSolver(riemann.DefaultConfig(), table)
	VL := material.State{Rho: rhoL, P: pL}
	VR := material.State{Rho: rhoR, P: pR}
	return solver.Solve(1, 0, 0, VL, 0, VR, 1)
}
