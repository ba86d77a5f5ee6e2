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
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark a hot numerical kernel",
}

var benchRiemannCmd = &cobra.Command{
	Use:   "riemann",
	Short: "Repeatedly solve the Sod shock tube Riemann problem and report throughput",
	Run: func(cmd *cobra.Command, args []string) {
		n, _ := cmd.Flags().GetInt("n")
		cpuprofile, _ := cmd.Flags().GetBool("cpuprofile")

		if cpuprofile {
			defer profile.Start(profile.CPUProfile).Stop()
		}

		stop := startPerfCounters()
		defer stop()

		start := time.Now()
		for i := 0; i < n; i++ {
			solveRiemann(1.0, 1.0, 1.4, 0.125, 0.1, 1.4)
		}
		elapsed := time.Since(start)
		fmt.Printf("%d solves in %s (%g solves/sec)\n", n, elapsed, float64(n)/elapsed.Seconds())
	},
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.AddCommand(benchRiemannCmd)
	benchRiemannCmd.Flags().Int("n", 100000, "number of Riemann solves to run")
	benchRiemannCmd.Flags().Bool("cpuprofile", false, "write a CPU profile via github.com/pkg/profile")
}
