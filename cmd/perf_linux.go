//go:build linux

package cmd

import (
	"fmt"
	"os"

	perf "github.com/hodgesds/perf-utils"
)

// perf_event_open type/config values for the retired-instructions
// hardware counter -- stable kernel ABI constants (linux/perf_event.h),
// not exported by the perf-utils wrapper.
const (
	perfTypeHardware        = 0 // PERF_TYPE_HARDWARE
	perfCountHwInstructions = 1 // PERF_COUNT_HW_INSTRUCTIONS
)

// startPerfCounters enables retired-instruction counting for the
// current process on Linux via perf_event_open, returning a stop
// function that prints the final count. On any setup error it warns
// and returns a no-op, never failing the benchmark outright.
func startPerfCounters() func() {
	profiler, err := perf.NewProfiler(perfTypeHardware, perfCountHwInstructions, os.Getpid(), -1)
	if err != nil {
		fmt.Println("perf counters unavailable:", err)
		return func() {}
	}
	if err := profiler.Start(); err != nil {
		fmt.Println("perf counters unavailable:", err)
		return func() {}
	}
	return func() {
		var v perf.ProfileValue
		if err := profiler.Profile(&v); err != nil {
			fmt.Println("perf counters read failed:", err)
		} else {
			fmt.Printf("instructions: %d\n", v.Value)
		}
		profiler.Stop()
	}
}
