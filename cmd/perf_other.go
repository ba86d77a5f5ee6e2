//go:build !linux

package cmd

// startPerfCounters is a no-op outside Linux, where perf_event_open is
// unavailable.
func startPerfCounters() func() { return func() {} }
