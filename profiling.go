package main

import (
	"os"
	"runtime/pprof"

	"github.com/sectorfs/goxts/internal/exitcodes"
	"github.com/sectorfs/goxts/internal/tlog"
)

// setupCpuprofile is called to handle a non-empty "-cpuprofile" cli argument
func setupCpuprofile(cpuprofileArg string) func() {
	tlog.Info.Printf("Writing CPU profile to %s", cpuprofileArg)
	f, err := os.Create(cpuprofileArg)
	if err != nil {
		tlog.Fatal.Println(err)
		os.Exit(exitcodes.Profiler)
	}
	err = pprof.StartCPUProfile(f)
	if err != nil {
		tlog.Fatal.Println(err)
		os.Exit(exitcodes.Profiler)
	}
	return func() {
		pprof.StopCPUProfile()
	}
}
