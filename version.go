package main

import (
	"fmt"
	"runtime"

	"github.com/sectorfs/goxts/internal/tlog"
)

const gitVersionNotSet = "[GitVersion not set - please compile using ./build.bash]"

// GitVersion is the goxts version according to git, set by build.bash
var GitVersion = gitVersionNotSet

// BuildDate is a date string like "2026-08-30", set by build.bash
var BuildDate = "0000-00-00"

// printVersion prints a version string like this:
// goxts v0.3.1-12-gf4d9e72; 2026-08-30 go1.19.5 linux/amd64
func printVersion() {
	fmt.Printf("%s %s; %s %s %s/%s\n",
		tlog.ProgramName, GitVersion, BuildDate,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
