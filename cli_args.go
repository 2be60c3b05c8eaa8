package main

import (
	"os"

	"github.com/integrii/flaggy"

	"github.com/sectorfs/goxts/internal/exitcodes"
	"github.com/sectorfs/goxts/internal/tlog"
)

const tUsage = "" +
	"Usage: " + tlog.ProgramName + " -enc|-dec -key HEX|-keyfile FILE [OPTIONS] IN OUT\n" +
	"  or   " + tlog.ProgramName + " -speed|-version\n"

// argContainer stores the parsed CLI options and arguments
type argContainer struct {
	debug, quiet, wpanic, version, speed, enc, dec bool
	key, keyfile, cpuprofile                       string
	unit, jobs                                     int
	seq                                            uint64
	input, output                                  string
}

// parseCliOpts - parse command line options (i.e. arguments that start with "-")
func parseCliOpts() (args argContainer) {
	flaggy.SetName(tlog.ProgramName)
	flaggy.SetDescription("XTS sector encryption (IEEE 1619) with ciphertext stealing")
	flaggy.DefaultParser.ShowVersionWithVersionFlag = false
	flaggy.DefaultParser.AdditionalHelpPrepend = tUsage

	flaggy.AddPositionalValue(&args.input, "IN", 1, false, "input file")
	flaggy.AddPositionalValue(&args.output, "OUT", 2, false, "output file")

	flaggy.Bool(&args.enc, "e", "enc", "Encrypt IN to OUT")
	flaggy.Bool(&args.dec, "D", "dec", "Decrypt IN to OUT")
	flaggy.Bool(&args.debug, "d", "debug", "Enable debug output")
	flaggy.Bool(&args.quiet, "q", "quiet", "Quiet - silence informational messages")
	flaggy.Bool(&args.wpanic, "", "wpanic", "When encountering a warning, panic and exit immediately")
	flaggy.Bool(&args.version, "", "version", "Print version and exit")
	flaggy.Bool(&args.speed, "", "speed", "Run crypto speed test")

	flaggy.String(&args.key, "k", "key", "Hex-encoded double-length XTS key (64, 96 or 128 hex digits)")
	flaggy.String(&args.keyfile, "", "keyfile", "Read the hex key from FILE instead")
	flaggy.String(&args.cpuprofile, "", "cpuprofile", "Write cpu profile to specified file")

	args.unit = 512
	flaggy.Int(&args.unit, "u", "unit", "Data unit (sector) size in bytes")
	flaggy.Int(&args.jobs, "j", "jobs", "Data units to process in parallel (0 = all CPUs)")
	flaggy.UInt64(&args.seq, "s", "seq", "Sequence number of the first data unit")

	if err := flaggy.DefaultParser.Parse(); err != nil {
		tlog.Fatal.Printf("Invalid command line: %v. Try '%s -help'.", err, tlog.ProgramName)
		os.Exit(exitcodes.Usage)
	}
	return args
}
