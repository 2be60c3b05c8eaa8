// Package exitcodes contains all well-defined exit codes that goxts
// can return.
package exitcodes

import (
	"fmt"
	"os"
)

const (
	// Usage - usage error like wrong cli syntax, wrong number of parameters.
	Usage = 1
	// 2 is reserved because it is used by Go panic

	// KeyMaterial means the key was missing, malformed, or does not
	// split into two cipher-sized halves.
	KeyMaterial = 3
	// UnitLen means a data unit had an invalid length (shorter than one
	// block or longer than the block-count maximum).
	UnitLen = 4
	// OpenFile - an input or output file could not be opened.
	OpenFile = 5
	// ReadKey - reading the key file failed.
	ReadKey = 6
	// Profiler - error occurred when trying to write a cpu profile.
	Profiler = 7
	// SigInt means we got SIGINT.
	SigInt = 8
	// Other error - please inspect the message.
	Other = 9
)

// Err wraps an error with an associated numeric exit code
type Err struct {
	error
	code int
}

// NewErr returns an error containing "msg" and the exit code "code".
func NewErr(msg string, code int) Err {
	return Err{
		error: fmt.Errorf("%s", msg),
		code:  code,
	}
}

// Exit extracts the numeric exit code from "err" (if available) and
// exits the application.
func Exit(err error) {
	err2, ok := err.(Err)
	if !ok {
		os.Exit(Other)
	}
	os.Exit(err2.code)
}
